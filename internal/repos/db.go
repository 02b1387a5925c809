package repos

import (
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps PRAGMAs and :memory: databases consistent.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Latest merged search per session; carts reference these products by id
CREATE TABLE IF NOT EXISTS searches(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  term TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS search_products(
  id TEXT PRIMARY KEY,
  search_id TEXT NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  image TEXT,
  info_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_search_products_search ON search_products(search_id, position);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  name    TEXT NOT NULL,
  vendor  TEXT NOT NULL,
  image   TEXT,
  url     TEXT,
  price   TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, name, vendor)
);

-- Saved carts
CREATE TABLE IF NOT EXISTS cart_snapshots(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  total TEXT NOT NULL,
  total_items INTEGER NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_cart_snapshots_session ON cart_snapshots(session_id, position);

CREATE TABLE IF NOT EXISTS snapshot_items(
  snapshot_id TEXT NOT NULL REFERENCES cart_snapshots(id) ON DELETE CASCADE,
  line   INTEGER NOT NULL,
  name   TEXT NOT NULL,
  vendor TEXT NOT NULL,
  image  TEXT,
  url    TEXT,
  price  TEXT NOT NULL,
  qty INTEGER NOT NULL,
  PRIMARY KEY (snapshot_id, line)
);
`
	_, err := db.Exec(schema)
	return err
}
