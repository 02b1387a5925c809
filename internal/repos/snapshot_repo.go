package repos

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"partscout/internal/domain"
)

// SnapshotRepo stores saved carts per session as an ordered stack.
type SnapshotRepo struct{ db *sqlx.DB }

func NewSnapshotRepo(db *sqlx.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

type SnapshotRow struct {
	ID         string `db:"id"`
	Position   int    `db:"position"`
	Total      string `db:"total"`
	TotalItems int    `db:"total_items"`
	CreatedAt  string `db:"created_at"`
}

// Push appends cart as the newest snapshot and empties the live cart.
func (r *SnapshotRepo) Push(sessionID, cartID string, cart domain.Cart) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.Get(&next, `SELECT COALESCE(MAX(position)+1, 0) FROM cart_snapshots WHERE session_id=?`, sessionID); err != nil {
		return err
	}
	id := uuid.NewString()
	if _, err := tx.Exec(`
		INSERT INTO cart_snapshots(id,session_id,position,total,total_items,created_at)
		VALUES(?,?,?,?,?,?)
	`, id, sessionID, next, cart.Total.String(), cart.TotalItems, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	for i, it := range cart.Products {
		if _, err := tx.Exec(`
			INSERT INTO snapshot_items(snapshot_id,line,name,vendor,image,url,price,qty)
			VALUES(?,?,?,?,?,?,?,?)
		`, id, i, it.Name, it.Vendor, it.Image, it.URL, it.Price.String(), it.Quantity); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id=?`, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns the session's snapshots oldest first.
func (r *SnapshotRepo) List(sessionID string) ([]SnapshotRow, error) {
	out := []SnapshotRow{}
	err := r.db.Select(&out, `
	  SELECT id, position, total, total_items, COALESCE(created_at,'') AS created_at
	  FROM cart_snapshots WHERE session_id=? ORDER BY position
	`, sessionID)
	return out, err
}

func (r *SnapshotRepo) Items(snapshotID string) ([]domain.CartProduct, error) {
	out := []domain.CartProduct{}
	err := r.db.Select(&out, `
	  SELECT name, COALESCE(image,'') AS image, price, vendor, COALESCE(url,'') AS url, qty
	  FROM snapshot_items WHERE snapshot_id=? ORDER BY line
	`, snapshotID)
	return out, err
}

// Load copies the snapshot's lines into the live cart. When remove is set
// the snapshot is deleted in the same transaction.
func (r *SnapshotRepo) Load(cartID, snapshotID string, remove bool) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	items := []domain.CartProduct{}
	if err := tx.Select(&items, `
	  SELECT name, COALESCE(image,'') AS image, price, vendor, COALESCE(url,'') AS url, qty
	  FROM snapshot_items WHERE snapshot_id=? ORDER BY line
	`, snapshotID); err != nil {
		return err
	}
	if err := replaceItems(tx, cartID, items); err != nil {
		return err
	}
	if remove {
		if _, err := tx.Exec(`DELETE FROM snapshot_items WHERE snapshot_id=?`, snapshotID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM cart_snapshots WHERE id=?`, snapshotID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
