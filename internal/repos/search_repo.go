package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"partscout/internal/domain"
)

type SearchRepo struct{ db *sqlx.DB }

func NewSearchRepo(db *sqlx.DB) *SearchRepo { return &SearchRepo{db: db} }

type SavedSearch struct {
	ID        string           `db:"id"`
	Term      string           `db:"term"`
	CreatedAt string           `db:"created_at"`
	Products  []domain.Product `db:"-"`
}

type searchProductRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Image    string `db:"image"`
	InfoJSON string `db:"info_json"`
}

func (r searchProductRow) product() (domain.Product, error) {
	p := domain.Product{ID: r.ID, Name: r.Name, Image: r.Image}
	if err := json.Unmarshal([]byte(r.InfoJSON), &p.Info); err != nil {
		return domain.Product{}, fmt.Errorf("decode offers of %s: %w", r.ID, err)
	}
	return p, nil
}

// Save replaces the session's previous search and returns products with
// freshly assigned ids.
func (r *SearchRepo) Save(sessionID, term string, products []domain.Product) ([]domain.Product, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM search_products WHERE search_id IN (SELECT id FROM searches WHERE session_id=?)`, sessionID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`DELETE FROM searches WHERE session_id=?`, sessionID); err != nil {
		return nil, err
	}

	searchID := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO searches(id,session_id,term,created_at) VALUES(?,?,?,?)`,
		searchID, sessionID, term, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}

	out := make([]domain.Product, len(products))
	for i, p := range products {
		info, err := json.Marshal(p.Info)
		if err != nil {
			return nil, err
		}
		p.ID = uuid.NewString()
		if _, err := tx.Exec(`
			INSERT INTO search_products(id,search_id,position,name,image,info_json)
			VALUES(?,?,?,?,?,?)
		`, p.ID, searchID, i, p.Name, p.Image, string(info)); err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, tx.Commit()
}

// Latest returns the session's stored search, or ErrNotFound.
func (r *SearchRepo) Latest(sessionID string) (SavedSearch, error) {
	var s SavedSearch
	err := r.db.Get(&s, `SELECT id, term, created_at FROM searches WHERE session_id=?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedSearch{}, ErrNotFound
	}
	if err != nil {
		return SavedSearch{}, err
	}

	var rows []searchProductRow
	if err := r.db.Select(&rows, `
	  SELECT id, name, COALESCE(image,'') AS image, info_json
	  FROM search_products WHERE search_id=? ORDER BY position
	`, s.ID); err != nil {
		return SavedSearch{}, err
	}
	s.Products = make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.product()
		if err != nil {
			return SavedSearch{}, err
		}
		s.Products = append(s.Products, p)
	}
	return s, nil
}

// Product looks up one product from the session's stored search.
func (r *SearchRepo) Product(sessionID, productID string) (domain.Product, error) {
	var row searchProductRow
	err := r.db.Get(&row, `
	  SELECT sp.id, sp.name, COALESCE(sp.image,'') AS image, sp.info_json
	  FROM search_products sp JOIN searches s ON s.id = sp.search_id
	  WHERE s.session_id=? AND sp.id=?
	`, sessionID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return row.product()
}
