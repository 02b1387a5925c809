package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"partscout/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// EnsureCart returns the session's cart id, creating the cart on first use.
func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	_, err = r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *CartRepo) touch(q sqlx.Execer, cartID string) error {
	_, err := q.Exec(`UPDATE carts SET updated_at=? WHERE id=?`, time.Now().UTC().Format(time.RFC3339), cartID)
	return err
}

// AddItem inserts the line with quantity 1, or bumps the quantity of the
// existing line with the same name and vendor.
func (r *CartRepo) AddItem(cartID string, p domain.CartProduct) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,name,vendor,image,url,price,qty,created_at)
		VALUES(?,?,?,?,?,?,1,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,name,vendor) DO UPDATE
		SET qty = cart_items.qty + 1, updated_at = CURRENT_TIMESTAMP
	`, cartID, p.Name, p.Vendor, p.Image, p.URL, p.Price.String())
	if err != nil {
		return err
	}
	return r.touch(r.db, cartID)
}

// DecrementItem lowers the line's quantity by one and drops it at zero.
func (r *CartRepo) DecrementItem(cartID, name string, vendor domain.Vendor) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var qty int
	err = tx.Get(&qty, `SELECT qty FROM cart_items WHERE cart_id=? AND name=? AND vendor=?`, cartID, name, vendor)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if qty <= 1 {
		_, err = tx.Exec(`DELETE FROM cart_items WHERE cart_id=? AND name=? AND vendor=?`, cartID, name, vendor)
	} else {
		_, err = tx.Exec(`UPDATE cart_items SET qty = qty - 1, updated_at = CURRENT_TIMESTAMP
			WHERE cart_id=? AND name=? AND vendor=?`, cartID, name, vendor)
	}
	if err != nil {
		return err
	}
	if err := r.touch(tx, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

// Items lists the cart's lines in the order they were first added.
func (r *CartRepo) Items(cartID string) ([]domain.CartProduct, error) {
	out := []domain.CartProduct{}
	err := r.db.Select(&out, `
	  SELECT name, COALESCE(image,'') AS image, price, vendor, COALESCE(url,'') AS url, qty
	  FROM cart_items WHERE cart_id = ? ORDER BY rowid
	`, cartID)
	return out, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	if err != nil {
		return err
	}
	return r.touch(r.db, cartID)
}

func replaceItems(tx *sqlx.Tx, cartID string, items []domain.CartProduct) error {
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO cart_items(cart_id,name,vendor,image,url,price,qty,created_at)
			VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
		`, cartID, it.Name, it.Vendor, it.Image, it.URL, it.Price.String(), it.Quantity); err != nil {
			return err
		}
	}
	return nil
}
