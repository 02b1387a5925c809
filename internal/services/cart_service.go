package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"partscout/internal/domain"
	"partscout/internal/pricing"
	"partscout/internal/repos"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVendorNotFound   = errors.New("product vendor not found")
	ErrOutOfStock       = errors.New("product out of stock")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNoSnapshots      = errors.New("no cart snapshots")
	ErrSnapshotIndex    = errors.New("cart snapshot index out of range")
	ErrInvalidProduct   = errors.New("invalid custom product")
)

type CartService struct {
	Carts    *repos.CartRepo
	Searches *repos.SearchRepo
	Snaps    *repos.SnapshotRepo
}

func NewCartService(carts *repos.CartRepo, searches *repos.SearchRepo, snaps *repos.SnapshotRepo) *CartService {
	return &CartService{Carts: carts, Searches: searches, Snaps: snaps}
}

// Add puts one unit of the stored product's offer from vendor in the cart.
func (s *CartService) Add(sessionID, productID string, vendor domain.Vendor) (domain.CartProduct, error) {
	p, err := s.Searches.Product(sessionID, productID)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.CartProduct{}, ErrProductNotFound
	}
	if err != nil {
		return domain.CartProduct{}, err
	}
	offer, ok := p.Offer(vendor)
	if !ok {
		return domain.CartProduct{}, ErrVendorNotFound
	}
	if !offer.InStock {
		return domain.CartProduct{}, ErrOutOfStock
	}
	price, err := pricing.Parse(offer.Price)
	if err != nil {
		return domain.CartProduct{}, fmt.Errorf("add %s from %s: %w", p.Name, vendor, err)
	}
	line := domain.CartProduct{
		Name:     p.Name,
		Image:    p.Image,
		Price:    price,
		Vendor:   offer.Vendor,
		URL:      offer.URL,
		Quantity: 1,
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.CartProduct{}, err
	}
	if err := s.Carts.AddItem(cartID, line); err != nil {
		return domain.CartProduct{}, err
	}
	return line, nil
}

// AddCustom puts one unit of a hand-entered product in the cart. An empty
// vendor means CUSTOM. The product never goes through search, so it is
// always in stock.
func (s *CartService) AddCustom(sessionID, name, image, price, url string, vendor domain.Vendor) (domain.CartProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.CartProduct{}, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if vendor == "" {
		vendor = domain.VendorCustom
	}
	if !vendor.Valid() {
		return domain.CartProduct{}, fmt.Errorf("%w: unknown vendor %q", ErrInvalidProduct, vendor)
	}
	d, err := pricing.Parse(price)
	if err != nil {
		return domain.CartProduct{}, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	if d.IsNegative() {
		return domain.CartProduct{}, fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}
	line := domain.CartProduct{
		Name:     name,
		Image:    strings.TrimSpace(image),
		Price:    d,
		Vendor:   vendor,
		URL:      strings.TrimSpace(url),
		Quantity: 1,
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.CartProduct{}, err
	}
	if err := s.Carts.AddItem(cartID, line); err != nil {
		return domain.CartProduct{}, err
	}
	return line, nil
}

// Remove takes one unit of the line off; the line goes at zero.
func (s *CartService) Remove(sessionID, name string, vendor domain.Vendor) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	err = s.Carts.DecrementItem(cartID, name, vendor)
	if errors.Is(err, repos.ErrNotFound) {
		return ErrCartItemNotFound
	}
	return err
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

func (s *CartService) View(sessionID string) (domain.Cart, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	return Totals(items), nil
}

// Totals builds a cart from its lines.
func Totals(items []domain.CartProduct) domain.Cart {
	c := domain.Cart{Products: items, Total: decimal.Zero}
	if c.Products == nil {
		c.Products = []domain.CartProduct{}
	}
	for _, it := range items {
		c.Total = c.Total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		c.TotalItems += it.Quantity
	}
	return c
}

type Snapshot struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"createdAt"`
	Cart      domain.Cart `json:"cart"`
}

// SaveSnapshot stores the current cart and starts an empty one.
func (s *CartService) SaveSnapshot(sessionID string) error {
	cart, err := s.View(sessionID)
	if err != nil {
		return err
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Snaps.Push(sessionID, cartID, cart)
}

func (s *CartService) Snapshots(sessionID string) ([]Snapshot, error) {
	rows, err := s.Snaps.List(sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]Snapshot, 0, len(rows))
	for _, r := range rows {
		items, err := s.Snaps.Items(r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Snapshot{ID: r.ID, CreatedAt: r.CreatedAt, Cart: Totals(items)})
	}
	return out, nil
}

// RestoreSnapshot replaces the cart with snapshot index and discards it.
func (s *CartService) RestoreSnapshot(sessionID string, index int) error {
	return s.loadSnapshot(sessionID, index, true)
}

// CopySnapshot replaces the cart with snapshot index and keeps it.
func (s *CartService) CopySnapshot(sessionID string, index int) error {
	return s.loadSnapshot(sessionID, index, false)
}

func (s *CartService) loadSnapshot(sessionID string, index int, remove bool) error {
	rows, err := s.Snaps.List(sessionID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNoSnapshots
	}
	if index < 0 || index >= len(rows) {
		return ErrSnapshotIndex
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Snaps.Load(cartID, rows[index].ID, remove)
}
