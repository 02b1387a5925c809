// Package pricing parses vendor price strings and orders products by price.
package pricing

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"partscout/internal/domain"
)

var ErrBadPrice = errors.New("malformed price")

var priceCleaner = strings.NewReplacer("$", "", ",", "")

// Parse reads a vendor price such as "$1,299.00".
func Parse(price string) (decimal.Decimal, error) {
	clean := priceCleaner.Replace(strings.Join(strings.Fields(price), ""))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrBadPrice)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrBadPrice, price)
	}
	return d, nil
}

// Format renders d the way vendors print prices: "$1,299.00".
func Format(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Average is the mean of p's parsable offer prices. ok is false when no
// offer has a usable price.
func Average(p domain.Product) (avg decimal.Decimal, ok bool) {
	sum := decimal.Zero
	n := 0
	for _, o := range p.Info {
		d, err := Parse(o.Price)
		if err != nil {
			continue
		}
		sum = sum.Add(d)
		n++
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(int64(n))), true
}

// SortByAveragePrice orders products in place: names containing term
// (case-insensitive) first, then by ascending average price. Products
// without any usable price go last within their group. The sort is stable.
func SortByAveragePrice(products []domain.Product, term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	type sortKey struct {
		hit   bool
		price decimal.Decimal
		ok    bool
	}
	keys := make([]sortKey, len(products))
	idx := make([]int, len(products))
	for i, p := range products {
		idx[i] = i
		avg, ok := Average(p)
		keys[i] = sortKey{
			hit:   term != "" && strings.Contains(strings.ToLower(p.Name), term),
			price: avg,
			ok:    ok,
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		ka, kb := keys[a], keys[b]
		switch {
		case ka.hit != kb.hit:
			if ka.hit {
				return -1
			}
			return 1
		case ka.ok != kb.ok:
			if ka.ok {
				return -1
			}
			return 1
		}
		return ka.price.Cmp(kb.price)
	})
	sorted := make([]domain.Product, len(products))
	for i, j := range idx {
		sorted[i] = products[j]
	}
	copy(products, sorted)
}
