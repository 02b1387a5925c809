package validate

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"partscout/internal/domain"
	"partscout/internal/pricing"
)

var (
	// part searches carry model numbers like "i7-12700K" or "RTX 4090 (24GB)"
	reQ  = regexp.MustCompile(`^[A-Za-z0-9 _'.+()/\\-]{1,80}$`)
	reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 80 {
		s = s[:80]
	}
	return s, reQ.MatchString(s)
}

// ID validates a stored product id.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Vendor(s string) (domain.Vendor, bool) {
	v := domain.Vendor(strings.ToUpper(strings.TrimSpace(s)))
	return v, v.Valid()
}

// Name validates a cart line name as echoed back by the cart page.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 300 {
		return "", false
	}
	return s, true
}

// Index parses a snapshot position.
func Index(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 1000 {
		return 0, false
	}
	return n, true
}

// URL accepts an empty string or an absolute http(s) link.
func URL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 2048 {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return s, true
}

// Price reads a hand-entered price such as "1299" or "$1,299.00".
func Price(s string) (decimal.Decimal, bool) {
	d, err := pricing.Parse(s)
	if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1_000_000)) {
		return decimal.Zero, false
	}
	return d, true
}
