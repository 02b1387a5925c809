package match

import (
	"regexp"
	"strings"

	"partscout/internal/domain"
)

var partCodeRe = regexp.MustCompile(`\(([A-Za-z0-9][A-Za-z0-9-]*)\)`)

type brandMatcher struct {
	name  string
	whole *regexp.Regexp
}

// Classifier derives brand, variant and category from listing names using
// a fixed Vocabulary. It is safe for concurrent use.
type Classifier struct {
	brands     []brandMatcher
	variants   []string
	categories []CategoryRule
}

func NewClassifier(v Vocabulary) *Classifier {
	c := &Classifier{variants: lowerAll(v.Variants)}
	for _, b := range lowerAll(v.Brands) {
		c.brands = append(c.brands, brandMatcher{
			name:  b,
			whole: regexp.MustCompile(`\b` + regexp.QuoteMeta(b) + `\b`),
		})
	}
	for _, r := range v.Categories {
		c.categories = append(c.categories, CategoryRule{Category: r.Category, Keywords: lowerAll(r.Keywords)})
	}
	return c
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Manufacturer returns the lowercase brand of name, or "" if unknown.
// A brand the name starts with beats any brand mentioned later on.
func (c *Classifier) Manufacturer(name string) string {
	key := Key(name)
	for _, b := range c.brands {
		if strings.HasPrefix(key, b.name) {
			return b.name
		}
	}
	for _, b := range c.brands {
		if b.whole.MatchString(key) {
			return b.name
		}
	}
	return ""
}

// Variant returns the partner or cooler suffix of name, e.g. "suprim x".
func (c *Classifier) Variant(name string) string {
	name = Normalize(name)
	if ids := extractIdentifiers(name); len(ids) > 0 {
		rest := name[ids[0].end:]
		if i := strings.IndexAny(rest, "(,|"); i >= 0 {
			rest = rest[:i]
		}
		if v := strings.TrimSpace(Key(rest)); v != "" {
			return v
		}
	}
	key := Key(name)
	for _, kw := range c.variants {
		if strings.Contains(key, kw) {
			return kw
		}
	}
	return ""
}

func (c *Classifier) Category(name string) domain.Category {
	key := Key(name)
	for _, r := range c.categories {
		for _, kw := range r.Keywords {
			if strings.Contains(key, kw) {
				return r.Category
			}
		}
	}
	return domain.CategoryOther
}

// PartCode returns the lowercase parenthesized code in name, e.g.
// "90yv0ie0-m0aa00", or "".
func PartCode(name string) string {
	m := partCodeRe.FindStringSubmatch(Normalize(name))
	if m == nil {
		return ""
	}
	return Key(m[1])
}

// Features is everything the scorer needs to know about one listing name.
type Features struct {
	Key          string
	Identifiers  []string
	Manufacturer string
	Variant      string
	Category     domain.Category
	PartCode     string
}

func (c *Classifier) Features(name string) Features {
	return Features{
		Key:          Key(name),
		Identifiers:  ExtractModelNumbers(name),
		Manufacturer: c.Manufacturer(name),
		Variant:      c.Variant(name),
		Category:     c.Category(name),
		PartCode:     PartCode(name),
	}
}
