package match

import (
	"strconv"

	"partscout/internal/domain"
)

// Thresholds are the minimum scores (exclusive) a candidate must beat to
// merge into a seed, chosen by the seed's category.
type Thresholds struct {
	GPU     float64
	CPU     float64
	Default float64
}

var DefaultThresholds = Thresholds{GPU: 0.85, CPU: 0.78, Default: 0.85}

func (t Thresholds) For(c domain.Category) float64 {
	switch c {
	case domain.CategoryGPU:
		return t.GPU
	case domain.CategoryCPU:
		return t.CPU
	default:
		return t.Default
	}
}

// Merger folds raw single-offer listings into deduplicated products.
type Merger struct {
	Classifier *Classifier
	Thresholds Thresholds
	// Score defaults to the package Score function.
	Score func(seed, candidate Features) float64
}

func NewMerger(c *Classifier) *Merger {
	return &Merger{Classifier: c, Thresholds: DefaultThresholds, Score: Score}
}

var defaultMerger = NewMerger(NewClassifier(DefaultVocabulary()))

// CombineProducts merges listings with the default vocabulary and thresholds.
func CombineProducts(listings []domain.Product) []domain.Product {
	return defaultMerger.Combine(listings)
}

type entry struct {
	product  domain.Product
	features Features
}

// Combine returns one product per group of listings judged to be the same
// item. Listings are only compared within a bucket sharing their first
// model identifier; listings without one each get a bucket of their own.
// A candidate merges into a seed when its score beats the seed category's
// threshold, GPU variants agree, and it brings no vendor the seed already
// has. The input is not modified.
func (m *Merger) Combine(listings []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(listings))
	if len(listings) == 0 {
		return out
	}

	entries := make([]entry, len(listings))
	var order []string
	buckets := make(map[string][]int)
	for i, p := range listings {
		name := Normalize(p.Name)
		entries[i] = entry{
			product: domain.Product{
				ID:    p.ID,
				Name:  name,
				Image: p.Image,
				Info:  append([]domain.Offer(nil), p.Info...),
			},
			features: m.Classifier.Features(name),
		}
		key := "#" + strconv.Itoa(i)
		if ids := entries[i].features.Identifiers; len(ids) > 0 {
			key = ids[0]
		}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], i)
	}

	score := m.Score
	if score == nil {
		score = Score
	}

	merged := make([]bool, len(entries))
	emitted := make([]bool, len(entries))
	for _, key := range order {
		bucket := buckets[key]
		for n, si := range bucket {
			if merged[si] {
				continue
			}
			seed := &entries[si]
			category := seed.features.Category
			threshold := m.Thresholds.For(category)
			for _, ci := range bucket[n+1:] {
				if merged[ci] {
					continue
				}
				cand := &entries[ci]
				if score(seed.features, cand.features) <= threshold {
					continue
				}
				if category == domain.CategoryGPU && seed.features.Variant != cand.features.Variant {
					continue
				}
				if sharesVendor(seed.product.Info, cand.product.Info) {
					continue
				}
				seed.product.Info = append(seed.product.Info, cand.product.Info...)
				merged[ci] = true
			}
			out = append(out, seed.product)
			emitted[si] = true
		}
	}

	// Every listing is a seed or merged into one; this only guards bugs above.
	for i := range entries {
		if !merged[i] && !emitted[i] {
			out = append(out, entries[i].product)
		}
	}
	return out
}

func sharesVendor(a, b []domain.Offer) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Vendor == y.Vendor {
				return true
			}
		}
	}
	return false
}
