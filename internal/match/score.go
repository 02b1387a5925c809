package match

import "partscout/internal/domain"

const (
	manufacturerPenalty = 0.4

	variantPenaltyGPU     = 0.35
	variantPenaltyCPU     = 0.15
	variantPenaltyDefault = 0.25

	exactIdentifierBoostCPU = 0.45
	exactIdentifierBoost    = 0.35
	nearIdentifierBoost     = 0.25
	nearIdentifierMin       = 0.85
	identifierPenalty       = 0.2

	partCodeWeight = 0.2
	cpuExactBonus  = 0.15
)

// Scorer rates how likely two listings describe the same product.
type Scorer struct {
	Classifier *Classifier
}

func NewScorer(c *Classifier) *Scorer { return &Scorer{Classifier: c} }

// ScoreNames scores two raw listing names.
func (s *Scorer) ScoreNames(a, b string) float64 {
	return Score(s.Classifier.Features(a), s.Classifier.Features(b))
}

// Score combines name similarity with brand, variant, identifier and part
// code evidence into a value in [0, 1]. It is symmetric in a and b; any
// seed-versus-candidate direction belongs to the caller.
func Score(a, b Features) float64 {
	score := Similarity(a.Key, b.Key)

	if a.Manufacturer != "" && b.Manufacturer != "" && a.Manufacturer != b.Manufacturer {
		score -= manufacturerPenalty
	}

	if a.Variant != "" && b.Variant != "" && a.Variant != b.Variant {
		switch {
		case a.Category == domain.CategoryGPU && b.Category == domain.CategoryGPU:
			score -= variantPenaltyGPU
		case a.Category == domain.CategoryCPU && b.Category == domain.CategoryCPU:
			score -= variantPenaltyCPU
		default:
			score -= variantPenaltyDefault
		}
	}

	bothCPU := a.Category == domain.CategoryCPU && b.Category == domain.CategoryCPU
	exact := false
	if len(a.Identifiers) > 0 && len(b.Identifiers) > 0 {
		exact = sharesIdentifier(a.Identifiers, b.Identifiers)
		switch {
		case exact && bothCPU:
			score += exactIdentifierBoostCPU
		case exact:
			score += exactIdentifierBoost
		case nearIdentifier(a.Identifiers, b.Identifiers):
			score += nearIdentifierBoost
		default:
			score -= identifierPenalty
		}
	}

	if a.PartCode != "" && b.PartCode != "" {
		if a.PartCode == b.PartCode {
			score += partCodeWeight
		} else {
			score -= partCodeWeight
		}
	}

	if bothCPU && exact {
		score += cpuExactBonus
	}

	return max(0, min(1, score))
}

func sharesIdentifier(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func nearIdentifier(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if Similarity(x, y) > nearIdentifierMin {
				return true
			}
		}
	}
	return false
}
