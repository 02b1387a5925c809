package match

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

var dice = &metrics.SorensenDice{CaseSensitive: true, NgramSize: 2}

// Similarity is the Dice coefficient over character bigrams of a and b,
// ignoring whitespace. Identical strings score 1; strings too short to form
// a bigram score 0. Callers pass comparison keys.
func Similarity(a, b string) float64 {
	a = strings.Join(strings.Fields(a), "")
	b = strings.Join(strings.Fields(b), "")
	if a == b {
		return 1
	}
	if len([]rune(a)) < 2 || len([]rune(b)) < 2 {
		return 0
	}
	return strutil.Similarity(a, b, dice)
}
