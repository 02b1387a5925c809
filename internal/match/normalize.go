// Package match reconciles vendor listings that describe the same physical
// product into one merged product carrying every vendor's offer.
package match

import (
	"strings"

	"golang.org/x/text/cases"
)

var lineBreaks = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")

// Normalize strips embedded line breaks and surrounding whitespace from a
// listing name. Casing is preserved so the result can be displayed.
func Normalize(name string) string {
	return strings.TrimSpace(lineBreaks.Replace(name))
}

// Key returns the comparison form of name: normalized and case folded.
// Every comparison in this package goes through Key; display names never do.
func Key(name string) string {
	// Casers carry state and must not be shared between goroutines.
	return cases.Fold().String(Normalize(name))
}
