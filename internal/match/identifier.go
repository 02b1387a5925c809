package match

import (
	"regexp"
	"strings"
)

// Applied in order over the original-case name.
var identifierPatterns = []*regexp.Regexp{
	// letters then digits: "RTX 3080", "i7-12700K", "B550M"
	regexp.MustCompile(`[A-Za-z]+\s?\d+[A-Za-z0-9-]*`),
	// digits then a short suffix: "3080 Ti", "980Ti"
	regexp.MustCompile(`\d+\s?[A-Za-z]{1,3}\d*`),
	// chipset style: "X570", "B550"
	regexp.MustCompile(`\b[A-Z]\d{3,5}\b`),
}

var identifierStrip = strings.NewReplacer(" ", "", "\t", "", "-", "")

type identifier struct {
	token      string
	start, end int // byte span in the source string
}

// extractIdentifiers returns the distinct identifiers found in name, in
// pattern-priority order and then by position.
func extractIdentifiers(name string) []identifier {
	var out []identifier
	seen := make(map[string]bool)
	for _, re := range identifierPatterns {
		for _, loc := range re.FindAllStringIndex(name, -1) {
			tok := strings.ToLower(identifierStrip.Replace(name[loc[0]:loc[1]]))
			if tok == "" || seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, identifier{token: tok, start: loc[0], end: loc[1]})
		}
	}
	return out
}

// ExtractModelNumbers returns the model/part number tokens found in name,
// lowercased with whitespace and dashes removed. The first token is the
// product's grouping key. An empty result means "no identifier".
func ExtractModelNumbers(name string) []string {
	ids := extractIdentifiers(Normalize(name))
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.token
	}
	return out
}
