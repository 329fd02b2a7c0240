// Package search provides the searchable-name normalization applied to
// catalog entries and game reference data.
package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	bracketed   = regexp.MustCompile(`\(.*?\)|\[.*?\]`)
	punctuation = regexp.MustCompile(`[^a-z0-9 ]`)
	whitespace  = regexp.MustCompile(`\s+`)

	deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// ToSearchable converts a card name into its search-friendly form:
// lowercased, bracketed segments dropped, accents stripped, punctuation
// removed and whitespace collapsed.
func ToSearchable(name string) string {
	s := strings.ToLower(name)
	s = bracketed.ReplaceAllString(s, "")

	if folded, _, err := transform.String(deaccenter, s); err == nil {
		s = folded
	}

	s = punctuation.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
