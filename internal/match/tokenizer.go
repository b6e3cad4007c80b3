// Package match implements the lexical retrieval core: tokenization,
// term-frequency vectors, cosine scoring with tag/category bonuses, and
// threshold/limit ranking with a visible/deferred split.
package match

import (
	"regexp"
	"strings"
)

// tokenPattern matches runs of lowercase alphanumerics of length >= 2.
// Everything else acts as a separator and is discarded.
var tokenPattern = regexp.MustCompile(`[a-z0-9]{2,}`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Tokenize lowercases text and splits it into alphanumeric tokens of length
// at least two. No stemming, no stop-word removal. Empty input yields an
// empty sequence.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Normalize lowercases text, collapses whitespace runs to single spaces, and
// trims. Used for substring checks (category match) where token boundaries
// do not apply.
func Normalize(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(strings.ToLower(text), " "))
}
