// Package text provides text normalization utilities shared by slug
// generation and keyword extraction.
// This is part of the platform layer and contains no business logic.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold strips diacritical marks: "São João" -> "Sao Joao".
// On transform failure the input is returned unchanged.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return folded
}

// FoldLower strips diacritics and lower-cases, the canonical form used for
// keyword matching against free text.
func FoldLower(s string) string {
	return strings.ToLower(Fold(s))
}
