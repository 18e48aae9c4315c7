// Package textnorm normalises and classifies raw keyboard text.
//
// Normalisation serves two distinct purposes that must not be conflated:
//
//   - [Normalize] cleans invisible artefacts (zero-width characters, soft
//     hyphens) and canonicalises curly quotes. Its output is safe to insert
//     back into the buffer.
//   - [Fold] additionally strips diacritics and lower-cases for comparison
//     purposes only. Folded text must never be inserted into the buffer.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Invisible characters that keyboards and paste operations smuggle into
// text. They are removed outright by Normalize.
var invisibleReplacer = strings.NewReplacer(
	"\u00AD", "", // soft hyphen
	"\u200B", "", // zero-width space
	"\u200C", "", // zero-width non-joiner
	"\u200D", "", // zero-width joiner
	"\uFEFF", "", // zero-width no-break space / BOM
)

// Curly quote canonicalisation. Smart-quote substitution is a host feature;
// the engine compares against dictionaries that use straight quotes.
var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// foldTransformer decomposes to NFD, drops combining marks, and recomposes.
// This turns "café" into "cafe" without touching base letters.
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize strips invisible characters and canonicalises curly quotes.
// It never folds case or diacritics — the result preserves what the user
// actually typed, minus artefacts.
func Normalize(raw string) string {
	return quoteReplacer.Replace(invisibleReplacer.Replace(raw))
}

// Fold returns s normalised, diacritic-stripped, and lower-cased, for
// dictionary and candidate comparison only.
func Fold(s string) string {
	cleaned := Normalize(s)
	folded, _, err := transform.String(foldTransformer, cleaned)
	if err != nil {
		// Transform failures only happen on invalid UTF-8; fall back to the
		// cleaned input rather than dropping the word.
		folded = cleaned
	}
	return strings.ToLower(folded)
}
