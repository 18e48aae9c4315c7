// Package tokenize splits free text into word tokens with their original
// character ranges.
//
// Segmentation is intentionally simple: a token is a maximal run of letters,
// digits, apostrophes, and word-internal hyphens. Tokens that classify as
// URLs, mentions/hashtags, or emoji/symbol runs are dropped before they ever
// reach the correction pipeline.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/typecraft/emend/internal/textnorm"
	"github.com/typecraft/emend/pkg/types"
)

// boundaryPunct is the closed set of punctuation trimmed from the ends of a
// token extracted by LastToken.
const boundaryPunct = `.,!?;:()[]{}"'`

// Tokenize returns the word tokens of text in order, each with its rune
// offset and length in the original buffer. Non-linguistic tokens (URLs,
// mentions, hashtags, emoji/symbol runs) are silently dropped.
func Tokenize(text string) []types.Token {
	var tokens []types.Token

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}
		// A raw token runs to the next whitespace. Classification needs the
		// full raw token (so "https://x.co/a?b=1" stays whole).
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		raw := string(runes[start:i])

		switch textnorm.Classify(raw) {
		case types.ClassURL, types.ClassMentionOrHashtag, types.ClassEmojiOrSymbol:
			continue
		}

		// Within the raw token, emit maximal word runs.
		tokens = append(tokens, wordRuns(runes, start, i)...)
	}
	return tokens
}

// wordRuns extracts word tokens from runes[start:end], where a word is a run
// of letters/digits possibly containing interior apostrophes or hyphens.
func wordRuns(runes []rune, start, end int) []types.Token {
	var out []types.Token
	i := start
	for i < end {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		ws := i
		for i < end && (isWordRune(runes[i]) || isJoiner(runes, i, end)) {
			i++
		}
		out = append(out, types.Token{
			Text:   string(runes[ws:i]),
			Start:  ws,
			Length: i - ws,
		})
	}
	return out
}

// isJoiner reports whether the rune at i joins two word runes (apostrophe or
// hyphen with a word rune on both sides).
func isJoiner(runes []rune, i, end int) bool {
	r := runes[i]
	if r != '\'' && r != '-' {
		return false
	}
	return i+1 < end && isWordRune(runes[i+1])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// LastToken extracts the final whitespace-delimited token from text and
// trims boundary punctuation from both ends. It avoids full tokenization for
// the per-keystroke hot path. Returns "" when text has no trailing token.
func LastToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], boundaryPunct)
}
