package textnorm

import (
	"strings"
	"unicode"
)

// IsUpper reports whether s contains at least one letter and no lower-case
// letters. "TEH" and "NASA2" qualify; "Teh" and "123" do not.
func IsUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// IsTitle reports whether s starts with an upper-case letter followed by
// only lower-case letters ("Acme"). Single upper-case letters do not count
// as title case — they are handled by the all-caps path.
func IsTitle(s string) bool {
	r := []rune(s)
	if len(r) < 2 || !unicode.IsUpper(r[0]) {
		return false
	}
	for _, c := range r[1:] {
		if unicode.IsLetter(c) && !unicode.IsLower(c) {
			return false
		}
	}
	return true
}

// Title upper-cases the first rune of s and lower-cases the rest.
func Title(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}

// MatchCase re-cases replacement to follow the casing pattern of original:
// ALL-CAPS stays ALL-CAPS, Title stays Title, anything else is returned
// unchanged. Mixed-case originals ("iPhone") deliberately fall through to
// "unchanged" — guessing their pattern causes worse errors than none.
func MatchCase(original, replacement string) string {
	switch {
	case IsUpper(original):
		return strings.ToUpper(replacement)
	case IsTitle(original):
		return Title(replacement)
	default:
		return replacement
	}
}
