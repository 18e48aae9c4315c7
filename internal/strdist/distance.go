// Package strdist provides the string distance primitives used by the
// correction engine: bounded edit distance and the consonant/vowel phonetic
// skeleton check.
//
// The distance is Levenshtein extended with adjacent transpositions at cost 1
// (optimal string alignment). Swapping two neighbouring letters is the single
// most common typing error, and treating it as one edit is what keeps typos
// like "teh" inside the silent-correction ceiling. Candidate confidence uses
// Jaro-Winkler from github.com/antzucaro/matchr instead; the two measures
// serve different purposes and are deliberately not unified.
package strdist

import (
	"unicode"

	"github.com/antzucaro/matchr"
)

// EditDistance returns the edit distance between a and b: insertions,
// deletions, and substitutions cost 1, and a swap of two adjacent runes also
// costs 1. It operates on runes, so multi-byte characters count as one edit.
//
// The computation keeps three sliding DP rows, so memory is O(min(|a|,|b|)).
// The distance is symmetric and EditDistance(a, a) == 0.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	// Iterate over the longer string so the rows track the shorter one.
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}
	la, lb := len(ra), len(rb)
	if lb == 0 {
		return la
	}

	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			best := prev[j] + 1 // deletion
			if ins := curr[j-1] + 1; ins < best {
				best = ins
			}
			if sub := prev[j-1] + cost; sub < best {
				best = sub
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if tr := prev2[j-2] + 1; tr < best {
					best = tr
				}
			}
			curr[j] = best
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}

// WithinDistance reports whether EditDistance(a, b) <= max without always
// computing the full distance: a length-difference check short-circuits first.
func WithinDistance(a, b string, max int) bool {
	la, lb := len([]rune(a)), len([]rune(b))
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if diff > max {
		return false
	}
	return EditDistance(a, b) <= max
}

// PhoneticSkeleton maps each letter of s to 'v' (vowel) or 'c' (consonant),
// dropping non-letters. "weird" becomes "cvvcc". The skeleton is a cheap
// stand-in for pronunciation shape: corrections that change it drastically
// tend to be wrong even when the raw edit distance looks acceptable.
func PhoneticSkeleton(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if isVowel(r) {
			out = append(out, 'v')
		} else {
			out = append(out, 'c')
		}
	}
	return string(out)
}

// DrasticPhoneticChange reports whether the consonant/vowel skeletons of a
// and b diverge by more than one edit. Callers apply this veto only when the
// raw edit distance already exceeds 1 — it must never block a single-edit
// correction.
func DrasticPhoneticChange(a, b string) bool {
	if EditDistance(PhoneticSkeleton(a), PhoneticSkeleton(b)) <= 1 {
		return false
	}
	// A diverging skeleton is forgiven when the words still sound alike:
	// "recieve" and "receive" must never be vetoed apart.
	return !SoundsAlike(a, b)
}

// SoundsAlike reports whether a and b share a Double Metaphone encoding,
// comparing both the primary and the alternate code of each word.
func SoundsAlike(a, b string) bool {
	pa, sa := matchr.DoubleMetaphone(a)
	pb, sb := matchr.DoubleMetaphone(b)
	for _, x := range []string{pa, sa} {
		if x == "" {
			continue
		}
		if x == pb || x == sb {
			return true
		}
	}
	return false
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
