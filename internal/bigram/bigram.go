// Package bigram scores candidate words against their neighbouring tokens
// using a static bigram frequency table.
//
// The table is read-only after construction and the score is purely
// additive with no normalisation — the magnitudes are tuned against the
// table's own weights, not against any external probability scale.
package bigram

import "strings"

// Table maps "word1 word2" (lower-cased, single space) to an integer
// frequency weight. Missing entries contribute zero.
type Table struct {
	weights map[string]int
}

// defaultWeights is a compact table of common English function-word bigrams.
// Weights are relative frequency ranks, not counts; they only need to order
// candidates sensibly against each other.
var defaultWeights = map[string]int{
	"of the":    10,
	"in the":    10,
	"to the":    9,
	"on the":    9,
	"for the":   8,
	"at the":    8,
	"and the":   8,
	"to be":     8,
	"it is":     7,
	"i am":      7,
	"is a":      7,
	"was a":     6,
	"it was":    6,
	"will be":   6,
	"have been": 6,
	"going to":  6,
	"want to":   6,
	"need to":   6,
	"have to":   6,
	"a lot":     5,
	"lot of":    5,
	"kind of":   5,
	"sort of":   4,
	"as well":   4,
	"of course": 4,
	"in fact":   4,
	"at least":  4,
	"right now": 4,
	"thank you": 5,
	"see you":   4,
	"let me":    4,
	"i think":   5,
	"i know":    4,
	"you know":  4,
	"do you":    4,
	"are you":   4,
	"the same":  3,
	"the first": 3,
	"the best":  3,
	"this is":   5,
	"that is":   4,
	"there is":  4,
	"there are": 3,
	"would be":  4,
	"could be":  3,
	"should be": 3,
	"on my":     3,
	"in my":     3,
	"with the":  5,
	"from the":  5,
	"about the": 4,
	"what the":  2,
	"all the":   3,
	"be the":    2,
	"the way":   3,
	"the time":  3,
	"the day":   2,
}

// NewTable returns a Table seeded with the built-in weights plus any extra
// entries, which override built-ins on key collision.
func NewTable(extra map[string]int) *Table {
	w := make(map[string]int, len(defaultWeights)+len(extra))
	for k, v := range defaultWeights {
		w[normKey(k)] = v
	}
	for k, v := range extra {
		w[normKey(k)] = v
	}
	return &Table{weights: w}
}

// Score sums the table weights of "prev candidate" and "candidate next",
// case-insensitively. Empty prev/next simply contribute nothing.
func (t *Table) Score(prev, candidate, next string) int {
	if candidate == "" {
		return 0
	}
	c := strings.ToLower(candidate)
	score := 0
	if prev != "" {
		score += t.weights[strings.ToLower(prev)+" "+c]
	}
	if next != "" {
		score += t.weights[c+" "+strings.ToLower(next)]
	}
	return score
}

func normKey(k string) string {
	return strings.Join(strings.Fields(strings.ToLower(k)), " ")
}
