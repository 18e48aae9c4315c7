// Package keyboard models physical key adjacency on a fixed layout.
//
// The model is a static undirected neighbour graph: each letter maps to the
// set of letters one physical step away (horizontal, vertical, or diagonal).
// It is used to recognise "tap slips" — single-substitution typos that are
// explainable by a finger landing one key off target. A tap slip already
// implies edit distance 1, so it is always eligible for silent correction.
package keyboard

import "unicode"

// Layout is an immutable key adjacency graph. The zero value is unusable;
// construct one with [QWERTY] or [NewLayout].
type Layout struct {
	neighbors map[rune]map[rune]bool
}

// qwertyRows describes the three letter rows of a physical QWERTY keyboard.
// Each row is offset roughly half a key to the right of the one above it, so
// a key's diagonal neighbours are the same column and the next column down.
var qwertyRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

// QWERTY returns the adjacency model for the standard QWERTY letter block.
func QWERTY() *Layout {
	return NewLayout(qwertyRows)
}

// NewLayout builds an adjacency graph from physical key rows. Rows are
// assumed to be staggered half a key, as on a real keyboard: key i in row r
// neighbours keys i and i+1 in row r+1 (and symmetrically upward).
func NewLayout(rows []string) *Layout {
	l := &Layout{neighbors: make(map[rune]map[rune]bool)}
	link := func(a, b rune) {
		if l.neighbors[a] == nil {
			l.neighbors[a] = make(map[rune]bool)
		}
		if l.neighbors[b] == nil {
			l.neighbors[b] = make(map[rune]bool)
		}
		l.neighbors[a][b] = true
		l.neighbors[b][a] = true
	}

	runeRows := make([][]rune, len(rows))
	for i, row := range rows {
		runeRows[i] = []rune(row)
	}
	for r, row := range runeRows {
		for c, key := range row {
			// Horizontal neighbour.
			if c+1 < len(row) {
				link(key, row[c+1])
			}
			// Row below: rows shift right going down, so key i sits
			// over keys i-1 and i of the next row ('t' over 'f'/'g').
			if r+1 < len(runeRows) {
				below := runeRows[r+1]
				if c-1 >= 0 && c-1 < len(below) {
					link(key, below[c-1])
				}
				if c < len(below) {
					link(key, below[c])
				}
			}
		}
	}
	return l
}

// Adjacent reports whether a and b are one physical step apart on the layout.
// Comparison is case-insensitive; a key is not adjacent to itself.
func (l *Layout) Adjacent(a, b rune) bool {
	a = unicode.ToLower(a)
	b = unicode.ToLower(b)
	if a == b {
		return false
	}
	return l.neighbors[a][b]
}

// IsTapSlip reports whether b is explainable as a single mistyped key in a:
// the words have equal rune length, differ in exactly one position, and the
// two differing runes are adjacent on the layout.
func (l *Layout) IsTapSlip(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) || len(ra) == 0 {
		return false
	}
	diff := -1
	for i := range ra {
		if unicode.ToLower(ra[i]) == unicode.ToLower(rb[i]) {
			continue
		}
		if diff != -1 {
			return false
		}
		diff = i
	}
	if diff == -1 {
		return false
	}
	return l.Adjacent(ra[diff], rb[diff])
}
