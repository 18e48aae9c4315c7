// Package safety vetoes corrections that are more embarrassing to get
// wrong than the typo they would fix. The gate runs after candidate
// generation and before ranking, and separately decides whether a
// surviving candidate may be applied silently.
package safety

import (
	"strings"

	"github.com/typecraft/emend/internal/keyboard"
	"github.com/typecraft/emend/internal/strdist"
	"github.com/typecraft/emend/internal/textnorm"
	"github.com/typecraft/emend/internal/typo"
)

// defaultDenylist holds words that must never participate in a correction,
// in either direction: profanity the user typed on purpose, and innocuous
// words that correctors notoriously flip into profanity.
var defaultDenylist = []string{
	"hell", "damn", "ass", "shit", "fuck", "fucking", "bitch",
	"crap", "piss", "dick", "cock", "cunt", "bastard", "whore",
	"sex", "porn", "nude", "rape",
	// Frequent false-positive targets.
	"duck", "ducking",
}

// Gate filters correction pairs. The zero value is not usable; construct
// with NewGate.
type Gate struct {
	layout *keyboard.Layout
	deny   map[string]bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithLayout overrides the keyboard layout used for tap-slip detection.
func WithLayout(l *keyboard.Layout) Option {
	return func(g *Gate) { g.layout = l }
}

// WithDenylist adds words to the built-in risky-word denylist.
func WithDenylist(words []string) Option {
	return func(g *Gate) {
		for _, w := range words {
			g.deny[strings.ToLower(w)] = true
		}
	}
}

// NewGate builds a Gate with the built-in denylist and a QWERTY layout.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		layout: keyboard.QWERTY(),
		deny:   make(map[string]bool, len(defaultDenylist)),
	}
	for _, w := range defaultDenylist {
		g.deny[w] = true
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Denied reports whether word is on the risky-word denylist.
func (g *Gate) Denied(word string) bool {
	return g.deny[strings.ToLower(word)]
}

// IsSafe reports whether suggestion may be offered as a correction for
// original at all, silently or otherwise.
//
// It rejects hyphenated suggestions and any pair involving a space (the
// phrase corrector owns merges and splits), pairs touching the risky-word
// denylist in either direction, ALL-CAPS originals that are not tap slips
// (acronyms), and Title-case originals outside the fast-typo table
// (proper nouns).
func (g *Gate) IsSafe(original, suggestion string) bool {
	if strings.Contains(suggestion, "-") {
		return false
	}
	if strings.Contains(original, " ") || strings.Contains(suggestion, " ") {
		return false
	}
	if g.Denied(original) || g.Denied(suggestion) {
		return false
	}
	if textnorm.IsUpper(original) && !g.layout.IsTapSlip(original, suggestion) {
		return false
	}
	if textnorm.IsTitle(original) && !typo.ContainsPair(original, suggestion) {
		return false
	}
	return true
}

// CanAutoApply reports whether suggestion may replace original without
// user confirmation. On top of IsSafe, silent application requires edit
// distance exactly 1, waived for tap slips and for pairs the acceptance
// store has marked trusted.
func (g *Gate) CanAutoApply(original, suggestion string, trusted bool) bool {
	if !g.IsSafe(original, suggestion) {
		return false
	}
	if trusted || g.layout.IsTapSlip(original, suggestion) {
		return true
	}
	return strdist.EditDistance(original, suggestion) == 1
}
