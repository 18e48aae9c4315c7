// Package phrase corrects fixed multi-word merges and splits ("alot" to
// "a lot"). It runs only at commit boundaries: mid-word the merged form
// may still be a prefix of what the user intends.
package phrase

import (
	"strings"

	"github.com/typecraft/emend/internal/textnorm"
)

// Correction is a resolved phrase fix for a committed token.
type Correction struct {
	Original    string
	Replacement string
}

type entry struct {
	replacement string
	// when, if non-nil, restricts the correction to the listed next
	// tokens (lower-cased). Used where the merged form is itself a
	// valid word and only context tells the two apart.
	when map[string]bool
}

var table = map[string]entry{
	"alot":      {replacement: "a lot"},
	"infact":    {replacement: "in fact"},
	"atleast":   {replacement: "at least"},
	"aswell":    {replacement: "as well"},
	"eachother": {replacement: "each other"},
	"incase":    {replacement: "in case"},
	"nevermind": {replacement: "never mind"},
	"everytime": {replacement: "every time"},
	"infront":   {replacement: "in front"},
	"ofcourse":  {replacement: "of course"},
	"thankyou":  {replacement: "thank you"},
	"noone":     {replacement: "no one"},
	"eventhough": {replacement: "even though"},
	// "into" is a real word; split it only before an object pronoun,
	// where "hand it in to them" style phrasing is what was meant.
	"into": {replacement: "in to", when: pronounNext},
	"onto": {replacement: "on to", when: pronounNext},
}

var pronounNext = map[string]bool{
	"me": true, "you": true, "him": true, "her": true,
	"us": true, "them": true, "whom": true,
}

// Check looks up token in the phrase table, disambiguating by next where
// the entry is context-conditional. The replacement is re-cased to match
// the original token.
func Check(token, next string) (Correction, bool) {
	e, ok := table[strings.ToLower(token)]
	if !ok {
		return Correction{}, false
	}
	if e.when != nil && !e.when[strings.ToLower(next)] {
		return Correction{}, false
	}
	return Correction{
		Original:    token,
		Replacement: textnorm.MatchCase(token, e.replacement),
	}, true
}

// Contains reports whether token has any phrase-table entry, conditional
// or not.
func Contains(token string) bool {
	_, ok := table[strings.ToLower(token)]
	return ok
}
