// Package typo holds the curated fast-typo table: extremely common
// single-edit typos checked before any dictionary lookup, for both latency
// and precision. A hit here is the strongest possible correction signal —
// the table is small and hand-vetted, so false positives are negligible.
package typo

import "strings"

// table maps lower-cased misspellings to their corrections. Keep entries to
// single-edit typos (one substitution, insertion, deletion, or adjacent
// transposition) of unambiguous everyday words.
var table = map[string]string{
	"teh":      "the",
	"hte":      "the",
	"thier":    "their",
	"adn":      "and",
	"nad":      "and",
	"waht":     "what",
	"taht":     "that",
	"jsut":     "just",
	"liek":     "like",
	"kwno":     "know",
	"konw":     "know",
	"dont":     "don't",
	"cant":     "can't",
	"wont":     "won't",
	"didnt":    "didn't",
	"doesnt":   "doesn't",
	"wasnt":    "wasn't",
	"havent":   "haven't",
	"isnt":     "isn't",
	"im":       "I'm",
	"ive":      "I've",
	"youre":    "you're",
	"theyre":   "they're",
	"wouldnt":  "wouldn't",
	"couldnt":  "couldn't",
	"shouldnt": "shouldn't",
	"abotu":    "about",
	"aobut":    "about",
	"recieve":  "receive",
	"beleive":  "believe",
	"freind":   "friend",
	"wierd":    "weird",
	"becuase":  "because",
	"becasue":  "because",
	"tommorow": "tomorrow",
	"tonite":   "tonight",
	"wich":     "which",
	"whcih":    "which",
	"thre":     "there",
	"ther":     "there",
	"woudl":    "would",
	"coudl":    "could",
	"shoudl":   "should",
	"onyl":     "only",
	"veyr":     "very",
	"relaly":   "really",
	"realy":    "really",
	"alreayd":  "already",
	"aroudn":   "around",
	"peopel":   "people",
	"littel":   "little",
	"mroe":     "more",
	"soem":     "some",
	"somethign": "something",
	"anythign": "anything",
	"nothign":  "nothing",
	"tiem":     "time",
	"thign":    "thing",
	"giong":    "going",
	"goign":    "going",
	"talekd":   "talked",
	"wroking":  "working",
	"thansk":   "thanks",
	"thnaks":   "thanks",
	"pleae":    "please",
	"plesae":   "please",
}

// Lookup returns the correction for a lower-cased word from the fast table.
// The second return is false when the word is not a known fast typo.
func Lookup(word string) (string, bool) {
	c, ok := table[strings.ToLower(word)]
	return c, ok
}

// Contains reports whether the lower-cased word is a key in the fast table.
func Contains(word string) bool {
	_, ok := table[strings.ToLower(word)]
	return ok
}

// ContainsPair reports whether (word → correction) is exactly a fast-table
// entry, ignoring case. Used by the safety gate's proper-noun exemption.
func ContainsPair(word, correction string) bool {
	c, ok := table[strings.ToLower(word)]
	return ok && strings.EqualFold(c, correction)
}
