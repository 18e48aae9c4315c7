// Package candidate turns a possibly-misspelled token into a ranked,
// de-duplicated list of correction candidates. It blends three sources in
// priority order: the fast-typo table, injected dictionary guesses, and
// near-matches from the user's learned words.
package candidate

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/typecraft/emend/internal/bigram"
	"github.com/typecraft/emend/internal/dictionary"
	"github.com/typecraft/emend/internal/lexicon"
	"github.com/typecraft/emend/internal/safety"
	"github.com/typecraft/emend/internal/strdist"
	"github.com/typecraft/emend/internal/textnorm"
	"github.com/typecraft/emend/internal/typo"
	"github.com/typecraft/emend/pkg/types"
)

const (
	// maxCandidates caps the returned list; hosts render at most three
	// suggestion chips.
	maxCandidates = 3

	// typoConfidence is assigned to fast-typo-table hits, which are
	// curated and essentially never wrong.
	typoConfidence = 0.95

	// learnedConfidence is assigned to near-matches against the user's
	// own learned words.
	learnedConfidence = 0.9

	// learnedScanDistance bounds the learned-word proximity scan.
	learnedScanDistance = 2
)

// Generator produces correction candidates for single tokens.
type Generator struct {
	lex      *lexicon.Lexicon
	dict     dictionary.Checker
	resolver dictionary.LanguageResolver
	bigrams  *bigram.Table
	gate     *safety.Gate
	language string
}

// Config wires a Generator's collaborators. All fields are required
// except Language, which defaults to "en".
type Config struct {
	Lexicon  *lexicon.Lexicon
	Dict     dictionary.Checker
	Resolver dictionary.LanguageResolver
	Bigrams  *bigram.Table
	Gate     *safety.Gate
	Language string
}

// New builds a Generator from cfg.
func New(cfg Config) *Generator {
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}
	return &Generator{
		lex:      cfg.Lexicon,
		dict:     cfg.Dict,
		resolver: cfg.Resolver,
		bigrams:  cfg.Bigrams,
		gate:     cfg.Gate,
		language: lang,
	}
}

// Language returns the resolved language tag candidates are generated in.
func (g *Generator) Language() string {
	return g.resolver.Resolve(g.language)
}

// Generate returns up to three candidates for word, ranked best first.
// Words the user has learned or ignored produce no candidates at all:
// they are correct by fiat. prev and next feed the context scorer.
func (g *Generator) Generate(word, prev, next string) []types.Candidate {
	if word == "" || g.lex.IsKnown(word) {
		return nil
	}
	lower := strings.ToLower(word)

	seen := make(map[string]bool, maxCandidates)
	var out []types.Candidate

	add := func(replacement string, confidence float64, fromUserDict, fromTypoTable bool) {
		cased := textnorm.MatchCase(word, replacement)
		key := strings.ToLower(cased)
		if key == lower || seen[key] {
			return
		}
		if !g.gate.IsSafe(word, cased) {
			return
		}
		dist := strdist.EditDistance(lower, strings.ToLower(replacement))
		// Phonetic veto: a multi-edit rewrite that also reshapes the
		// consonant/vowel skeleton is almost never what was typed.
		// Curated table entries are exempt.
		if !fromTypoTable && dist > 1 && strdist.DrasticPhoneticChange(lower, strings.ToLower(replacement)) {
			return
		}
		seen[key] = true
		out = append(out, types.Candidate{
			Word:         cased,
			Confidence:   confidence,
			FromUserDict: fromUserDict,
			EditDistance: dist,
			ContextScore: g.bigrams.Score(prev, cased, next),
		})
	}

	if fix, ok := typo.Lookup(lower); ok {
		add(fix, typoConfidence, false, true)
	} else {
		lang := g.resolver.Resolve(g.language)
		if g.dict.IsMisspelled(word, lang) {
			for _, guess := range g.dict.Guesses(lower, lang, maxCandidates) {
				add(guess, matchr.JaroWinkler(lower, guess, false), false, false)
			}
		}
	}

	for _, learned := range g.lex.LearnedNear(lower, learnedScanDistance) {
		add(learned, learnedConfidence, true, false)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore() > out[j].TotalScore()
	})
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}

// FastTypoHit reports whether word has a fast-typo-table correction and
// returns it case-matched when it does.
func (g *Generator) FastTypoHit(word string) (string, bool) {
	fix, ok := typo.Lookup(strings.ToLower(word))
	if !ok {
		return "", false
	}
	return textnorm.MatchCase(word, fix), true
}
