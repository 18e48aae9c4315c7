// Package engine hosts the correction decision loop: given a word and its
// immediate context, decide whether to silently replace it, offer ranked
// suggestions, or leave it alone.
//
// A single Engine instance is constructed at startup and shared by all
// callers. Every decision is a pure synchronous function of its inputs plus
// the mutable lexicon and acceptance stores, which synchronise internally;
// the engine adds no locking of its own on the decision path.
//
// Nothing in this package is fatal at runtime: malformed input, missing
// dictionaries, and persistence failures all degrade to "no correction",
// because a wrong or absent fix is always cheaper than a broken input path.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/typecraft/emend/internal/bigram"
	"github.com/typecraft/emend/internal/candidate"
	"github.com/typecraft/emend/internal/dictionary"
	"github.com/typecraft/emend/internal/keyboard"
	"github.com/typecraft/emend/internal/learn"
	"github.com/typecraft/emend/internal/lexicon"
	"github.com/typecraft/emend/internal/observe"
	"github.com/typecraft/emend/internal/phrase"
	"github.com/typecraft/emend/internal/safety"
	"github.com/typecraft/emend/internal/store"
	"github.com/typecraft/emend/internal/textnorm"
	"github.com/typecraft/emend/internal/tokenize"
	"github.com/typecraft/emend/pkg/types"

	"golang.org/x/sync/errgroup"
)

// maxWordLen is the rune-length ceiling above which a token is passed
// through untouched. Anything longer is a paste, an identifier, or noise.
const maxWordLen = 24

// Engine is the correction decision engine. Construct with [New]; the zero
// value is not usable.
type Engine struct {
	kv          store.KV
	lex         *lexicon.Lexicon
	accept      *learn.AcceptanceStore
	intentional *learn.IntentionalWords
	gen         *candidate.Generator
	gate        *safety.Gate
	layout      *keyboard.Layout
	metrics     *observe.Metrics
	logger      *slog.Logger

	enabled atomic.Bool
}

// Option configures an Engine during construction.
type Option func(*settings)

type settings struct {
	language       string
	logger         *slog.Logger
	metrics        *observe.Metrics
	gate           *safety.Gate
	layout         *keyboard.Layout
	bigramExtra    map[string]int
	flushDelay     time.Duration
	maxPairs       int
	intentionalTTL time.Duration
}

// WithLanguage sets the preferred language tag (default "en"). The tag is
// resolved against the dictionary's language resolver; an unavailable tag
// falls back rather than failing.
func WithLanguage(tag string) Option {
	return func(s *settings) { s.language = tag }
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMetrics sets the metrics instance (default observe.DefaultMetrics()).
func WithMetrics(m *observe.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithGate replaces the default safety gate.
func WithGate(g *safety.Gate) Option {
	return func(s *settings) { s.gate = g }
}

// WithLayout replaces the default QWERTY layout for tap-slip detection.
func WithLayout(l *keyboard.Layout) Option {
	return func(s *settings) { s.layout = l }
}

// WithBigramWeights merges extra bigram weights into the built-in context
// table.
func WithBigramWeights(extra map[string]int) Option {
	return func(s *settings) { s.bigramExtra = extra }
}

// WithFlushDelay overrides the acceptance-store flush debounce, mainly for
// tests.
func WithFlushDelay(d time.Duration) Option {
	return func(s *settings) { s.flushDelay = d }
}

// WithMaxPairs caps the acceptance store's pair cardinality.
func WithMaxPairs(n int) Option {
	return func(s *settings) { s.maxPairs = n }
}

// WithIntentionalTTL overrides how long a rejected correction suppresses
// further auto-correction of that word.
func WithIntentionalTTL(d time.Duration) Option {
	return func(s *settings) { s.intentionalTTL = d }
}

// New builds an Engine on top of kv for persistence and dict/resolver as
// the injected spell capability. The lexicon and acceptance stores are
// loaded concurrently; a load failure aborts construction, since starting
// with silently-empty user state would re-flag every learned word.
func New(ctx context.Context, kv store.KV, dict dictionary.Checker, resolver dictionary.LanguageResolver, opts ...Option) (*Engine, error) {
	s := settings{
		language: "en",
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}
	if s.gate == nil {
		s.gate = safety.NewGate()
	}
	if s.layout == nil {
		s.layout = keyboard.QWERTY()
	}

	e := &Engine{
		kv:          kv,
		intentional: learn.NewIntentionalWords(s.intentionalTTL),
		gate:        s.gate,
		layout:      s.layout,
		metrics:     s.metrics,
		logger:      s.logger,
	}
	e.enabled.Store(true)

	var g errgroup.Group
	g.Go(func() error {
		lex, err := lexicon.Load(kv, lexicon.WithLogger(s.logger))
		if err == nil {
			e.lex = lex
		}
		return err
	})
	g.Go(func() error {
		acceptOpts := []learn.AcceptanceOption{
			learn.WithLogger(s.logger),
			learn.WithMetrics(s.metrics),
		}
		if s.flushDelay > 0 {
			acceptOpts = append(acceptOpts, learn.WithFlushDelay(s.flushDelay))
		}
		if s.maxPairs > 0 {
			acceptOpts = append(acceptOpts, learn.WithMaxPairs(s.maxPairs))
		}
		acc, err := learn.LoadAcceptance(kv, acceptOpts...)
		if err == nil {
			e.accept = acc
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.gen = candidate.New(candidate.Config{
		Lexicon:  e.lex,
		Dict:     dict,
		Resolver: resolver,
		Bigrams:  bigram.NewTable(s.bigramExtra),
		Gate:     s.gate,
		Language: s.language,
	})

	s.logger.Info("engine ready",
		"language", e.gen.Language(),
		"trust_threshold", learn.TrustThreshold,
	)
	return e, nil
}

// SetEnabled toggles all correction behaviour. While disabled, Decide
// always returns no action.
func (e *Engine) SetEnabled(v bool) {
	e.enabled.Store(v)
}

// Enabled reports whether correction is active.
func (e *Engine) Enabled() bool {
	return e.enabled.Load()
}

// Decide evaluates word in its context and returns what, if anything, to
// do about it. prev and next are the neighbouring words (empty when
// absent); isCommitBoundary is true when the user has just finished the
// word with a space, punctuation, or newline. Silent replacement only ever
// happens at a commit boundary.
func (e *Engine) Decide(ctx context.Context, word, prev, next string, isCommitBoundary bool) types.Decision {
	ctx, span := observe.StartSpan(ctx, "engine.decide")
	defer span.End()

	start := time.Now()
	d := e.decide(ctx, word, prev, next, isCommitBoundary)

	outcome := observe.OutcomeNone
	switch {
	case d.ApplyAuto:
		outcome = observe.OutcomeAuto
	case len(d.Suggestions) > 0:
		outcome = observe.OutcomeSuggestions
	}
	span.SetAttributes(observe.Attr("outcome", outcome))
	e.metrics.RecordDecision(ctx, outcome, time.Since(start))
	if d.ApplyAuto {
		e.logger.Debug("auto-correcting",
			"word", word,
			"replacement", d.Replacement,
		)
	}
	return d
}

func (e *Engine) decide(ctx context.Context, word, prev, next string, isCommitBoundary bool) types.Decision {
	if !e.enabled.Load() {
		return types.NoAction()
	}

	word = strings.TrimSpace(textnorm.Normalize(word))
	if word == "" || len([]rune(word)) > maxWordLen {
		return types.NoAction()
	}
	if textnorm.Classify(word) != types.ClassWord {
		return types.NoAction()
	}
	if e.lex.IsKnown(word) || e.lex.IsColloquial(word) {
		return types.NoAction()
	}

	if isCommitBoundary {
		if pc, ok := phrase.Check(word, next); ok {
			// A rejected correction stays rejected on the phrase path
			// too: offer it, never force it, until the TTL expires.
			if e.intentional.Contains(word) {
				return types.Decision{Suggestions: []string{pc.Replacement}}
			}
			e.metrics.PhraseCorrections.Add(ctx, 1)
			return types.Decision{
				Replacement: pc.Replacement,
				Suggestions: []string{pc.Replacement},
				ApplyAuto:   true,
			}
		}
	}

	cands := e.gen.Generate(word, prev, next)
	if len(cands) == 0 {
		return types.NoAction()
	}
	e.metrics.CandidatesGenerated.Add(ctx, int64(len(cands)))
	words := make([]string, len(cands))
	for i, c := range cands {
		words[i] = c.Word
	}

	if isCommitBoundary && !e.intentional.Contains(word) {
		// A trusted pair beats the ranking: the user has already told us
		// three times which correction they want for this word.
		best := cands[0]
		trusted := e.accept.IsTrusted(word, best.Word)
		if !trusted {
			for _, c := range cands[1:] {
				if e.accept.IsTrusted(word, c.Word) {
					best, trusted = c, true
					break
				}
			}
		}
		typoHit := false
		if fix, ok := e.gen.FastTypoHit(word); ok {
			typoHit = fix == best.Word
		}
		slip := e.layout.IsTapSlip(word, best.Word)

		if (typoHit || slip || trusted) && e.gate.CanAutoApply(word, best.Word, trusted) {
			return types.Decision{
				Replacement: best.Word,
				Suggestions: words,
				ApplyAuto:   true,
			}
		}
	}

	return types.Decision{Suggestions: words}
}

// DecideLast runs Decide on the final whitespace-delimited token of text,
// using the preceding token as context. It serves per-keystroke callers
// that hold a raw buffer instead of pre-split words.
func (e *Engine) DecideLast(ctx context.Context, text string, isCommitBoundary bool) (word string, d types.Decision) {
	word = tokenize.LastToken(text)
	if word == "" {
		return "", types.NoAction()
	}
	var prev string
	if toks := tokenize.Tokenize(text); len(toks) >= 2 {
		last := toks[len(toks)-1]
		if last.Text == word {
			prev = toks[len(toks)-2].Text
		}
	}
	return word, e.Decide(ctx, word, prev, "", isCommitBoundary)
}

// RecordAccepted notes that the user accepted corrected in place of
// original. After enough acceptances the pair becomes trusted and may be
// applied silently past the usual single-edit ceiling.
func (e *Engine) RecordAccepted(ctx context.Context, original, corrected string) {
	e.accept.RecordAccepted(original, corrected)
	e.metrics.Acceptances.Add(ctx, 1)
}

// RecordRejectedAsIntentional notes that the user undid or dismissed a
// correction of word: auto-correction of that word is suppressed for the
// intentional-word TTL. Rejection never unlearns an acceptance count.
func (e *Engine) RecordRejectedAsIntentional(ctx context.Context, word string) {
	e.intentional.Mark(word)
	e.metrics.Rejections.Add(ctx, 1)
	e.logger.Debug("marked intentional", "word", word)
}

// LearnWord adds word to the user's learned set; it will never be flagged
// or corrected again.
func (e *Engine) LearnWord(ctx context.Context, word string) error {
	added, err := e.lex.Learn(word)
	if err != nil {
		return err
	}
	if added {
		e.metrics.LearnedWords.Add(ctx, 1)
	}
	return nil
}

// IgnoreWord adds word to the user's ignored set.
func (e *Engine) IgnoreWord(ctx context.Context, word string) error {
	return e.lex.Ignore(word)
}

// ForgetWord removes word from both user sets.
func (e *Engine) ForgetWord(ctx context.Context, word string) error {
	learned, _ := e.lex.Counts()
	if err := e.lex.Forget(word); err != nil {
		return err
	}
	if after, _ := e.lex.Counts(); after < learned {
		e.metrics.LearnedWords.Add(ctx, -1)
	}
	return nil
}

// Status reports the engine's resolved configuration and store sizes for
// host introspection.
type Status struct {
	Enabled         bool   `json:"enabled"`
	Language        string `json:"language"`
	LearnedWords    int    `json:"learned_words"`
	IgnoredWords    int    `json:"ignored_words"`
	AcceptancePairs int    `json:"acceptance_pairs"`
}

// Status returns a point-in-time snapshot of the engine's state.
func (e *Engine) Status() Status {
	learned, ignored := e.lex.Counts()
	return Status{
		Enabled:         e.enabled.Load(),
		Language:        e.gen.Language(),
		LearnedWords:    learned,
		IgnoredWords:    ignored,
		AcceptancePairs: e.accept.Len(),
	}
}

// Close flushes pending acceptance writes. The engine must not be used
// after Close.
func (e *Engine) Close() error {
	e.accept.Close()
	return nil
}
