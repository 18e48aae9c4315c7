// Package learn implements the engine's adaptive state: acceptance counts
// for (misspelling → correction) pairs and the short-lived set of words the
// user has marked as intentional.
//
// Acceptance counts are buffered in memory and flushed to the persistence
// capability on a debounce timer — every mutation cancels and reschedules
// the timer, so a burst of typing causes one write, not many. A flush also
// runs on [AcceptanceStore.Close] as a best-effort teardown hook.
//
// Pair cardinality is bounded with an LRU: the engine has no decay
// mechanism, so without a cap a long-lived profile would grow without
// limit. Evicting the least recently confirmed pair loses at most one
// trusted shortcut, which the user simply re-earns.
package learn

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/typecraft/emend/internal/observe"
	"github.com/typecraft/emend/internal/store"
)

const (
	// TrustThreshold is the acceptance count at which a pair is promoted to
	// trusted, bypassing the single-edit ceiling for silent correction.
	TrustThreshold = 3

	// DefaultFlushDelay is the quiescence period before buffered counts are
	// written to the store.
	DefaultFlushDelay = 2 * time.Second

	// DefaultMaxPairs bounds the number of tracked pairs.
	DefaultMaxPairs = 4096
)

// AcceptanceStore tracks how often the user has accepted each correction
// pair. All methods are safe for concurrent use.
type AcceptanceStore struct {
	mu      sync.Mutex
	counts  *lru.Cache[string, int]
	kv      store.KV
	logger  *slog.Logger
	metrics *observe.Metrics

	flushDelay time.Duration
	timer      *time.Timer
	dirty      bool
	closed     bool
}

// AcceptanceOption configures an [AcceptanceStore].
type AcceptanceOption func(*acceptanceSettings)

type acceptanceSettings struct {
	flushDelay time.Duration
	maxPairs   int
	logger     *slog.Logger
	metrics    *observe.Metrics
}

// WithFlushDelay overrides the debounce period. Values <= 0 keep the default.
func WithFlushDelay(d time.Duration) AcceptanceOption {
	return func(s *acceptanceSettings) {
		if d > 0 {
			s.flushDelay = d
		}
	}
}

// WithMaxPairs overrides the pair-cardinality bound. Values <= 0 keep the
// default.
func WithMaxPairs(n int) AcceptanceOption {
	return func(s *acceptanceSettings) {
		if n > 0 {
			s.maxPairs = n
		}
	}
}

// WithLogger sets the logger for flush warnings. Default: slog.Default().
func WithLogger(l *slog.Logger) AcceptanceOption {
	return func(s *acceptanceSettings) {
		s.logger = l
	}
}

// WithMetrics sets the instruments that flush failures are counted on.
// Default: [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) AcceptanceOption {
	return func(s *acceptanceSettings) {
		if m != nil {
			s.metrics = m
		}
	}
}

// LoadAcceptance reads persisted counts from kv and returns a ready store.
// A missing key means a fresh profile.
func LoadAcceptance(kv store.KV, opts ...AcceptanceOption) (*AcceptanceStore, error) {
	settings := &acceptanceSettings{
		flushDelay: DefaultFlushDelay,
		maxPairs:   DefaultMaxPairs,
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(settings)
	}
	if settings.metrics == nil {
		settings.metrics = observe.DefaultMetrics()
	}

	cache, err := lru.New[string, int](settings.maxPairs)
	if err != nil {
		return nil, err
	}

	s := &AcceptanceStore{
		counts:     cache,
		kv:         kv,
		logger:     settings.logger,
		metrics:    settings.metrics,
		flushDelay: settings.flushDelay,
	}

	data, err := kv.Get(store.KeyAcceptance)
	if errors.Is(err, store.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		// Unreadable state degrades to a fresh profile rather than failing:
		// losing trust shortcuts is preferable to losing autocorrect.
		s.logger.Warn("learn: load acceptance counts failed", "err", err)
		return s, nil
	}
	counts, err := store.DecodeCounts(data)
	if err != nil {
		s.logger.Warn("learn: decode acceptance counts failed", "err", err)
		return s, nil
	}
	for k, v := range counts {
		cache.Add(k, v)
	}
	return s, nil
}

// pairKey builds the stored key for an ordered pair, lower-cased.
func pairKey(original, corrected string) string {
	return strings.ToLower(original) + "->" + strings.ToLower(corrected)
}

// RecordAccepted increments the count for the ordered pair and schedules a
// debounced flush.
func (s *AcceptanceStore) RecordAccepted(original, corrected string) {
	key := pairKey(original, corrected)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	n, _ := s.counts.Get(key)
	s.counts.Add(key, n+1)
	s.dirty = true
	s.scheduleFlushLocked()
}

// Count returns the current acceptance count for the pair.
func (s *AcceptanceStore) Count(original, corrected string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, _ := s.counts.Get(pairKey(original, corrected))
	return n
}

// IsTrusted reports whether the pair has crossed [TrustThreshold]. Trust
// only increases through explicit acceptance; there is no decay.
func (s *AcceptanceStore) IsTrusted(original, corrected string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, _ := s.counts.Get(pairKey(original, corrected))
	return n >= TrustThreshold
}

// Len returns the number of tracked pairs, for status introspection.
func (s *AcceptanceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts.Len()
}

// Reset clears all counts, in memory and in the store.
func (s *AcceptanceStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts.Purge()
	s.dirty = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return s.kv.Delete(store.KeyAcceptance)
}

// Flush writes a snapshot of the buffered counts immediately, cancelling any
// pending debounce timer. Write failures are logged; in-memory state remains
// authoritative and a later flush reconciles.
func (s *AcceptanceStore) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	snapshot := s.snapshotLocked()
	s.dirty = false
	s.mu.Unlock()

	s.write(snapshot)
}

// Close flushes pending state and stops the store. Further mutations are
// ignored. Best-effort: host extension lifecycles may kill the process
// before teardown hooks run, which the debounced flush already mitigates.
func (s *AcceptanceStore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	snapshot := s.snapshotLocked()
	s.dirty = false
	s.mu.Unlock()

	if dirty {
		s.write(snapshot)
	}
}

// scheduleFlushLocked implements the debounce: cancel and reschedule on
// every mutation, so the write happens flushDelay after the LAST update.
func (s *AcceptanceStore) scheduleFlushLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.flushDelay, func() {
		s.mu.Lock()
		if s.closed || !s.dirty {
			s.mu.Unlock()
			return
		}
		snapshot := s.snapshotLocked()
		s.dirty = false
		s.timer = nil
		s.mu.Unlock()

		s.write(snapshot)
	})
}

// snapshotLocked copies the counts so the write can run off-lock.
func (s *AcceptanceStore) snapshotLocked() map[string]int {
	out := make(map[string]int, s.counts.Len())
	for _, k := range s.counts.Keys() {
		if v, ok := s.counts.Peek(k); ok {
			out[k] = v
		}
	}
	return out
}

// write runs off the caller's goroutine stack (flush timer or teardown), so
// it starts its own root span instead of inheriting a request context.
func (s *AcceptanceStore) write(snapshot map[string]int) {
	ctx, span := observe.StartSpan(context.Background(), "learn.flush")
	defer span.End()
	span.SetAttributes(attribute.Int("pairs", len(snapshot)))

	data, err := store.EncodeCounts(snapshot)
	if err != nil {
		s.logger.Warn("learn: encode acceptance counts failed", "err", err)
		s.metrics.RecordFlushError(ctx, "acceptance")
		return
	}
	if err := s.kv.Set(store.KeyAcceptance, data); err != nil {
		s.logger.Warn("learn: flush acceptance counts failed", "err", err)
		s.metrics.RecordFlushError(ctx, "acceptance")
	}
}
