// Package lexicon maintains the user-specific vocabulary: words the user has
// explicitly learned, words they have told the engine to ignore, and the
// host-managed colloquial allow-list.
//
// The learned and ignored sets are disjoint by construction and consulted
// before any other correction logic — a word in either set is never flagged
// as misspelled or auto-corrected. State is loaded once at startup and
// cached in memory for the process lifetime; explicit user actions (learn,
// ignore, forget) are rare, so they persist immediately rather than through
// the debounced path used for acceptance counts.
package lexicon

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/typecraft/emend/internal/store"
	"github.com/typecraft/emend/internal/strdist"
)

// Lexicon is the in-memory view of the user's vocabulary. All methods are
// safe for concurrent use; mutations are serialized by a single mutex.
type Lexicon struct {
	mu      sync.RWMutex
	kv      store.KV
	logger  *slog.Logger
	learned map[string]bool
	ignored map[string]bool

	// Colloquial allow-list cache, invalidated via the stored mtime.
	allow      map[string]bool
	allowMtime string
}

// Option configures a [Lexicon].
type Option func(*Lexicon)

// WithLogger sets the logger for persistence warnings. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(lx *Lexicon) {
		lx.logger = l
	}
}

// Load reads the learned/ignored sets from kv and returns a ready Lexicon.
// Missing keys are treated as empty sets (first run).
func Load(kv store.KV, opts ...Option) (*Lexicon, error) {
	lx := &Lexicon{
		kv:      kv,
		logger:  slog.Default(),
		learned: make(map[string]bool),
		ignored: make(map[string]bool),
		allow:   make(map[string]bool),
	}
	for _, o := range opts {
		o(lx)
	}

	var err error
	if lx.learned, err = loadSet(kv, store.KeyLearnedWords); err != nil {
		return nil, fmt.Errorf("lexicon: load learned words: %w", err)
	}
	if lx.ignored, err = loadSet(kv, store.KeyIgnoredWords); err != nil {
		return nil, fmt.Errorf("lexicon: load ignored words: %w", err)
	}
	lx.reloadAllowLocked()
	return lx, nil
}

func loadSet(kv store.KV, key string) (map[string]bool, error) {
	data, err := kv.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return make(map[string]bool), nil
	}
	if err != nil {
		return nil, err
	}
	return store.DecodeStringSet(data)
}

// IsKnown reports whether the lower-cased word is in either the learned or
// the ignored set. Known words are correct by user fiat.
func (lx *Lexicon) IsKnown(word string) bool {
	w := strings.ToLower(word)
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.learned[w] || lx.ignored[w]
}

// IsColloquial reports whether word is in the host-managed allow-list. The
// cached list is re-read from the store whenever the stored last-modified
// timestamp changes, so host updates become visible without a restart.
func (lx *Lexicon) IsColloquial(word string) bool {
	w := strings.ToLower(word)

	lx.mu.RLock()
	mtime := lx.allowMtime
	lx.mu.RUnlock()

	stored := lx.storedAllowMtime()
	if stored != mtime {
		lx.mu.Lock()
		lx.reloadAllowLocked()
		lx.mu.Unlock()
	}

	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.allow[w]
}

// Learn adds word to the learned set (removing it from ignored if present)
// and persists both sets. The boolean reports whether the learned set
// actually grew, so callers can keep gauges honest on repeat calls.
func (lx *Lexicon) Learn(word string) (bool, error) {
	w := strings.ToLower(word)
	if w == "" {
		return false, nil
	}
	lx.mu.Lock()
	defer lx.mu.Unlock()

	delete(lx.ignored, w)
	added := !lx.learned[w]
	lx.learned[w] = true
	return added, lx.persistLocked()
}

// Ignore adds word to the ignored set (removing it from learned if present)
// and persists both sets.
func (lx *Lexicon) Ignore(word string) error {
	w := strings.ToLower(word)
	if w == "" {
		return nil
	}
	lx.mu.Lock()
	defer lx.mu.Unlock()

	delete(lx.learned, w)
	lx.ignored[w] = true
	return lx.persistLocked()
}

// Forget removes word from both sets and persists.
func (lx *Lexicon) Forget(word string) error {
	w := strings.ToLower(word)
	lx.mu.Lock()
	defer lx.mu.Unlock()

	delete(lx.learned, w)
	delete(lx.ignored, w)
	return lx.persistLocked()
}

// LearnedNear returns the learned words within maxDist edits of the
// lower-cased word, for the candidate generator's user-dictionary scan.
func (lx *Lexicon) LearnedNear(word string, maxDist int) []string {
	w := strings.ToLower(word)
	lx.mu.RLock()
	defer lx.mu.RUnlock()

	var out []string
	for lw := range lx.learned {
		if lw == w {
			continue
		}
		if strdist.WithinDistance(w, lw, maxDist) {
			out = append(out, lw)
		}
	}
	return out
}

// Counts returns the sizes of the learned and ignored sets, for status
// introspection.
func (lx *Lexicon) Counts() (learned, ignored int) {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return len(lx.learned), len(lx.ignored)
}

// persistLocked writes both sets to the store. A write failure is logged and
// swallowed: the in-memory state stays authoritative and the next successful
// write reconciles.
func (lx *Lexicon) persistLocked() error {
	if err := lx.writeSet(store.KeyLearnedWords, lx.learned); err != nil {
		lx.logger.Warn("lexicon: persist learned words failed", "err", err)
		return nil
	}
	if err := lx.writeSet(store.KeyIgnoredWords, lx.ignored); err != nil {
		lx.logger.Warn("lexicon: persist ignored words failed", "err", err)
	}
	return nil
}

func (lx *Lexicon) writeSet(key string, set map[string]bool) error {
	data, err := store.EncodeStringSet(set)
	if err != nil {
		return err
	}
	return lx.kv.Set(key, data)
}

// storedAllowMtime reads the allow-list last-modified marker; absent means
// "never written", which an empty string also represents.
func (lx *Lexicon) storedAllowMtime() string {
	data, err := lx.kv.Get(store.KeyAllowListMtime)
	if err != nil {
		return ""
	}
	return string(data)
}

// reloadAllowLocked refreshes the allow-list cache from the store.
func (lx *Lexicon) reloadAllowLocked() {
	lx.allowMtime = lx.storedAllowMtime()
	set, err := loadSet(lx.kv, store.KeyAllowList)
	if err != nil {
		lx.logger.Warn("lexicon: reload allow-list failed", "err", err)
		return
	}
	lx.allow = set
}

// SetAllowList replaces the stored allow-list and bumps the last-modified
// marker. In production the host app writes these keys from its own process;
// this method exists for the demo binary and tests.
func (lx *Lexicon) SetAllowList(words []string) error {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	data, err := store.EncodeStringSet(set)
	if err != nil {
		return fmt.Errorf("lexicon: encode allow-list: %w", err)
	}

	lx.mu.Lock()
	defer lx.mu.Unlock()
	if err := lx.kv.Set(store.KeyAllowList, data); err != nil {
		return fmt.Errorf("lexicon: write allow-list: %w", err)
	}
	if err := lx.kv.Set(store.KeyAllowListMtime, []byte(time.Now().UTC().Format(time.RFC3339Nano))); err != nil {
		return fmt.Errorf("lexicon: write allow-list mtime: %w", err)
	}
	lx.allow = set
	lx.allowMtime = lx.storedAllowMtime()
	return nil
}
