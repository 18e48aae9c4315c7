package learn

import (
	"strings"
	"sync"
	"time"
)

// DefaultIntentionalTTL is how long a rejected correction suppresses further
// auto-correction of that word.
const DefaultIntentionalTTL = 10 * time.Minute

// IntentionalWords is the set of words the user has explicitly defended by
// undoing or rejecting a correction. Each entry expires after a TTL: the
// user fighting the corrector right now is a strong signal, the same fight
// last week is not.
//
// Acceptance of a correction must never add a word here — accepting "the"
// for "teh" says nothing about wanting to keep "teh".
//
// All methods are safe for concurrent use. Entries are evicted lazily on
// access; the set stays small because it only holds recent rejections.
type IntentionalWords struct {
	mu      sync.Mutex
	ttl     time.Duration
	expires map[string]time.Time
	now     func() time.Time
}

// NewIntentionalWords returns an empty set with the given TTL (<= 0 uses
// [DefaultIntentionalTTL]).
func NewIntentionalWords(ttl time.Duration) *IntentionalWords {
	if ttl <= 0 {
		ttl = DefaultIntentionalTTL
	}
	return &IntentionalWords{
		ttl:     ttl,
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Mark records word as intentional, starting (or restarting) its TTL.
func (iw *IntentionalWords) Mark(word string) {
	w := strings.ToLower(word)
	iw.mu.Lock()
	defer iw.mu.Unlock()
	iw.expires[w] = iw.now().Add(iw.ttl)
}

// Contains reports whether word is currently marked intentional. Expired
// entries are removed as a side effect.
func (iw *IntentionalWords) Contains(word string) bool {
	w := strings.ToLower(word)
	iw.mu.Lock()
	defer iw.mu.Unlock()

	deadline, ok := iw.expires[w]
	if !ok {
		return false
	}
	if iw.now().After(deadline) {
		delete(iw.expires, w)
		return false
	}
	return true
}

// SetClock replaces the time source, for tests.
func (iw *IntentionalWords) SetClock(now func() time.Time) {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	iw.now = now
}
