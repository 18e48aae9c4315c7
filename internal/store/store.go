// Package store defines the key-value persistence capability the engine's
// stateful components (user lexicon, acceptance counts, allow-list) are
// built on, together with its two adapters: an in-memory map and an
// embedded BadgerDB database.
//
// Persisted values are opaque byte slices; callers encode their own state
// (in practice JSON — see [EncodeStringSet] and friends). The exact encoding
// is an implementation detail as long as round-trip fidelity holds.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by [KV.Get] when the key has never been set.
var ErrNotFound = errors.New("store: key not found")

// KV is the minimal key-value contract the engine needs. Implementations
// must be safe for concurrent use.
type KV interface {
	// Get returns the value stored under key, or [ErrNotFound].
	Get(key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close flushes and releases underlying resources.
	Close() error
}

// Keys under which the engine persists its state.
const (
	KeyLearnedWords   = "lexicon/learned"
	KeyIgnoredWords   = "lexicon/ignored"
	KeyAllowList      = "lexicon/allowlist"
	KeyAllowListMtime = "lexicon/allowlist_mtime"
	KeyAcceptance     = "learn/acceptance"
)

// EncodeStringSet serialises a word set as a sorted JSON array. Sorting
// keeps the encoding deterministic, which makes change detection and tests
// straightforward.
func EncodeStringSet(set map[string]bool) ([]byte, error) {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return json.Marshal(words)
}

// DecodeStringSet parses a JSON array of words into a set.
func DecodeStringSet(data []byte) (map[string]bool, error) {
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("store: decode string set: %w", err)
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set, nil
}

// EncodeCounts serialises a string→int count map as a JSON object.
func EncodeCounts(counts map[string]int) ([]byte, error) {
	return json.Marshal(counts)
}

// DecodeCounts parses a JSON object of counts.
func DecodeCounts(data []byte) (map[string]int, error) {
	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("store: decode counts: %w", err)
	}
	return counts, nil
}
