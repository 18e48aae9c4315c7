package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/typecraft/emend/internal/dictionary"
	"github.com/typecraft/emend/internal/store"
)

// ErrNotRegistered is returned by Create* methods when no factory has been
// registered under the requested name.
var ErrNotRegistered = errors.New("config: implementation not registered")

// StoreFactory builds a key-value store from its configuration block.
type StoreFactory func(StorageConfig) (store.KV, error)

// DictionaryFactory builds a dictionary checker from its configuration
// block. The returned checker may also implement
// [dictionary.LanguageResolver]; when it does not, callers fall back to a
// static resolver over DictionaryConfig.Languages.
type DictionaryFactory func(DictionaryConfig) (dictionary.Checker, error)

// Registry maps implementation names to their constructor functions. It is
// safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	stores map[string]StoreFactory
	dicts  map[string]DictionaryFactory
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[string]StoreFactory),
		dicts:  make(map[string]DictionaryFactory),
	}
}

// RegisterStore registers a storage backend under name, replacing any
// previous registration.
func (r *Registry) RegisterStore(name string, f StoreFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[name] = f
}

// RegisterDictionary registers a dictionary source under name, replacing
// any previous registration.
func (r *Registry) RegisterDictionary(name string, f DictionaryFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dicts[name] = f
}

// CreateStore builds the storage backend selected by cfg.Backend.
func (r *Registry) CreateStore(cfg StorageConfig) (store.KV, error) {
	name := string(cfg.Backend)
	if name == "" {
		name = string(BackendMemory)
	}
	r.mu.RLock()
	f, ok := r.stores[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: storage backend %q", ErrNotRegistered, name)
	}
	return f(cfg)
}

// CreateDictionary builds the dictionary source selected by cfg.Source.
func (r *Registry) CreateDictionary(cfg DictionaryConfig) (dictionary.Checker, error) {
	name := cfg.Source
	if name == "" {
		name = "wordlist"
	}
	r.mu.RLock()
	f, ok := r.dicts[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: dictionary source %q", ErrNotRegistered, name)
	}
	return f(cfg)
}

// DefaultRegistry returns a registry with the built-in implementations
// registered: the memory and badger stores, and the embedded and
// file-backed word lists.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterStore(string(BackendMemory), func(StorageConfig) (store.KV, error) {
		return store.NewMemKV(), nil
	})
	r.RegisterStore(string(BackendBadger), func(cfg StorageConfig) (store.KV, error) {
		return store.OpenBadger(store.BadgerConfig{
			Path:       cfg.Path,
			SyncWrites: cfg.SyncWrites,
		})
	})
	r.RegisterDictionary("wordlist", func(DictionaryConfig) (dictionary.Checker, error) {
		return dictionary.NewWordList()
	})
	r.RegisterDictionary("wordlist-file", func(cfg DictionaryConfig) (dictionary.Checker, error) {
		lang := "en"
		if len(cfg.Languages) > 0 {
			lang = cfg.Languages[0]
		}
		return dictionary.NewWordListFromFile(cfg.WordList, lang)
	})
	return r
}
