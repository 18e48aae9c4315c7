package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/typecraft/emend/internal/dictionary"
	"github.com/typecraft/emend/internal/store"
)

// probeKey is read by [StoreChecker]. It is never written; a healthy store
// answers with [store.ErrNotFound], an unhealthy one with anything else.
const probeKey = "health/probe"

// StoreChecker returns a [Checker] that verifies the persistence backend
// answers reads.
func StoreChecker(kv store.KV) Checker {
	return Checker{
		Name: "store",
		Check: func(ctx context.Context) error {
			_, err := kv.Get(probeKey)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("probe read: %w", err)
			}
			return nil
		},
	}
}

// DictionaryChecker returns a [Checker] that verifies the resolver still
// serves the configured language.
func DictionaryChecker(resolver dictionary.LanguageResolver, language string) Checker {
	return Checker{
		Name: "dictionary",
		Check: func(ctx context.Context) error {
			if got := resolver.Resolve(language); got == "" {
				return fmt.Errorf("language %q resolves to nothing", language)
			}
			return nil
		},
	}
}
