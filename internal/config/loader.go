package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidSourceNames lists known implementation names per concern. Used by
// [Validate] to warn about unrecognised names, which are usually typos.
var ValidSourceNames = map[string][]string{
	"storage":    {"memory", "badger"},
	"dictionary": {"wordlist", "wordlist-file"},
}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Unknown fields are rejected. Useful in tests where configs are
// constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Storage.Backend != "" && !cfg.Storage.Backend.IsValid() {
		errs = append(errs, fmt.Errorf("storage.backend %q is invalid; valid values: memory, badger", cfg.Storage.Backend))
	}
	if cfg.Storage.Backend == BackendBadger && cfg.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is required when storage.backend is badger"))
	}
	if cfg.Storage.Backend == BackendMemory && cfg.Storage.Path != "" {
		slog.Warn("storage.path is ignored for the memory backend", "path", cfg.Storage.Path)
	}

	if cfg.Engine.FlushDelay < 0 {
		errs = append(errs, fmt.Errorf("engine.flush_delay %v must not be negative", cfg.Engine.FlushDelay))
	}
	if cfg.Engine.MaxPairs < 0 {
		errs = append(errs, fmt.Errorf("engine.max_pairs %d must not be negative", cfg.Engine.MaxPairs))
	}
	if cfg.Engine.IntentionalTTL < 0 {
		errs = append(errs, fmt.Errorf("engine.intentional_ttl %v must not be negative", cfg.Engine.IntentionalTTL))
	}
	for k := range cfg.Engine.BigramWeights {
		if !validBigramKey(k) {
			errs = append(errs, fmt.Errorf("engine.bigram_weights key %q must be exactly two space-separated words", k))
		}
	}

	validateSourceName("storage", string(cfg.Storage.Backend))
	validateSourceName("dictionary", cfg.Dictionary.Source)
	if cfg.Dictionary.Source == "wordlist-file" && cfg.Dictionary.WordList == "" {
		errs = append(errs, errors.New("dictionary.word_list is required when dictionary.source is wordlist-file"))
	}
	if cfg.Dictionary.Source != "wordlist-file" && cfg.Dictionary.WordList != "" {
		slog.Warn("dictionary.word_list is ignored unless dictionary.source is wordlist-file",
			"source", cfg.Dictionary.Source,
		)
	}

	if cfg.Engine.Language == "" && len(cfg.Dictionary.Languages) > 0 {
		slog.Warn("engine.language is empty; falling back to the first configured dictionary language",
			"language", cfg.Dictionary.Languages[0],
		)
	}

	return errors.Join(errs...)
}

// validBigramKey reports whether k is "left right": two non-empty words
// separated by a single space.
func validBigramKey(k string) bool {
	seen := 0
	last := -1
	for i, r := range k {
		if r == ' ' {
			if i == 0 || i == last+1 || i == len(k)-1 {
				return false
			}
			seen++
			last = i
		}
	}
	return seen == 1
}

// validateSourceName logs a warning if name is non-empty and not found in
// the [ValidSourceNames] list for the given kind.
func validateSourceName(kind, name string) {
	if name == "" {
		return
	}
	known, ok := ValidSourceNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown implementation name — may be a typo or third-party registration",
		"kind", kind,
		"name", name,
		"known", known,
	)
}
