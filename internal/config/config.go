// Package config provides the configuration schema, loader, file watcher,
// and backend registry for the Emend correction engine.
package config

import "time"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Backend selects the key-value store implementation behind the lexicon
// and acceptance persistence.
type Backend string

const (
	// BackendMemory keeps all state in process memory. State is lost on
	// exit; useful for tests and ephemeral hosts.
	BackendMemory Backend = "memory"

	// BackendBadger persists state to an embedded Badger database.
	BackendBadger Backend = "badger"
)

// IsValid reports whether b is a recognised storage backend.
func (b Backend) IsValid() bool {
	return b == BackendMemory || b == BackendBadger
}

// Config is the root configuration structure for Emend.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Engine     EngineConfig     `yaml:"engine"`
	Storage    StorageConfig    `yaml:"storage"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
}

// ServerConfig holds settings for the introspection HTTP server and logging.
type ServerConfig struct {
	// ListenAddr is the TCP address the /metrics and /healthz endpoints
	// listen on (e.g., ":8080"). Empty disables the HTTP server.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// EngineConfig tunes the correction decision engine.
type EngineConfig struct {
	// Language is the preferred BCP-47 language tag (e.g., "en-US").
	// Resolved against the configured dictionary; unavailable tags fall
	// back to the dictionary's default.
	Language string `yaml:"language"`

	// Enabled toggles all correction behaviour at startup. Defaults to
	// true when the field is omitted; use `enabled: false` to start the
	// engine passive.
	Enabled *bool `yaml:"enabled"`

	// FlushDelay is the quiescence period before buffered acceptance
	// counts are written out. Zero keeps the built-in default (2s).
	FlushDelay time.Duration `yaml:"flush_delay"`

	// MaxPairs caps how many acceptance pairs are tracked before the
	// least recently used are evicted. Zero keeps the built-in default.
	MaxPairs int `yaml:"max_pairs"`

	// IntentionalTTL is how long a rejected correction suppresses
	// further auto-correction of that word. Zero keeps the built-in
	// default (10m).
	IntentionalTTL time.Duration `yaml:"intentional_ttl"`

	// DenylistExtra adds words to the built-in risky-word denylist.
	DenylistExtra []string `yaml:"denylist_extra"`

	// BigramWeights merges extra "left right" → weight entries into the
	// built-in context table.
	BigramWeights map[string]int `yaml:"bigram_weights"`
}

// EnabledOrDefault resolves the optional Enabled field.
func (e EngineConfig) EnabledOrDefault() bool {
	if e.Enabled == nil {
		return true
	}
	return *e.Enabled
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Backend selects the registered store implementation.
	Backend Backend `yaml:"backend"`

	// Path is the on-disk directory for file-backed backends. Required
	// for "badger", ignored for "memory".
	Path string `yaml:"path"`

	// SyncWrites forces every write to be fsynced. Slower, but survives
	// power loss. Only meaningful for file-backed backends.
	SyncWrites bool `yaml:"sync_writes"`
}

// DictionaryConfig selects the word-lookup source.
type DictionaryConfig struct {
	// Source selects the registered dictionary implementation. Empty
	// selects the embedded English word list.
	Source string `yaml:"source"`

	// WordList is a path to an external "word count" frequency file,
	// used when Source is "wordlist-file".
	WordList string `yaml:"word_list"`

	// Languages lists the language tags the host claims dictionaries
	// for. The first entry is the fallback.
	Languages []string `yaml:"languages"`
}
