package config

import (
	"maps"
	"slices"
)

// ConfigDiff describes what changed between two configs. Only fields that
// can be safely hot-reloaded are tracked; storage and dictionary changes
// require a restart and are reported as such.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	EnabledChanged bool
	NewEnabled     bool

	DenylistChanged bool
	BigramsChanged  bool

	// RestartRequired is set when storage, dictionary, language, or
	// tuning knobs that are baked in at construction time changed.
	RestartRequired bool
}

// Any reports whether the diff contains any change at all.
func (d ConfigDiff) Any() bool {
	return d.LogLevelChanged || d.EnabledChanged || d.DenylistChanged ||
		d.BigramsChanged || d.RestartRequired
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if old.Engine.EnabledOrDefault() != new.Engine.EnabledOrDefault() {
		d.EnabledChanged = true
		d.NewEnabled = new.Engine.EnabledOrDefault()
	}

	if !slices.Equal(old.Engine.DenylistExtra, new.Engine.DenylistExtra) {
		d.DenylistChanged = true
	}
	if !maps.Equal(old.Engine.BigramWeights, new.Engine.BigramWeights) {
		d.BigramsChanged = true
	}

	if old.Storage != new.Storage ||
		old.Engine.Language != new.Engine.Language ||
		old.Engine.FlushDelay != new.Engine.FlushDelay ||
		old.Engine.MaxPairs != new.Engine.MaxPairs ||
		old.Engine.IntentionalTTL != new.Engine.IntentionalTTL ||
		old.Dictionary.Source != new.Dictionary.Source ||
		old.Dictionary.WordList != new.Dictionary.WordList ||
		!slices.Equal(old.Dictionary.Languages, new.Dictionary.Languages) {
		d.RestartRequired = true
	}

	return d
}
