package config

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher monitors a config file for changes and calls a callback when the
// file is modified. It uses polling (not fsnotify) to keep dependencies
// minimal; a keyboard host reloads settings rarely.
type Watcher struct {
	path     string
	interval time.Duration
	onChange func(old, new *Config)

	mu       sync.Mutex
	current  *Config
	done     chan struct{}
	stopOnce sync.Once

	// last known file state for change detection
	lastMtime time.Time
	lastHash  [sha256.Size]byte
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval. The default is 5 seconds.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// NewWatcher loads the config at path and returns a watcher that invokes
// onChange(old, new) whenever the file's content changes and still parses
// and validates. Invalid intermediate states (mid-save, syntax errors) are
// logged and skipped; the previous config stays active.
func NewWatcher(path string, onChange func(old, new *Config), opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		interval: 5 * time.Second,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	w.current = cfg

	mtime, hash, err := w.fileState()
	if err != nil {
		return nil, fmt.Errorf("config: stat %q: %w", path, err)
	}
	w.lastMtime = mtime
	w.lastHash = hash

	return w, nil
}

// Current returns the most recently loaded valid config.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Start begins polling in a background goroutine. Call [Watcher.Stop] to
// end it.
func (w *Watcher) Start() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				w.poll()
			}
		}
	}()
}

// Stop ends polling. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

// poll checks the file for changes and fires the callback when the content
// actually differs. The mtime check is a cheap pre-filter; the hash check
// avoids firing on touch-without-change.
func (w *Watcher) poll() {
	mtime, hash, err := w.fileState()
	if err != nil {
		slog.Warn("config watcher: cannot read file", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	unchanged := mtime.Equal(w.lastMtime) && hash == w.lastHash
	w.mu.Unlock()
	if unchanged {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("config watcher: reload failed, keeping previous config",
			"path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	old := w.current
	w.current = cfg
	w.lastMtime = mtime
	w.lastHash = hash
	w.mu.Unlock()

	slog.Info("config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(old, cfg)
	}
}

// fileState returns the file's mtime and content hash.
func (w *Watcher) fileState() (time.Time, [sha256.Size]byte, error) {
	var zero [sha256.Size]byte

	fi, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}, zero, err
	}

	f, err := os.Open(w.path)
	if err != nil {
		return time.Time{}, zero, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return time.Time{}, zero, err
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return fi.ModTime(), sum, nil
}
