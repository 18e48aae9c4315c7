package store

import (
	"errors"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"
)

// Compile-time assertion that BadgerKV satisfies the KV interface.
var _ KV = (*BadgerKV)(nil)

// BadgerKV is an embedded on-device [KV] backed by BadgerDB. A keyboard
// extension has no server to talk to, so durable state lives in a local
// database under the host app's data directory.
type BadgerKV struct {
	db *badger.DB
}

// BadgerConfig holds the options the engine cares about; everything else
// stays at Badger defaults.
type BadgerConfig struct {
	// Path is the directory for the database files. Ignored when InMemory
	// is true.
	Path string

	// InMemory disables disk persistence. Useful for tests.
	InMemory bool

	// SyncWrites forces an fsync per write. The engine's writes are already
	// debounced snapshots, so this defaults to false.
	SyncWrites bool

	// Logger receives Badger's internal log output. When nil, Badger's
	// logging is disabled.
	Logger *slog.Logger
}

// OpenBadger opens (creating if necessary) a Badger-backed KV store.
func OpenBadger(cfg BadgerConfig) (*BadgerKV, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1)
	if cfg.Logger == nil {
		opts = opts.WithLogger(nil)
	} else {
		opts = opts.WithLogger(badgerLogger{cfg.Logger})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger at %q: %w", cfg.Path, err)
	}
	return &BadgerKV{db: db}, nil
}

// Get implements [KV.Get].
func (b *BadgerKV) Get(key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: badger get %q: %w", key, err)
	}
	return out, nil
}

// Set implements [KV.Set].
func (b *BadgerKV) Set(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("store: badger set %q: %w", key, err)
	}
	return nil
}

// Delete implements [KV.Delete].
func (b *BadgerKV) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("store: badger delete %q: %w", key, err)
	}
	return nil
}

// Close implements [KV.Close].
func (b *BadgerKV) Close() error {
	return b.db.Close()
}

// badgerLogger adapts slog to Badger's logger interface.
type badgerLogger struct {
	l *slog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error(fmt.Sprintf(format, args...))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn(fmt.Sprintf(format, args...))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Info(fmt.Sprintf(format, args...))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug(fmt.Sprintf(format, args...))
}
