package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/yndnr/shopfront-go/internal/telemetry/logger"
)

// tokenKey is the badger key holding the session token.
var tokenKey = []byte("session/token")

// ErrClosed is returned by a Badger store after Close.
var ErrClosed = errors.New("tokenstore: store closed")

// Badger persists the session token in a badger database so that it
// survives across shopctl invocations.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the token database in dir.
func OpenBadger(dir string, log logger.Logger) (*Badger, error) {
	if dir == "" {
		return nil, fmt.Errorf("tokenstore: dir is required")
	}
	if log == nil {
		log = logger.Default()
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(&badgerLogger{logger: log.With("component", "tokenstore")}).
		WithSyncWrites(true).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("tokenstore: open db: %w", err)
	}
	return &Badger{db: db}, nil
}

// Get returns the stored token, or "" when none is stored.
func (b *Badger) Get(_ context.Context) (string, error) {
	if b.db.IsClosed() {
		return "", ErrClosed
	}

	var token string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("tokenstore: read token: %w", err)
	}
	return token, nil
}

// Set stores token, replacing any previous value. An empty token clears.
func (b *Badger) Set(ctx context.Context, token string) error {
	if token == "" {
		return b.Clear(ctx)
	}
	if b.db.IsClosed() {
		return ErrClosed
	}
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey, []byte(token))
	}); err != nil {
		return fmt.Errorf("tokenstore: write token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is a no-op.
func (b *Badger) Clear(_ context.Context) error {
	if b.db.IsClosed() {
		return ErrClosed
	}
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(tokenKey)
	}); err != nil {
		return fmt.Errorf("tokenstore: clear token: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// badgerLogger adapts logger.Logger to badger's Logger interface.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
