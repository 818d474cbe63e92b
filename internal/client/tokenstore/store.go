// Package tokenstore holds the current session credential for the API client.
//
// The API client reads the token on every request and clears it when the
// backend answers 401. Login writes it. Implementations must be safe for
// concurrent use.
package tokenstore

import (
	"context"
	"sync"
)

// Store is the session token accessor injected into the API client.
// Get returns an empty string and a nil error when no token is stored.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Memory is an in-process Store.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory creates a Memory store seeded with token (may be empty).
func NewMemory(token string) *Memory {
	return &Memory{token: token}
}

// Get returns the current token.
func (m *Memory) Get(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

// Set replaces the current token.
func (m *Memory) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear removes the current token.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
