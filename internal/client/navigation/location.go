// Package navigation models the client's current page location.
//
// A terminal client has no browser address bar; the interactive shell keeps
// a History instead, and the API client assigns to it when a request comes
// back 401.
package navigation

import (
	"strings"
	"sync"
)

// Location is the current page location with a one-way navigation effect.
type Location interface {
	// Path returns the current page path, e.g. "/cart".
	Path() string
	// Assign navigates to path.
	Assign(path string)
}

// HomePath is where a fresh History starts.
const HomePath = "/"

// History is a goroutine-safe Location that remembers where it has been.
type History struct {
	mu      sync.RWMutex
	entries []string
	maxSize int
}

// NewHistory creates a History positioned at start ("/" when empty).
func NewHistory(start string) *History {
	return &History{
		entries: []string{Normalize(start)},
		maxSize: 100,
	}
}

// Path returns the current path.
func (h *History) Path() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[len(h.entries)-1]
}

// Assign pushes path as the new current location.
func (h *History) Assign(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Normalize(path))
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// Back returns to the previous location. It reports false when there is
// nowhere to go back to.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) < 2 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

// Entries returns a copy of the visited paths, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Normalize makes p an absolute path without a trailing slash.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return HomePath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = HomePath
		}
	}
	return p
}
