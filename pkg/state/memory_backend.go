package state

import (
	"context"
	"sync"
)

// MemoryBackend is a minimal in-memory Backend intended for tests and
// examples. It keeps the last saved Document and makes no persistence
// assumptions beyond the process lifetime.
type MemoryBackend struct {
	mu    sync.RWMutex
	doc   Document
	meta  Meta
	saved bool
	saves int
}

// NewMemoryBackend constructs a backend. When initial is non-nil it is
// reported by Load as if it had been saved earlier.
func NewMemoryBackend(initial Document) *MemoryBackend {
	b := &MemoryBackend{}
	if initial != nil {
		b.doc = initial.Clone()
		b.saved = true
	}
	return b
}

// Location implements Backend.
func (b *MemoryBackend) Location() string {
	return "memory"
}

// Load implements Backend.
func (b *MemoryBackend) Load(_ context.Context) (Document, Meta, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.saved {
		return nil, Meta{}, false, nil
	}
	return b.doc.Clone(), cloneMeta(b.meta), true, nil
}

// Save implements Backend.
func (b *MemoryBackend) Save(_ context.Context, doc Document, meta Meta) (Meta, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.doc = doc.Clone()
	b.meta = cloneMeta(meta)
	b.saved = true
	b.saves++
	return cloneMeta(meta), nil
}

// Snapshot returns the last saved document.
func (b *MemoryBackend) Snapshot() (Document, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.saved {
		return nil, false
	}
	return b.doc.Clone(), true
}

// Saves reports how many times Save has been called.
func (b *MemoryBackend) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}
