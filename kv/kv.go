// Package kv provides the key/value backends the project store persists into:
// a directory of files, an embedded SQLite database, a Redis server, and
// memory for tests and throw-away sessions.
//
// Every backend has the same two methods:
//
//	Get(ctx, key) (value, ok, err)
//	Set(ctx, key, value) error
//
// where a missing key is reported with ok == false, not as an error.
package kv

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Memory is an in-memory backend. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory returns an empty Memory backend.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return slices.Clone(v), ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = slices.Clone(value)
	return nil
}

// Keys returns the stored keys, sorted.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.values))
}
