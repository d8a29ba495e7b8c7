// Package storage defines the key/value contract used to persist saves and
// session markers.
package storage

import (
	"context"
	"errors"
	"maps"
	"sync"
)

var (
	// ErrNotFound indicates the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable indicates the backing store cannot be reached.
	ErrUnavailable = errors.New("storage: unavailable")
)

// Store persists string values by key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process Store. It backs session-scoped keys, which must
// not outlive the process.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Snapshot copies the current contents.
func (m *Memory) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data)
}

// Prefixed namespaces every key of an underlying store, giving each player
// of a shared store their own slots.
type Prefixed struct {
	Store  Store
	Prefix string
}

// WithPrefix returns s with every key written as prefix + "/" + key. An
// empty prefix returns s unchanged.
func WithPrefix(s Store, prefix string) Store {
	if prefix == "" {
		return s
	}
	return Prefixed{Store: s, Prefix: prefix + "/"}
}

func (p Prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.Store.Get(ctx, p.Prefix+key)
}

func (p Prefixed) Set(ctx context.Context, key, value string) error {
	return p.Store.Set(ctx, p.Prefix+key, value)
}

func (p Prefixed) Delete(ctx context.Context, key string) error {
	return p.Store.Delete(ctx, p.Prefix+key)
}
