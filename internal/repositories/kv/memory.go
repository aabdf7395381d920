package kv

import (
	"context"
	"errors"
	"maps"
	"sync"
)

// ErrInjected is returned by a MemoryRepository whose FailWrites is set.
var ErrInjected = errors.New("kv: injected write failure")

// MemoryRepository keeps everything in a map. It backs ":memory:" style runs
// and tests; FailWrites makes every mutating call fail so callers can
// exercise their error paths.
type MemoryRepository struct {
	mu         sync.RWMutex
	data       map[string]string
	FailWrites bool
	FailKeys   map[string]bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]string)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *MemoryRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites || r.FailKeys[key] {
		return ErrInjected
	}
	r.data[key] = value
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return ErrInjected
	}
	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.data), nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return ErrInjected
	}
	r.data = make(map[string]string)
	return nil
}

func (r *MemoryRepository) Replace(_ context.Context, pairs map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return ErrInjected
	}
	for k := range pairs {
		if r.FailKeys[k] {
			return ErrInjected
		}
	}
	r.data = maps.Clone(pairs)
	if r.data == nil {
		r.data = make(map[string]string)
	}
	return nil
}
