package collection

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/logging"
)

// Value is a single persisted value (settings, goals, budgets) with the same
// load-then-mutate lifecycle as Store.
type Value[T any] struct {
	mu    sync.RWMutex
	v     T
	state State

	backend Backend
	key     string
	def     func() T
	log     logging.Logger
}

// NewValue binds a value to key; def supplies the value used when nothing
// valid is stored. Only WithLogger is honoured among the options.
func NewValue[T any](backend Backend, key string, def func() T, opts ...Option) *Value[T] {
	o := buildOptions(opts)
	return &Value[T]{
		backend: backend,
		key:     key,
		def:     def,
		log:     o.log.With("key", key),
	}
}

func (v *Value[T]) Key() string { return v.key }

func (v *Value[T]) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *Value[T]) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Ready {
		return nil
	}

	v.v = v.def()
	if raw, ok := v.backend.GetRaw(ctx, v.key); ok {
		var stored T
		if err := json.Unmarshal(raw, &stored); err != nil {
			v.log.Error(ctx, "stored value unreadable, using default", "err", err)
		} else {
			v.v = stored
		}
	}
	v.state = Ready
	return nil
}

// Reload forgets the in-memory value and loads it again.
func (v *Value[T]) Reload(ctx context.Context) error {
	v.mu.Lock()
	v.state = Uninitialized
	v.mu.Unlock()
	return v.Load(ctx)
}

// Get returns the current value, or the default before Load.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state != Ready {
		return v.def()
	}
	return v.v
}

// Set replaces the value and persists it.
func (v *Value[T]) Set(ctx context.Context, val T) error {
	return v.Update(ctx, func(cur *T) { *cur = val })
}

// Update applies fn to a copy of the value, keeps the result and persists it.
func (v *Value[T]) Update(ctx context.Context, fn func(*T)) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != Ready {
		return common.ErrNotReady
	}

	v.v = v.detached(ctx)
	fn(&v.v)

	raw, err := json.Marshal(v.v)
	if err != nil {
		v.log.Error(ctx, "error encoding value", "err", err)
		return nil
	}
	if err := v.backend.SetRaw(ctx, v.key, raw); err != nil {
		v.log.Error(ctx, "error saving value", "err", err)
	}
	return nil
}

// detached returns a deep copy of the held value so fn cannot write through
// slices or maps already returned by Get. It falls back to the held value
// when the copy fails.
func (v *Value[T]) detached(ctx context.Context) T {
	raw, err := json.Marshal(v.v)
	if err != nil {
		v.log.Error(ctx, "error copying value", "err", err)
		return v.v
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		v.log.Error(ctx, "error copying value", "err", err)
		return v.v
	}
	return out
}
