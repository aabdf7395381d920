// Package collection implements the generic persisted collection that every
// domain service is built on, plus a single-value variant for settings.
//
// A Store holds one ordered slice of entities under one storage key. It must
// be loaded once before it accepts mutations; after that every successful
// Create, Update, Delete or Toggle rewrites the whole collection through the
// storage manager before returning. Persistence failures are logged by the
// manager and never undo the in-memory change.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/logging"
)

// Backend is the part of storage.Manager a store needs.
type Backend interface {
	GetRaw(ctx context.Context, key string) (json.RawMessage, bool)
	SetRaw(ctx context.Context, key string, data json.RawMessage) error
}

type Store[T any, P Entity[T]] struct {
	mu    sync.RWMutex
	items []T
	state State

	backend  Backend
	key      string
	clock    clockwork.Clock
	newID    func() string
	codec    codec.Codec[T]
	defaults func() []T
	log      logging.Logger
}

// New binds a store to key. It panics if WithCodec or WithDefaults was given
// a different element type, which is a programming error.
func New[T any, P Entity[T]](backend Backend, key string, opts ...Option) *Store[T, P] {
	o := buildOptions(opts)

	s := &Store[T, P]{
		backend: backend,
		key:     key,
		clock:   o.clock,
		newID:   o.newID,
		codec:   codec.JSONCodec[T]{},
		log:     o.log.With("key", key),
	}
	if o.codec != nil {
		c, ok := o.codec.(codec.Codec[T])
		if !ok {
			panic(fmt.Sprintf("collection %s: codec type %T does not match element type", key, o.codec))
		}
		s.codec = c
	}
	if o.defaults != nil {
		d, ok := o.defaults.(func() []T)
		if !ok {
			panic(fmt.Sprintf("collection %s: defaults type %T does not match element type", key, o.defaults))
		}
		s.defaults = d
	}
	return s
}

func (s *Store[T, P]) Key() string { return s.key }

func (s *Store[T, P]) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether the initial load is still in progress or has not
// started.
func (s *Store[T, P]) Loading() bool { return s.State() != Ready }

// Load reads the stored collection once. A missing or undecodable value
// yields the defaults (or an empty collection). Calls after the first are
// no-ops.
func (s *Store[T, P]) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state != Uninitialized {
		s.mu.Unlock()
		return nil
	}
	s.state = Loading
	s.mu.Unlock()

	items := s.read(ctx)

	s.mu.Lock()
	s.items = items
	s.state = Ready
	s.mu.Unlock()

	s.log.Debug(ctx, "collection loaded", "items", len(items))
	return nil
}

// Reload discards the in-memory collection and loads it again, for use after
// the underlying storage was replaced (import, restore).
func (s *Store[T, P]) Reload(ctx context.Context) error {
	s.mu.Lock()
	if s.state == Loading {
		s.mu.Unlock()
		return nil
	}
	s.state = Uninitialized
	s.items = nil
	s.mu.Unlock()
	return s.Load(ctx)
}

func (s *Store[T, P]) read(ctx context.Context) []T {
	raw, ok := s.backend.GetRaw(ctx, s.key)
	if ok {
		items, err := s.codec.Decode(raw)
		if err == nil {
			return items
		}
		s.log.Error(ctx, "stored collection unreadable, using defaults", "err", err)
	}
	if s.defaults != nil {
		return s.defaults()
	}
	return []T{}
}

// persist writes the full collection. Callers hold s.mu.
func (s *Store[T, P]) persist(ctx context.Context) {
	raw, err := s.codec.Encode(s.items)
	if err != nil {
		s.log.Error(ctx, "error encoding collection", "err", err)
		return
	}
	if err := s.backend.SetRaw(ctx, s.key, raw); err != nil {
		s.log.Error(ctx, "error saving collection", "err", err)
	}
}

func (s *Store[T, P]) now() codec.Timestamp {
	return codec.NewTimestamp(s.clock.Now())
}

func (s *Store[T, P]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(v T) bool { return P(&v).Base().ID == id })
}

func (s *Store[T, P]) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// Create assigns a fresh id and creation time to v, appends it and persists
// the collection. It returns the stored copy.
func (s *Store[T, P]) Create(ctx context.Context, v T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		var zero T
		return zero, common.ErrNotReady
	}

	m := P(&v).Base()
	now := s.now()
	m.ID = s.uniqueID()
	m.CreatedAt = now
	m.UpdatedAt = now

	s.items = append(s.items, v)
	s.persist(ctx)
	return v, nil
}

// Update applies fn to the entity with the given id. ID and CreatedAt are
// restored after fn runs and UpdatedAt is bumped. An unknown id is a silent
// no-op reported as false. fn runs under the store lock and must not call
// back into the store.
func (s *Store[T, P]) Update(ctx context.Context, id string, fn func(*T)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		return false, common.ErrNotReady
	}

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	v, err := s.detach(s.items[i])
	if err != nil {
		return false, err
	}
	orig := *P(&v).Base()
	fn(&v)

	m := P(&v).Base()
	m.ID = orig.ID
	m.CreatedAt = orig.CreatedAt
	m.UpdatedAt = s.now()

	s.items[i] = v
	s.persist(ctx)
	return true, nil
}

// Toggle flips the boolean field selected by field.
func (s *Store[T, P]) Toggle(ctx context.Context, id string, field func(*T) *bool) (bool, error) {
	return s.Update(ctx, id, func(v *T) {
		b := field(v)
		*b = !*b
	})
}

// Delete removes the entity with the given id. Deleting an unknown id
// returns false and writes nothing.
func (s *Store[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		return false, common.ErrNotReady
	}

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)
	return true, nil
}

// Items returns a copy of the collection in insertion order. Nested slices
// inside the entities are shared with the store and must not be modified;
// Update never writes through them.
func (s *Store[T, P]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store[T, P]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

func (s *Store[T, P]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// detach copies an entity through the codec so nested slices no longer alias
// snapshots handed out by Items or Get.
func (s *Store[T, P]) detach(v T) (T, error) {
	var zero T
	data, err := s.codec.Encode([]T{v})
	if err != nil {
		return zero, fmt.Errorf("collection %s: copy entity: %w", s.key, err)
	}
	out, err := s.codec.Decode(data)
	if err != nil {
		return zero, fmt.Errorf("collection %s: copy entity: %w", s.key, err)
	}
	if len(out) != 1 {
		return zero, fmt.Errorf("collection %s: copy entity: got %d items", s.key, len(out))
	}
	return out[0], nil
}
