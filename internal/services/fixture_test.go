package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/repositories/kv"
	"github.com/nanatgrail/prodigyspace/internal/scheduler"
	"github.com/nanatgrail/prodigyspace/internal/storage"
	"github.com/stretchr/testify/require"
)

// t0 is a Wednesday.
var t0 = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	ctx   context.Context
	clock *clockwork.FakeClock
	repo  *kv.MemoryRepository
	mgr   *storage.Manager
	seq   atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:   context.Background(),
		clock: clockwork.NewFakeClockAt(t0),
		repo:  kv.NewMemoryRepository(),
	}
	f.mgr = storage.NewManager(f.repo, storage.WithClock(f.clock))
	return f
}

func (f *fixture) deps() Deps {
	return Deps{
		Backend: f.mgr,
		Clock:   f.clock,
		NewID:   func() string { return fmt.Sprintf("id-%d", f.seq.Add(1)) },
	}
}

// load builds a service with fresh in-memory state over the shared storage,
// as a restart would.
func load[S loader](t *testing.T, f *fixture, build func(Deps) S) S {
	t.Helper()
	s := build(f.deps())
	require.NoError(t, s.Load(f.ctx))
	return s
}

type notifyFunc func(scheduler.Notification)

func (fn notifyFunc) Notify(_ context.Context, n scheduler.Notification) error {
	fn(n)
	return nil
}
