// Package services binds the generic collection store to each domain of the
// app: todos, tasks and study records, notes, expenses and budgets, alarms
// and reminders, wellbeing, sticky notes, bookmarks, water intake, pomodoro
// and collaboration.
//
// Services add default values, validation and read-side statistics on top of
// collection.Store; persistence semantics are the store's. Every service must
// be loaded (Load or Registry.LoadAll) before mutations are accepted.
package services

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/logging"
)

// Deps are shared by every service.
type Deps struct {
	Backend collection.Backend
	Clock   clockwork.Clock
	Log     logging.Logger
	// NewID generates ids for nested records (subtasks, members) and, when
	// set, for top-level entities too.
	NewID func() string
}

func (d Deps) normalize() Deps {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

func (d Deps) storeOptions(extra ...collection.Option) []collection.Option {
	opts := []collection.Option{
		collection.WithClock(d.Clock),
		collection.WithLogger(d.Log),
		collection.WithIDGenerator(d.NewID),
	}
	return append(opts, extra...)
}

type loader interface {
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
}

func loadAll(ctx context.Context, ls ...loader) error {
	var errs []error
	for _, l := range ls {
		if err := l.Load(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func reloadAll(ctx context.Context, ls ...loader) error {
	var errs []error
	for _, l := range ls {
		if err := l.Reload(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newestFirst reverses insertion order in place.
func newestFirst[T any](items []T) []T {
	slices.Reverse(items)
	return items
}

// orEmpty keeps nil slices out of storage so they encode as [].
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
