package kv

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/localdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := localdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newRepo(t *testing.T) (*SQLiteRepository, *sql.DB, *clockwork.FakeClock) {
	t.Helper()
	db := setupDB(t)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	return NewSQLiteRepository(db, clock), db, clock
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "studysync_todos", `{"data":[]}`))

	v, ok, err := r.Get(ctx, "studysync_todos")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"data":[]}`, v)
}

func TestGet_NotExists_ReportsMissing(t *testing.T) {
	r, _, _ := newRepo(t)

	v, ok, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestGet_EmptyValueIsPresent(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "blank", ""))
	_, ok, err := r.Get(ctx, "blank")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSet_UpsertOverwritesValueAndStamp(t *testing.T) {
	r, db, clock := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "old"))
	clock.Advance(time.Minute)
	require.NoError(t, r.Set(ctx, "k", "new"))

	v, _, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "new", v)

	var stamp int64
	require.NoError(t, db.QueryRow(`SELECT updated_at FROM kv WHERE key = 'k'`).Scan(&stamp))
	assert.Equal(t, clock.Now().UnixMilli(), stamp)
}

func TestList_ReturnsAllPairs(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Set(ctx, "b", "2"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", "1"))
	require.NoError(t, r.Delete(ctx, "x"))

	_, ok, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestClear_RemovesEverything(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Set(ctx, "b", "2"))
	require.NoError(t, r.Clear(ctx))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestReplace_SwapsContents(t *testing.T) {
	r, _, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "old", "1"))
	require.NoError(t, r.Replace(ctx, map[string]string{"a": "x", "b": "y"}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "x", "b": "y"}, m)
}

func TestClosedDB_ReturnsWrappedErrors(t *testing.T) {
	r, db, _ := newRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	require.ErrorContains(t, r.Set(ctx, "k", "v"), "failed to set kv[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete kv[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear kv")
	require.ErrorContains(t, r.Replace(ctx, map[string]string{"a": "b"}), "failed to replace kv")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")
}
