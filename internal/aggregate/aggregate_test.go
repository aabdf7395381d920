package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	cat    string
	amount float64
	at     time.Time
	due    *time.Time
	done   bool
}

func dueOf(r rec) (time.Time, bool) {
	if r.due == nil {
		return time.Time{}, false
	}
	return *r.due, true
}

func ptr(t time.Time) *time.Time { return &t }

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestMean(t *testing.T) {
	amount := func(r rec) float64 { return r.amount }
	assert.Equal(t, 0.0, Mean(nil, amount))
	assert.Equal(t, 0.0, Mean([]rec{}, amount))
	assert.InDelta(t, 2.5, Mean([]rec{{amount: 1}, {amount: 4}}, amount), 1e-9)
}

func TestOverdue_Boundary(t *testing.T) {
	items := []rec{
		{cat: "exactly-now", due: ptr(now)},
		{cat: "one-ms-before", due: ptr(now.Add(-time.Millisecond))},
		{cat: "done-before", due: ptr(now.Add(-time.Hour)), done: true},
		{cat: "future", due: ptr(now.Add(time.Hour))},
		{cat: "no-due"},
	}

	got := Overdue(items, now, dueOf, func(r rec) bool { return r.done })

	assert.Len(t, got, 1)
	assert.Equal(t, "one-ms-before", got[0].cat)

	later := Overdue(items[:1], now.Add(time.Microsecond), dueOf, func(r rec) bool { return r.done })
	assert.Len(t, later, 1, "a microsecond past the due instant is overdue")
}

func TestDueOn(t *testing.T) {
	items := []rec{
		{cat: "morning", due: ptr(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))},
		{cat: "late", due: ptr(time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC))},
		{cat: "tomorrow", due: ptr(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC))},
		{cat: "none"},
	}

	got := DueOn(items, now, dueOf)
	assert.Len(t, got, 2)

	// Judged in the day's location: 23:30 UTC is already the 16th at UTC+2.
	plus2 := time.FixedZone("UTC+2", 2*3600)
	got = DueOn(items[1:2], time.Date(2024, 6, 16, 9, 0, 0, 0, plus2), dueOf)
	assert.Len(t, got, 1)
}

func TestCountByAndSumBy_ZeroFilled(t *testing.T) {
	enum := []string{"food", "travel", "study"}
	items := []rec{{cat: "food", amount: 10}, {cat: "food", amount: 5}, {cat: "study", amount: 2}}

	counts := CountBy(items, func(r rec) string { return r.cat }, enum)
	assert.Equal(t, map[string]int{"food": 2, "travel": 0, "study": 1}, counts)

	sums := SumBy(items, func(r rec) string { return r.cat }, func(r rec) float64 { return r.amount }, enum)
	assert.Equal(t, map[string]float64{"food": 15, "travel": 0, "study": 2}, sums)

	assert.Equal(t, map[string]int{"food": 0, "travel": 0, "study": 0}, CountBy(nil, func(r rec) string { return r.cat }, enum))
}

func TestWindowSums_SevenWeeklyBuckets(t *testing.T) {
	week := 7 * 24 * time.Hour
	at := func(r rec) time.Time { return r.at }
	amount := func(r rec) float64 { return r.amount }

	items := []rec{
		{amount: 1, at: now.Add(-time.Hour)},
		{amount: 2, at: now.Add(-week)},                   // newest bucket is [now-week, now)
		{amount: 4, at: now.Add(-week - time.Nanosecond)}, // just past it
		{amount: 8, at: now.Add(-7 * week)},               // oldest bucket start
		{amount: 16, at: now.Add(-7*week - time.Nanosecond)},
		{amount: 32, at: now},
		{amount: 64, at: now.Add(-3*week - 24*time.Hour)},
	}

	got := WindowSums(items, now, week, 7, at, amount)

	assert.Len(t, got, 7)
	assert.Equal(t, []float64{8, 0, 0, 64, 0, 4, 3}, got)

	assert.Len(t, WindowSums[rec](nil, now, week, 7, at, amount), 7)
	assert.Empty(t, WindowSums(items, now, week, 0, at, amount))
}

func TestProgressPercentAndClamp(t *testing.T) {
	assert.Equal(t, 50.0, ProgressPercent(5, 10))
	assert.Equal(t, 100.0, ProgressPercent(15, 10))
	assert.Equal(t, 0.0, ProgressPercent(5, 0))
	assert.Equal(t, 0.0, ProgressPercent(5, -1))

	assert.Equal(t, 10, Clamp(15, 0, 10))
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 7.5, Clamp(7.5, 0, 10))
}

func TestSameMonth(t *testing.T) {
	assert.True(t, SameMonth(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, SameMonth(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, SameMonth(time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC), now))
}

func TestFilterCountSum(t *testing.T) {
	items := []rec{{amount: 1, done: true}, {amount: 2}, {amount: 3, done: true}}
	done := func(r rec) bool { return r.done }

	assert.Len(t, Filter(items, done), 2)
	assert.Equal(t, 2, Count(items, done))
	assert.Equal(t, 6.0, Sum(items, func(r rec) float64 { return r.amount }))
	assert.NotNil(t, Filter[rec](nil, done))
}
