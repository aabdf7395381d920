// Package aggregate computes read-only statistics over in-memory
// collections. Every function is pure: the inputs are never modified and
// results are recomputed on each call.
package aggregate

import (
	"cmp"
	"time"
)

// DueFunc extracts an optional due instant; ok=false means "no due date".
type DueFunc[T any] func(T) (due time.Time, ok bool)

func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func Count[T any](items []T, keep func(T) bool) int {
	n := 0
	for _, it := range items {
		if keep(it) {
			n++
		}
	}
	return n
}

func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, it := range items {
		total += value(it)
	}
	return total
}

// Mean is the arithmetic mean of value over items, 0 for an empty slice.
func Mean[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, value) / float64(len(items))
}

// Overdue keeps items whose due instant is strictly before now and that are
// not done. Items without a due date are never overdue.
func Overdue[T any](items []T, now time.Time, due DueFunc[T], done func(T) bool) []T {
	return Filter(items, func(it T) bool {
		d, ok := due(it)
		return ok && d.Before(now) && !done(it)
	})
}

// DueOn keeps items due on the same calendar day as day, judged in day's
// location.
func DueOn[T any](items []T, day time.Time, due DueFunc[T]) []T {
	return Filter(items, func(it T) bool {
		d, ok := due(it)
		return ok && SameDay(d, day)
	})
}

// SameDay reports whether a and b fall on the same calendar day in b's
// location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month in b's
// location.
func SameMonth(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// CountBy counts items per key. Every key in enum is present in the result,
// zero when no item maps to it; keys outside enum are counted as well.
func CountBy[T any, K comparable](items []T, key func(T) K, enum []K) map[K]int {
	out := make(map[K]int, len(enum))
	for _, k := range enum {
		out[k] = 0
	}
	for _, it := range items {
		out[key(it)]++
	}
	return out
}

// SumBy sums value per key, zero-filled over enum like CountBy.
func SumBy[T any, K comparable](items []T, key func(T) K, value func(T) float64, enum []K) map[K]float64 {
	out := make(map[K]float64, len(enum))
	for _, k := range enum {
		out[k] = 0
	}
	for _, it := range items {
		out[key(it)] += value(it)
	}
	return out
}

// WindowSums returns exactly n sums over trailing windows of width period
// ending at now, oldest first. Bucket k (n down to 1) covers
// [now-k*period, now-(k-1)*period); items outside every bucket are ignored.
func WindowSums[T any](items []T, now time.Time, period time.Duration, n int, at func(T) time.Time, value func(T) float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	sums := make([]float64, n)
	if period <= 0 {
		return sums
	}

	start := now.Add(-time.Duration(n) * period)
	for _, it := range items {
		t := at(it)
		if t.Before(start) || !t.Before(now) {
			continue
		}
		idx := int(t.Sub(start) / period)
		if idx >= n {
			idx = n - 1
		}
		sums[idx] += value(it)
	}
	return sums
}

// ProgressPercent is current/target as a percentage capped at 100; a
// non-positive target yields 0.
func ProgressPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return min(current/target*100, 100)
}

func Clamp[N cmp.Ordered](v, lo, hi N) N {
	return max(lo, min(v, hi))
}
