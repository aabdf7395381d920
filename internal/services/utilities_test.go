package services

import (
	"testing"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://go.dev", NormalizeURL("go.dev"))
	assert.Equal(t, "http://example.com", NormalizeURL("http://example.com"))
	assert.Equal(t, "https://example.com", NormalizeURL(" https://example.com "))
}

func TestBookmarks(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewBookmarkService)

	_, err := s.Add(f.ctx, "", "go.dev", "dev")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	b, err := s.Add(f.ctx, "Go", "go.dev", "dev")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", b.URL)
	_, err = s.Add(f.ctx, "Docs", "https://pkg.go.dev", "dev")
	require.NoError(t, err)
	_, err = s.Add(f.ctx, "News", "news.example", "reading")
	require.NoError(t, err)

	assert.Equal(t, []string{"dev", "reading"}, s.Categories())
	assert.Len(t, s.ByCategory("dev"), 2)

	ok, err := s.Update(f.ctx, b.ID, func(b *models.Bookmark) { b.Category = "archive" })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"archive", "dev", "reading"}, s.Categories())

	ok, err = s.Remove(f.ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, s.List(), 2)
}

func TestWater(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewWaterService)

	assert.Equal(t, models.DefaultDailyWaterGoal, s.Goal())

	_, err := s.AddIntake(f.ctx, 0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	first, err := s.AddIntake(f.ctx, 250)
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	_, err = s.AddIntake(f.ctx, 500)
	require.NoError(t, err)

	assert.Equal(t, 750, s.TodayTotal())
	assert.InDelta(t, 37.5, s.GoalPercent(), 1e-9)

	require.NoError(t, s.SetGoal(f.ctx, 500))
	assert.Equal(t, 100.0, s.GoalPercent())
	assert.ErrorIs(t, s.SetGoal(f.ctx, 0), common.ErrInvalidInput)

	ok, err := s.RemoveIntake(f.ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	f.clock.Advance(24 * time.Hour)
	assert.Zero(t, s.TodayTotal())
	assert.Empty(t, s.TodayIntakes())

	again := load(t, f, NewWaterService)
	assert.Equal(t, 500, again.Goal())
}

func TestSticky(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewStickyService)

	n, err := s.Add(f.ctx, models.StickyNote{Title: "idea"})
	require.NoError(t, err)
	assert.Equal(t, models.ColorYellow, n.Color)
	assert.Equal(t, defaultStickySize, n.Size)

	_, err = s.Add(f.ctx, models.StickyNote{Title: "todo", Color: models.ColorPink})
	require.NoError(t, err)

	ok, err := s.Move(f.ctx, n.ID, models.Position{X: 10, Y: 20})
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = s.Resize(f.ctx, n.ID, models.Size{Width: 0, Height: 1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	ok, err = s.Resize(f.ctx, n.ID, models.Size{Width: 300, Height: 150})
	require.NoError(t, err)
	assert.True(t, ok)

	got := s.List()[0]
	assert.Equal(t, models.Position{X: 10, Y: 20}, got.Position)
	assert.Equal(t, models.Size{Width: 300, Height: 150}, got.Size)

	st := s.Stats()
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.ColorBreakdown[models.ColorYellow])
	assert.Equal(t, 1, st.ColorBreakdown[models.ColorPink])
	assert.Equal(t, 0, st.ColorBreakdown[models.ColorBlue])
	assert.Len(t, st.ColorBreakdown, len(models.NoteColors))
}

func TestNotes(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewNoteService)

	_, err := s.Add(f.ctx, models.Note{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	a, err := s.Add(f.ctx, models.Note{Title: "Lecture 1", Content: "Derivatives", Category: models.NoteLecture, Tags: []string{"Math", " math ", "calc"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"math", "calc"}, a.Tags)

	f.clock.Advance(time.Minute)
	b, err := s.Add(f.ctx, models.Note{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)
	assert.Equal(t, models.NotePersonal, b.Category)

	assert.Equal(t, b.ID, s.List()[0].ID, "most recently updated first")

	f.clock.Advance(time.Minute)
	ok, err := s.TogglePin(f.ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	f.clock.Advance(time.Minute)
	_, err = s.Update(f.ctx, b.ID, func(n *models.Note) { n.Content = "milk, eggs" })
	require.NoError(t, err)

	list := s.List()
	assert.Equal(t, a.ID, list[0].ID, "pinned first")

	assert.Len(t, s.ByTag("MATH"), 1)
	assert.Len(t, s.Search("eggs"), 1)
	assert.Len(t, s.Search(""), 2)
	assert.Equal(t, []string{"calc", "math"}, s.Tags())
	assert.Equal(t, 1, s.CategoryCounts()[models.NoteLecture])
	assert.Equal(t, 0, s.CategoryCounts()[models.NoteMeeting])

	doc, err := s.AddScannedDoc(f.ctx, models.ScanDocument{Name: "syllabus"})
	require.NoError(t, err)
	assert.Equal(t, models.DocOther, doc.Category)
	assert.NotNil(t, doc.Pages)
	ok, err = s.DeleteScannedDoc(f.ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, s.ScannedDocs())
}
