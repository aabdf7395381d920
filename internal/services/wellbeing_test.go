package services

import (
	"testing"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWellbeing_GoalProgressClamp(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewWellbeingService)

	g, err := s.AddGoal(f.ctx, models.WellbeingGoal{Title: "meditate", Target: 30, Current: 28, Unit: "minutes"})
	require.NoError(t, err)

	ok, err := s.IncrementGoalProgress(f.ctx, g.ID, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 30.0, s.Goals()[0].Current)

	_, err = s.SetGoalProgress(f.ctx, g.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Goals()[0].Current)

	_, err = s.SetGoalProgress(f.ctx, g.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12.0, s.Goals()[0].Current)

	ok, err = s.IncrementGoalProgress(f.ctx, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWellbeing_AddGoalClampsInitial(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewWellbeingService)

	g, err := s.AddGoal(f.ctx, models.WellbeingGoal{Title: "sleep", Target: 8, Current: 10})
	require.NoError(t, err)
	assert.Equal(t, 8.0, g.Current)

	_, err = s.AddGoal(f.ctx, models.WellbeingGoal{Title: "zero", Target: 0})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestWellbeing_MoodValidation(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewWellbeingService)

	_, err := s.AddMood(f.ctx, models.MoodEntry{Mood: 6, Energy: 3, Stress: 3})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = s.AddMood(f.ctx, models.MoodEntry{Mood: 3, Energy: 0, Stress: 3})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	m, err := s.AddMood(f.ctx, models.MoodEntry{Mood: 4, Energy: 3, Stress: 2})
	require.NoError(t, err)
	assert.Equal(t, t0, m.Date.Time)
	assert.NotNil(t, m.Activities)
}

func TestWellbeing_StatsEmpty(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewWellbeingService)

	st := s.Stats()
	assert.Zero(t, st.AverageMood)
	assert.Zero(t, st.AverageEnergy)
	assert.Zero(t, st.AverageStress)
	assert.Equal(t, make([]float64, 7), st.WeeklyMeditation)
	assert.NotNil(t, st.GoalProgress)
}

func TestWellbeing_Stats(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewWellbeingService)

	_, err := s.AddMood(f.ctx, models.MoodEntry{Mood: 4, Energy: 2, Stress: 1})
	require.NoError(t, err)
	_, err = s.AddMood(f.ctx, models.MoodEntry{Mood: 3, Energy: 5, Stress: 2})
	require.NoError(t, err)

	_, err = s.AddMeditation(f.ctx, models.MeditationSession{Type: models.MeditationBreathing, Duration: 10})
	require.NoError(t, err)
	_, err = s.AddMeditation(f.ctx, models.MeditationSession{Type: models.MeditationBodyScan, Duration: 20, CompletedAt: codec.NewTimestamp(t0.AddDate(0, 0, -9))})
	require.NoError(t, err)

	focus, err := s.AddFocusSession(f.ctx, models.FocusSession{Technique: models.FocusDeepWork, Duration: 50})
	require.NoError(t, err)
	_, err = s.AddFocusSession(f.ctx, models.FocusSession{Technique: models.FocusPomodoro, Duration: 25})
	require.NoError(t, err)
	f.clock.Advance(50 * time.Minute)
	ok, err := s.CompleteFocusSession(f.ctx, focus.ID, 2, 4)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.AddGoal(f.ctx, models.WellbeingGoal{Title: "g", Target: 10, Current: 5})
	require.NoError(t, err)

	st := s.Stats()
	assert.InDelta(t, 3.5, st.AverageMood, 1e-9)
	assert.InDelta(t, 3.5, st.AverageEnergy, 1e-9)
	assert.InDelta(t, 1.5, st.AverageStress, 1e-9)
	assert.Equal(t, 30.0, st.MeditationMinutes)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 20, 10}, st.WeeklyMeditation)
	assert.Equal(t, 50.0, st.FocusMinutes)
	require.Len(t, st.GoalProgress, 1)
	assert.Equal(t, 50.0, st.GoalProgress[0].Percent)

	done := s.FocusSessions()[1]
	require.NotNil(t, done.EndTime)
	assert.Equal(t, t0.Add(50*time.Minute), done.EndTime.Time)
}
