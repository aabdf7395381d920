package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

const (
	minScore = 1
	maxScore = 5
)

// WellbeingService records mood, meditation and focus sessions and tracks
// wellbeing goals.
type WellbeingService struct {
	moods       *collection.Store[models.MoodEntry, *models.MoodEntry]
	meditations *collection.Store[models.MeditationSession, *models.MeditationSession]
	focus       *collection.Store[models.FocusSession, *models.FocusSession]
	goals       *collection.Store[models.WellbeingGoal, *models.WellbeingGoal]
	clock       clockwork.Clock
}

func NewWellbeingService(d Deps) *WellbeingService {
	d = d.normalize()
	opts := d.storeOptions()
	return &WellbeingService{
		moods:       collection.New[models.MoodEntry](d.Backend, models.KeyMoodEntries, opts...),
		meditations: collection.New[models.MeditationSession](d.Backend, models.KeyMeditations, opts...),
		focus:       collection.New[models.FocusSession](d.Backend, models.KeyFocusSessions, opts...),
		goals:       collection.New[models.WellbeingGoal](d.Backend, models.KeyWellbeingGoals, opts...),
		clock:       d.Clock,
	}
}

func (s *WellbeingService) Load(ctx context.Context) error {
	return loadAll(ctx, s.moods, s.meditations, s.focus, s.goals)
}

func (s *WellbeingService) Reload(ctx context.Context) error {
	return reloadAll(ctx, s.moods, s.meditations, s.focus, s.goals)
}

func checkScore(name string, v int) error {
	if v < minScore || v > maxScore {
		return fmt.Errorf("%s must be between %d and %d, got %d: %w", name, minScore, maxScore, v, common.ErrInvalidInput)
	}
	return nil
}

func (s *WellbeingService) AddMood(ctx context.Context, m models.MoodEntry) (models.MoodEntry, error) {
	for _, c := range []struct {
		name string
		v    int
	}{{"mood", m.Mood}, {"energy", m.Energy}, {"stress", m.Stress}} {
		if err := checkScore(c.name, c.v); err != nil {
			return models.MoodEntry{}, err
		}
	}
	if m.Date.IsZero() {
		m.Date = codec.NewTimestamp(s.clock.Now())
	}
	m.Activities = orEmpty(m.Activities)
	return s.moods.Create(ctx, m)
}

func (s *WellbeingService) MoodEntries() []models.MoodEntry { return newestFirst(s.moods.Items()) }

func (s *WellbeingService) AddMeditation(ctx context.Context, m models.MeditationSession) (models.MeditationSession, error) {
	if m.Duration <= 0 {
		return models.MeditationSession{}, fmt.Errorf("duration must be positive: %w", common.ErrInvalidInput)
	}
	if m.CompletedAt.IsZero() {
		m.CompletedAt = codec.NewTimestamp(s.clock.Now())
	}
	return s.meditations.Create(ctx, m)
}

func (s *WellbeingService) Meditations() []models.MeditationSession {
	return newestFirst(s.meditations.Items())
}

func (s *WellbeingService) AddFocusSession(ctx context.Context, f models.FocusSession) (models.FocusSession, error) {
	if f.Duration <= 0 {
		return models.FocusSession{}, fmt.Errorf("duration must be positive: %w", common.ErrInvalidInput)
	}
	if f.StartTime.IsZero() {
		f.StartTime = codec.NewTimestamp(s.clock.Now())
	}
	return s.focus.Create(ctx, f)
}

// CompleteFocusSession marks the session completed and stamps its end time.
func (s *WellbeingService) CompleteFocusSession(ctx context.Context, id string, distractions, productivity int) (bool, error) {
	now := codec.Ptr(s.clock.Now())
	return s.focus.Update(ctx, id, func(f *models.FocusSession) {
		f.Completed = true
		f.EndTime = now
		f.Distractions = distractions
		f.Productivity = productivity
	})
}

func (s *WellbeingService) FocusSessions() []models.FocusSession { return newestFirst(s.focus.Items()) }

func (s *WellbeingService) AddGoal(ctx context.Context, g models.WellbeingGoal) (models.WellbeingGoal, error) {
	if strings.TrimSpace(g.Title) == "" {
		return models.WellbeingGoal{}, fmt.Errorf("goal title is required: %w", common.ErrInvalidInput)
	}
	if g.Target <= 0 {
		return models.WellbeingGoal{}, fmt.Errorf("goal target must be positive: %w", common.ErrInvalidInput)
	}
	g.Current = aggregate.Clamp(g.Current, 0, g.Target)
	return s.goals.Create(ctx, g)
}

func (s *WellbeingService) DeleteGoal(ctx context.Context, id string) (bool, error) {
	return s.goals.Delete(ctx, id)
}

func (s *WellbeingService) Goals() []models.WellbeingGoal { return s.goals.Items() }

// SetGoalProgress stores progress clamped to [0, target].
func (s *WellbeingService) SetGoalProgress(ctx context.Context, id string, progress float64) (bool, error) {
	return s.goals.Update(ctx, id, func(g *models.WellbeingGoal) {
		g.Current = aggregate.Clamp(progress, 0, g.Target)
	})
}

// IncrementGoalProgress adds delta to the current progress, clamped to
// [0, target].
func (s *WellbeingService) IncrementGoalProgress(ctx context.Context, id string, delta float64) (bool, error) {
	return s.goals.Update(ctx, id, func(g *models.WellbeingGoal) {
		g.Current = aggregate.Clamp(g.Current+delta, 0, g.Target)
	})
}

func (s *WellbeingService) Stats() models.WellbeingStats {
	now := s.clock.Now()
	moods := s.moods.Items()
	meditations := s.meditations.Items()
	meditationMinutes := func(m models.MeditationSession) float64 { return float64(m.Duration) }

	var progress []models.GoalPct
	for _, g := range s.goals.Items() {
		progress = append(progress, models.GoalPct{
			GoalID:  g.ID,
			Title:   g.Title,
			Percent: aggregate.ProgressPercent(g.Current, g.Target),
		})
	}

	return models.WellbeingStats{
		AverageMood:       aggregate.Mean(moods, func(m models.MoodEntry) float64 { return float64(m.Mood) }),
		AverageEnergy:     aggregate.Mean(moods, func(m models.MoodEntry) float64 { return float64(m.Energy) }),
		AverageStress:     aggregate.Mean(moods, func(m models.MoodEntry) float64 { return float64(m.Stress) }),
		MeditationMinutes: aggregate.Sum(meditations, meditationMinutes),
		WeeklyMeditation: aggregate.WindowSums(meditations, now, week, 7,
			func(m models.MeditationSession) time.Time { return m.CompletedAt.Time }, meditationMinutes),
		FocusMinutes: aggregate.Sum(
			aggregate.Filter(s.focus.Items(), func(f models.FocusSession) bool { return f.Completed }),
			func(f models.FocusSession) float64 { return float64(f.Duration) }),
		GoalProgress: orEmpty(progress),
	}
}
