package services

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

// WaterService logs drinks against a daily goal. "Today" is the clock's
// local calendar day.
type WaterService struct {
	intakes *collection.Store[models.WaterIntake, *models.WaterIntake]
	goal    *collection.Value[int]
	clock   clockwork.Clock
}

func NewWaterService(d Deps) *WaterService {
	d = d.normalize()
	return &WaterService{
		intakes: collection.New[models.WaterIntake](d.Backend, models.KeyWaterIntakes, d.storeOptions()...),
		goal: collection.NewValue(d.Backend, models.KeyDailyWaterGoal,
			func() int { return models.DefaultDailyWaterGoal }, collection.WithLogger(d.Log)),
		clock: d.Clock,
	}
}

func (s *WaterService) Load(ctx context.Context) error   { return loadAll(ctx, s.intakes, s.goal) }
func (s *WaterService) Reload(ctx context.Context) error { return reloadAll(ctx, s.intakes, s.goal) }

// AddIntake logs amount millilitres now.
func (s *WaterService) AddIntake(ctx context.Context, amount int) (models.WaterIntake, error) {
	if amount <= 0 {
		return models.WaterIntake{}, fmt.Errorf("amount must be positive: %w", common.ErrInvalidInput)
	}
	return s.intakes.Create(ctx, models.WaterIntake{
		Amount:    amount,
		Timestamp: codec.NewTimestamp(s.clock.Now()),
	})
}

func (s *WaterService) RemoveIntake(ctx context.Context, id string) (bool, error) {
	return s.intakes.Delete(ctx, id)
}

func (s *WaterService) Goal() int { return s.goal.Get() }

func (s *WaterService) SetGoal(ctx context.Context, ml int) error {
	if ml <= 0 {
		return fmt.Errorf("goal must be positive: %w", common.ErrInvalidInput)
	}
	return s.goal.Set(ctx, ml)
}

func (s *WaterService) TodayIntakes() []models.WaterIntake {
	now := s.clock.Now()
	return aggregate.Filter(s.intakes.Items(), func(w models.WaterIntake) bool {
		return aggregate.SameDay(w.Timestamp.Time, now)
	})
}

func (s *WaterService) TodayTotal() int {
	return int(aggregate.Sum(s.TodayIntakes(), func(w models.WaterIntake) float64 { return float64(w.Amount) }))
}

// GoalPercent is today's total as a percentage of the goal, capped at 100.
func (s *WaterService) GoalPercent() float64 {
	return aggregate.ProgressPercent(float64(s.TodayTotal()), float64(s.Goal()))
}
