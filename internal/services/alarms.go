package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

// reminderWindow is how far from its scheduled time a reminder still fires.
const reminderWindow = time.Minute

// AlarmService manages weekly alarms and one-off reminders. It is the
// DueSource of the alarm checker.
type AlarmService struct {
	alarms    *collection.Store[models.Alarm, *models.Alarm]
	reminders *collection.Store[models.Reminder, *models.Reminder]
}

func NewAlarmService(d Deps) *AlarmService {
	d = d.normalize()
	opts := d.storeOptions()
	return &AlarmService{
		alarms:    collection.New[models.Alarm](d.Backend, models.KeyAlarms, opts...),
		reminders: collection.New[models.Reminder](d.Backend, models.KeyReminders, opts...),
	}
}

func (s *AlarmService) Load(ctx context.Context) error {
	return loadAll(ctx, s.alarms, s.reminders)
}

func (s *AlarmService) Reload(ctx context.Context) error {
	return reloadAll(ctx, s.alarms, s.reminders)
}

// ParseClock validates an HH:MM 24-hour time.
func ParseClock(v string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(v))
	if err != nil {
		return "", fmt.Errorf("invalid time %q, want HH:MM: %w", v, common.ErrInvalidInput)
	}
	return t.Format("15:04"), nil
}

func validateAlarm(a *models.Alarm) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("alarm title is required: %w", common.ErrInvalidInput)
	}
	hhmm, err := ParseClock(a.Time)
	if err != nil {
		return err
	}
	a.Time = hhmm
	for _, d := range a.Days {
		if !slices.Contains(models.Weekdays[:], d) {
			return fmt.Errorf("unknown day %q: %w", d, common.ErrInvalidInput)
		}
	}
	a.Days = orEmpty(a.Days)
	return nil
}

func (s *AlarmService) AddAlarm(ctx context.Context, a models.Alarm) (models.Alarm, error) {
	if err := validateAlarm(&a); err != nil {
		return models.Alarm{}, err
	}
	return s.alarms.Create(ctx, a)
}

// UpdateAlarm validates the result of fn before storing it.
func (s *AlarmService) UpdateAlarm(ctx context.Context, id string, fn func(*models.Alarm)) (bool, error) {
	cur, ok := s.alarms.Get(id)
	if !ok {
		return false, nil
	}
	cur.Days = slices.Clone(cur.Days)
	fn(&cur)
	if err := validateAlarm(&cur); err != nil {
		return false, err
	}
	return s.alarms.Update(ctx, id, func(a *models.Alarm) { *a = cur })
}

func (s *AlarmService) DeleteAlarm(ctx context.Context, id string) (bool, error) {
	return s.alarms.Delete(ctx, id)
}

func (s *AlarmService) ToggleAlarm(ctx context.Context, id string) (bool, error) {
	return s.alarms.Toggle(ctx, id, func(a *models.Alarm) *bool { return &a.IsActive })
}

func (s *AlarmService) Alarms() []models.Alarm { return newestFirst(s.alarms.Items()) }

func (s *AlarmService) AddReminder(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	if strings.TrimSpace(r.Title) == "" {
		return models.Reminder{}, fmt.Errorf("reminder title is required: %w", common.ErrInvalidInput)
	}
	if r.DateTime.IsZero() {
		return models.Reminder{}, fmt.Errorf("reminder time is required: %w", common.ErrInvalidInput)
	}
	if !r.IsRecurring {
		r.RecurringType = ""
	}
	return s.reminders.Create(ctx, r)
}

func (s *AlarmService) UpdateReminder(ctx context.Context, id string, fn func(*models.Reminder)) (bool, error) {
	return s.reminders.Update(ctx, id, fn)
}

func (s *AlarmService) DeleteReminder(ctx context.Context, id string) (bool, error) {
	return s.reminders.Delete(ctx, id)
}

func (s *AlarmService) ToggleReminder(ctx context.Context, id string) (bool, error) {
	return s.reminders.Toggle(ctx, id, func(r *models.Reminder) *bool { return &r.IsActive })
}

// Reminders are sorted by scheduled time.
func (s *AlarmService) Reminders() []models.Reminder {
	items := s.reminders.Items()
	slices.SortStableFunc(items, func(a, b models.Reminder) int {
		return a.DateTime.Compare(b.DateTime.Time)
	})
	return items
}

// Due returns the active alarms set for now's minute and weekday, judged in
// now's location, and the active reminders scheduled within a minute of now.
func (s *AlarmService) Due(now time.Time) ([]models.Alarm, []models.Reminder) {
	hhmm := now.Format("15:04")
	day := models.Weekdays[now.Weekday()]

	alarms := aggregate.Filter(s.alarms.Items(), func(a models.Alarm) bool {
		return a.IsActive && a.Time == hhmm && slices.Contains(a.Days, day)
	})
	reminders := aggregate.Filter(s.reminders.Items(), func(r models.Reminder) bool {
		if !r.IsActive || r.DateTime.IsZero() {
			return false
		}
		diff := now.Sub(r.DateTime.Time)
		return diff > -reminderWindow && diff < reminderWindow
	})
	return alarms, reminders
}
