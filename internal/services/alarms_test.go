package services

import (
	"testing"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
	"github.com/nanatgrail/prodigyspace/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ scheduler.DueSource = (*AlarmService)(nil)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "07:30", want: "07:30"},
		{in: " 23:59 ", want: "23:59"},
		{in: "7:05", want: "07:05"},
		{in: "24:00", wantErr: true},
		{in: "noon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlarms_Validation(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewAlarmService)

	_, err := s.AddAlarm(f.ctx, models.Alarm{Title: "x", Time: "25:00"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = s.AddAlarm(f.ctx, models.Alarm{Title: "x", Time: "08:00", Days: []models.Weekday{"funday"}})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	a, err := s.AddAlarm(f.ctx, models.Alarm{Title: "x", Time: "8:00", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "08:00", a.Time)
	assert.NotNil(t, a.Days)

	ok, err := s.UpdateAlarm(f.ctx, a.ID, func(a *models.Alarm) { a.Time = "bad" })
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.False(t, ok)
	got := s.Alarms()[0]
	assert.Equal(t, "08:00", got.Time)

	ok, err = s.UpdateAlarm(f.ctx, a.ID, func(a *models.Alarm) { a.Time = "09:15" })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "09:15", s.Alarms()[0].Time)
}

func TestAlarms_Due(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewAlarmService)

	wake, err := s.AddAlarm(f.ctx, models.Alarm{Title: "wake", Time: "10:00", Days: []models.Weekday{models.Wednesday}, IsActive: true})
	require.NoError(t, err)
	_, err = s.AddAlarm(f.ctx, models.Alarm{Title: "weekend", Time: "10:00", Days: []models.Weekday{models.Saturday}, IsActive: true})
	require.NoError(t, err)
	_, err = s.AddAlarm(f.ctx, models.Alarm{Title: "off", Time: "10:00", Days: []models.Weekday{models.Wednesday}})
	require.NoError(t, err)

	soon, err := s.AddReminder(f.ctx, models.Reminder{Title: "call", DateTime: codec.NewTimestamp(t0.Add(30 * time.Second)), IsActive: true})
	require.NoError(t, err)
	_, err = s.AddReminder(f.ctx, models.Reminder{Title: "later", DateTime: codec.NewTimestamp(t0.Add(2 * time.Minute)), IsActive: true})
	require.NoError(t, err)

	alarms, reminders := s.Due(t0.Add(20 * time.Second))
	require.Len(t, alarms, 1)
	assert.Equal(t, wake.ID, alarms[0].ID)
	require.Len(t, reminders, 1)
	assert.Equal(t, soon.ID, reminders[0].ID)

	_, err = s.ToggleAlarm(f.ctx, wake.ID)
	require.NoError(t, err)
	_, err = s.ToggleReminder(f.ctx, soon.ID)
	require.NoError(t, err)
	alarms, reminders = s.Due(t0.Add(20 * time.Second))
	assert.Empty(t, alarms)
	assert.Empty(t, reminders)

	alarms, _ = s.Due(t0.Add(time.Minute))
	assert.Empty(t, alarms, "minute has passed")
}

func TestAlarms_RemindersSortedAndRecurrence(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewAlarmService)

	_, err := s.AddReminder(f.ctx, models.Reminder{Title: "b", DateTime: codec.NewTimestamp(t0.Add(2 * time.Hour)), RecurringType: models.RecurDaily})
	require.NoError(t, err)
	_, err = s.AddReminder(f.ctx, models.Reminder{Title: "a", DateTime: codec.NewTimestamp(t0.Add(time.Hour)), IsRecurring: true, RecurringType: models.RecurWeekly})
	require.NoError(t, err)
	_, err = s.AddReminder(f.ctx, models.Reminder{Title: "no time"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	rs := s.Reminders()
	require.Len(t, rs, 2)
	assert.Equal(t, "a", rs[0].Title)
	assert.Equal(t, models.RecurWeekly, rs[0].RecurringType)
	assert.Empty(t, rs[1].RecurringType)
}

func TestAlarms_WithChecker(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewAlarmService)

	_, err := s.AddAlarm(f.ctx, models.Alarm{Title: "wake", Time: "10:00", Days: []models.Weekday{models.Wednesday}, IsActive: true})
	require.NoError(t, err)

	var got []scheduler.Notification
	c := scheduler.NewChecker(s, notifyFunc(func(n scheduler.Notification) { got = append(got, n) }), nil)
	c.Check(f.ctx, t0)
	c.Check(f.ctx, t0.Add(30*time.Second))
	require.Len(t, got, 1)
	assert.Equal(t, "wake", got[0].Title)
}
