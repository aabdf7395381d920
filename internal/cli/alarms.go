package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

func alarmID(al models.Alarm) string      { return al.ID }
func reminderID(r models.Reminder) string { return r.ID }

func (a *App) alarmCommands() group {
	return group{
		"add":    {usage: "alarm add <HH:MM> <title> [days=mon,tue|weekdays|weekend|daily]", run: a.alarmAdd},
		"list":   {usage: "alarm list", run: a.alarmList},
		"toggle": {usage: "alarm toggle <id>", run: a.alarmToggle},
		"rm":     {usage: "alarm rm <id>", run: a.alarmDelete},
	}
}

// parseDays expands a comma list of day names or the shortcuts daily,
// weekdays and weekend.
func parseDays(v string) ([]models.Weekday, error) {
	switch strings.ToLower(v) {
	case "", "daily", "everyday":
		return models.Weekdays[:], nil
	case "weekdays":
		return []models.Weekday{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday}, nil
	case "weekend":
		return []models.Weekday{models.Saturday, models.Sunday}, nil
	}

	var days []models.Weekday
	for _, part := range strings.Split(strings.ToLower(v), ",") {
		part = strings.TrimSpace(part)
		var match models.Weekday
		for _, d := range models.Weekdays {
			if len(part) >= 2 && strings.HasPrefix(string(d), part) {
				match = d
				break
			}
		}
		if match == "" {
			return nil, fmt.Errorf("unknown day %q: %w", part, common.ErrInvalidInput)
		}
		days = append(days, match)
	}
	return days, nil
}

func (a *App) alarmAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	at, title := p.first()
	if at == "" || title == "" {
		return usage("alarm add <HH:MM> <title> [days=...]")
	}
	days, err := parseDays(p.opt("days"))
	if err != nil {
		return err
	}

	al, err := a.reg.Alarms.AddAlarm(ctx, models.Alarm{
		Title:       title,
		Description: p.opt("desc", "description"),
		Time:        at,
		Days:        days,
		IsActive:    true,
	})
	if err != nil {
		return err
	}
	a.done("Alarm %s set for %s", shortID(al.ID), al.Time)
	return nil
}

func (a *App) alarmList(context.Context, []string) error {
	list := a.reg.Alarms.Alarms()
	a.heading(fmt.Sprintf("Alarms (%d)", len(list)))
	for _, al := range list {
		days := make([]string, len(al.Days))
		for i, d := range al.Days {
			days[i] = string(d)[:3]
		}
		a.printf("%s %s  %s  %-30s %s\n", check(al.IsActive), shortID(al.ID), al.Time, al.Title, strings.Join(days, ","))
	}
	return nil
}

func (a *App) alarmToggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("alarm toggle <id>")
	}
	id, err := matchID(a.reg.Alarms.Alarms(), alarmID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Alarms.ToggleAlarm(ctx, id)
	if err := found(ok, err, "alarm", args[0]); err != nil {
		return err
	}
	a.done("Toggled alarm %s", shortID(id))
	return nil
}

func (a *App) alarmDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("alarm rm <id>")
	}
	id, err := matchID(a.reg.Alarms.Alarms(), alarmID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Alarms.DeleteAlarm(ctx, id)
	if err := found(ok, err, "alarm", args[0]); err != nil {
		return err
	}
	a.done("Deleted alarm %s", shortID(id))
	return nil
}

func (a *App) reminderCommands() group {
	return group{
		"add":    {usage: "reminder add <title> at=YYYY-MM-DD_HH:MM [repeat=daily|weekly|monthly]", run: a.reminderAdd},
		"list":   {usage: "reminder list", run: a.reminderList},
		"toggle": {usage: "reminder toggle <id>", run: a.reminderToggle},
		"rm":     {usage: "reminder rm <id>", run: a.reminderDelete},
	}
}

func (a *App) reminderAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	at, err := p.date("at")
	if err != nil {
		return err
	}
	if p.text() == "" || at == nil {
		return usage("reminder add <title> at=YYYY-MM-DD_HH:MM")
	}
	repeat := models.Recurrence(p.opt("repeat"))

	r, err := a.reg.Alarms.AddReminder(ctx, models.Reminder{
		Title:         p.text(),
		Description:   p.opt("desc", "description"),
		DateTime:      *at,
		IsActive:      true,
		IsRecurring:   repeat != "",
		RecurringType: repeat,
	})
	if err != nil {
		return err
	}
	a.done("Reminder %s set for %s", shortID(r.ID), minuteOf(r.DateTime))
	return nil
}

func (a *App) reminderList(context.Context, []string) error {
	list := a.reg.Alarms.Reminders()
	a.heading(fmt.Sprintf("Reminders (%d)", len(list)))
	for _, r := range list {
		a.printf("%s %s  %s  %-30s %s\n", check(r.IsActive), shortID(r.ID), minuteOf(r.DateTime), r.Title, r.RecurringType)
	}
	return nil
}

func (a *App) reminderToggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("reminder toggle <id>")
	}
	id, err := matchID(a.reg.Alarms.Reminders(), reminderID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Alarms.ToggleReminder(ctx, id)
	if err := found(ok, err, "reminder", args[0]); err != nil {
		return err
	}
	a.done("Toggled reminder %s", shortID(id))
	return nil
}

func (a *App) reminderDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("reminder rm <id>")
	}
	id, err := matchID(a.reg.Alarms.Reminders(), reminderID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Alarms.DeleteReminder(ctx, id)
	if err := found(ok, err, "reminder", args[0]); err != nil {
		return err
	}
	a.done("Deleted reminder %s", shortID(id))
	return nil
}
