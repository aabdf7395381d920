package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/logging"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

type NotificationKind string

const (
	KindAlarm    NotificationKind = "alarm"
	KindReminder NotificationKind = "reminder"
)

type Notification struct {
	Kind        NotificationKind
	ID          string
	Title       string
	Description string
	At          time.Time
}

func (n Notification) String() string {
	icon, body := "⏰", "Alarm is ringing!"
	if n.Kind == KindReminder {
		icon, body = "🔔", "Reminder notification"
	}
	if n.Description != "" {
		body = n.Description
	}
	return fmt.Sprintf("%s %s: %s", icon, n.Title, body)
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// DueSource reports the alarms and reminders that should fire at now.
type DueSource interface {
	Due(now time.Time) ([]models.Alarm, []models.Reminder)
}

// LogNotifier writes notifications to the log at info level.
type LogNotifier struct {
	Log logging.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.Log.Info(ctx, "notification", "kind", n.Kind, "id", n.ID, "title", n.Title)
	return nil
}

// WriterNotifier prints one line per notification.
type WriterNotifier struct {
	W io.Writer
}

func (w WriterNotifier) Notify(_ context.Context, n Notification) error {
	_, err := fmt.Fprintf(w.W, "\n%s\n", n)
	return err
}

// Checker fires each due alarm at most once per minute and each reminder at
// most once per scheduled time.
type Checker struct {
	src      DueSource
	notifier Notifier
	log      logging.Logger

	mu    sync.Mutex
	fired map[string]time.Time
}

func NewChecker(src DueSource, notifier Notifier, log logging.Logger) *Checker {
	if log == nil {
		log = logging.Discard()
	}
	return &Checker{src: src, notifier: notifier, log: log, fired: make(map[string]time.Time)}
}

// Check is a TaskFunc; pass it to NewPeriodic.
func (c *Checker) Check(ctx context.Context, now time.Time) {
	alarms, reminders := c.src.Due(now)

	minute := now.Truncate(time.Minute)
	var out []Notification

	c.mu.Lock()
	for _, a := range alarms {
		if c.markLocked(string(KindAlarm)+":"+a.ID, minute) {
			out = append(out, Notification{Kind: KindAlarm, ID: a.ID, Title: a.Title, Description: a.Description, At: now})
		}
	}
	for _, r := range reminders {
		if c.markLocked(string(KindReminder)+":"+r.ID, r.DateTime.Time) {
			out = append(out, Notification{Kind: KindReminder, ID: r.ID, Title: r.Title, Description: r.Description, At: now})
		}
	}
	c.pruneLocked(now)
	c.mu.Unlock()

	for _, n := range out {
		if err := c.notifier.Notify(ctx, n); err != nil {
			c.log.Error(ctx, "notify failed", "kind", n.Kind, "id", n.ID, "error", err)
		}
	}
}

func (c *Checker) markLocked(key string, at time.Time) bool {
	if prev, ok := c.fired[key]; ok && prev.Equal(at) {
		return false
	}
	c.fired[key] = at
	return true
}

func (c *Checker) pruneLocked(now time.Time) {
	cutoff := now.Add(-time.Hour)
	for k, at := range c.fired {
		if at.Before(cutoff) {
			delete(c.fired, k)
		}
	}
}
