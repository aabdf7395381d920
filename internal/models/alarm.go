package models

import (
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays is indexed by time.Weekday.
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Alarm rings at Time (HH:MM, 24h) on each listed day while active.
type Alarm struct {
	collection.Meta
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Time        string    `json:"time"`
	Days        []Weekday `json:"days"`
	IsActive    bool      `json:"isActive"`
	SoundURL    string    `json:"soundUrl,omitempty"`
}

type Recurrence string

const (
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

// Reminder fires once at DateTime while active.
type Reminder struct {
	collection.Meta
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	DateTime      codec.Timestamp `json:"dateTime"`
	IsActive      bool            `json:"isActive"`
	IsRecurring   bool            `json:"isRecurring"`
	RecurringType Recurrence      `json:"recurringType,omitempty"`
	SoundURL      string          `json:"soundUrl,omitempty"`
}
