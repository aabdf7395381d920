package models

import (
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
)

type Bookmark struct {
	collection.Meta
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// WaterIntake is one drink, Amount in millilitres.
type WaterIntake struct {
	collection.Meta
	Amount    int             `json:"amount"`
	Timestamp codec.Timestamp `json:"timestamp"`
}

// DefaultDailyWaterGoal is the daily target in millilitres.
const DefaultDailyWaterGoal = 2000

type SessionType string

const (
	SessionWork  SessionType = "work"
	SessionBreak SessionType = "break"
)

type PomodoroSession struct {
	collection.Meta
	Type      SessionType      `json:"type"`
	Duration  int              `json:"duration"`
	Completed bool             `json:"completed"`
	StartTime codec.Timestamp  `json:"startTime"`
	EndTime   *codec.Timestamp `json:"endTime,omitempty"`
}

// PomodoroSettings durations are in minutes.
type PomodoroSettings struct {
	WorkDuration           int `json:"workDuration"`
	ShortBreakDuration     int `json:"shortBreakDuration"`
	LongBreakDuration      int `json:"longBreakDuration"`
	SessionsUntilLongBreak int `json:"sessionsUntilLongBreak"`
}

func DefaultPomodoroSettings() PomodoroSettings {
	return PomodoroSettings{
		WorkDuration:           25,
		ShortBreakDuration:     5,
		LongBreakDuration:      15,
		SessionsUntilLongBreak: 4,
	}
}
