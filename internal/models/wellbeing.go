package models

import (
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
)

// MoodEntry scores mood, energy and stress on a 1..5 scale.
type MoodEntry struct {
	collection.Meta
	Date       codec.Timestamp `json:"date"`
	Mood       int             `json:"mood"`
	Energy     int             `json:"energy"`
	Stress     int             `json:"stress"`
	Notes      string          `json:"notes,omitempty"`
	Activities []string        `json:"activities"`
}

type MeditationType string

const (
	MeditationBreathing      MeditationType = "breathing"
	MeditationMindfulness    MeditationType = "mindfulness"
	MeditationBodyScan       MeditationType = "body-scan"
	MeditationLovingKindness MeditationType = "loving-kindness"
)

type MeditationSession struct {
	collection.Meta
	Type        MeditationType  `json:"type"`
	Duration    int             `json:"duration"`
	CompletedAt codec.Timestamp `json:"completedAt"`
	Rating      int             `json:"rating,omitempty"`
}

type FocusTechnique string

const (
	FocusPomodoro     FocusTechnique = "pomodoro"
	FocusDeepWork     FocusTechnique = "deep-work"
	FocusTimeBlocking FocusTechnique = "time-blocking"
)

type FocusSession struct {
	collection.Meta
	Technique    FocusTechnique   `json:"technique"`
	Duration     int              `json:"duration"`
	StartTime    codec.Timestamp  `json:"startTime"`
	EndTime      *codec.Timestamp `json:"endTime,omitempty"`
	Completed    bool             `json:"completed"`
	Distractions int              `json:"distractions"`
	Productivity int              `json:"productivity"`
}

type GoalCategory string

const (
	GoalMood     GoalCategory = "mood"
	GoalStress   GoalCategory = "stress"
	GoalFocus    GoalCategory = "focus"
	GoalSleep    GoalCategory = "sleep"
	GoalExercise GoalCategory = "exercise"
)

// WellbeingGoal tracks Current towards Target; Current never exceeds Target.
type WellbeingGoal struct {
	collection.Meta
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    GoalCategory    `json:"category"`
	Target      float64         `json:"target"`
	Current     float64         `json:"current"`
	Unit        string          `json:"unit"`
	Deadline    codec.Timestamp `json:"deadline"`
}

// BreathingExercise is a built-in pattern, not persisted.
type BreathingExercise struct {
	ID          string
	Name        string
	Description string
	Inhale      int
	Hold        int
	Exhale      int
	Cycles      int
}

var BreathingExercises = []BreathingExercise{
	{ID: "box", Name: "Box Breathing", Description: "Equal inhale, hold and exhale to steady the mind", Inhale: 4, Hold: 4, Exhale: 4, Cycles: 4},
	{ID: "478", Name: "4-7-8 Breathing", Description: "Long exhale to calm the nervous system", Inhale: 4, Hold: 7, Exhale: 8, Cycles: 4},
	{ID: "calm", Name: "Calm Breathing", Description: "Slow rhythmic breathing without a hold", Inhale: 4, Hold: 0, Exhale: 6, Cycles: 6},
}

type WellbeingStats struct {
	AverageMood       float64   `json:"averageMood"`
	AverageEnergy     float64   `json:"averageEnergy"`
	AverageStress     float64   `json:"averageStress"`
	MeditationMinutes float64   `json:"meditationMinutes"`
	WeeklyMeditation  []float64 `json:"weeklyMeditation"`
	FocusMinutes      float64   `json:"focusMinutes"`
	GoalProgress      []GoalPct `json:"goalProgress"`
}

type GoalPct struct {
	GoalID  string  `json:"goalId"`
	Title   string  `json:"title"`
	Percent float64 `json:"percent"`
}
