package models

// Storage keys, one per collection or value.
const (
	KeyTodos          = "studysync_todos"
	KeyTasks          = "studysync-tasks"
	KeyStudySessions  = "studysync-study-sessions"
	KeyStudyPlans     = "studysync-study-plans"
	KeyAssignments    = "studysync-assignments"
	KeyNotes          = "studysync-notes"
	KeyScannedDocs    = "studysync-scanned-docs"
	KeyExpenses       = "prodigyspace_expenses"
	KeyBudgets        = "prodigyspace_budgets"
	KeyAlarms         = "studysync_alarms"
	KeyReminders      = "studysync_reminders"
	KeyStickyNotes    = "prodigyspace_sticky_notes"
	KeyBookmarks      = "bookmarks"
	KeyWaterIntakes   = "water-intakes"
	KeyDailyWaterGoal = "daily-water-goal"
	KeyPomodoro       = "pomodoro-sessions"
	KeyPomodoroConfig = "pomodoro-settings"
	KeyMoodEntries    = "studysync-mood-entries"
	KeyMeditations    = "studysync-meditations"
	KeyFocusSessions  = "studysync-focus-sessions"
	KeyWellbeingGoals = "studysync-wellbeing-goals"
	KeyStudyGroups    = "studysync-study-groups"
	KeyProjects       = "studysync-projects"
	KeyMessages       = "studysync-messages"
	KeyMeetings       = "studysync-meetings"
)

// AllKeys lists every key the application reads or writes.
var AllKeys = []string{
	KeyTodos, KeyTasks, KeyStudySessions, KeyStudyPlans, KeyAssignments,
	KeyNotes, KeyScannedDocs, KeyExpenses, KeyBudgets, KeyAlarms,
	KeyReminders, KeyStickyNotes, KeyBookmarks, KeyWaterIntakes,
	KeyDailyWaterGoal, KeyPomodoro, KeyPomodoroConfig, KeyMoodEntries,
	KeyMeditations, KeyFocusSessions, KeyWellbeingGoals, KeyStudyGroups,
	KeyProjects, KeyMessages, KeyMeetings,
}
