package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 9, 2, 14, 5, 6, 789123456, time.Local)

func meta(id string) collection.Meta {
	return collection.Meta{ID: id, CreatedAt: codec.NewTimestamp(base), UpdatedAt: codec.NewTimestamp(base.Add(time.Minute))}
}

func roundTrip[T any](t *testing.T, items []T) {
	t.Helper()
	c := codec.JSONCodec[T]{}
	raw, err := c.Encode(items)
	require.NoError(t, err)
	got, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestRoundTrip_AllDomains(t *testing.T) {
	ts := codec.NewTimestamp
	p := func(d time.Duration) *codec.Timestamp { return codec.Ptr(base.Add(d)) }

	t.Run("todos", func(t *testing.T) {
		roundTrip(t, []Todo{
			{Meta: meta("1"), Title: "read", Category: TodoStudy, Priority: PriorityHigh, DueDate: p(24 * time.Hour)},
			{Meta: meta("2"), Title: "no due", Completed: true, Category: TodoOther, Priority: PriorityLow},
		})
	})

	t.Run("tasks with nested subtasks and reminders", func(t *testing.T) {
		roundTrip(t, []Task{{
			Meta: meta("t"), Title: "essay", Category: TaskAssignment, Priority: PriorityUrgent, Status: StatusCompleted,
			DueDate: p(time.Hour), CompletedAt: p(2 * time.Hour), Tags: []string{"eng"},
			Subtasks:  []Subtask{{ID: "s", Title: "outline", CreatedAt: ts(base)}},
			Reminders: []TaskReminder{{ID: "r", Type: ChannelNotification, Time: ts(base.Add(30 * time.Minute)), Message: "go"}},
		}})
	})

	t.Run("study plans", func(t *testing.T) {
		roundTrip(t, []StudyPlan{{
			Meta: meta("sp"), Name: "finals", StartDate: ts(base), EndDate: ts(base.Add(720 * time.Hour)),
			Subjects: []StudySubject{{ID: "m", Name: "math", Topics: []StudyTopic{{ID: "alg", Name: "algebra", Status: TopicInProgress, Resources: []string{}}}}},
		}})
	})

	t.Run("expenses", func(t *testing.T) {
		roundTrip(t, []Expense{{Meta: meta("e"), Amount: 12.34, Category: ExpenseFood, Description: "lunch", Date: ts(base)}})
	})

	t.Run("alarms and reminders", func(t *testing.T) {
		roundTrip(t, []Alarm{{Meta: meta("a"), Title: "wake", Time: "07:30", Days: []Weekday{Monday, Friday}, IsActive: true}})
		roundTrip(t, []Reminder{{Meta: meta("r"), Title: "call", DateTime: ts(base.Add(time.Hour)), IsActive: true, IsRecurring: true, RecurringType: RecurWeekly}})
	})

	t.Run("wellbeing", func(t *testing.T) {
		roundTrip(t, []MoodEntry{{Meta: meta("m"), Date: ts(base), Mood: 4, Energy: 3, Stress: 2, Activities: []string{"run"}}})
		roundTrip(t, []FocusSession{{Meta: meta("f"), Technique: FocusDeepWork, StartTime: ts(base), EndTime: p(time.Hour), Completed: true}})
		roundTrip(t, []WellbeingGoal{{Meta: meta("g"), Title: "sleep", Target: 30, Current: 28, Deadline: ts(base.Add(240 * time.Hour))}})
	})

	t.Run("collaboration with nested dates", func(t *testing.T) {
		roundTrip(t, []StudyGroup{{
			Meta: meta("g"), Name: "algo", Members: []GroupMember{{ID: "u", Name: "You", Role: RoleAdmin, JoinedAt: ts(base)}},
		}})
		roundTrip(t, []Project{{
			Meta: meta("p"), Title: "app", DueDate: ts(base.Add(48 * time.Hour)),
			Tasks: []ProjectTask{{ID: "pt", Title: "ui", AssignedTo: []string{"u"}, DueDate: p(time.Hour), CreatedAt: ts(base)}},
			Files: []SharedFile{{ID: "f", Name: "spec.pdf", UploadedAt: ts(base)}},
		}})
		roundTrip(t, []MeetingSchedule{{
			Meta: meta("mt"), Title: "sync", Date: ts(base), Participants: []string{},
			Recurring: &Recurring{Frequency: "weekly", EndDate: p(2000 * time.Hour)},
		}})
	})

	t.Run("utilities", func(t *testing.T) {
		roundTrip(t, []WaterIntake{{Meta: meta("w"), Amount: 250, Timestamp: ts(base)}})
		roundTrip(t, []PomodoroSession{{Meta: meta("ps"), Type: SessionWork, Duration: 25, Completed: true, StartTime: ts(base), EndTime: p(25 * time.Minute)}})
		roundTrip(t, []Bookmark{{Meta: meta("b"), Title: "go", URL: "https://go.dev", Category: "dev"}})
		roundTrip(t, []StickyNote{{Meta: meta("sn"), Color: ColorPink, Position: Position{X: 1, Y: 2}, Size: Size{Width: 200, Height: 150}}})
	})
}

func TestBudget_SpentNotPersisted(t *testing.T) {
	b, err := json.Marshal(Budget{Category: ExpenseFood, Limit: 300, Spent: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"food","limit":300}`, string(b))
}

func TestTodo_DecodesLegacyShapes(t *testing.T) {
	raw := []byte(`[{"id":"x","title":"t","completed":false,"category":"study","priority":"low","dueDate":"2024-01-05","createdAt":1704067200000,"updatedAt":1704067200000}]`)

	got, err := codec.JSONCodec[Todo]{}.Decode(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].DueDate)
	assert.Equal(t, "2024-01-05T00:00:00.000Z", got[0].DueDate.String())
	assert.Equal(t, "2024-01-01T00:00:00.000Z", got[0].CreatedAt.String())
}

func TestAllKeys_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range AllKeys {
		assert.False(t, seen[k], k)
		seen[k] = true
	}
	assert.Len(t, AllKeys, 25)
}
