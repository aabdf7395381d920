package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

const week = 7 * 24 * time.Hour

// TaskService manages study tasks and the records around them: study
// sessions, study plans and assignments.
type TaskService struct {
	tasks       *collection.Store[models.Task, *models.Task]
	sessions    *collection.Store[models.StudySession, *models.StudySession]
	plans       *collection.Store[models.StudyPlan, *models.StudyPlan]
	assignments *collection.Store[models.Assignment, *models.Assignment]

	clock clockwork.Clock
	newID func() string
}

func NewTaskService(d Deps) *TaskService {
	d = d.normalize()
	opts := d.storeOptions()
	return &TaskService{
		tasks:       collection.New[models.Task](d.Backend, models.KeyTasks, opts...),
		sessions:    collection.New[models.StudySession](d.Backend, models.KeyStudySessions, opts...),
		plans:       collection.New[models.StudyPlan](d.Backend, models.KeyStudyPlans, opts...),
		assignments: collection.New[models.Assignment](d.Backend, models.KeyAssignments, opts...),
		clock:       d.Clock,
		newID:       d.NewID,
	}
}

func (s *TaskService) Load(ctx context.Context) error {
	return loadAll(ctx, s.tasks, s.sessions, s.plans, s.assignments)
}

func (s *TaskService) Reload(ctx context.Context) error {
	return reloadAll(ctx, s.tasks, s.sessions, s.plans, s.assignments)
}

// AddTask stores a new task with no subtasks or reminders.
func (s *TaskService) AddTask(ctx context.Context, t models.Task) (models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return models.Task{}, fmt.Errorf("task title is required: %w", common.ErrInvalidInput)
	}
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.Tags = orEmpty(t.Tags)
	t.Subtasks = []models.Subtask{}
	t.Reminders = []models.TaskReminder{}
	if t.Status == models.StatusCompleted {
		t.CompletedAt = codec.Ptr(s.clock.Now())
	}
	return s.tasks.Create(ctx, t)
}

// UpdateTask applies fn and stamps CompletedAt the first time the task
// reaches the completed status.
func (s *TaskService) UpdateTask(ctx context.Context, id string, fn func(*models.Task)) (bool, error) {
	return s.tasks.Update(ctx, id, func(t *models.Task) {
		fn(t)
		if t.Status == models.StatusCompleted && t.CompletedAt == nil {
			t.CompletedAt = codec.Ptr(s.clock.Now())
		}
	})
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) (bool, error) {
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) Task(id string) (models.Task, bool) { return s.tasks.Get(id) }

func (s *TaskService) Tasks() []models.Task { return s.tasks.Items() }

func (s *TaskService) AddSubtask(ctx context.Context, taskID, title string) (models.Subtask, bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Subtask{}, false, fmt.Errorf("subtask title is required: %w", common.ErrInvalidInput)
	}
	st := models.Subtask{ID: s.newID(), Title: title, CreatedAt: codec.NewTimestamp(s.clock.Now())}
	ok, err := s.tasks.Update(ctx, taskID, func(t *models.Task) {
		t.Subtasks = append(slices.Clone(t.Subtasks), st)
	})
	return st, ok, err
}

// ToggleSubtask reports false when either id is unknown; nothing is written
// in that case.
func (s *TaskService) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (bool, error) {
	t, ok := s.tasks.Get(taskID)
	if !ok {
		return false, nil
	}
	match := func(st models.Subtask) bool { return st.ID == subtaskID }
	if !slices.ContainsFunc(t.Subtasks, match) {
		return false, nil
	}
	return s.tasks.Update(ctx, taskID, func(t *models.Task) {
		subs := slices.Clone(t.Subtasks)
		if i := slices.IndexFunc(subs, match); i >= 0 {
			subs[i].Completed = !subs[i].Completed
		}
		t.Subtasks = subs
	})
}

func (s *TaskService) AddReminder(ctx context.Context, taskID string, r models.TaskReminder) (models.TaskReminder, bool, error) {
	if r.Time.IsZero() {
		return models.TaskReminder{}, false, fmt.Errorf("reminder time is required: %w", common.ErrInvalidInput)
	}
	if r.Type == "" {
		r.Type = models.ChannelNotification
	}
	r.ID = s.newID()
	ok, err := s.tasks.Update(ctx, taskID, func(t *models.Task) {
		t.Reminders = append(slices.Clone(t.Reminders), r)
	})
	return r, ok, err
}

func taskDue(t models.Task) (time.Time, bool) {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return time.Time{}, false
	}
	return t.DueDate.Time, true
}

func taskClosed(t models.Task) bool {
	return t.Status == models.StatusCompleted || t.Status == models.StatusCancelled
}

// Overdue lists open tasks whose due instant has passed.
func (s *TaskService) Overdue() []models.Task {
	return aggregate.Overdue(s.tasks.Items(), s.clock.Now(), taskDue, taskClosed)
}

func (s *TaskService) DueToday() []models.Task {
	return aggregate.DueOn(s.tasks.Items(), s.clock.Now(), taskDue)
}

func (s *TaskService) AddStudySession(ctx context.Context, ss models.StudySession) (models.StudySession, error) {
	if ss.Duration < 0 {
		return models.StudySession{}, fmt.Errorf("negative duration: %w", common.ErrInvalidInput)
	}
	if ss.StartTime.IsZero() {
		ss.StartTime = codec.NewTimestamp(s.clock.Now())
	}
	if ss.EndTime.IsZero() {
		ss.EndTime = codec.NewTimestamp(ss.StartTime.Add(time.Duration(ss.Duration) * time.Minute))
	}
	return s.sessions.Create(ctx, ss)
}

func (s *TaskService) StudySessions() []models.StudySession { return s.sessions.Items() }

func (s *TaskService) AddStudyPlan(ctx context.Context, p models.StudyPlan) (models.StudyPlan, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.StudyPlan{}, fmt.Errorf("plan name is required: %w", common.ErrInvalidInput)
	}
	p.Subjects = orEmpty(p.Subjects)
	return s.plans.Create(ctx, p)
}

func (s *TaskService) StudyPlans() []models.StudyPlan { return s.plans.Items() }

func (s *TaskService) AddAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if strings.TrimSpace(a.Title) == "" {
		return models.Assignment{}, fmt.Errorf("assignment title is required: %w", common.ErrInvalidInput)
	}
	if a.Status == "" {
		a.Status = models.AssignmentNotStarted
	}
	a.Requirements = orEmpty(a.Requirements)
	a.Resources = orEmpty(a.Resources)
	return s.assignments.Create(ctx, a)
}

func (s *TaskService) UpdateAssignment(ctx context.Context, id string, fn func(*models.Assignment)) (bool, error) {
	return s.assignments.Update(ctx, id, fn)
}

func (s *TaskService) Assignments() []models.Assignment { return s.assignments.Items() }

func (s *TaskService) Stats() models.TaskStats {
	now := s.clock.Now()
	items := s.tasks.Items()

	return models.TaskStats{
		Total:    len(items),
		Overdue:  len(aggregate.Overdue(items, now, taskDue, taskClosed)),
		DueToday: len(aggregate.DueOn(items, now, taskDue)),
		ByStatus: aggregate.CountBy(items,
			func(t models.Task) models.TaskStatus { return t.Status }, models.TaskStatuses),
		ByPriority: aggregate.CountBy(items,
			func(t models.Task) models.Priority { return t.Priority }, models.TaskPriorities),
		ByCategory: aggregate.CountBy(items,
			func(t models.Task) models.TaskCategory { return t.Category }, models.TaskCategories),
		WeeklyStudyMinutes: aggregate.WindowSums(s.sessions.Items(), now, week, 7,
			func(ss models.StudySession) time.Time { return ss.StartTime.Time },
			func(ss models.StudySession) float64 { return float64(ss.Duration) }),
	}
}
