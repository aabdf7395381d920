package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/export"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

var todoCategoryLabels = map[models.TodoCategory]string{
	models.TodoStudy:       "Study",
	models.TodoPersonal:    "Personal",
	models.TodoAssignments: "Assignments",
	models.TodoProjects:    "Projects",
	models.TodoOther:       "Other",
}

var priorityLabels = map[models.Priority]string{
	models.PriorityLow:    "Low",
	models.PriorityMedium: "Medium",
	models.PriorityHigh:   "High",
	models.PriorityUrgent: "Urgent",
}

// TodoService manages the quick todo list. Due dates are calendar days:
// overdue and today are judged against the current UTC date.
type TodoService struct {
	store *collection.Store[models.Todo, *models.Todo]
	clock clockwork.Clock
}

func NewTodoService(d Deps) *TodoService {
	d = d.normalize()
	return &TodoService{
		store: collection.New[models.Todo](d.Backend, models.KeyTodos, d.storeOptions()...),
		clock: d.Clock,
	}
}

func (s *TodoService) Load(ctx context.Context) error   { return s.store.Load(ctx) }
func (s *TodoService) Reload(ctx context.Context) error { return s.store.Reload(ctx) }
func (s *TodoService) Loading() bool                    { return s.store.Loading() }

func (s *TodoService) Add(ctx context.Context, t models.Todo) (models.Todo, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return models.Todo{}, fmt.Errorf("todo title is required: %w", common.ErrInvalidInput)
	}
	if t.Category == "" {
		t.Category = models.TodoOther
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	return s.store.Create(ctx, t)
}

func (s *TodoService) Update(ctx context.Context, id string, fn func(*models.Todo)) (bool, error) {
	return s.store.Update(ctx, id, fn)
}

func (s *TodoService) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

func (s *TodoService) Toggle(ctx context.Context, id string) (bool, error) {
	return s.store.Toggle(ctx, id, func(t *models.Todo) *bool { return &t.Completed })
}

func (s *TodoService) Get(id string) (models.Todo, bool) { return s.store.Get(id) }

// List returns todos newest first.
func (s *TodoService) List() []models.Todo {
	return newestFirst(s.store.Items())
}

func (s *TodoService) ByCategory(c models.TodoCategory) []models.Todo {
	return aggregate.Filter(s.List(), func(t models.Todo) bool { return t.Category == c })
}

func (s *TodoService) ByPriority(p models.Priority) []models.Todo {
	return aggregate.Filter(s.List(), func(t models.Todo) bool { return t.Priority == p })
}

func todoDue(t models.Todo) (time.Time, bool) {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return time.Time{}, false
	}
	return t.DueDate.Time, true
}

func todoDone(t models.Todo) bool { return t.Completed }

func (s *TodoService) today() time.Time {
	return s.clock.Now().UTC().Truncate(24 * time.Hour)
}

// Overdue lists open todos due before today.
func (s *TodoService) Overdue() []models.Todo {
	return aggregate.Overdue(s.List(), s.today(), todoDue, todoDone)
}

// Today lists todos due today, completed or not.
func (s *TodoService) Today() []models.Todo {
	return aggregate.DueOn(s.List(), s.today(), todoDue)
}

func (s *TodoService) Stats() models.TodoStats {
	items := s.store.Items()
	today := s.today()

	completed := aggregate.Count(items, todoDone)
	return models.TodoStats{
		Total:      len(items),
		Completed:  completed,
		Pending:    len(items) - completed,
		Overdue:    len(aggregate.Overdue(items, today, todoDue, todoDone)),
		TodayTasks: len(aggregate.DueOn(items, today, todoDue)),
		CategoryBreakdown: aggregate.CountBy(items,
			func(t models.Todo) models.TodoCategory { return t.Category }, models.TodoCategories),
	}
}

// CSV flattens todos for export, newest first.
func (s *TodoService) CSV() export.Table {
	t := export.Table{
		Headers: []string{"Title", "Description", "Category", "Priority", "Due Date", "Completed", "Created At"},
	}
	for _, todo := range s.List() {
		due := ""
		if d, ok := todoDue(todo); ok {
			due = d.Format(time.DateOnly)
		}
		t.Rows = append(t.Rows, []string{
			todo.Title,
			todo.Description,
			label(todoCategoryLabels, todo.Category),
			label(priorityLabels, todo.Priority),
			due,
			yesNo(todo.Completed),
			todo.CreatedAt.Format(time.DateOnly),
		})
	}
	return t
}

func label[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
