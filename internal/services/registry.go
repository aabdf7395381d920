package services

import "context"

// Registry holds one instance of every service, wired to the same backend.
type Registry struct {
	Todos     *TodoService
	Tasks     *TaskService
	Notes     *NoteService
	Expenses  *ExpenseService
	Alarms    *AlarmService
	Wellbeing *WellbeingService
	Sticky    *StickyService
	Bookmarks *BookmarkService
	Water     *WaterService
	Pomodoro  *PomodoroService
	Collab    *CollabService
}

func NewRegistry(d Deps) *Registry {
	return &Registry{
		Todos:     NewTodoService(d),
		Tasks:     NewTaskService(d),
		Notes:     NewNoteService(d),
		Expenses:  NewExpenseService(d),
		Alarms:    NewAlarmService(d),
		Wellbeing: NewWellbeingService(d),
		Sticky:    NewStickyService(d),
		Bookmarks: NewBookmarkService(d),
		Water:     NewWaterService(d),
		Pomodoro:  NewPomodoroService(d),
		Collab:    NewCollabService(d),
	}
}

func (r *Registry) all() []loader {
	return []loader{
		r.Todos, r.Tasks, r.Notes, r.Expenses, r.Alarms, r.Wellbeing,
		r.Sticky, r.Bookmarks, r.Water, r.Pomodoro, r.Collab,
	}
}

// LoadAll loads every collection once.
func (r *Registry) LoadAll(ctx context.Context) error {
	return loadAll(ctx, r.all()...)
}

// ReloadAll re-reads every collection, used after an import or restore
// replaced the stored data.
func (r *Registry) ReloadAll(ctx context.Context) error {
	return reloadAll(ctx, r.all()...)
}
