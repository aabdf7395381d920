package cli

import (
	"context"
	"fmt"

	"github.com/nanatgrail/prodigyspace/internal/models"
)

func todoID(t models.Todo) string { return t.ID }

func (a *App) todoCommands() group {
	return group{
		"add":     {usage: "todo add <title> [due=YYYY-MM-DD] [cat=...] [prio=...] [desc=...]", run: a.todoAdd},
		"list":    {usage: "todo list [category]", run: a.todoList},
		"done":    {usage: "todo done <id>", run: a.todoToggle},
		"rm":      {usage: "todo rm <id>", run: a.todoDelete},
		"overdue": {usage: "todo overdue", run: a.todoOverdue},
		"today":   {usage: "todo today", run: a.todoToday},
		"stats":   {usage: "todo stats", run: a.todoStats},
	}
}

func (a *App) todoAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	if p.text() == "" {
		return usage("todo add <title> [due=YYYY-MM-DD] [cat=...] [prio=...]")
	}
	due, err := p.date("due")
	if err != nil {
		return err
	}

	t, err := a.reg.Todos.Add(ctx, models.Todo{
		Title:       p.text(),
		Description: p.opt("desc", "description"),
		Category:    models.TodoCategory(p.opt("cat", "category")),
		Priority:    models.Priority(p.opt("prio", "priority")),
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	a.done("Added todo %s", shortID(t.ID))
	return nil
}

func (a *App) todoList(_ context.Context, args []string) error {
	todos := a.reg.Todos.List()
	if len(args) > 0 {
		todos = a.reg.Todos.ByCategory(models.TodoCategory(args[0]))
	}
	a.printTodos("Todos", todos)
	return nil
}

func (a *App) printTodos(title string, todos []models.Todo) {
	a.heading(fmt.Sprintf("%s (%d)", title, len(todos)))
	for _, t := range todos {
		a.printf("%s %s  %-40s %-11s %-6s due %s\n",
			check(t.Completed), shortID(t.ID), t.Title, t.Category, t.Priority, dayOf(t.DueDate))
	}
}

func (a *App) todoToggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("todo done <id>")
	}
	id, err := matchID(a.reg.Todos.List(), todoID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Todos.Toggle(ctx, id)
	if err := found(ok, err, "todo", args[0]); err != nil {
		return err
	}
	t, _ := a.reg.Todos.Get(id)
	a.done("%s %s", check(t.Completed), t.Title)
	return nil
}

func (a *App) todoDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("todo rm <id>")
	}
	id, err := matchID(a.reg.Todos.List(), todoID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Todos.Delete(ctx, id)
	if err := found(ok, err, "todo", args[0]); err != nil {
		return err
	}
	a.done("Deleted todo %s", shortID(id))
	return nil
}

func (a *App) todoOverdue(context.Context, []string) error {
	a.printTodos("Overdue", a.reg.Todos.Overdue())
	return nil
}

func (a *App) todoToday(context.Context, []string) error {
	a.printTodos("Due today", a.reg.Todos.Today())
	return nil
}

func (a *App) todoStats(context.Context, []string) error {
	s := a.reg.Todos.Stats()
	a.heading("Todo stats")
	a.printf("total %d  completed %d  pending %d  overdue %d  today %d\n",
		s.Total, s.Completed, s.Pending, s.Overdue, s.TodayTasks)
	for _, c := range models.TodoCategories {
		a.printf("  %-12s %d\n", c, s.CategoryBreakdown[c])
	}
	return nil
}
