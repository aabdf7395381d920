package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

func taskID(t models.Task) string { return t.ID }

func (a *App) taskCommands() group {
	return group{
		"add":     {usage: "task add <title> [due=...] [cat=...] [prio=...] [course=...] [tags=a,b]", run: a.taskAdd},
		"list":    {usage: "task list", run: a.taskList},
		"show":    {usage: "task show <id>", run: a.taskShow},
		"status":  {usage: "task status <id> todo|in-progress|completed|cancelled", run: a.taskStatus},
		"sub":     {usage: "task sub <id> <title>", run: a.taskSubtask},
		"subdone": {usage: "task subdone <id> <subtask-id>", run: a.taskSubtaskToggle},
		"remind":  {usage: "task remind <id> at=YYYY-MM-DD_HH:MM [msg]", run: a.taskRemind},
		"rm":      {usage: "task rm <id>", run: a.taskDelete},
		"overdue": {usage: "task overdue", run: a.taskOverdue},
		"stats":   {usage: "task stats", run: a.taskStats},
	}
}

func (a *App) taskAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	if p.text() == "" {
		return usage("task add <title> [due=...] [cat=...] [prio=...]")
	}
	due, err := p.date("due")
	if err != nil {
		return err
	}
	est, err := p.intOpt(0, "est", "estimate")
	if err != nil {
		return err
	}

	t, err := a.reg.Tasks.AddTask(ctx, models.Task{
		Title:         p.text(),
		Description:   p.opt("desc", "description"),
		Category:      models.TaskCategory(p.opt("cat", "category")),
		Priority:      models.Priority(p.opt("prio", "priority")),
		DueDate:       due,
		EstimatedTime: est,
		Tags:          p.list("tags"),
		Course:        p.opt("course"),
		Professor:     p.opt("prof", "professor"),
	})
	if err != nil {
		return err
	}
	a.done("Added task %s", shortID(t.ID))
	return nil
}

func (a *App) printTasks(title string, tasks []models.Task) {
	a.heading(fmt.Sprintf("%s (%d)", title, len(tasks)))
	for _, t := range tasks {
		done := 0
		for _, s := range t.Subtasks {
			if s.Completed {
				done++
			}
		}
		a.printf("%s  %-36s %-12s %-7s due %s  subtasks %d/%d\n",
			shortID(t.ID), t.Title, t.Status, t.Priority, dayOf(t.DueDate), done, len(t.Subtasks))
	}
}

func (a *App) taskList(context.Context, []string) error {
	a.printTasks("Tasks", a.reg.Tasks.Tasks())
	return nil
}

func (a *App) taskOverdue(context.Context, []string) error {
	a.printTasks("Overdue tasks", a.reg.Tasks.Overdue())
	return nil
}

func (a *App) lookupTask(prefix string) (models.Task, error) {
	id, err := matchID(a.reg.Tasks.Tasks(), taskID, prefix)
	if err != nil {
		return models.Task{}, err
	}
	t, ok := a.reg.Tasks.Task(id)
	if !ok {
		return models.Task{}, notFound("task", prefix)
	}
	return t, nil
}

func (a *App) taskShow(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("task show <id>")
	}
	t, err := a.lookupTask(args[0])
	if err != nil {
		return err
	}

	a.heading(t.Title)
	a.printf("id %s\nstatus %s  priority %s  category %s  due %s\n", t.ID, t.Status, t.Priority, t.Category, dayOf(t.DueDate))
	if t.Description != "" {
		a.printf("%s\n", t.Description)
	}
	if len(t.Tags) > 0 {
		a.printf("tags: %s\n", strings.Join(t.Tags, ", "))
	}
	for _, s := range t.Subtasks {
		a.printf("  %s %s %s\n", check(s.Completed), shortID(s.ID), s.Title)
	}
	for _, r := range t.Reminders {
		a.printf("  reminder %s %s\n", minuteOf(r.Time), r.Message)
	}
	return nil
}

func (a *App) taskStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("task status <id> todo|in-progress|completed|cancelled")
	}
	status := models.TaskStatus(args[1])
	if !slices.Contains(models.TaskStatuses, status) {
		return fmt.Errorf("unknown status %q: %w", args[1], common.ErrInvalidInput)
	}
	t, err := a.lookupTask(args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Tasks.UpdateTask(ctx, t.ID, func(t *models.Task) { t.Status = status })
	if err := found(ok, err, "task", args[0]); err != nil {
		return err
	}
	a.done("%s is now %s", t.Title, status)
	return nil
}

func (a *App) taskSubtask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("task sub <id> <title>")
	}
	t, err := a.lookupTask(args[0])
	if err != nil {
		return err
	}
	sub, ok, err := a.reg.Tasks.AddSubtask(ctx, t.ID, strings.Join(args[1:], " "))
	if err := found(ok, err, "task", args[0]); err != nil {
		return err
	}
	a.done("Added subtask %s", shortID(sub.ID))
	return nil
}

func (a *App) taskSubtaskToggle(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("task subdone <id> <subtask-id>")
	}
	t, err := a.lookupTask(args[0])
	if err != nil {
		return err
	}
	subID, err := matchID(t.Subtasks, func(s models.Subtask) string { return s.ID }, args[1])
	if err != nil {
		return err
	}
	ok, err := a.reg.Tasks.ToggleSubtask(ctx, t.ID, subID)
	if err := found(ok, err, "subtask", args[1]); err != nil {
		return err
	}
	a.done("Toggled subtask %s", shortID(subID))
	return nil
}

func (a *App) taskRemind(ctx context.Context, args []string) error {
	p := parseArgs(args)
	id, msg := p.first()
	at, err := p.date("at")
	if err != nil {
		return err
	}
	if id == "" || at == nil {
		return usage("task remind <id> at=YYYY-MM-DD_HH:MM [msg]")
	}
	t, err := a.lookupTask(id)
	if err != nil {
		return err
	}
	_, ok, err := a.reg.Tasks.AddReminder(ctx, t.ID, models.TaskReminder{Time: *at, Message: msg})
	if err := found(ok, err, "task", id); err != nil {
		return err
	}
	a.done("Reminder set for %s", minuteOf(*at))
	return nil
}

func (a *App) taskDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("task rm <id>")
	}
	id, err := matchID(a.reg.Tasks.Tasks(), taskID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Tasks.DeleteTask(ctx, id)
	if err := found(ok, err, "task", args[0]); err != nil {
		return err
	}
	a.done("Deleted task %s", shortID(id))
	return nil
}

func (a *App) taskStats(context.Context, []string) error {
	s := a.reg.Tasks.Stats()
	a.heading("Task stats")
	a.printf("total %d  overdue %d  due today %d\n", s.Total, s.Overdue, s.DueToday)
	for _, st := range models.TaskStatuses {
		a.printf("  %-12s %d\n", st, s.ByStatus[st])
	}
	a.printf("study minutes per week (oldest first): %v\n", s.WeeklyStudyMinutes)
	return nil
}

func (a *App) studyCommands() group {
	return group{
		"log":         {usage: "study log <subject> min=<minutes> [topic=...] [technique=...] [prod=1..5]", run: a.studyLog},
		"sessions":    {usage: "study sessions", run: a.studySessions},
		"assign":      {usage: "study assign <title> due=YYYY-MM-DD [course=...] [type=...]", run: a.studyAssign},
		"assignments": {usage: "study assignments", run: a.studyAssignments},
	}
}

func (a *App) studyLog(ctx context.Context, args []string) error {
	p := parseArgs(args)
	minutes, err := p.intOpt(0, "min", "minutes")
	if err != nil {
		return err
	}
	prod, err := p.intOpt(3, "prod", "productivity")
	if err != nil {
		return err
	}
	if p.text() == "" || minutes <= 0 {
		return usage("study log <subject> min=<minutes>")
	}
	technique := models.StudyTechnique(p.opt("technique"))
	if technique == "" {
		technique = models.TechniquePomodoro
	}

	ss, err := a.reg.Tasks.AddStudySession(ctx, models.StudySession{
		Subject:      p.text(),
		Topic:        p.opt("topic"),
		Duration:     minutes,
		Technique:    technique,
		Productivity: prod,
		TaskID:       p.opt("task"),
	})
	if err != nil {
		return err
	}
	a.done("Logged %d min of %s", ss.Duration, ss.Subject)
	return nil
}

func (a *App) studySessions(context.Context, []string) error {
	sessions := a.reg.Tasks.StudySessions()
	a.heading(fmt.Sprintf("Study sessions (%d)", len(sessions)))
	for _, s := range sessions {
		a.printf("%s  %-20s %-20s %3d min  %s\n", minuteOf(s.StartTime), s.Subject, s.Topic, s.Duration, s.Technique)
	}
	return nil
}

func (a *App) studyAssign(ctx context.Context, args []string) error {
	p := parseArgs(args)
	due, err := p.date("due")
	if err != nil {
		return err
	}
	if p.text() == "" || due == nil {
		return usage("study assign <title> due=YYYY-MM-DD")
	}
	as, err := a.reg.Tasks.AddAssignment(ctx, models.Assignment{
		Title:     p.text(),
		Course:    p.opt("course"),
		Professor: p.opt("prof", "professor"),
		Type:      models.AssignmentType(p.opt("type")),
		DueDate:   *due,
		Priority:  models.Priority(p.opt("prio", "priority")),
	})
	if err != nil {
		return err
	}
	a.done("Added assignment %s", shortID(as.ID))
	return nil
}

func (a *App) studyAssignments(context.Context, []string) error {
	list := a.reg.Tasks.Assignments()
	a.heading(fmt.Sprintf("Assignments (%d)", len(list)))
	for _, as := range list {
		a.printf("%s  %-30s %-14s %-12s due %s\n", shortID(as.ID), as.Title, as.Course, as.Status, dayOf(&as.DueDate))
	}
	return nil
}
