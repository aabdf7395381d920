package cli

import (
	"context"
	"fmt"

	"github.com/nanatgrail/prodigyspace/internal/models"
)

func goalID(g models.WellbeingGoal) string { return g.ID }

func (a *App) moodCommands() group {
	return group{
		"add":   {usage: "mood add <mood 1-5> <energy 1-5> <stress 1-5> [notes] [did=a,b]", run: a.moodAdd},
		"list":  {usage: "mood list", run: a.moodList},
		"stats": {usage: "mood stats", run: a.wellbeingStats},
	}
}

func (a *App) moodAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	if len(p.words) < 3 {
		return usage("mood add <mood 1-5> <energy 1-5> <stress 1-5> [notes]")
	}
	var scores [3]int
	for i := range scores {
		n, err := atoi(p.words[i])
		if err != nil {
			return err
		}
		scores[i] = n
	}

	m, err := a.reg.Wellbeing.AddMood(ctx, models.MoodEntry{
		Mood:       scores[0],
		Energy:     scores[1],
		Stress:     scores[2],
		Notes:      parsedArgs{words: p.words[3:]}.text(),
		Activities: p.list("did", "activities"),
	})
	if err != nil {
		return err
	}
	a.done("Logged mood %d/5", m.Mood)
	return nil
}

func (a *App) moodList(context.Context, []string) error {
	list := a.reg.Wellbeing.MoodEntries()
	a.heading(fmt.Sprintf("Mood entries (%d)", len(list)))
	for _, m := range list {
		a.printf("%s  mood %d  energy %d  stress %d  %s\n", minuteOf(m.Date), m.Mood, m.Energy, m.Stress, m.Notes)
	}
	return nil
}

func (a *App) wellbeingStats(context.Context, []string) error {
	s := a.reg.Wellbeing.Stats()
	a.heading("Wellbeing")
	a.printf("average mood %.1f  energy %.1f  stress %.1f\n", s.AverageMood, s.AverageEnergy, s.AverageStress)
	a.printf("meditation %.0f min  focus %.0f min\n", s.MeditationMinutes, s.FocusMinutes)
	for _, g := range s.GoalProgress {
		a.printf("  %-30s %5.1f%%\n", g.Title, g.Percent)
	}
	return nil
}

func (a *App) goalCommands() group {
	return group{
		"add":  {usage: "goal add <title> target=<n> [unit=...] [cat=...]", run: a.goalAdd},
		"list": {usage: "goal list", run: a.goalList},
		"inc":  {usage: "goal inc <id> [delta]", run: a.goalIncrement},
		"set":  {usage: "goal set <id> <progress>", run: a.goalSet},
		"rm":   {usage: "goal rm <id>", run: a.goalDelete},
	}
}

func (a *App) goalAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	target, err := p.floatOpt(0, "target")
	if err != nil {
		return err
	}
	if p.text() == "" || target <= 0 {
		return usage("goal add <title> target=<n> [unit=...] [cat=...]")
	}
	deadline, err := p.date("deadline", "due")
	if err != nil {
		return err
	}

	g := models.WellbeingGoal{
		Title:    p.text(),
		Category: models.GoalCategory(p.opt("cat", "category")),
		Target:   target,
		Unit:     p.opt("unit"),
	}
	if deadline != nil {
		g.Deadline = *deadline
	}
	g, err = a.reg.Wellbeing.AddGoal(ctx, g)
	if err != nil {
		return err
	}
	a.done("Added goal %s", shortID(g.ID))
	return nil
}

func (a *App) goalList(context.Context, []string) error {
	list := a.reg.Wellbeing.Goals()
	a.heading(fmt.Sprintf("Goals (%d)", len(list)))
	for _, g := range list {
		a.printf("%s  %-30s %g/%g %s\n", shortID(g.ID), g.Title, g.Current, g.Target, g.Unit)
	}
	return nil
}

func (a *App) goalIncrement(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("goal inc <id> [delta]")
	}
	delta := 1.0
	if len(args) == 2 {
		d, err := atof(args[1])
		if err != nil {
			return err
		}
		delta = d
	}
	id, err := matchID(a.reg.Wellbeing.Goals(), goalID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Wellbeing.IncrementGoalProgress(ctx, id, delta)
	if err := found(ok, err, "goal", args[0]); err != nil {
		return err
	}
	return a.goalList(ctx, nil)
}

func (a *App) goalSet(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("goal set <id> <progress>")
	}
	v, err := atof(args[1])
	if err != nil {
		return err
	}
	id, err := matchID(a.reg.Wellbeing.Goals(), goalID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Wellbeing.SetGoalProgress(ctx, id, v)
	if err := found(ok, err, "goal", args[0]); err != nil {
		return err
	}
	return a.goalList(ctx, nil)
}

func (a *App) goalDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("goal rm <id>")
	}
	id, err := matchID(a.reg.Wellbeing.Goals(), goalID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Wellbeing.DeleteGoal(ctx, id)
	if err := found(ok, err, "goal", args[0]); err != nil {
		return err
	}
	a.done("Deleted goal %s", shortID(id))
	return nil
}
