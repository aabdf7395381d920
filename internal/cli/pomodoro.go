package cli

import (
	"context"
	"fmt"

	"github.com/nanatgrail/prodigyspace/internal/models"
	"github.com/nanatgrail/prodigyspace/internal/services"
)

func (a *App) pomodoroCommands() group {
	return group{
		"start":    {usage: "pomo start [work|break]", run: a.pomoStart},
		"pause":    {usage: "pomo pause", run: a.pomoPause},
		"resume":   {usage: "pomo resume", run: a.pomoResume},
		"stop":     {usage: "pomo stop", run: a.pomoStop},
		"status":   {usage: "pomo status", run: a.pomoStatus},
		"settings": {usage: "pomo settings [work=25] [short=5] [long=15] [every=4]", run: a.pomoSettings},
	}
}

func (a *App) pomoStart(ctx context.Context, args []string) error {
	typ := models.SessionWork
	if len(args) > 0 {
		typ = models.SessionType(args[0])
	}
	s, err := a.reg.Pomodoro.Start(ctx, typ)
	if err != nil {
		return err
	}
	a.done("🍅 %s session started (%d min)", s.Type, s.Duration)
	return nil
}

func (a *App) pomoPause(ctx context.Context, _ []string) error {
	a.reg.Pomodoro.Pause()
	return a.pomoStatus(ctx, nil)
}

func (a *App) pomoResume(ctx context.Context, _ []string) error {
	if !a.reg.Pomodoro.Resume(ctx) {
		a.printf("%s\n", a.st.muted.Render("nothing to resume"))
		return nil
	}
	return a.pomoStatus(ctx, nil)
}

func (a *App) pomoStop(context.Context, []string) error {
	a.reg.Pomodoro.Stop()
	a.done("Session discarded")
	return nil
}

func (a *App) pomoStatus(context.Context, []string) error {
	p := a.reg.Pomodoro
	cur, ok := p.Current()
	switch {
	case !ok:
		a.printf("no session\n")
	case p.Running():
		a.printf("%s running, %s left\n", cur.Type, services.FormatClock(p.TimeLeft()))
	default:
		a.printf("%s paused, %s left\n", cur.Type, services.FormatClock(p.TimeLeft()))
	}
	a.printf("completed today: %d\n", len(p.TodaySessions()))
	return nil
}

func (a *App) pomoSettings(ctx context.Context, args []string) error {
	st := a.reg.Pomodoro.Settings()
	if len(args) > 0 {
		p := parseArgs(args)
		var err error
		if st.WorkDuration, err = p.intOpt(st.WorkDuration, "work"); err != nil {
			return err
		}
		if st.ShortBreakDuration, err = p.intOpt(st.ShortBreakDuration, "short"); err != nil {
			return err
		}
		if st.LongBreakDuration, err = p.intOpt(st.LongBreakDuration, "long"); err != nil {
			return err
		}
		if st.SessionsUntilLongBreak, err = p.intOpt(st.SessionsUntilLongBreak, "every"); err != nil {
			return err
		}
		if err := a.reg.Pomodoro.UpdateSettings(ctx, st); err != nil {
			return err
		}
	}
	a.printf("work %d min, short break %d min, long break %d min every %d sessions\n",
		st.WorkDuration, st.ShortBreakDuration, st.LongBreakDuration, st.SessionsUntilLongBreak)
	return nil
}

func groupID(g models.StudyGroup) string { return g.ID }

func (a *App) groupCommands() group {
	return group{
		"create":   {usage: "group create <name> [subject=...]", run: a.groupCreate},
		"list":     {usage: "group list", run: a.groupList},
		"join":     {usage: "group join <id> <email> [name=...]", run: a.groupAddMember},
		"say":      {usage: "group say <id> <message>", run: a.groupSay},
		"chat":     {usage: "group chat <id>", run: a.groupChat},
		"meet":     {usage: "group meet <title> at=YYYY-MM-DD_HH:MM [min=60] [where=...]", run: a.groupMeet},
		"meetings": {usage: "group meetings", run: a.groupMeetings},
		"rm":       {usage: "group rm <id>", run: a.groupDelete},
	}
}

func (a *App) lookupGroup(prefix string) (string, error) {
	return matchID(a.reg.Collab.Groups(), groupID, prefix)
}

func (a *App) groupCreate(ctx context.Context, args []string) error {
	p := parseArgs(args)
	if p.text() == "" {
		return usage("group create <name> [subject=...]")
	}
	g, err := a.reg.Collab.CreateGroup(ctx, models.StudyGroup{
		Name:        p.text(),
		Subject:     p.opt("subject"),
		Description: p.opt("desc", "description"),
		IsActive:    true,
	})
	if err != nil {
		return err
	}
	a.done("Created group %s", shortID(g.ID))
	return nil
}

func (a *App) groupList(context.Context, []string) error {
	list := a.reg.Collab.Groups()
	a.heading(fmt.Sprintf("Study groups (%d)", len(list)))
	for _, g := range list {
		a.printf("%s  %-30s %-15s %d members  %d projects\n",
			shortID(g.ID), g.Name, g.Subject, len(g.Members), len(a.reg.Collab.GroupProjects(g.ID)))
	}
	return nil
}

func (a *App) groupAddMember(ctx context.Context, args []string) error {
	p := parseArgs(args)
	if len(p.words) != 2 {
		return usage("group join <id> <email> [name=...]")
	}
	id, err := a.lookupGroup(p.words[0])
	if err != nil {
		return err
	}
	name := p.opt("name")
	if name == "" {
		name = p.words[1]
	}
	ok, err := a.reg.Collab.AddMember(ctx, id, models.GroupMember{Name: name, Email: p.words[1]})
	if err := found(ok, err, "group", p.words[0]); err != nil {
		return err
	}
	a.done("%s joined", name)
	return nil
}

func (a *App) groupSay(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("group say <id> <message>")
	}
	id, err := a.lookupGroup(args[0])
	if err != nil {
		return err
	}
	if _, ok := a.reg.Collab.Group(id); !ok {
		return notFound("group", args[0])
	}
	_, err = a.reg.Collab.SendMessage(ctx, models.ChatMessage{GroupID: id, Content: parsedArgs{words: args[1:]}.text()})
	return err
}

func (a *App) groupChat(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("group chat <id>")
	}
	id, err := a.lookupGroup(args[0])
	if err != nil {
		return err
	}
	for _, m := range a.reg.Collab.Messages(id) {
		a.printf("%s %s: %s\n", a.st.muted.Render(m.Timestamp.Format("15:04")), m.SenderName, m.Content)
	}
	return nil
}

func (a *App) groupMeet(ctx context.Context, args []string) error {
	p := parseArgs(args)
	at, err := p.date("at")
	if err != nil {
		return err
	}
	minutes, err := p.intOpt(60, "min", "minutes")
	if err != nil {
		return err
	}
	if p.text() == "" || at == nil {
		return usage("group meet <title> at=YYYY-MM-DD_HH:MM")
	}
	m, err := a.reg.Collab.ScheduleMeeting(ctx, models.MeetingSchedule{
		Title:    p.text(),
		Date:     *at,
		Duration: minutes,
		Location: p.opt("where", "location"),
		Type:     p.opt("type"),
	})
	if err != nil {
		return err
	}
	a.done("Meeting %s scheduled for %s", shortID(m.ID), minuteOf(m.Date))
	return nil
}

func (a *App) groupMeetings(context.Context, []string) error {
	list := a.reg.Collab.Upcoming()
	a.heading(fmt.Sprintf("Upcoming meetings (%d)", len(list)))
	for _, m := range list {
		a.printf("%s  %-30s %3d min  %s\n", minuteOf(m.Date), m.Title, m.Duration, m.Location)
	}
	return nil
}

func (a *App) groupDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("group rm <id>")
	}
	id, err := a.lookupGroup(args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Collab.DeleteGroup(ctx, id)
	if err := found(ok, err, "group", args[0]); err != nil {
		return err
	}
	a.done("Deleted group %s", shortID(id))
	return nil
}
