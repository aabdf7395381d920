package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/nanatgrail/prodigyspace/internal/models"
)

func (a *App) waterCommands() group {
	return group{
		"add":    {usage: "water add <ml>", run: a.waterAdd},
		"goal":   {usage: "water goal <ml>", run: a.waterGoal},
		"status": {usage: "water status", run: a.waterStatus},
	}
}

func (a *App) waterAdd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("water add <ml>")
	}
	ml, err := atoi(args[0])
	if err != nil {
		return err
	}
	if _, err := a.reg.Water.AddIntake(ctx, ml); err != nil {
		return err
	}
	return a.waterStatus(ctx, nil)
}

func (a *App) waterGoal(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("water goal <ml>")
	}
	ml, err := atoi(args[0])
	if err != nil {
		return err
	}
	if err := a.reg.Water.SetGoal(ctx, ml); err != nil {
		return err
	}
	return a.waterStatus(ctx, nil)
}

func (a *App) waterStatus(context.Context, []string) error {
	w := a.reg.Water
	a.printf("💧 %d / %d ml (%.0f%%)\n", w.TodayTotal(), w.Goal(), w.GoalPercent())
	return nil
}

func bookmarkID(b models.Bookmark) string { return b.ID }

func (a *App) bookmarkCommands() group {
	return group{
		"add":  {usage: "bookmark add <url> <title> [cat=...]", run: a.bookmarkAdd},
		"list": {usage: "bookmark list [category]", run: a.bookmarkList},
		"rm":   {usage: "bookmark rm <id>", run: a.bookmarkDelete},
	}
}

func (a *App) bookmarkAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	url, title := p.first()
	if url == "" {
		return usage("bookmark add <url> <title> [cat=...]")
	}
	if title == "" {
		title = url
	}
	b, err := a.reg.Bookmarks.Add(ctx, title, url, p.opt("cat", "category"))
	if err != nil {
		return err
	}
	a.done("Saved %s", b.URL)
	return nil
}

func (a *App) bookmarkList(_ context.Context, args []string) error {
	list := a.reg.Bookmarks.List()
	if len(args) > 0 {
		list = a.reg.Bookmarks.ByCategory(args[0])
	}
	a.heading(fmt.Sprintf("Bookmarks (%d)", len(list)))
	for _, b := range list {
		a.printf("%s  %-30s %-12s %s\n", shortID(b.ID), b.Title, b.Category, b.URL)
	}
	if cats := a.reg.Bookmarks.Categories(); len(cats) > 0 {
		a.printf("%s\n", a.st.muted.Render("categories: "+strings.Join(cats, ", ")))
	}
	return nil
}

func (a *App) bookmarkDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("bookmark rm <id>")
	}
	id, err := matchID(a.reg.Bookmarks.List(), bookmarkID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Bookmarks.Remove(ctx, id)
	if err := found(ok, err, "bookmark", args[0]); err != nil {
		return err
	}
	a.done("Removed bookmark %s", shortID(id))
	return nil
}

func stickyID(n models.StickyNote) string { return n.ID }

func (a *App) stickyCommands() group {
	return group{
		"add":  {usage: "sticky add <text> [color=...] [title=...]", run: a.stickyAdd},
		"list": {usage: "sticky list", run: a.stickyList},
		"move": {usage: "sticky move <id> <x> <y>", run: a.stickyMove},
		"rm":   {usage: "sticky rm <id>", run: a.stickyDelete},
	}
}

func (a *App) stickyAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	if p.text() == "" {
		return usage("sticky add <text> [color=...]")
	}
	n, err := a.reg.Sticky.Add(ctx, models.StickyNote{
		Title:   p.opt("title"),
		Content: p.text(),
		Color:   models.NoteColor(p.opt("color")),
	})
	if err != nil {
		return err
	}
	a.done("Added %s sticky %s", n.Color, shortID(n.ID))
	return nil
}

func (a *App) stickyList(context.Context, []string) error {
	list := a.reg.Sticky.List()
	a.heading(fmt.Sprintf("Sticky notes (%d)", len(list)))
	for _, n := range list {
		a.printf("%s  %-7s (%g,%g)  %s\n", shortID(n.ID), n.Color, n.Position.X, n.Position.Y, n.Content)
	}
	return nil
}

func (a *App) stickyMove(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usage("sticky move <id> <x> <y>")
	}
	x, err := atof(args[1])
	if err != nil {
		return err
	}
	y, err := atof(args[2])
	if err != nil {
		return err
	}
	id, err := matchID(a.reg.Sticky.List(), stickyID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Sticky.Move(ctx, id, models.Position{X: x, Y: y})
	return found(ok, err, "sticky note", args[0])
}

func (a *App) stickyDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("sticky rm <id>")
	}
	id, err := matchID(a.reg.Sticky.List(), stickyID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Sticky.Delete(ctx, id)
	if err := found(ok, err, "sticky note", args[0]); err != nil {
		return err
	}
	a.done("Deleted sticky note %s", shortID(id))
	return nil
}
