package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/nanatgrail/prodigyspace/internal/models"
)

func noteID(n models.Note) string { return n.ID }

func (a *App) noteCommands() group {
	return group{
		"add":    {usage: "note add <title> [cat=...] [tags=a,b]  (body is read on the next lines)", run: a.noteAdd},
		"list":   {usage: "note list [tag]", run: a.noteList},
		"show":   {usage: "note show <id>", run: a.noteShow},
		"pin":    {usage: "note pin <id>", run: a.notePin},
		"rm":     {usage: "note rm <id>", run: a.noteDelete},
		"search": {usage: "note search <text>", run: a.noteSearch},
	}
}

func (a *App) noteAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	if p.text() == "" {
		return usage("note add <title> [cat=...] [tags=a,b]")
	}
	body, err := GetMultiline(a.reader, "Note body", a.out)
	if err != nil {
		return err
	}

	n, err := a.reg.Notes.Add(ctx, models.Note{
		Title:    p.text(),
		Content:  body,
		Category: models.NoteCategory(p.opt("cat", "category")),
		Tags:     p.list("tags"),
	})
	if err != nil {
		return err
	}
	a.done("Added note %s", shortID(n.ID))
	return nil
}

func (a *App) printNotes(title string, notes []models.Note) {
	a.heading(fmt.Sprintf("%s (%d)", title, len(notes)))
	for _, n := range notes {
		pin := " "
		if n.IsPinned {
			pin = "*"
		}
		a.printf("%s %s  %-36s %-10s %s\n", pin, shortID(n.ID), n.Title, n.Category, strings.Join(n.Tags, ","))
	}
}

func (a *App) noteList(_ context.Context, args []string) error {
	if len(args) > 0 {
		a.printNotes("Notes tagged "+args[0], a.reg.Notes.ByTag(args[0]))
		return nil
	}
	a.printNotes("Notes", a.reg.Notes.List())
	return nil
}

func (a *App) noteSearch(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usage("note search <text>")
	}
	q := strings.Join(args, " ")
	a.printNotes(fmt.Sprintf("Notes matching %q", q), a.reg.Notes.Search(q))
	return nil
}

func (a *App) lookupNote(prefix string) (models.Note, error) {
	id, err := matchID(a.reg.Notes.List(), noteID, prefix)
	if err != nil {
		return models.Note{}, err
	}
	n, ok := a.reg.Notes.Get(id)
	if !ok {
		return models.Note{}, notFound("note", prefix)
	}
	return n, nil
}

func (a *App) noteShow(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("note show <id>")
	}
	n, err := a.lookupNote(args[0])
	if err != nil {
		return err
	}
	a.heading(n.Title)
	a.printf("%s\n", a.st.muted.Render(fmt.Sprintf("%s  updated %s", n.Category, minuteOf(n.UpdatedAt))))
	a.printf("%s\n", n.Content)
	return nil
}

func (a *App) notePin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("note pin <id>")
	}
	n, err := a.lookupNote(args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Notes.TogglePin(ctx, n.ID)
	if err := found(ok, err, "note", args[0]); err != nil {
		return err
	}
	a.done("Toggled pin on %s", n.Title)
	return nil
}

func (a *App) noteDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("note rm <id>")
	}
	id, err := matchID(a.reg.Notes.List(), noteID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Notes.Delete(ctx, id)
	if err := found(ok, err, "note", args[0]); err != nil {
		return err
	}
	a.done("Deleted note %s", shortID(id))
	return nil
}
