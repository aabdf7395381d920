package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/nanatgrail/prodigyspace/internal/common"
)

// command is one REPL verb. Handlers return an error only for problems the
// user should see; usage hints go through errUsage.
type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// group dispatches "<verb> <sub> args..." to its subcommands.
type group map[string]command

var errUsage = errors.New("usage")

func (g group) command(name string) command {
	return command{
		usage: name + " " + strings.Join(g.names(), "|"),
		run: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: %s %s", errUsage, name, strings.Join(g.names(), "|"))
			}
			sub, ok := g[args[0]]
			if !ok {
				return fmt.Errorf("%w: %s %s", errUsage, name, strings.Join(g.names(), "|"))
			}
			return sub.run(ctx, args[1:])
		},
	}
}

func (g group) names() []string {
	names := make([]string, 0, len(g))
	for k := range g {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to cmds. Unknown commands are reported back to the user. The
// loop exits on EOF, on ctx cancellation, or when the user types "exit" or
// "quit".
//
// Handler errors are printed and the loop continues; a failed command never
// ends the session.
func runREPL(ctx context.Context, cmds map[string]command, promptFn func() string, in *bufio.Reader, w io.Writer, st styles) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(w, promptFn())

		line, err := readLine(in)
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help", "?":
			printHelp(w, cmds, st)
			continue
		}

		c, ok := cmds[cmd]
		if !ok {
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}

		if err := c.run(ctx, args); err != nil {
			reportError(w, err, st)
		}
	}
}

func reportError(w io.Writer, err error, st styles) {
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintln(w, st.muted.Render(strings.Replace(err.Error(), "usage: ", "Usage: ", 1)))
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(w, st.warn.Render(err.Error()))
	default:
		fmt.Fprintln(w, st.err.Render("error: "+err.Error()))
	}
}

func printHelp(w io.Writer, cmds map[string]command, st styles) {
	fmt.Fprintln(w, st.heading.Render("Available commands"))
	names := make([]string, 0, len(cmds))
	for k := range cmds {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", cmds[n].usage)
	}
	fmt.Fprintln(w, "  help | exit")
}

func usage(u string) error { return fmt.Errorf("%w: %s", errUsage, u) }

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, common.ErrNotFound)
}
