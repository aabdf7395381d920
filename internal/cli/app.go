package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/backup"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/config"
	"github.com/nanatgrail/prodigyspace/internal/logging"
	"github.com/nanatgrail/prodigyspace/internal/models"
	"github.com/nanatgrail/prodigyspace/internal/scheduler"
	"github.com/nanatgrail/prodigyspace/internal/services"
)

type App struct {
	config  *config.Config
	reg     *services.Registry
	backups *backup.Service
	clock   clockwork.Clock
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
	fd     int
	st     styles

	watcher *scheduler.Periodic
	cmds    map[string]command
}

// Options overrides the process streams and clock, mostly for tests.
type Options struct {
	In    io.Reader
	Out   io.Writer
	Clock clockwork.Clock
	Log   logging.Logger
}

// syncWriter serialises writes from the REPL and background notifications.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func NewApp(c *config.Config, reg *services.Registry, bk *backup.Service, opts Options) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}

	fd := -1
	if f, ok := opts.In.(*os.File); ok {
		fd = int(f.Fd())
	}

	out := &syncWriter{w: opts.Out}
	a := &App{
		config:  c,
		reg:     reg,
		backups: bk,
		clock:   opts.Clock,
		log:     opts.Log,
		reader:  bufio.NewReader(opts.In),
		out:     out,
		fd:      fd,
		st:      newStyles(opts.Out),
	}
	a.cmds = a.commands()
	return a
}

// Run starts the background watchers and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, a.st.title.Render("Welcome to ProdigySpace CLI (type 'help' for commands)"))

	a.StartAlarmWatcher(ctx, a.config.AlarmCheckInterval)
	defer a.StopAlarmWatcher()
	defer a.reg.Pomodoro.Stop()

	a.reg.Pomodoro.OnComplete(func(s models.PomodoroSession) {
		fmt.Fprintf(a.out, "\n%s\n", a.st.ok.Render(fmt.Sprintf("🍅 %s session finished (%d min)", s.Type, s.Duration)))
	})

	runREPL(ctx, a.cmds, a.prompt, a.reader, a.out, a.st)
}

// StartAlarmWatcher checks alarms and reminders every interval and prints
// due notifications. A running watcher is replaced.
func (a *App) StartAlarmWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	checker := scheduler.NewChecker(a.reg.Alarms, scheduler.WriterNotifier{W: a.out}, a.log)

	a.StopAlarmWatcher()
	a.watcher = scheduler.NewPeriodic(a.clock, interval, checker.Check, a.log)
	a.watcher.Start(ctx)
}

func (a *App) StopAlarmWatcher() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
}

func (a *App) prompt() string {
	if a.reg.Pomodoro.Running() {
		return fmt.Sprintf("prodigy (🍅 %s)> ", services.FormatClock(a.reg.Pomodoro.TimeLeft()))
	}
	return "prodigy> "
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"todo":     a.todoCommands().command("todo"),
		"task":     a.taskCommands().command("task"),
		"study":    a.studyCommands().command("study"),
		"note":     a.noteCommands().command("note"),
		"expense":  a.expenseCommands().command("expense"),
		"alarm":    a.alarmCommands().command("alarm"),
		"reminder": a.reminderCommands().command("reminder"),
		"mood":     a.moodCommands().command("mood"),
		"goal":     a.goalCommands().command("goal"),
		"water":    a.waterCommands().command("water"),
		"bookmark": a.bookmarkCommands().command("bookmark"),
		"sticky":   a.stickyCommands().command("sticky"),
		"pomo":     a.pomodoroCommands().command("pomo"),
		"group":    a.groupCommands().command("group"),

		"export":  {usage: "export [name]", run: a.export},
		"import":  {usage: "import <file>", run: a.importFile},
		"restore": {usage: "restore <file>", run: a.restore},
		"backup":  {usage: "backup [name]", run: a.backup},
		"backups": {usage: "backups", run: a.listBackups},
		"csv":     {usage: "csv todos|expenses [file]", run: a.csv},
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) heading(s string) {
	fmt.Fprintln(a.out, a.st.heading.Render(s))
}

func (a *App) done(format string, args ...any) {
	fmt.Fprintln(a.out, a.st.ok.Render(fmt.Sprintf(format, args...)))
}

// found turns the bool of a by-id mutation into a user-facing error.
func found(ok bool, err error, kind, id string) error {
	if err != nil {
		return err
	}
	if !ok {
		return notFound(kind, id)
	}
	return nil
}

func dayOf(ts *codec.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02")
}

func minuteOf(ts codec.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02 15:04")
}

func check(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}
