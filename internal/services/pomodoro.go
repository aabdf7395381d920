package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/logging"
	"github.com/nanatgrail/prodigyspace/internal/models"
	"github.com/nanatgrail/prodigyspace/internal/scheduler"
)

// PomodoroService runs one work or break session at a time on a countdown
// and records it once it completes. Stopped sessions are discarded.
type PomodoroService struct {
	sessions *collection.Store[models.PomodoroSession, *models.PomodoroSession]
	settings *collection.Value[models.PomodoroSettings]
	clock    clockwork.Clock
	log      logging.Logger
	timer    *scheduler.Countdown

	mu         sync.Mutex
	current    *models.PomodoroSession
	ctx        context.Context
	onComplete func(models.PomodoroSession)
	onTick     func(time.Duration)
}

func NewPomodoroService(d Deps) *PomodoroService {
	d = d.normalize()
	s := &PomodoroService{
		sessions: collection.New[models.PomodoroSession](d.Backend, models.KeyPomodoro, d.storeOptions()...),
		settings: collection.NewValue(d.Backend, models.KeyPomodoroConfig,
			models.DefaultPomodoroSettings, collection.WithLogger(d.Log)),
		clock: d.Clock,
		log:   d.Log,
	}
	s.timer = scheduler.NewCountdown(d.Clock, s.tick, s.complete)
	return s
}

func (s *PomodoroService) Load(ctx context.Context) error {
	return loadAll(ctx, s.sessions, s.settings)
}

func (s *PomodoroService) Reload(ctx context.Context) error {
	return reloadAll(ctx, s.sessions, s.settings)
}

// OnComplete registers fn to run after a finished session is recorded.
func (s *PomodoroService) OnComplete(fn func(models.PomodoroSession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = fn
}

// OnTick registers fn to receive the time left every second.
func (s *PomodoroService) OnTick(fn func(time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = fn
}

func (s *PomodoroService) Settings() models.PomodoroSettings { return s.settings.Get() }

func (s *PomodoroService) UpdateSettings(ctx context.Context, st models.PomodoroSettings) error {
	if st.WorkDuration <= 0 || st.ShortBreakDuration <= 0 || st.LongBreakDuration <= 0 || st.SessionsUntilLongBreak <= 0 {
		return fmt.Errorf("pomodoro settings must be positive: %w", common.ErrInvalidInput)
	}
	return s.settings.Set(ctx, st)
}

// Sessions returns completed sessions, oldest first.
func (s *PomodoroService) Sessions() []models.PomodoroSession { return s.sessions.Items() }

// BreakDuration picks the long break when the next completed work session
// is a multiple of SessionsUntilLongBreak.
func (s *PomodoroService) BreakDuration() int {
	st := s.settings.Get()
	work := aggregate.Count(s.sessions.Items(), func(p models.PomodoroSession) bool {
		return p.Type == models.SessionWork && p.Completed
	})
	if st.SessionsUntilLongBreak > 0 && (work+1)%st.SessionsUntilLongBreak == 0 {
		return st.LongBreakDuration
	}
	return st.ShortBreakDuration
}

// TodaySessions lists sessions completed today, by start time in the clock's
// local day.
func (s *PomodoroService) TodaySessions() []models.PomodoroSession {
	now := s.clock.Now()
	return aggregate.Filter(s.sessions.Items(), func(p models.PomodoroSession) bool {
		return p.Completed && aggregate.SameDay(p.StartTime.Time, now)
	})
}

// Start begins a session of the given type, replacing any running one.
func (s *PomodoroService) Start(ctx context.Context, typ models.SessionType) (models.PomodoroSession, error) {
	var minutes int
	switch typ {
	case models.SessionWork:
		minutes = s.settings.Get().WorkDuration
	case models.SessionBreak:
		minutes = s.BreakDuration()
	default:
		return models.PomodoroSession{}, fmt.Errorf("unknown session type %q: %w", typ, common.ErrInvalidInput)
	}

	sess := models.PomodoroSession{
		Type:      typ,
		Duration:  minutes,
		StartTime: codec.NewTimestamp(s.clock.Now()),
	}

	s.mu.Lock()
	s.current = &sess
	s.ctx = context.WithoutCancel(ctx)
	s.mu.Unlock()

	s.timer.Start(ctx, time.Duration(minutes)*time.Minute)
	s.log.Debug(ctx, "pomodoro started", "type", typ, "minutes", minutes)
	return sess, nil
}

func (s *PomodoroService) Pause() { s.timer.Pause() }

// Resume reports false when there is no paused session.
func (s *PomodoroService) Resume(ctx context.Context) bool {
	s.mu.Lock()
	active := s.current != nil
	s.mu.Unlock()
	if !active {
		return false
	}
	return s.timer.Resume(ctx)
}

// Stop abandons the current session without recording it.
func (s *PomodoroService) Stop() {
	s.timer.Pause()
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *PomodoroService) Running() bool { return s.timer.Running() }

func (s *PomodoroService) TimeLeft() time.Duration {
	s.mu.Lock()
	active := s.current != nil
	s.mu.Unlock()
	if !active {
		return 0
	}
	return s.timer.Remaining()
}

// Current returns the session in progress, if any.
func (s *PomodoroService) Current() (models.PomodoroSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.PomodoroSession{}, false
	}
	return *s.current, true
}

func (s *PomodoroService) tick(left time.Duration) {
	s.mu.Lock()
	fn := s.onTick
	s.mu.Unlock()
	if fn != nil {
		fn(left)
	}
}

func (s *PomodoroService) complete() {
	s.mu.Lock()
	cur, ctx, fn := s.current, s.ctx, s.onComplete
	s.current = nil
	s.mu.Unlock()

	if cur == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	done := *cur
	done.Completed = true
	done.EndTime = codec.Ptr(s.clock.Now())

	stored, err := s.sessions.Create(ctx, done)
	if err != nil {
		s.log.Error(ctx, "failed to record pomodoro session", "err", err)
		return
	}
	if fn != nil {
		fn(stored)
	}
}

// FormatClock renders d as MM:SS.
func FormatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
