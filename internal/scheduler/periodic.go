package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/logging"
)

// TaskFunc is run on every tick with the tick time.
type TaskFunc func(ctx context.Context, now time.Time)

// Periodic runs a TaskFunc every interval until stopped or until the context
// passed to Start is cancelled.
type Periodic struct {
	clock    clockwork.Clock
	interval time.Duration
	fn       TaskFunc
	log      logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPeriodic(clock clockwork.Clock, interval time.Duration, fn TaskFunc, log logging.Logger) *Periodic {
	if log == nil {
		log = logging.Discard()
	}
	return &Periodic{clock: clock, interval: interval, fn: fn, log: log}
}

// Start launches the loop. A running loop is stopped first, so at most one
// ticker is ever live.
func (p *Periodic) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	prevCancel, prevDone := p.cancel, p.done
	p.cancel, p.done = cancel, done
	// the new loop waits for the old one so two tickers never overlap
	if prevCancel != nil {
		prevCancel()
	}
	ticker := p.clock.NewTicker(p.interval)
	p.mu.Unlock()

	p.log.Debug(ctx, "periodic task started", "interval", p.interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		if prevDone != nil {
			<-prevDone
		}
		for {
			select {
			case now := <-ticker.Chan():
				p.fn(ctx, now)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit. It is a no-op when the loop
// is not running.
func (p *Periodic) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Periodic) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}
