package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown counts a duration down in one-second steps.
//
// OnTick receives the remaining time after every step and OnDone runs once
// when the remaining time reaches zero. Both are called from the ticking
// goroutine without the lock held, so they may call back into the Countdown.
type Countdown struct {
	clock  clockwork.Clock
	onTick func(remaining time.Duration)
	onDone func()

	mu        sync.Mutex
	total     time.Duration
	remaining time.Duration
	ticker    clockwork.Ticker
	cancel    context.CancelFunc
	gen       uint64
}

func NewCountdown(clock clockwork.Clock, onTick func(time.Duration), onDone func()) *Countdown {
	return &Countdown{clock: clock, onTick: onTick, onDone: onDone}
}

// Start (re)starts the countdown from total. A countdown that is already
// running is stopped first.
func (c *Countdown) Start(ctx context.Context, total time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.total = total
	c.remaining = total
	if total > 0 {
		c.runLocked(ctx)
	}
}

// Pause stops ticking and keeps the remaining time.
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Resume continues a paused countdown. It reports false when there is nothing
// to resume.
func (c *Countdown) Resume(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker != nil || c.remaining <= 0 {
		return false
	}
	c.runLocked(ctx)
	return true
}

// Reset stops ticking and rewinds to the last total.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.remaining = c.total
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticker != nil
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// runLocked creates the ticker before the goroutine starts so the fake clock
// sees it as soon as Start returns.
func (c *Countdown) runLocked(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	ticker := c.clock.NewTicker(time.Second)

	c.gen++
	c.ticker = ticker
	c.cancel = cancel

	go c.loop(ctx, ticker, c.gen)
}

// stopLocked invalidates the current goroutine via the generation counter;
// a tick already in flight is discarded by step.
func (c *Countdown) stopLocked() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.cancel()
	c.ticker = nil
	c.cancel = nil
	c.gen++
}

func (c *Countdown) loop(ctx context.Context, ticker clockwork.Ticker, gen uint64) {
	for {
		select {
		case <-ticker.Chan():
			if !c.step(gen) {
				return
			}
		case <-ctx.Done():
			c.mu.Lock()
			if c.gen == gen {
				c.stopLocked()
			}
			c.mu.Unlock()
			return
		}
	}
}

func (c *Countdown) step(gen uint64) bool {
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return false
	}

	c.remaining -= time.Second
	if c.remaining < 0 {
		c.remaining = 0
	}
	remaining := c.remaining
	finished := remaining == 0
	if finished {
		c.stopLocked()
	}
	c.mu.Unlock()

	if c.onTick != nil {
		c.onTick(remaining)
	}
	if finished && c.onDone != nil {
		c.onDone()
	}
	return !finished
}
