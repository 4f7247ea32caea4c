package player

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/drewsortega/bonnaroo-led/internal/overlay"
)

// DefaultPace is how often the main loop ticks. Frame timing is handled
// inside the driver, so the pace only bounds input latency and overlay
// expiry resolution.
const DefaultPace = 5 * time.Millisecond

// Loop is the single-threaded control loop. Each tick runs, in order:
// overlay expiry sweep, input handling, animation advance. Nothing else
// touches playback state, so no locking is needed around it.
type Loop struct {
	clk        clock.Clock
	overlay    *overlay.Controller
	dispatcher *Dispatcher
	driver     *Driver
	logger     *slog.Logger
	pace       time.Duration

	// OnTick, when set, runs at the end of every tick on the loop
	// goroutine. The simulator uses it to publish a status snapshot for
	// its render and websocket goroutines.
	OnTick func()

	halted bool
}

// NewLoop wires a loop. A pace <= 0 falls back to DefaultPace.
func NewLoop(clk clock.Clock, ov *overlay.Controller, disp *Dispatcher, drv *Driver, logger *slog.Logger, pace time.Duration) *Loop {
	if pace <= 0 {
		pace = DefaultPace
	}
	return &Loop{
		clk:        clk,
		overlay:    ov,
		dispatcher: disp,
		driver:     drv,
		logger:     logger,
		pace:       pace,
	}
}

// Halt puts the loop into a terminal error state: text is pinned on the
// overlay without expiry and ticks stop doing anything else. Used for
// unrecoverable startup conditions such as a missing or empty item
// directory.
func (l *Loop) Halt(text string) {
	l.overlay.Write(text, l.clk.Now(), false)
	l.halted = true
	l.logger.Error("halted", "reason", text)
}

// Halted reports whether the loop is in the terminal error state.
func (l *Loop) Halted() bool { return l.halted }

// Tick runs one iteration at the given instant.
func (l *Loop) Tick(now time.Time) {
	if !l.halted {
		l.overlay.MaybeClear(now)
		l.dispatcher.HandleInput(now)
		l.driver.Advance(now)
	}
	if l.OnTick != nil {
		l.OnTick()
	}
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := l.clk.Ticker(l.pace)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick(l.clk.Now())
		}
	}
}
