package player

import (
	"io"
	"log/slog"
	"time"

	"github.com/drewsortega/bonnaroo-led/internal/catalog"
	"github.com/drewsortega/bonnaroo-led/internal/display"
	"github.com/drewsortega/bonnaroo-led/internal/gifdec"
	"github.com/drewsortega/bonnaroo-led/internal/overlay"
)

// DriverState is the animation driver's per-tick mode.
type DriverState int

const (
	// StateIdle means no session is active for the current item yet.
	StateIdle DriverState = iota
	// StateDecoding means a session exists but no frame is on screen.
	StateDecoding
	// StateAwaitingNextFrame means a frame is on screen and the driver is
	// waiting out its delay.
	StateAwaitingNextFrame
	// StateFailed means the last open or decode attempt failed; the
	// driver retries the same item instead of advancing past it.
	StateFailed
)

// Frame delay handling: a reported delay under MinFrameDelay is treated
// as bogus and replaced with DefaultFrameDelay.
const (
	DefaultFrameDelay = 100 * time.Millisecond
	MinFrameDelay     = 10 * time.Millisecond
)

// Decoder is the animation session the driver runs. *gifdec.Decoder is
// the production implementation.
type Decoder interface {
	StartDecoding(r io.Reader) error
	DecodeFrame() (gifdec.FrameStatus, error)
	FrameDelay() time.Duration
}

// Driver owns item activation and frame pacing. It watches the playback
// state for index changes (immediate or staged), opens catalog items and
// steps animated ones one frame at a time.
type Driver struct {
	state   *State
	cat     *catalog.Catalog
	dec     Decoder
	surface display.Surface
	overlay *overlay.Controller
	logger  *slog.Logger

	width, height int
	defaultDelay  time.Duration
	minDelay      time.Duration

	drvState      DriverState
	activeIndex   int
	lastFrameTime time.Time
	frameDelay    time.Duration
	staticDrawn   bool
}

// NewDriver wires an animation driver. Delays <= 0 fall back to the
// package defaults.
func NewDriver(state *State, cat *catalog.Catalog, dec Decoder, surface display.Surface, ov *overlay.Controller, logger *slog.Logger, width, height int, defaultDelay, minDelay time.Duration) *Driver {
	if defaultDelay <= 0 {
		defaultDelay = DefaultFrameDelay
	}
	if minDelay <= 0 {
		minDelay = MinFrameDelay
	}
	return &Driver{
		state:        state,
		cat:          cat,
		dec:          dec,
		surface:      surface,
		overlay:      ov,
		logger:       logger,
		width:        width,
		height:       height,
		defaultDelay: defaultDelay,
		minDelay:     minDelay,
		activeIndex:  -1,
	}
}

// DriverState reports the current per-tick mode, mainly for tests and
// the simulator's state broadcast.
func (d *Driver) DriverState() DriverState { return d.drvState }

// ActiveIndex reports the item the current session belongs to, -1 before
// the first activation.
func (d *Driver) ActiveIndex() int { return d.activeIndex }

// Advance runs one driver tick: apply a staged index if one is pending,
// activate a new item when the index moved, then draw or step the active
// item according to its kind and frame timing.
func (d *Driver) Advance(now time.Time) {
	if idx, ok := d.state.TakePending(); ok && idx != d.activeIndex {
		d.activate(idx, now)
	} else if d.state.Index() != d.activeIndex {
		d.activate(d.state.Index(), now)
	}
	if d.activeIndex < 0 {
		return
	}

	item, err := d.cat.Item(d.activeIndex)
	if err != nil {
		d.fail("Fail", now, err)
		return
	}
	switch item.Kind {
	case catalog.KindImage:
		d.advanceStatic(item, now)
	case catalog.KindGIF:
		d.advanceGIF(item, now)
	}
}

// activate makes idx the active item. The screen is cleared to black on
// both buffers so no stale frame of the previous item can flash through
// a later swap.
func (d *Driver) activate(idx int, now time.Time) {
	d.surface.Clear()
	d.surface.SwapBuffers()
	d.surface.Clear()
	d.surface.SwapBuffers()

	d.activeIndex = idx
	d.drvState = StateIdle
	d.lastFrameTime = time.Time{}
	d.frameDelay = 0
	d.staticDrawn = false

	if item, err := d.cat.Item(idx); err == nil {
		d.overlay.Write(item.Name, now, true)
		d.logger.Info("item active", "index", idx, "name", item.Name, "kind", item.Kind)
	}
}

func (d *Driver) advanceStatic(item catalog.Item, now time.Time) {
	if d.staticDrawn {
		return
	}
	if err := drawStatic(d.surface, item, d.width, d.height); err != nil {
		d.fail("Fail", now, err)
		return
	}
	d.surface.SwapBuffers()
	d.staticDrawn = true
	d.drvState = StateAwaitingNextFrame
}

func (d *Driver) advanceGIF(item catalog.Item, now time.Time) {
	if !d.lastFrameTime.IsZero() && now.Sub(d.lastFrameTime) <= d.frameDelay {
		return
	}

	if d.drvState == StateIdle || d.drvState == StateFailed {
		rc, err := item.Open()
		if err != nil {
			d.fail("Fail", now, err)
			return
		}
		err = d.dec.StartDecoding(rc)
		rc.Close()
		if err != nil {
			d.fail("Bad frame", now, err)
			return
		}
		d.drvState = StateDecoding
	}

	if _, err := d.dec.DecodeFrame(); err != nil {
		d.fail("Bad frame", now, err)
		return
	}
	d.lastFrameTime = now
	d.frameDelay = d.normalizeDelay(d.dec.FrameDelay())
	d.drvState = StateAwaitingNextFrame
}

// fail records a decode failure and arms a retry of the same item on the
// next tick. The index is never advanced past a broken item. The overlay
// is written only on the transition into the failed state so retries do
// not keep refreshing it.
func (d *Driver) fail(text string, now time.Time, err error) {
	if d.drvState != StateFailed {
		d.overlay.Write(text, now, true)
	}
	d.drvState = StateFailed
	d.lastFrameTime = time.Time{}
	d.frameDelay = 0
	d.logger.Warn("decode failed", "index", d.activeIndex, "error", err)
}

func (d *Driver) normalizeDelay(delay time.Duration) time.Duration {
	if delay < d.minDelay {
		return d.defaultDelay
	}
	return delay
}
