package player

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/drewsortega/bonnaroo-led/internal/display"
	"github.com/drewsortega/bonnaroo-led/internal/overlay"
	"github.com/drewsortega/bonnaroo-led/internal/remote"
)

// NavigationMode selects how left/right presses take effect.
type NavigationMode int

const (
	// NavigationImmediate switches the displayed item on the press itself.
	NavigationImmediate NavigationMode = iota
	// NavigationStaged records the target index and shows it in the
	// overlay; the driver applies it on its next advance.
	NavigationStaged
)

// DefaultCooldown is the minimum gap between two accepted presses.
const DefaultCooldown = 400 * time.Millisecond

// Dispatcher polls the receiver once per tick, decodes the code, applies
// the debounce cooldown and routes accepted commands to playback state,
// brightness and the overlay.
type Dispatcher struct {
	recv    remote.Receiver
	state   *State
	surface display.Surface
	overlay *overlay.Controller
	logger  *slog.Logger

	cooldown       time.Duration
	brightnessStep int
	mode           NavigationMode

	lastAccepted time.Time
}

// NewDispatcher wires a dispatcher. A cooldown <= 0 falls back to
// DefaultCooldown.
func NewDispatcher(recv remote.Receiver, state *State, surface display.Surface, ov *overlay.Controller, logger *slog.Logger, cooldown time.Duration, brightnessStep int, mode NavigationMode) *Dispatcher {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Dispatcher{
		recv:           recv,
		state:          state,
		surface:        surface,
		overlay:        ov,
		logger:         logger,
		cooldown:       cooldown,
		brightnessStep: brightnessStep,
		mode:           mode,
	}
}

// HandleInput services at most one pending code. The receiver is resumed
// after every decoded value, whether the command was accepted, rejected
// by the cooldown or unknown. The cooldown timestamp moves only on
// acceptance, so a burst of presses inside the window cannot starve a
// later one.
func (d *Dispatcher) HandleInput(now time.Time) {
	raw, ok := d.recv.PollOnce()
	if !ok {
		return
	}
	defer d.recv.Resume()

	cmd, name := remote.Decode(raw)
	if cmd == remote.CmdUnknown {
		d.logger.Debug("unknown code", "raw", fmt.Sprintf("%#08x", raw))
		return
	}
	if !d.lastAccepted.IsZero() && now.Sub(d.lastAccepted) < d.cooldown {
		d.logger.Debug("press inside cooldown", "command", cmd.String())
		return
	}
	d.lastAccepted = now

	switch cmd {
	case remote.CmdVolUp:
		d.applyBrightness(d.brightnessStep, now)
	case remote.CmdVolDown:
		d.applyBrightness(-d.brightnessStep, now)
	case remote.CmdLeft:
		d.navigate(-1, now)
	case remote.CmdRight:
		d.navigate(1, now)
	default:
		d.overlay.Write(name, now, true)
		d.logger.Info("button", "command", cmd.String())
	}
}

func (d *Dispatcher) applyBrightness(delta int, now time.Time) {
	level := d.state.AdjustBrightness(delta)
	d.surface.SetBrightness(level)
	d.overlay.Write(fmt.Sprintf("BRT: %d", level), now, true)
	d.logger.Info("brightness", "level", level)
}

func (d *Dispatcher) navigate(delta int, now time.Time) {
	if d.mode == NavigationStaged {
		idx := d.state.RequestNavigate(delta)
		d.overlay.Write(fmt.Sprintf("IMG: %d", idx), now, true)
		d.logger.Info("item staged", "index", idx)
		return
	}
	idx := d.state.Navigate(delta)
	d.logger.Info("item switched", "index", idx)
}
