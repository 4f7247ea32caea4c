// Package overlay owns the transient status text drawn above the
// animation. Writes replace the current text; an idle sweep clears it
// after a timeout unless the writer suppressed auto-clear.
package overlay

import (
	"time"

	"github.com/drewsortega/bonnaroo-led/internal/display"
)

// DefaultTimeout is how long status text stays up with no further writes.
const DefaultTimeout = 3000 * time.Millisecond

// Controller tracks the status text lifecycle. Not safe for concurrent
// use; the control loop is its only caller.
type Controller struct {
	renderer display.StatusRenderer
	timeout  time.Duration

	text      string
	writtenAt time.Time // zero means cleared
	autoClear bool
}

// NewController returns a controller rendering through r. A non-positive
// timeout falls back to DefaultTimeout.
func NewController(r display.StatusRenderer, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Controller{renderer: r, timeout: timeout}
}

// Write replaces the status text and restarts the idle timer. autoClear
// false pins the text until the next Write or explicit Clear.
func (c *Controller) Write(text string, now time.Time, autoClear bool) {
	c.text = text
	c.writtenAt = now
	c.autoClear = autoClear
	c.renderer.ShowStatus(text, true)
}

// MaybeClear runs the idle sweep. Called once per tick, before input
// handling. Idempotent: once cleared it is a no-op until the next Write.
func (c *Controller) MaybeClear(now time.Time) {
	if !c.autoClear || c.writtenAt.IsZero() {
		return
	}
	if now.Sub(c.writtenAt) <= c.timeout {
		return
	}
	c.Clear()
}

// Clear removes the status text and band immediately.
func (c *Controller) Clear() {
	c.text = ""
	c.writtenAt = time.Time{}
	c.renderer.ClearStatus()
}

// Text returns the current status text, empty when cleared.
func (c *Controller) Text() string { return c.text }

// Active reports whether status text is currently displayed.
func (c *Controller) Active() bool { return !c.writtenAt.IsZero() }
