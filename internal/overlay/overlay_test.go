package overlay

import (
	"testing"
	"time"
)

// recordingRenderer records status renderer calls.
type recordingRenderer struct {
	shown      []string
	clearCalls int
}

func (r *recordingRenderer) ShowStatus(text string, scroll bool) {
	r.shown = append(r.shown, text)
}

func (r *recordingRenderer) ClearStatus() {
	r.clearCalls++
}

func at(ms int64) time.Time {
	return time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)
}

// TestController_Write_ReplacesText tests that a write replaces the
// current text and restarts the timer.
func TestController_Write_ReplacesText(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(r, 0)

	c.Write("BRT: 52", at(0), true)
	c.Write("LEFT", at(100), true)

	if c.Text() != "LEFT" {
		t.Errorf("Text() = %q, want LEFT", c.Text())
	}
	// Timer restarted: clear must not fire 3000ms after the first write.
	c.MaybeClear(at(3001))
	if c.Text() != "LEFT" {
		t.Error("overlay cleared relative to stale write time")
	}
	c.MaybeClear(at(3101))
	if c.Text() != "" {
		t.Error("overlay not cleared after timeout from latest write")
	}
}

// TestController_MaybeClear_Boundary tests the strict > timeout boundary:
// write at t=0, intact at 2999ms, cleared at 3001ms.
func TestController_MaybeClear_Boundary(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(r, 0)
	c.Write("hello", at(0), true)

	c.MaybeClear(at(2999))
	if !c.Active() {
		t.Fatal("overlay cleared at 2999ms, want intact")
	}

	c.MaybeClear(at(3000))
	if !c.Active() {
		t.Fatal("overlay cleared at exactly 3000ms, boundary is strict >")
	}

	c.MaybeClear(at(3001))
	if c.Active() {
		t.Fatal("overlay still active at 3001ms")
	}
}

// TestController_MaybeClear_Idempotent tests that repeated sweeps without
// an intervening write clear only once.
func TestController_MaybeClear_Idempotent(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(r, 0)
	c.Write("x", at(0), true)

	for ms := int64(3001); ms < 3050; ms++ {
		c.MaybeClear(at(ms))
	}
	if r.clearCalls != 1 {
		t.Errorf("ClearStatus called %d times, want 1", r.clearCalls)
	}
}

// TestController_AutoClearDisabled tests that suppressed auto-clear pins
// the text past the timeout.
func TestController_AutoClearDisabled(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(r, 0)
	c.Write("No gifs directory", at(0), false)

	c.MaybeClear(at(60_000))
	if c.Text() != "No gifs directory" {
		t.Errorf("pinned text cleared, got %q", c.Text())
	}
}

// TestController_MaybeClear_WhenCleared tests the sweep is a no-op with
// nothing displayed.
func TestController_MaybeClear_WhenCleared(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(r, 0)

	c.MaybeClear(at(5000))
	if r.clearCalls != 0 {
		t.Errorf("ClearStatus called %d times on empty overlay, want 0", r.clearCalls)
	}
}

// TestController_CustomTimeout tests a non-default timeout.
func TestController_CustomTimeout(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(r, 500*time.Millisecond)
	c.Write("x", at(0), true)

	c.MaybeClear(at(500))
	if !c.Active() {
		t.Fatal("cleared at timeout boundary")
	}
	c.MaybeClear(at(501))
	if c.Active() {
		t.Fatal("not cleared past custom timeout")
	}
}
