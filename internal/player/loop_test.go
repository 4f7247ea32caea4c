package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/drewsortega/bonnaroo-led/internal/overlay"
	"github.com/drewsortega/bonnaroo-led/internal/remote"
)

type loopFixture struct {
	queue    *remote.Queue
	state    *State
	surface  *testSurface
	renderer *testRenderer
	ov       *overlay.Controller
	loop     *Loop
}

func newLoopFixture(t *testing.T, clk clock.Clock) *loopFixture {
	t.Helper()
	cat := gifCatalog()
	f := &loopFixture{
		queue:    remote.NewQueue(),
		state:    NewState(cat.Len(), 26, 180),
		surface:  &testSurface{},
		renderer: &testRenderer{},
	}
	f.ov = overlay.NewController(f.renderer, 0)
	disp := NewDispatcher(f.queue, f.state, f.surface, f.ov, testLogger(), 400*time.Millisecond, 26, NavigationImmediate)
	dec := &fakeDecoder{delay: 50 * time.Millisecond}
	drv := NewDriver(f.state, cat, dec, f.surface, f.ov, testLogger(), 4, 4, 100*time.Millisecond, 10*time.Millisecond)
	f.loop = NewLoop(clk, f.ov, disp, drv, testLogger(), 5*time.Millisecond)
	return f
}

func TestLoop_OverlayExpiresDuringTicks(t *testing.T) {
	f := newLoopFixture(t, clock.NewMock())
	base := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)

	// First tick activates item 0, which writes its name to the overlay.
	f.loop.Tick(base)
	if !f.ov.Active() {
		t.Fatal("overlay not active after activation")
	}

	f.loop.Tick(base.Add(3000 * time.Millisecond))
	if !f.ov.Active() {
		t.Error("overlay cleared at exactly the timeout")
	}

	f.loop.Tick(base.Add(3001 * time.Millisecond))
	if f.ov.Active() {
		t.Error("overlay still active past the timeout")
	}
	if f.renderer.clears != 1 {
		t.Errorf("renderer clears = %d, want 1", f.renderer.clears)
	}
}

func TestLoop_HaltFreezesEverything(t *testing.T) {
	f := newLoopFixture(t, clock.NewMock())
	base := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)

	f.loop.Halt("No gifs directory")
	if !f.loop.Halted() {
		t.Fatal("loop not halted")
	}

	f.queue.Inject(remote.CodeRight)
	f.loop.Tick(base.Add(10 * time.Second))

	if got := f.state.Index(); got != 0 {
		t.Errorf("halted loop handled input: index = %d", got)
	}
	if got := f.queue.Len(); got != 1 {
		t.Errorf("halted loop drained the queue: len = %d", got)
	}
	// The halt banner never expires.
	if got := f.ov.Text(); got != "No gifs directory" {
		t.Errorf("overlay = %q, want halt banner", got)
	}
	if f.renderer.clears != 0 {
		t.Errorf("halt banner cleared %d times", f.renderer.clears)
	}
}

func TestLoop_RunProcessesInjectedInput(t *testing.T) {
	mock := clock.NewMock()
	f := newLoopFixture(t, mock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.loop.Run(ctx) }()

	f.queue.Inject(remote.CodeRight)
	for i := 0; i < 200 && f.queue.Len() > 0; i++ {
		mock.Add(5 * time.Millisecond)
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if got := f.state.Index(); got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
	if got := f.queue.Len(); got != 0 {
		t.Errorf("queue not drained: len = %d", got)
	}
}
