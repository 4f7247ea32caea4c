package remote

import "sync"

// Receiver is the input source the dispatcher polls once per tick.
//
// PollOnce is non-blocking and returns at most one pending raw code.
// After every decoded value — accepted or rejected — the dispatcher must
// call Resume before the source delivers the next one; this mirrors the
// latch-and-resume protocol of the hardware IR demodulator.
type Receiver interface {
	// Begin starts the receiver. The pin argument is meaningful only for
	// hardware sources; software sources ignore it.
	Begin(pin int)

	// PollOnce returns the next pending raw code, if any.
	PollOnce() (raw uint32, ok bool)

	// Resume re-arms the receiver for the next code.
	Resume()
}

// Queue is a thread-safe Receiver fed by Inject. The simulator pushes
// keyboard and websocket codes from other goroutines; the control loop
// drains it one code per tick.
//
// Inject drops the CodeQuit sentinel: quit is an input-source concern and
// must never surface as a remote command.
type Queue struct {
	mu      sync.Mutex
	pending []uint32
	latched bool
}

// NewQueue returns an empty injection queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Begin implements Receiver. No-op for a software source.
func (q *Queue) Begin(pin int) {}

// Inject appends a raw code for the control loop to consume.
func (q *Queue) Inject(raw uint32) {
	if raw == CodeQuit {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, raw)
	q.mu.Unlock()
}

// PollOnce implements Receiver. While a code is latched (delivered but not
// yet resumed) no further codes are handed out.
func (q *Queue) PollOnce() (uint32, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.latched || len(q.pending) == 0 {
		return 0, false
	}
	raw := q.pending[0]
	q.pending = q.pending[1:]
	q.latched = true
	return raw, true
}

// Resume implements Receiver.
func (q *Queue) Resume() {
	q.mu.Lock()
	q.latched = false
	q.mu.Unlock()
}

// Len reports how many codes are waiting. Used by tests and the ws hub.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
