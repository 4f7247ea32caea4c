//go:build tinygo

package hw

import (
	"machine"

	"tinygo.org/x/drivers/irremote"

	"github.com/drewsortega/bonnaroo-led/internal/remote"
)

// IRReceiver adapts the NEC demodulator driver to the polled receiver
// contract. The driver decodes in an interrupt handler; the handler only
// stores the code, and the control loop picks it up on its next tick.
//
// While a code is latched (delivered but not yet resumed) new codes are
// dropped, matching the hold-off behavior the dispatcher's cooldown is
// tuned for.
type IRReceiver struct {
	dev irremote.ReceiverDevice

	pending uint32
	hasCode bool
	latched bool
}

// NewIRReceiver returns a receiver for the demodulator on the given pin.
func NewIRReceiver(pin machine.Pin) *IRReceiver {
	r := &IRReceiver{}
	r.dev = irremote.NewReceiver(pin)
	return r
}

// Begin implements remote.Receiver.
func (r *IRReceiver) Begin(pin int) {
	r.dev.Configure()
	r.dev.SetCommandHandler(r.onCommand)
}

func (r *IRReceiver) onCommand(data irremote.Data) {
	if data.Flags&irremote.DataFlagIsRepeat != 0 {
		return
	}
	if r.latched || r.hasCode {
		return
	}
	if data.Code == remote.CodeQuit {
		return
	}
	r.pending = data.Code
	r.hasCode = true
}

// PollOnce implements remote.Receiver.
func (r *IRReceiver) PollOnce() (uint32, bool) {
	if r.latched || !r.hasCode {
		return 0, false
	}
	r.hasCode = false
	r.latched = true
	return r.pending, true
}

// Resume implements remote.Receiver.
func (r *IRReceiver) Resume() {
	r.latched = false
}
