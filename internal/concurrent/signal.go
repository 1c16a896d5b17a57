// Used by internal/driver to publish lifecycle events (prime admitted, gap
// detected, window advanced, shape adjusted, run completed) to the single
// logging listener cmd/gensmooth attaches at startup, decoupling the state
// machine from internal/logger.

package concurrent

import "errors"

var ErrSigInactive = errors.New("signaller inactive")

// Signal is any event value; gensmooth only ever sends the driver's event
// structs (internal/driver.PrimeAdmitted, GapDetected, WindowAdvanced,
// ShapeAdjusted, Completed) through a Signaller, but the type stays generic
// so Signaller itself carries no domain knowledge.
type Signal interface{}

// Listener receives signals from a Signaller until the Signaller is
// retired, at which point its channel closes.
type Listener struct {
	ch chan Signal
}

// Signal returns the channel to read from.
func (l *Listener) Signal() <-chan Signal {
	return l.ch
}

// Signaller delivers signals to the one listener a Driver ever attaches.
// There is no fan-out, listener registry, or per-send latency eviction
// here: a Driver calls Events() exactly once before Run, so Signaller only
// has to carry values from Send to that single reader.
type Signaller struct {
	ch     chan Signal
	active bool
}

// NewSignaller creates a Signaller with its delivery channel buffered (16
// signals), so Send does not block the driver on a slow or
// momentarily-absent listener until that buffer is full; beyond it, Send
// blocks until the listener receives.
func NewSignaller() *Signaller {
	return &Signaller{ch: make(chan Signal, 16), active: true}
}

// Send delivers sig to the listener. Returns ErrSigInactive if the
// Signaller has been retired.
func (s *Signaller) Send(sig Signal) error {
	if !s.active {
		return ErrSigInactive
	}
	s.ch <- sig
	return nil
}

// Listener returns the Signaller's single listener. Returns ErrSigInactive
// if the Signaller has been retired.
func (s *Signaller) Listener() (*Listener, error) {
	if !s.active {
		return nil, ErrSigInactive
	}
	return &Listener{ch: s.ch}, nil
}

// Retire closes the delivery channel; a retired Signaller cannot be reused
// and Send/Listener return ErrSigInactive afterward.
func (s *Signaller) Retire() {
	if s.active {
		s.active = false
		close(s.ch)
	}
}
