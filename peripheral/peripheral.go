// Package peripheral defines the interface between the strip adapter and
// the hardware (or simulated) pulse generator. Concrete backends live in
// the sub-packages sim, rpi and tui.
package peripheral

import (
	"sync"

	"lautenbacher.net/smartled/pulse"
)

// Status of an outstanding transmission.
type Status int

const (
	StatusPending Status = iota
	StatusComplete
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Channel is one pulse-generation channel. Exactly one adapter owns a
// channel at a time; a channel accepts one transmission and reports back
// through the returned handle.
type Channel interface {
	// Submit hands a complete frame (data codes plus reset marker) to the
	// peripheral. The returned Transmission completes exactly once, with a
	// nil error on success or the hardware error otherwise.
	Submit(codes []pulse.Code) (*Transmission, error)
}

// Transmission is the completion handle backends return from Submit. It
// supports both waiting disciplines: polling via Poll for the blocking
// path, and Done/OnComplete for the suspending path.
type Transmission struct {
	mu        sync.Mutex
	done      chan struct{}
	err       error
	completed bool
	callbacks []func(error)
}

// NewTransmission creates a pending handle. Only backends need this.
func NewTransmission() *Transmission {
	return &Transmission{done: make(chan struct{})}
}

// Complete marks the transmission finished. Backends call this exactly
// once; later calls are ignored. Registered callbacks run on the calling
// goroutine before Done is closed.
func (t *Transmission) Complete(err error) {
	t.mu.Lock()
	if t.completed {
		t.mu.Unlock()
		return
	}
	t.completed = true
	t.err = err
	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn(err)
	}
	close(t.done)
}

// Poll reports the current state without blocking.
func (t *Transmission) Poll() Status {
	select {
	case <-t.done:
	default:
		return StatusPending
	}
	if t.Err() != nil {
		return StatusFailed
	}
	return StatusComplete
}

// Err returns the completion error, or nil while pending or on success.
func (t *Transmission) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Done returns a channel that is closed once the transmission completed.
func (t *Transmission) Done() <-chan struct{} {
	return t.done
}

// OnComplete registers fn to run exactly once when the transmission
// completes. If it already has, fn runs immediately on the calling
// goroutine.
func (t *Transmission) OnComplete(fn func(error)) {
	t.mu.Lock()
	if !t.completed {
		t.callbacks = append(t.callbacks, fn)
		t.mu.Unlock()
		return
	}
	err := t.err
	t.mu.Unlock()
	fn(err)
}
