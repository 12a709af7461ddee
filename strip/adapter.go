// Package strip drives a string of addressable LEDs through a
// pulse-generation peripheral channel. The adapter owns a preallocated
// pulse buffer and offers a blocking and a suspending write around one
// shared encode pass.
package strip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"lautenbacher.net/smartled/led"
	"lautenbacher.net/smartled/peripheral"
	"lautenbacher.net/smartled/pulse"
)

var (
	// ErrBusy is returned when a write is issued while a previous
	// transmission on the same adapter is still in flight. Callers are
	// expected to serialize writes; this turns a violation into an error
	// instead of corrupting the shared buffer.
	ErrBusy = errors.New("strip: transmission already in progress")

	// ErrPeripheral wraps hardware-reported failures. Nothing is retried
	// here: a retry repaints the strip, so that call is the caller's.
	ErrPeripheral = errors.New("strip: peripheral failure")
)

// how often the blocking write checks the completion flag
const pollInterval = 100 * time.Microsecond

// Adapter owns one peripheral channel and one pulse buffer for its whole
// lifetime. It is not safe for concurrent use; one goroutine per strip.
type Adapter struct {
	ch      peripheral.Channel
	enc     pulse.Encoder
	timings pulse.Timings
	buf     *pulse.Buffer
	maxLeds int
	busy    atomic.Bool
}

// New creates an adapter for up to maxLeds LEDs on the given channel. The
// timing table is computed once from clockHz and spec; a changed clock rate
// needs a new adapter. Construction fails on timings the peripheral cannot
// represent.
func New(ch peripheral.Channel, clockHz int, spec pulse.TimingSpec, maxLeds int, order pulse.ChannelOrder) (*Adapter, error) {
	if ch == nil {
		return nil, errors.New("strip: nil peripheral channel")
	}
	if maxLeds < 1 {
		return nil, fmt.Errorf("strip: maxLeds %d must be at least 1", maxLeds)
	}
	timings, err := pulse.ComputeTimings(clockHz, spec)
	if err != nil {
		return nil, err
	}
	buf, err := pulse.NewBuffer(pulse.BufferSize(maxLeds, order))
	if err != nil {
		return nil, err
	}
	slog.Debug("strip: adapter created", "clockHz", clockHz, "maxLeds", maxLeds, "order", order.String())
	return &Adapter{
		ch:      ch,
		enc:     pulse.NewEncoder(timings, order),
		timings: timings,
		buf:     buf,
		maxLeds: maxLeds,
	}, nil
}

// MaxLeds returns the LED count the adapter's buffer was sized for.
func (a *Adapter) MaxLeds() int {
	return a.maxLeds
}

// Write encodes and transmits one frame, then waits on the calling
// goroutine until the peripheral reports completion or a hardware error.
// On pulse.ErrBufferOverflow nothing has been submitted and the previous
// LED state is untouched.
func (a *Adapter) Write(leds []led.Led) error {
	tx, err := a.start(leds)
	if err != nil {
		return err
	}
	for tx.Poll() == peripheral.StatusPending {
		time.Sleep(pollInterval)
	}
	a.busy.Store(false)
	return txErr(tx)
}

// WriteContext is the suspending variant of Write: instead of polling it
// parks the calling goroutine until the peripheral's completion signal
// fires. When ctx expires first the call returns early, but the hardware
// transmission still runs to completion (there is no mid-frame abort) and
// the adapter frees itself once it does.
func (a *Adapter) WriteContext(ctx context.Context, leds []led.Led) error {
	tx, err := a.start(leds)
	if err != nil {
		return err
	}
	select {
	case <-tx.Done():
		a.busy.Store(false)
		return txErr(tx)
	case <-ctx.Done():
		tx.OnComplete(func(error) { a.busy.Store(false) })
		return ctx.Err()
	}
}

// start runs the shared encode pass and submits the frame. The adapter is
// marked busy on success; every error path leaves it idle again.
func (a *Adapter) start(leds []led.Led) (*peripheral.Transmission, error) {
	if !a.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	a.buf.Reset()
	for _, l := range leds {
		if err := a.enc.EncodeLed(l, a.buf); err != nil {
			a.busy.Store(false)
			return nil, err
		}
	}
	frame, err := a.buf.Finish(a.timings.Reset)
	if err != nil {
		a.busy.Store(false)
		return nil, err
	}
	tx, err := a.ch.Submit(frame)
	if err != nil {
		a.busy.Store(false)
		return nil, fmt.Errorf("%w: %w", ErrPeripheral, err)
	}
	slog.Debug("strip: frame submitted", "leds", len(leds), "codes", len(frame))
	return tx, nil
}

func txErr(tx *peripheral.Transmission) error {
	if err := tx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPeripheral, err)
	}
	return nil
}
