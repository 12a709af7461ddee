// Package sim provides an in-memory pulse channel for tests and for running
// the demo without hardware. Submitted frames are recorded and complete
// either immediately or after the frame's real wire duration.
package sim

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lautenbacher.net/smartled/peripheral"
	"lautenbacher.net/smartled/pulse"
)

// Channel is a simulated pulse-generation channel.
type Channel struct {
	clockHz   int
	immediate bool

	mu       sync.Mutex
	inflight bool
	failNext error
	frames   [][]pulse.Code
}

// New creates a channel whose transmissions take as long as they would on a
// real peripheral clocked at clockHz.
func New(clockHz int) *Channel {
	return &Channel{clockHz: clockHz}
}

// NewImmediate creates a channel that completes every transmission
// synchronously inside Submit. Handy in tests.
func NewImmediate() *Channel {
	return &Channel{clockHz: 1, immediate: true}
}

// FailNext makes the next transmission complete with err instead of
// succeeding.
func (c *Channel) FailNext(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = err
}

// Frames returns copies of all frames submitted so far.
func (c *Channel) Frames() [][]pulse.Code {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]pulse.Code, len(c.frames))
	copy(out, c.frames)
	return out
}

// LastFrame returns the most recently submitted frame, or nil.
func (c *Channel) LastFrame() []pulse.Code {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// Submit implements peripheral.Channel.
func (c *Channel) Submit(codes []pulse.Code) (*peripheral.Transmission, error) {
	c.mu.Lock()
	if c.inflight {
		c.mu.Unlock()
		return nil, errors.New("sim: channel busy")
	}
	if len(codes) == 0 {
		c.mu.Unlock()
		return nil, errors.New("sim: empty frame")
	}
	frame := make([]pulse.Code, len(codes))
	copy(frame, codes)
	c.frames = append(c.frames, frame)
	failErr := c.failNext
	c.failNext = nil
	c.inflight = true
	c.mu.Unlock()

	tx := peripheral.NewTransmission()
	finish := func() {
		c.mu.Lock()
		c.inflight = false
		c.mu.Unlock()
		tx.Complete(failErr)
	}
	if c.immediate {
		finish()
	} else {
		time.AfterFunc(c.wireDuration(frame), finish)
	}
	return tx, nil
}

// wireDuration sums up the frame's tick counts on the simulated clock.
func (c *Channel) wireDuration(frame []pulse.Code) time.Duration {
	ticks := 0
	for _, code := range frame {
		ticks += code.TotalTicks()
	}
	return time.Duration(float64(ticks) / float64(c.clockHz) * float64(time.Second))
}

// String identifies the channel in log output.
func (c *Channel) String() string {
	return fmt.Sprintf("sim channel @%d Hz", c.clockHz)
}
