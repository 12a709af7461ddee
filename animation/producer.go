// Package animation generates LED frames and feeds them to a strip
// adapter. Producers run as independent goroutines and publish their frames
// through a coalescing event; the Player merges and transmits them.
package animation

import (
	"sync"

	"lautenbacher.net/smartled/led"
	"lautenbacher.net/smartled/util"
)

// LedProducer is one source of LED values.
type LedProducer interface {
	GetUID() string
	GetLeds() []led.Led
	Start()
	Exit()
	GetIsRunning() bool
}

// AbstractProducer implements the common and shared functionality between
// the concrete implementations of the LedProducer interface.
type AbstractProducer struct {
	uid       string
	leds      []led.Led
	isRunning bool
	hasExited bool
	// Guards getting and setting LED values
	ledsMutex sync.Mutex
	// Guards changes to isRunning & hasExited
	updateMutex sync.Mutex
	ledsChanged *util.AtomicMapEvent[LedProducer]
	// the method Start() runs as a go routine. MUST be set by the
	// concrete implementation upon constructing a new instance
	runfunc func()
	// signaled via Exit. The runfunc MUST listen on this channel and
	// return when it receives a value
	stop chan bool
}

// NewAbstractProducer creates the shared producer core. The uid must be
// unique across all producers feeding one player.
func NewAbstractProducer(uid string, ledsChanged *util.AtomicMapEvent[LedProducer], runfunc func(), size int) *AbstractProducer {
	return &AbstractProducer{
		uid:         uid,
		leds:        make([]led.Led, size),
		ledsChanged: ledsChanged,
		runfunc:     runfunc,
		stop:        make(chan bool),
	}
}

// Sets a single LED at index index to value.
// Guarded by s.ledsMutex
func (s *AbstractProducer) setLed(index int, value led.Led) {
	s.ledsMutex.Lock()
	defer s.ledsMutex.Unlock()
	s.leds[index] = value
}

// GetLeds returns a copy of the current values of all the LEDs.
// Guarded by s.ledsMutex
func (s *AbstractProducer) GetLeds() []led.Led {
	s.ledsMutex.Lock()
	defer s.ledsMutex.Unlock()
	ret := make([]led.Led, len(s.leds))
	copy(ret, s.leds)
	return ret
}

// GetUID returns the producer's unique id.
func (s *AbstractProducer) GetUID() string {
	return s.uid
}

// Start runs the producer's worker goroutine. Calling Start on an already
// running or exited producer does nothing.
func (s *AbstractProducer) Start() {
	s.updateMutex.Lock()
	defer s.updateMutex.Unlock()
	if !s.isRunning && !s.hasExited {
		s.isRunning = true
		go func() {
			s.runfunc()
			s.updateMutex.Lock()
			s.isRunning = false
			s.updateMutex.Unlock()
		}()
	}
}

// Exit stops the worker goroutine for good. Only call once per instance.
func (s *AbstractProducer) Exit() {
	s.updateMutex.Lock()
	defer s.updateMutex.Unlock()
	if s.isRunning {
		s.stop <- true
	}
	s.hasExited = true
}

func (s *AbstractProducer) GetIsRunning() bool {
	s.updateMutex.Lock()
	defer s.updateMutex.Unlock()
	return s.isRunning
}
