// Package audio implements tone.PWM on the host sound card: the PWM square
// wave is synthesized through portaudio, so songs written for the buzzer
// are audible in simulation mode.
package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

var (
	paMutex       sync.Mutex
	paInitialized bool
)

const framesPerBuffer = 512

// keeps the square wave at a civilized speaker volume
const maxAmplitude = 0.3

// Synth is a square wave generator behind the tone.PWM interface.
type Synth struct {
	stream     *portaudio.Stream
	sampleRate float64

	mu    sync.Mutex
	freq  float64
	amp   float64
	phase float64
}

// NewSynth opens an output stream on the default device.
func NewSynth(sampleRate int) (*Synth, error) {
	paMutex.Lock()
	if !paInitialized {
		if err := portaudio.Initialize(); err != nil {
			paMutex.Unlock()
			return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
		}
		slog.Info("PortAudio initialized.")
		paInitialized = true
	}
	paMutex.Unlock()

	s := &Synth{sampleRate: float64(sampleRate)}
	stream, err := portaudio.OpenDefaultStream(0, 1, s.sampleRate, framesPerBuffer, s.fill)
	if err != nil {
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to start output stream: %w", err)
	}
	return s, nil
}

// fill is the portaudio callback producing the square wave.
func (s *Synth) fill(out []float32) {
	s.mu.Lock()
	freq, amp, phase := s.freq, s.amp, s.phase
	s.mu.Unlock()

	if freq == 0 || amp == 0 {
		for i := range out {
			out[i] = 0
		}
		return
	}
	step := freq / s.sampleRate
	for i := range out {
		if phase < 0.5 {
			out[i] = float32(amp)
		} else {
			out[i] = float32(-amp)
		}
		phase += step
		if phase >= 1 {
			phase -= 1
		}
	}

	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
}

// SetFrequency implements tone.PWM.
func (s *Synth) SetFrequency(hz uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freq = float64(hz)
	return nil
}

// SetDuty implements tone.PWM. The duty cycle maps to output amplitude.
func (s *Synth) SetDuty(percent uint8) error {
	if percent > 100 {
		return fmt.Errorf("duty %d%% out of range", percent)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amp = float64(percent) / 100 * maxAmplitude
	return nil
}

// Close stops the stream and terminates portaudio.
func (s *Synth) Close() error {
	var firstErr error
	if err := s.stream.Stop(); err != nil {
		firstErr = err
	}
	if err := s.stream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	paMutex.Lock()
	defer paMutex.Unlock()
	if paInitialized {
		if err := portaudio.Terminate(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		} else {
			slog.Info("PortAudio terminated.")
			paInitialized = false
		}
	}
	return firstErr
}
