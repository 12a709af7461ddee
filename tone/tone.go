// Package tone plays frequency/duration sequences through a PWM channel,
// the way a piezo buzzer is driven.
package tone

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrVolumeOutOfRange is returned for volume levels above 100.
	ErrVolumeOutOfRange = errors.New("tone: volume out of range")

	// ErrLengthMismatch is returned when the frequency and duration
	// slices given to PlayTones differ in length.
	ErrLengthMismatch = errors.New("tone: sequence and timings differ in length")
)

// PWM is the duty-cycle interface of the underlying PWM channel driver.
type PWM interface {
	// SetFrequency reconfigures the PWM base frequency in Hz.
	SetFrequency(hz uint32) error

	// SetDuty sets the duty cycle in percent (0 = silent).
	SetDuty(percent uint8) error
}

// Tone is one note of a song: a frequency and how long to hold it.
// Frequency 0 is a rest.
type Tone struct {
	Frequency uint32
	Duration  time.Duration
}

// Buzzer plays tones through one PWM channel.
type Buzzer struct {
	pwm    PWM
	volume uint8
	// injectable for tests
	sleep func(time.Duration)
}

// NewBuzzer creates a buzzer on the given PWM channel at 50% volume.
func NewBuzzer(pwm PWM) *Buzzer {
	return &Buzzer{pwm: pwm, volume: 50, sleep: time.Sleep}
}

// SetVolume sets the duty cycle used while a tone plays, 0..100.
func (b *Buzzer) SetVolume(level uint8) error {
	if level > 100 {
		return fmt.Errorf("%w: %d", ErrVolumeOutOfRange, level)
	}
	b.volume = level
	return nil
}

// Play starts the given frequency and keeps it playing until the next call.
// Frequency 0 mutes.
func (b *Buzzer) Play(frequency uint32) error {
	if frequency == 0 {
		return b.Mute()
	}
	if err := b.pwm.SetFrequency(frequency); err != nil {
		return err
	}
	return b.pwm.SetDuty(b.volume)
}

// Mute silences the buzzer by setting the duty cycle to zero.
func (b *Buzzer) Mute() error {
	return b.pwm.SetDuty(0)
}

// PlayTones plays a sequence of frequencies with a duration per entry,
// muting after each tone and at the end of the sequence.
func (b *Buzzer) PlayTones(sequence []uint32, timings []time.Duration) error {
	if len(sequence) != len(timings) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(sequence), len(timings))
	}
	for i, frequency := range sequence {
		if err := b.Play(frequency); err != nil {
			return err
		}
		b.sleep(timings[i])
		if err := b.Mute(); err != nil {
			return err
		}
	}
	return b.Mute()
}

// PlaySong plays a tone sequence.
func (b *Buzzer) PlaySong(song []Tone) error {
	for _, tone := range song {
		if err := b.Play(tone.Frequency); err != nil {
			return err
		}
		b.sleep(tone.Duration)
		if err := b.Mute(); err != nil {
			return err
		}
	}
	return b.Mute()
}
