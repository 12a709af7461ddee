package pulse

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTiming is returned when a protocol interval cannot be expressed
// on the given peripheral clock, either because it rounds down to zero ticks
// or because it exceeds the 15 bit duration field.
var ErrInvalidTiming = errors.New("pulse: invalid timing")

// TimingSpec holds the protocol-defined intervals of a WS2812-class LED
// family. T0H/T0L are the high and low times of a logical 0, T1H/T1L those
// of a logical 1. Reset is the minimum low time after the last bit that
// makes the LEDs latch the frame.
type TimingSpec struct {
	T0H   time.Duration
	T0L   time.Duration
	T1H   time.Duration
	T1L   time.Duration
	Reset time.Duration
}

// WS2812Spec returns the datasheet timings for WS2812/WS2812B strips.
// https://cdn-shop.adafruit.com/datasheets/WS2812B.pdf
func WS2812Spec() TimingSpec {
	return TimingSpec{
		T0H:   350 * time.Nanosecond,
		T0L:   800 * time.Nanosecond,
		T1H:   700 * time.Nanosecond,
		T1L:   600 * time.Nanosecond,
		Reset: 280 * time.Microsecond,
	}
}

// SK6812Spec returns the datasheet timings for SK6812 (RGBW) strips.
func SK6812Spec() TimingSpec {
	return TimingSpec{
		T0H:   300 * time.Nanosecond,
		T0L:   900 * time.Nanosecond,
		T1H:   600 * time.Nanosecond,
		T1L:   600 * time.Nanosecond,
		Reset: 80 * time.Microsecond,
	}
}

// Timings is the per-adapter timing parameter table: the two bit codes and
// the reset marker, all expressed in ticks of one concrete peripheral clock.
// It is computed once at adapter construction. A different clock rate needs
// a new table (and a new adapter).
type Timings struct {
	Code0 Code
	Code1 Code
	Reset Code
}

// Threshold returns the high-duration midpoint between a 0 bit and a 1 bit.
// A pulse whose high segment is at least this long decodes as 1.
func (t Timings) Threshold() uint16 {
	return uint16((int(t.Code0.Ticks1) + int(t.Code1.Ticks1) + 1) / 2)
}

// ComputeTimings converts a protocol timing spec into clock ticks of the
// pulse-generation peripheral running at clockHz.
func ComputeTimings(clockHz int, spec TimingSpec) (Timings, error) {
	if clockHz <= 0 {
		return Timings{}, fmt.Errorf("%w: clock rate %d Hz", ErrInvalidTiming, clockHz)
	}
	t0h, err := ticksFor("t0h", spec.T0H, clockHz)
	if err != nil {
		return Timings{}, err
	}
	t0l, err := ticksFor("t0l", spec.T0L, clockHz)
	if err != nil {
		return Timings{}, err
	}
	t1h, err := ticksFor("t1h", spec.T1H, clockHz)
	if err != nil {
		return Timings{}, err
	}
	t1l, err := ticksFor("t1l", spec.T1L, clockHz)
	if err != nil {
		return Timings{}, err
	}
	reset, err := ticksFor("reset", spec.Reset, clockHz)
	if err != nil {
		return Timings{}, err
	}
	return Timings{
		Code0: Code{High1: true, Ticks1: t0h, High2: false, Ticks2: t0l},
		Code1: Code{High1: true, Ticks1: t1h, High2: false, Ticks2: t1l},
		// The marker is a single low segment; the zero-length second
		// segment terminates the transmission.
		Reset: Code{High1: false, Ticks1: reset, High2: false, Ticks2: 0},
	}, nil
}

// ticksFor rounds duration * clockHz / 1e9 to the nearest tick and rejects
// results outside the representable range rather than truncating.
func ticksFor(name string, d time.Duration, clockHz int) (uint16, error) {
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s duration %v must be positive", ErrInvalidTiming, name, d)
	}
	ticks := (d.Nanoseconds()*int64(clockHz) + 500_000_000) / 1_000_000_000
	if ticks == 0 {
		return 0, fmt.Errorf("%w: %s %v is below one tick at %d Hz", ErrInvalidTiming, name, d, clockHz)
	}
	if ticks > MaxTicks {
		return 0, fmt.Errorf("%w: %s %v needs %d ticks at %d Hz, maximum is %d",
			ErrInvalidTiming, name, d, ticks, clockHz, MaxTicks)
	}
	return uint16(ticks), nil
}
