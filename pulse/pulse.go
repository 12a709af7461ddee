// Package pulse implements the WS2812/SK6812 one-wire protocol: it turns
// color channel bytes into precisely timed pulse codes that a
// pulse-generation peripheral can put on a pin.
package pulse

// MaxTicks is the largest duration one pulse segment can carry. The
// peripheral's duration field is 15 bits wide.
const MaxTicks = 1<<15 - 1

// Code is one output waveform pair: the line is held at the first level for
// Ticks1 peripheral clock ticks, then at the second level for Ticks2 ticks.
// A single Code represents one protocol bit, or the end-of-frame reset
// marker.
type Code struct {
	High1  bool
	Ticks1 uint16
	High2  bool
	Ticks2 uint16
}

// TotalTicks returns the summed duration of both segments in clock ticks.
func (c Code) TotalTicks() int {
	return int(c.Ticks1) + int(c.Ticks2)
}
