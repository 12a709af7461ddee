package pulse

import (
	"errors"
	"fmt"
)

// ErrBufferOverflow is returned when an encoding pass needs more pulse codes
// than the buffer was sized for at construction.
var ErrBufferOverflow = errors.New("pulse: buffer overflow")

// Buffer is a fixed-capacity pulse code arena. It is allocated once and
// reused for every frame: Reset moves the write cursor back to zero, Push
// appends, Finish closes the frame with the reset marker. The buffer never
// grows; running out of room mid-encode is an error, not a reallocation.
type Buffer struct {
	codes []Code
	used  int
}

// NewBuffer allocates a buffer holding up to capacity pulse codes,
// including the trailing reset marker.
func NewBuffer(capacity int) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("pulse: buffer capacity %d must be at least 1", capacity)
	}
	return &Buffer{codes: make([]Code, capacity)}, nil
}

// BufferSize returns the pulse code capacity needed for numLeds LEDs in the
// given wire order: one code per bit plus the reset marker.
func BufferSize(numLeds int, order ChannelOrder) int {
	return numLeds*8*order.Channels() + 1
}

// Reset logically clears the buffer for a new encoding pass. The underlying
// storage is kept.
func (b *Buffer) Reset() {
	b.used = 0
}

// Len returns the number of codes written since the last Reset.
func (b *Buffer) Len() int {
	return b.used
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.codes)
}

// Push appends one pulse code at the write cursor.
func (b *Buffer) Push(c Code) error {
	if b.used >= len(b.codes) {
		return fmt.Errorf("%w: capacity %d", ErrBufferOverflow, len(b.codes))
	}
	b.codes[b.used] = c
	b.used++
	return nil
}

// Finish appends the reset marker and returns the filled prefix for
// transmission. The returned slice aliases the buffer and is only valid
// until the next Reset.
func (b *Buffer) Finish(marker Code) ([]Code, error) {
	if err := b.Push(marker); err != nil {
		return nil, err
	}
	return b.codes[:b.used], nil
}
