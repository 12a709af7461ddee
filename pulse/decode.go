package pulse

import (
	"fmt"

	"lautenbacher.net/smartled/led"
)

// DecodeByte recovers one channel byte from 8 pulse codes by thresholding
// each code's high duration. It is the inverse of Encoder.EncodeByte and is
// used by the simulation display and in tests.
func DecodeByte(codes []Code, threshold uint16) (byte, error) {
	if len(codes) != 8 {
		return 0, fmt.Errorf("pulse: decode needs 8 codes, got %d", len(codes))
	}
	var b byte
	for i, c := range codes {
		if c.Ticks1 >= threshold {
			b |= 1 << uint(7-i)
		}
	}
	return b, nil
}

// DecodeFrame turns a full transmitted frame (data bits plus trailing reset
// marker) back into LED values. The marker is identified by its leading low
// level and stripped before decoding.
func DecodeFrame(codes []Code, t Timings, order ChannelOrder) ([]led.Led, error) {
	if n := len(codes); n > 0 && !codes[n-1].High1 {
		codes = codes[:n-1]
	}
	bits := 8 * order.Channels()
	if len(codes)%bits != 0 {
		return nil, fmt.Errorf("pulse: frame length %d is not a whole number of %d bit LEDs", len(codes), bits)
	}
	threshold := t.Threshold()
	leds := make([]led.Led, 0, len(codes)/bits)
	wire := make([]byte, order.Channels())
	for i := 0; i < len(codes); i += bits {
		for ch := range wire {
			b, err := DecodeByte(codes[i+8*ch:i+8*ch+8], threshold)
			if err != nil {
				return nil, err
			}
			wire[ch] = b
		}
		leds = append(leds, order.unwireBytes(wire))
	}
	return leds, nil
}
