package pulse

import (
	"fmt"

	"lautenbacher.net/smartled/led"
)

// ChannelOrder is the sequence in which the color channel bytes go out on
// the wire. WS2812-class strips mostly want GRB, some clones want RGB or
// BRG, RGBW strips add a trailing white byte.
type ChannelOrder int

const (
	OrderGRB ChannelOrder = iota
	OrderRGB
	OrderBRG
	OrderBGR
	OrderGRBW
	OrderRGBW
)

// index into an [r g b w] array, per wire position
var orderTable = map[ChannelOrder][]int{
	OrderGRB:  {1, 0, 2},
	OrderRGB:  {0, 1, 2},
	OrderBRG:  {2, 0, 1},
	OrderBGR:  {2, 1, 0},
	OrderGRBW: {1, 0, 2, 3},
	OrderRGBW: {0, 1, 2, 3},
}

// ParseChannelOrder maps a config string like "GRB" to its ChannelOrder.
func ParseChannelOrder(s string) (ChannelOrder, error) {
	switch s {
	case "GRB":
		return OrderGRB, nil
	case "RGB":
		return OrderRGB, nil
	case "BRG":
		return OrderBRG, nil
	case "BGR":
		return OrderBGR, nil
	case "GRBW":
		return OrderGRBW, nil
	case "RGBW":
		return OrderRGBW, nil
	}
	return 0, fmt.Errorf("unknown channel order %q", s)
}

func (o ChannelOrder) String() string {
	switch o {
	case OrderGRB:
		return "GRB"
	case OrderRGB:
		return "RGB"
	case OrderBRG:
		return "BRG"
	case OrderBGR:
		return "BGR"
	case OrderGRBW:
		return "GRBW"
	case OrderRGBW:
		return "RGBW"
	}
	return fmt.Sprintf("ChannelOrder(%d)", int(o))
}

// Channels returns the number of channel bytes per LED (3 or 4).
func (o ChannelOrder) Channels() int {
	return len(orderTable[o])
}

// wireBytes permutes a Led into wire order. The returned count is the number
// of valid leading bytes.
func (o ChannelOrder) wireBytes(l led.Led) ([4]byte, int) {
	rgbw := [4]byte{l.Red, l.Green, l.Blue, l.White}
	perm := orderTable[o]
	var out [4]byte
	for i, src := range perm {
		out[i] = rgbw[src]
	}
	return out, len(perm)
}

// unwireBytes is the inverse permutation, turning wire-order channel bytes
// back into a Led.
func (o ChannelOrder) unwireBytes(in []byte) led.Led {
	var rgbw [4]byte
	for i, src := range orderTable[o] {
		rgbw[src] = in[i]
	}
	return led.Led{Red: rgbw[0], Green: rgbw[1], Blue: rgbw[2], White: rgbw[3]}
}

// Encoder turns channel bytes into pulse codes using a fixed timing table
// and channel order. It carries no mutable state: the same input always
// produces the same codes.
type Encoder struct {
	timings Timings
	order   ChannelOrder
}

// NewEncoder creates an Encoder for one timing table and wire order.
func NewEncoder(t Timings, order ChannelOrder) Encoder {
	return Encoder{timings: t, order: order}
}

// BitsPerLed returns how many pulse codes one LED occupies (24 or 32).
func (e Encoder) BitsPerLed() int {
	return 8 * e.order.Channels()
}

// EncodeByte appends exactly 8 pulse codes to dst, most significant bit
// first.
func (e Encoder) EncodeByte(b byte, dst *Buffer) error {
	for i := 7; i >= 0; i-- {
		code := e.timings.Code0
		if b&(1<<uint(i)) != 0 {
			code = e.timings.Code1
		}
		if err := dst.Push(code); err != nil {
			return err
		}
	}
	return nil
}

// EncodeLed appends the pulse codes for one LED to dst, channel bytes in the
// configured wire order. No brightness or gamma scaling happens here; that
// is the caller's business before encoding.
func (e Encoder) EncodeLed(l led.Led, dst *Buffer) error {
	bytes, n := e.order.wireBytes(l)
	for _, b := range bytes[:n] {
		if err := e.EncodeByte(b, dst); err != nil {
			return err
		}
	}
	return nil
}
