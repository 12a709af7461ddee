package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lautenbacher.net/smartled/led"
)

func mustTimings(t *testing.T, clockHz int) Timings {
	t.Helper()
	timings, err := ComputeTimings(clockHz, WS2812Spec())
	require.NoError(t, err)
	return timings
}

func TestEncodeByte_BitOrder(t *testing.T) {
	timings := mustTimings(t, 80_000_000)
	enc := NewEncoder(timings, OrderGRB)
	buf, err := NewBuffer(9)
	require.NoError(t, err)

	require.NoError(t, enc.EncodeByte(0b10110000, buf))

	want := []Code{
		timings.Code1, timings.Code0, timings.Code1, timings.Code1,
		timings.Code0, timings.Code0, timings.Code0, timings.Code0,
	}
	frame, err := buf.Finish(timings.Reset)
	require.NoError(t, err)
	assert.Equal(t, want, frame[:8])
	assert.Equal(t, timings.Reset, frame[8])
}

func TestEncodeLed_GRBWireOrder(t *testing.T) {
	timings := mustTimings(t, 80_000_000)
	enc := NewEncoder(timings, OrderGRB)
	buf, err := NewBuffer(BufferSize(1, OrderGRB))
	require.NoError(t, err)

	// pure red goes out as 0x00 0xFF 0x00 in GRB order
	require.NoError(t, enc.EncodeLed(led.Led{Red: 255}, buf))
	frame, err := buf.Finish(timings.Reset)
	require.NoError(t, err)
	require.Len(t, frame, 25)

	for i := 0; i < 8; i++ {
		assert.Equal(t, timings.Code0, frame[i], "green bit %d", i)
	}
	for i := 8; i < 16; i++ {
		assert.Equal(t, timings.Code1, frame[i], "red bit %d", i)
	}
	for i := 16; i < 24; i++ {
		assert.Equal(t, timings.Code0, frame[i], "blue bit %d", i)
	}
	assert.Equal(t, timings.Reset, frame[24])
}

func TestEncodeLed_RGBWHasFourChannels(t *testing.T) {
	timings := mustTimings(t, 80_000_000)
	enc := NewEncoder(timings, OrderGRBW)
	assert.Equal(t, 32, enc.BitsPerLed())

	buf, err := NewBuffer(BufferSize(1, OrderGRBW))
	require.NoError(t, err)
	require.NoError(t, enc.EncodeLed(led.Led{White: 255}, buf))
	assert.Equal(t, 32, buf.Len())

	frame, err := buf.Finish(timings.Reset)
	require.NoError(t, err)
	// only the trailing white byte is set
	for i := 0; i < 24; i++ {
		assert.Equal(t, timings.Code0, frame[i])
	}
	for i := 24; i < 32; i++ {
		assert.Equal(t, timings.Code1, frame[i])
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	timings := mustTimings(t, 80_000_000)
	enc := NewEncoder(timings, OrderGRB)
	buf, err := NewBuffer(9)
	require.NoError(t, err)

	for b := 0; b < 256; b++ {
		buf.Reset()
		require.NoError(t, enc.EncodeByte(byte(b), buf))
		frame, err := buf.Finish(timings.Reset)
		require.NoError(t, err)
		got, err := DecodeByte(frame[:8], timings.Threshold())
		require.NoError(t, err)
		if got != byte(b) {
			t.Fatalf("round trip of 0x%02x gave 0x%02x", b, got)
		}
	}
}

func TestEncoder_Deterministic(t *testing.T) {
	timings := mustTimings(t, 80_000_000)
	enc := NewEncoder(timings, OrderRGB)
	input := led.Led{Red: 12, Green: 200, Blue: 7}

	encode := func() []Code {
		buf, err := NewBuffer(BufferSize(1, OrderRGB))
		require.NoError(t, err)
		require.NoError(t, enc.EncodeLed(input, buf))
		frame, err := buf.Finish(timings.Reset)
		require.NoError(t, err)
		out := make([]Code, len(frame))
		copy(out, frame)
		return out
	}

	assert.Equal(t, encode(), encode())
}

func TestParseChannelOrder(t *testing.T) {
	for _, name := range []string{"GRB", "RGB", "BRG", "BGR", "GRBW", "RGBW"} {
		order, err := ParseChannelOrder(name)
		require.NoError(t, err)
		assert.Equal(t, name, order.String())
	}
	_, err := ParseChannelOrder("XYZ")
	assert.Error(t, err)
}
