package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lautenbacher.net/smartled/led"
)

func TestDecodeFrame(t *testing.T) {
	timings := mustTimings(t, 80_000_000)
	enc := NewEncoder(timings, OrderGRB)
	buf, err := NewBuffer(BufferSize(3, OrderGRB))
	require.NoError(t, err)

	input := []led.Led{
		{Red: 255},
		{Green: 128, Blue: 3},
		{Red: 1, Green: 2, Blue: 4},
	}
	for _, l := range input {
		require.NoError(t, enc.EncodeLed(l, buf))
	}
	frame, err := buf.Finish(timings.Reset)
	require.NoError(t, err)

	decoded, err := DecodeFrame(frame, timings, OrderGRB)
	require.NoError(t, err)
	assert.Equal(t, input, decoded)
}

func TestDecodeFrame_RGBW(t *testing.T) {
	timings := mustTimings(t, 80_000_000)
	enc := NewEncoder(timings, OrderRGBW)
	buf, err := NewBuffer(BufferSize(2, OrderRGBW))
	require.NoError(t, err)

	input := []led.Led{{White: 200}, {Red: 10, White: 1}}
	for _, l := range input {
		require.NoError(t, enc.EncodeLed(l, buf))
	}
	frame, err := buf.Finish(timings.Reset)
	require.NoError(t, err)

	decoded, err := DecodeFrame(frame, timings, OrderRGBW)
	require.NoError(t, err)
	assert.Equal(t, input, decoded)
}

func TestDecodeFrame_BadLength(t *testing.T) {
	timings := mustTimings(t, 80_000_000)
	_, err := DecodeFrame(make([]Code, 7), timings, OrderGRB)
	assert.Error(t, err)
}

func TestDecodeByte_NeedsEightCodes(t *testing.T) {
	_, err := DecodeByte(make([]Code, 5), 42)
	assert.Error(t, err)
}
