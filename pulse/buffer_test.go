package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_ExactCapacity(t *testing.T) {
	// one RGB LED: 24 data codes plus the marker
	buf, err := NewBuffer(BufferSize(1, OrderGRB))
	require.NoError(t, err)
	assert.Equal(t, 25, buf.Cap())

	code := Code{High1: true, Ticks1: 1, Ticks2: 2}
	for i := 0; i < 24; i++ {
		require.NoError(t, buf.Push(code))
	}
	frame, err := buf.Finish(Code{Ticks1: 100})
	require.NoError(t, err)
	assert.Len(t, frame, 25)
}

func TestBuffer_Overflow(t *testing.T) {
	buf, err := NewBuffer(4)
	require.NoError(t, err)

	code := Code{High1: true, Ticks1: 1, Ticks2: 2}
	for i := 0; i < 4; i++ {
		require.NoError(t, buf.Push(code))
	}
	// data filled the whole buffer, neither data nor marker fit anymore
	assert.ErrorIs(t, buf.Push(code), ErrBufferOverflow)
	_, err = buf.Finish(Code{Ticks1: 100})
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestBuffer_ResetReuses(t *testing.T) {
	buf, err := NewBuffer(3)
	require.NoError(t, err)

	require.NoError(t, buf.Push(Code{Ticks1: 1}))
	require.NoError(t, buf.Push(Code{Ticks1: 2}))
	assert.Equal(t, 2, buf.Len())

	buf.Reset()
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 3, buf.Cap())

	require.NoError(t, buf.Push(Code{Ticks1: 3}))
	frame, err := buf.Finish(Code{Ticks1: 9})
	require.NoError(t, err)
	assert.Equal(t, []Code{{Ticks1: 3}, {Ticks1: 9}}, frame)
}

func TestNewBuffer_RejectsZeroCapacity(t *testing.T) {
	_, err := NewBuffer(0)
	assert.Error(t, err)
}
