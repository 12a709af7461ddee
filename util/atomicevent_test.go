package util

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAtomicMapEvent(t *testing.T) {
	ae := NewAtomicMapEvent[any]()
	assert.NotNil(t, ae, "NewAtomicMapEvent should not return nil")
	assert.NotNil(t, ae.notify, "notify channel should be initialized")
	assert.NotNil(t, ae.value, "value map should be initialized")
}

func TestSendAndConsumeValues(t *testing.T) {
	ae := NewAtomicMapEvent[int]()

	ae.Send("one", 1)
	ae.Send("two", 2)

	assert.True(t, ae.HasPending(), "should have pending notification")

	select {
	case <-ae.Channel():
		// Good, got notification
	default:
		t.Fatal("should have received a notification")
	}

	vals := ae.Value()
	assert.Equal(t, map[string]int{"one": 1, "two": 2}, vals)

	// The channel should be empty now
	select {
	case <-ae.Channel():
		t.Fatal("channel should be empty")
	default:
		// Good, channel is empty
	}
	assert.False(t, ae.HasPending(), "pending should be cleared after consuming")
}

func TestSendCoalesces(t *testing.T) {
	ae := NewAtomicMapEvent[string]()

	// Multiple sends, even for the same key, produce exactly one
	// notification, and the map holds the newest value per key.
	ae.Send("a", "first")
	ae.Send("a", "second")
	ae.Send("b", "other")

	select {
	case <-ae.Channel():
		// Good, got notification
	default:
		t.Fatal("should have received a notification")
	}
	select {
	case <-ae.Channel():
		t.Fatal("channel should be empty")
	default:
		// Good, channel is empty
	}

	vals := ae.Value()
	assert.Equal(t, "second", vals["a"], "should see the newest value for a key")
	assert.Equal(t, "other", vals["b"])
}

func TestValueReturnsCopy(t *testing.T) {
	ae := NewAtomicMapEvent[int]()
	ae.Send("k", 1)

	vals := ae.Value()
	vals["k"] = 99

	assert.Equal(t, 1, ae.Value()["k"], "mutating the returned map must not affect the event")
}

func TestConcurrency(t *testing.T) {
	ae := NewAtomicMapEvent[int]()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			key := fmt.Sprintf("writer-%d", w)
			for i := 0; i < 1000; i++ {
				ae.Send(key, i)
			}
		}(w)
	}
	wg.Wait()

	vals := ae.Value()
	assert.Len(t, vals, 4)
	for w := 0; w < 4; w++ {
		assert.Equal(t, 999, vals[fmt.Sprintf("writer-%d", w)])
	}
}
