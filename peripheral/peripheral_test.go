package peripheral

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransmission_PollLifecycle(t *testing.T) {
	tx := NewTransmission()
	assert.Equal(t, StatusPending, tx.Poll())
	assert.NoError(t, tx.Err())

	tx.Complete(nil)
	assert.Equal(t, StatusComplete, tx.Poll())
	assert.NoError(t, tx.Err())
}

func TestTransmission_Failure(t *testing.T) {
	tx := NewTransmission()
	tx.Complete(errors.New("underrun"))
	assert.Equal(t, StatusFailed, tx.Poll())
	assert.EqualError(t, tx.Err(), "underrun")
}

func TestTransmission_CompleteIsIdempotent(t *testing.T) {
	tx := NewTransmission()
	tx.Complete(errors.New("first"))
	tx.Complete(nil)
	assert.EqualError(t, tx.Err(), "first")
	assert.Equal(t, StatusFailed, tx.Poll())
}

func TestTransmission_CallbacksRunBeforeDone(t *testing.T) {
	tx := NewTransmission()
	ran := false
	tx.OnComplete(func(err error) {
		ran = true
		assert.NoError(t, err)
	})

	go tx.Complete(nil)
	<-tx.Done()
	assert.True(t, ran, "callback must run before Done closes")
}

func TestTransmission_LateCallbackRunsImmediately(t *testing.T) {
	tx := NewTransmission()
	tx.Complete(errors.New("late"))

	var got error
	tx.OnComplete(func(err error) { got = err })
	assert.EqualError(t, got, "late")
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "complete", StatusComplete.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
