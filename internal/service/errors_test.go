package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError(t *testing.T) {
	err := NewServiceError("get_task", "task not found", ErrTaskNotFound)

	assert.Equal(t, "get_task failed: task not found: task not found", err.Error())
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrUserNotFound))

	bare := NewServiceError("list_tasks", "store failure", nil)
	assert.Equal(t, "list_tasks failed: store failure", bare.Error())
}

func TestNotify_SwallowsErrorsAndPanics(t *testing.T) {
	log := quietTestLogger()

	assert.NotPanics(t, func() {
		notify(log, "task_created", func() error { return errors.New("closed") })
	})
	assert.NotPanics(t, func() {
		notify(log, "task_created", func() error { panic("boom") })
	})

	called := false
	notify(log, "task_updated", func() error { called = true; return nil })
	assert.True(t, called)
}
