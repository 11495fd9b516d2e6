package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/worktracker/internal/domain"
	"github.com/phrazzld/worktracker/internal/mocks"
	"github.com/phrazzld/worktracker/internal/service"
	"github.com/phrazzld/worktracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type taskFixture struct {
	tasks    *mocks.TaskStore
	users    *mocks.UserStore
	notifier *mocks.Notifier
}

func newTaskFixture() taskFixture {
	return taskFixture{
		tasks:    new(mocks.TaskStore),
		users:    new(mocks.UserStore),
		notifier: new(mocks.Notifier),
	}
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("with existing assignee", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "a@x.com"}, nil)
		f.tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.Title == "Write report" && task.Status == domain.TaskStatusTodo
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Task).ID = 10
		}).Return(nil)
		f.notifier.On("PublishTaskCreated", int64(10), int64Ptr(1)).Return(nil)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		task, err := svc.CreateTask(ctx, service.CreateTaskInput{Title: " Write report ", AssigneeID: int64Ptr(1)})

		require.NoError(t, err)
		assert.Equal(t, int64(10), task.ID)
		f.users.AssertExpectations(t)
		f.tasks.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("without assignee skips the lookup", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("PublishTaskCreated", int64(0), (*int64)(nil)).Return(nil)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.CreateTask(ctx, service.CreateTaskInput{Title: "Write report", Status: domain.TaskStatusDone})

		require.NoError(t, err)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("missing assignee persists nothing", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		f.users.On("GetByID", mock.Anything, int64(1)).Return(nil, store.ErrUserNotFound)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.CreateTask(ctx, service.CreateTaskInput{Title: "Write report", AssigneeID: int64Ptr(1)})

		assert.ErrorIs(t, err, service.ErrAssigneeNotFound)
		f.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "PublishTaskCreated", mock.Anything, mock.Anything)
	})

	t.Run("assignee removed before insert", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
		f.tasks.On("Create", mock.Anything, mock.Anything).Return(store.ErrForeignKey)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.CreateTask(ctx, service.CreateTaskInput{Title: "Write report", AssigneeID: int64Ptr(1)})

		assert.ErrorIs(t, err, service.ErrAssigneeNotFound)
	})

	t.Run("invalid title never opens a transaction", func(t *testing.T) {
		f := newTaskFixture()
		db, _ := newMockDB(t)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.CreateTask(ctx, service.CreateTaskInput{Title: "R2-D2"})

		assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	})

	t.Run("notifier failure does not fail the write", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("PublishTaskCreated", mock.Anything, mock.Anything).Return(errors.New("queue full"))

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		task, err := svc.CreateTask(ctx, service.CreateTaskInput{Title: "Write report"})

		require.NoError(t, err)
		assert.Equal(t, "Write report", task.Title)
	})
}

func TestTaskService_GetTask(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := newTaskFixture()
		want := &domain.Task{ID: 3, Title: "Write report", Status: domain.TaskStatusTodo}
		f.tasks.On("GetByID", mock.Anything, int64(3)).Return(want, nil)

		task, err := service.NewTaskService(f.tasks, f.users, nil, nil, quietLogger()).GetTask(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, want, task)
	})

	t.Run("not found", func(t *testing.T) {
		f := newTaskFixture()
		f.tasks.On("GetByID", mock.Anything, int64(3)).Return(nil, store.ErrTaskNotFound)

		_, err := service.NewTaskService(f.tasks, f.users, nil, nil, quietLogger()).GetTask(ctx, 3)

		assert.ErrorIs(t, err, service.ErrTaskNotFound)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	f := newTaskFixture()
	want := []domain.Task{{ID: 1, Title: "First", Status: domain.TaskStatusTodo}}
	f.tasks.On("List", mock.Anything).Return(want, nil)

	tasks, err := service.NewTaskService(f.tasks, f.users, nil, nil, quietLogger()).ListTasks(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, tasks)
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch returns the task unchanged without a transaction", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)

		current := &domain.Task{ID: 7, Title: "Write report", Status: domain.TaskStatusTodo, AssigneeID: int64Ptr(1)}
		f.tasks.On("GetByID", mock.Anything, int64(7)).Return(current, nil)
		f.notifier.On("PublishTaskUpdated", int64(7)).Return(nil)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		task, err := svc.UpdateTask(ctx, 7, domain.TaskPatch{})

		require.NoError(t, err)
		assert.Equal(t, current, task)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		f.tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		f.notifier.AssertExpectations(t)
	})

	t.Run("empty patch on a missing task", func(t *testing.T) {
		f := newTaskFixture()
		db, _ := newMockDB(t)
		f.tasks.On("GetByID", mock.Anything, int64(70)).Return(nil, store.ErrTaskNotFound)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.UpdateTask(ctx, 70, domain.TaskPatch{})

		assert.ErrorIs(t, err, service.ErrTaskNotFound)
		f.notifier.AssertNotCalled(t, "PublishTaskUpdated", mock.Anything)
	})

	t.Run("check violation is an integrity error", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		f.tasks.On("Update", mock.Anything, int64(7), mock.Anything).
			Return(nil, fmt.Errorf("%w: check constraint violation (tasks_status_check)", store.ErrInvalidEntity))

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.UpdateTask(ctx, 7, domain.TaskPatch{Status: domain.Some(domain.TaskStatusDone)})

		assert.ErrorIs(t, err, service.ErrIntegrity)
		assert.NotErrorIs(t, err, service.ErrAssigneeNotFound)
	})

	t.Run("overlong value is a validation error", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		f.tasks.On("Update", mock.Anything, int64(7), mock.Anything).Return(nil, store.ErrValueTooLong)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.UpdateTask(ctx, 7, domain.TaskPatch{Description: domain.Some("long")})

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrTooLong)
	})

	t.Run("re-validates a new assignee", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		f.users.On("GetByID", mock.Anything, int64(5)).Return(nil, store.ErrUserNotFound)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.UpdateTask(ctx, 7, domain.TaskPatch{AssigneeID: domain.Some(int64(5))})

		assert.ErrorIs(t, err, service.ErrAssigneeNotFound)
		f.tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("clearing the assignee skips the lookup", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		patch := domain.TaskPatch{AssigneeID: domain.Null[int64]()}
		f.tasks.On("Update", mock.Anything, int64(7), patch).
			Return(&domain.Task{ID: 7, Title: "Write report", Status: domain.TaskStatusTodo}, nil)
		f.notifier.On("PublishTaskUpdated", int64(7)).Return(nil)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		task, err := svc.UpdateTask(ctx, 7, patch)

		require.NoError(t, err)
		assert.Nil(t, task.AssigneeID)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		f := newTaskFixture()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		f.tasks.On("Update", mock.Anything, int64(8), mock.Anything).Return(nil, store.ErrTaskNotFound)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.UpdateTask(ctx, 8, domain.TaskPatch{Status: domain.Some(domain.TaskStatusDone)})

		assert.ErrorIs(t, err, service.ErrTaskNotFound)
		f.notifier.AssertNotCalled(t, "PublishTaskUpdated", mock.Anything)
	})

	t.Run("null title is rejected before the transaction", func(t *testing.T) {
		f := newTaskFixture()
		db, _ := newMockDB(t)

		svc := service.NewTaskService(f.tasks, f.users, db, f.notifier, quietLogger())
		_, err := svc.UpdateTask(ctx, 7, domain.TaskPatch{Title: domain.Null[string]()})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
