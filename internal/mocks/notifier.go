package mocks

import (
	"github.com/stretchr/testify/mock"
)

// Notifier is a mock of the service notifier ports for use with testify/mock.
type Notifier struct {
	mock.Mock
}

// PublishUserCreated is a mock implementation of service.UserNotifier.PublishUserCreated
func (m *Notifier) PublishUserCreated(userID int64) error {
	return m.Called(userID).Error(0)
}

// PublishUserUpdated is a mock implementation of service.UserNotifier.PublishUserUpdated
func (m *Notifier) PublishUserUpdated(userID int64) error {
	return m.Called(userID).Error(0)
}

// PublishTaskCreated is a mock implementation of service.TaskNotifier.PublishTaskCreated
func (m *Notifier) PublishTaskCreated(taskID int64, assigneeID *int64) error {
	return m.Called(taskID, assigneeID).Error(0)
}

// PublishTaskUpdated is a mock implementation of service.TaskNotifier.PublishTaskUpdated
func (m *Notifier) PublishTaskUpdated(taskID int64) error {
	return m.Called(taskID).Error(0)
}
