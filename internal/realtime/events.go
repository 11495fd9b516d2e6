package realtime

// EventType names a notification sent to clients.
type EventType string

// Event types.
const (
	EventTaskCreated EventType = "task_created"
	EventTaskUpdated EventType = "task_updated"
	EventUserCreated EventType = "user_created"
	EventUserUpdated EventType = "user_updated"
)

// Event is a notification payload. Implementations encode their type in the
// "type" JSON field.
type Event interface {
	EventType() EventType
}

// TaskCreated is sent to the public room and to the assignee's room.
type TaskCreated struct {
	Type       EventType `json:"type"`
	TaskID     int64     `json:"task_id"`
	AssigneeID *int64    `json:"assignee_id"`
}

// EventType implements Event.
func (e TaskCreated) EventType() EventType { return e.Type }

// TaskUpdated is sent to the public room only.
type TaskUpdated struct {
	Type   EventType `json:"type"`
	TaskID int64     `json:"task_id"`
}

// EventType implements Event.
func (e TaskUpdated) EventType() EventType { return e.Type }

// UserChanged is sent when a user is created or updated.
type UserChanged struct {
	Type   EventType `json:"type"`
	UserID int64     `json:"user_id"`
}

// EventType implements Event.
func (e UserChanged) EventType() EventType { return e.Type }

// NewTaskCreated builds a task_created event.
func NewTaskCreated(taskID int64, assigneeID *int64) TaskCreated {
	return TaskCreated{Type: EventTaskCreated, TaskID: taskID, AssigneeID: assigneeID}
}

// NewTaskUpdated builds a task_updated event.
func NewTaskUpdated(taskID int64) TaskUpdated {
	return TaskUpdated{Type: EventTaskUpdated, TaskID: taskID}
}

// NewUserCreated builds a user_created event.
func NewUserCreated(userID int64) UserChanged {
	return UserChanged{Type: EventUserCreated, UserID: userID}
}

// NewUserUpdated builds a user_updated event.
func NewUserUpdated(userID int64) UserChanged {
	return UserChanged{Type: EventUserUpdated, UserID: userID}
}
