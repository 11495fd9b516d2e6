package domain

import (
	"regexp"
	"strings"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Possible task status values.
const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// DefaultTaskStatus is applied when a task is created without a status.
const DefaultTaskStatus = TaskStatusTodo

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// titlePattern allows 2-50 Latin letters (including Turkish letters) and spaces.
var titlePattern = regexp.MustCompile(`^[A-Za-zÇĞİÖŞÜçğıöşü ]{2,50}$`)

// Task is a unit of work that may be assigned to a user.
// AssigneeID is a reference only; a task does not own its assignee.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	AssigneeID  *int64     `json:"assignee_id"`
}

// TaskPatch carries the fields of a partial task update.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Status      Optional[TaskStatus]
	AssigneeID  Optional[int64]
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set && !p.AssigneeID.Set
}

// ValidateTitle checks an already trimmed title.
func ValidateTitle(title string) error {
	if !titlePattern.MatchString(title) {
		return NewValidationError("title", "must be 2-50 letters or spaces", ErrInvalidTitle)
	}
	return nil
}

// normalizeDescription trims a supplied description, which must not end up empty.
func normalizeDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", NewValidationError("description", "cannot be empty", ErrEmptyContent)
	}
	return trimmed, nil
}

// NewTask normalizes and validates the supplied fields and returns a Task ready
// to be stored. A zero status becomes DefaultTaskStatus.
func NewTask(title string, description *string, status TaskStatus, assigneeID *int64) (*Task, error) {
	task := &Task{
		Title:      strings.TrimSpace(title),
		Status:     status,
		AssigneeID: assigneeID,
	}
	if task.Status == "" {
		task.Status = DefaultTaskStatus
	}

	if description != nil {
		d, err := normalizeDescription(*description)
		if err != nil {
			return nil, err
		}
		task.Description = &d
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if t.Description != nil && strings.TrimSpace(*t.Description) == "" {
		return NewValidationError("description", "cannot be empty", ErrEmptyContent)
	}
	if !t.Status.Valid() {
		return NewValidationError("status", "must be one of TODO, IN_PROGRESS, DONE", ErrInvalidTaskStatus)
	}
	if t.AssigneeID != nil && *t.AssigneeID <= 0 {
		return NewValidationError("assignee_id", "must be a positive id", ErrInvalidID)
	}
	return nil
}

// Normalize returns a copy of the patch with present fields trimmed and
// validated. Title and status cannot be cleared; description and assignee can.
func (p TaskPatch) Normalize() (TaskPatch, error) {
	out := p

	if p.Title.Set {
		if p.Title.Null {
			return TaskPatch{}, NewValidationError("title", "cannot be null", ErrNullNotAllowed)
		}
		title := strings.TrimSpace(p.Title.Value)
		if err := ValidateTitle(title); err != nil {
			return TaskPatch{}, err
		}
		out.Title = Some(title)
	}

	if p.Description.HasValue() {
		d, err := normalizeDescription(p.Description.Value)
		if err != nil {
			return TaskPatch{}, err
		}
		out.Description = Some(d)
	}

	if p.Status.Set {
		if p.Status.Null {
			return TaskPatch{}, NewValidationError("status", "cannot be null", ErrNullNotAllowed)
		}
		if !p.Status.Value.Valid() {
			return TaskPatch{}, NewValidationError("status", "must be one of TODO, IN_PROGRESS, DONE", ErrInvalidTaskStatus)
		}
	}

	if p.AssigneeID.HasValue() && p.AssigneeID.Value <= 0 {
		return TaskPatch{}, NewValidationError("assignee_id", "must be a positive id", ErrInvalidID)
	}

	return out, nil
}
