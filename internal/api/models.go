package api

import (
	"github.com/phrazzld/worktracker/internal/domain"
	"github.com/phrazzld/worktracker/internal/service"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email    string  `json:"email"     validate:"required,max=255"`
	FullName *string `json:"full_name"`
}

// Input converts the request into service input.
func (r CreateUserRequest) Input() service.CreateUserInput {
	return service.CreateUserInput{
		Email:    r.Email,
		FullName: r.FullName,
	}
}

// UpdateUserRequest is the body of PATCH /users/{id}. Absent fields are left
// unchanged; an explicit null clears full_name.
type UpdateUserRequest struct {
	Email    domain.Optional[string] `json:"email"`
	FullName domain.Optional[string] `json:"full_name"`
}

// Patch converts the request into a domain patch.
func (r UpdateUserRequest) Patch() domain.UserPatch {
	return domain.UserPatch{
		Email:    r.Email,
		FullName: r.FullName,
	}
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,task_title"`
	Description *string `json:"description"`
	Status      string  `json:"status"      validate:"omitempty,task_status"`
	AssigneeID  *int64  `json:"assignee_id" validate:"omitempty,gt=0"`
}

// Input converts the request into service input.
func (r CreateTaskRequest) Input() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		AssigneeID:  r.AssigneeID,
	}
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}. Explicit null clears
// description and assignee_id; title and status cannot be null.
type UpdateTaskRequest struct {
	Title       domain.Optional[string]            `json:"title"`
	Description domain.Optional[string]            `json:"description"`
	Status      domain.Optional[domain.TaskStatus] `json:"status"`
	AssigneeID  domain.Optional[int64]             `json:"assignee_id"`
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		AssigneeID:  r.AssigneeID,
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
