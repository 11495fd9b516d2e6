package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/worktracker/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts a new task and sets task.ID to the store-assigned id.
	// Returns ErrForeignKey if the assignee does not reference a user.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by id.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns every task ordered by id.
	List(ctx context.Context) ([]domain.Task, error)

	// Update applies the present fields of patch and returns the stored task.
	// An empty patch returns the current task unchanged.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrForeignKey if the new assignee does not reference a user.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// WithTx returns a TaskStore that runs its queries inside tx.
	WithTx(tx *sql.Tx) TaskStore
}
