package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/worktracker/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts a new user and sets user.ID to the store-assigned id.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Update applies the present fields of patch and returns the stored user.
	// An empty patch returns the current user unchanged.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists if the new email belongs to another user.
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)

	// WithTx returns a UserStore that runs its queries inside tx.
	WithTx(tx *sql.Tx) UserStore
}
