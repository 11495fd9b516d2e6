package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/worktracker/internal/domain"
	"github.com/phrazzld/worktracker/internal/platform/logger"
	"github.com/phrazzld/worktracker/internal/store"
)

// CreateUserInput carries the fields accepted when creating a user.
type CreateUserInput struct {
	Email    string
	FullName *string
}

// UserService provides user operations.
type UserService interface {
	// CreateUser normalizes and stores a new user.
	// Returns ErrDuplicateEmail when the normalized email is taken.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// GetUser returns the user with id, or ErrUserNotFound.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// UpdateUser applies the present fields of patch.
	// Returns ErrUserNotFound or ErrDuplicateEmail.
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	notifier  UserNotifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService. notifier may be nil.
func NewUserService(userStore store.UserStore, notifier UserNotifier, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		notifier:  notifier,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// CreateUser implements UserService.CreateUser
func (s *UserServiceImpl) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(input.Email, input.FullName)
	if err != nil {
		log.Debug("invalid user input", slog.String("error", err.Error()))
		return nil, NewServiceError("create_user", "invalid input", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, s.mapStoreError(log, "create_user", err)
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	if s.notifier != nil {
		notify(log, "user_created", func() error { return s.notifier.PublishUserCreated(user.ID) })
	}
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(log, "get_user", err)
	}
	return user, nil
}

// UpdateUser implements UserService.UpdateUser
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized, err := patch.Normalize()
	if err != nil {
		log.Debug("invalid user patch", slog.Int64("user_id", id), slog.String("error", err.Error()))
		return nil, NewServiceError("update_user", "invalid input", err)
	}

	var user *domain.User
	if normalized.IsEmpty() {
		user, err = s.userStore.GetByID(ctx, id)
	} else {
		user, err = s.userStore.Update(ctx, id, normalized)
	}
	if err != nil {
		return nil, s.mapStoreError(log, "update_user", err)
	}

	log.Info("user updated", slog.Int64("user_id", id))
	if s.notifier != nil {
		notify(log, "user_updated", func() error { return s.notifier.PublishUserUpdated(id) })
	}
	return user, nil
}

func (s *UserServiceImpl) mapStoreError(log *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug("user not found", slog.String("operation", op))
		return NewServiceError(op, "user not found", ErrUserNotFound)
	case errors.Is(err, store.ErrDuplicate):
		log.Debug("email already registered", slog.String("operation", op))
		return NewServiceError(op, "email already registered", ErrDuplicateEmail)
	case errors.Is(err, store.ErrValueTooLong):
		log.Debug("value rejected by store", slog.String("operation", op))
		return NewServiceError(op, "invalid input", errValueTooLong)
	case errors.Is(err, store.ErrInvalidEntity):
		log.Warn("integrity violation", slog.String("operation", op), slog.String("error", err.Error()))
		return NewServiceError(op, "constraint violation", ErrIntegrity)
	case errors.Is(err, domain.ErrValidation):
		return NewServiceError(op, "invalid input", err)
	}
	log.Error("user store failure", slog.String("operation", op), slog.String("error", err.Error()))
	return NewServiceError(op, "store failure", err)
}
