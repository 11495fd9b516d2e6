package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/worktracker/internal/domain"
	"github.com/phrazzld/worktracker/internal/platform/logger"
	"github.com/phrazzld/worktracker/internal/store"
)

// CreateTaskInput carries the fields accepted when creating a task.
// A zero Status means the default.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	AssigneeID  *int64
}

// TaskService provides task operations.
type TaskService interface {
	// CreateTask normalizes and stores a new task.
	// Returns ErrAssigneeNotFound when AssigneeID does not reference a user.
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// GetTask returns the task with id, or ErrTaskNotFound.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks returns every task.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// UpdateTask applies the present fields of patch.
	// Returns ErrTaskNotFound or ErrAssigneeNotFound.
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	db        store.TxBeginner
	notifier  TaskNotifier
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService. Writes run in a transaction on db
// so the assignee check and the write see the same snapshot. notifier may be nil.
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	db store.TxBeginner,
	notifier TaskNotifier,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		db:        db,
		notifier:  notifier,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask implements TaskService.CreateTask
func (s *TaskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(input.Title, input.Description, input.Status, input.AssigneeID)
	if err != nil {
		log.Debug("invalid task input", slog.String("error", err.Error()))
		return nil, NewServiceError("create_task", "invalid input", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkAssignee(ctx, tx, "create_task", task.AssigneeID); err != nil {
			return err
		}
		if err := s.taskStore.WithTx(tx).Create(ctx, task); err != nil {
			return s.mapStoreError(log, "create_task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	if s.notifier != nil {
		notify(log, "task_created", func() error {
			return s.notifier.PublishTaskCreated(task.ID, task.AssigneeID)
		})
	}
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *TaskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(log, "get_task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		return nil, s.mapStoreError(log, "list_tasks", err)
	}
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized, err := patch.Normalize()
	if err != nil {
		log.Debug("invalid task patch", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return nil, NewServiceError("update_task", "invalid input", err)
	}

	var task *domain.Task
	if normalized.IsEmpty() {
		// Nothing to write; serve the current row without a transaction.
		task, err = s.taskStore.GetByID(ctx, id)
		if err != nil {
			return nil, s.mapStoreError(log, "update_task", err)
		}
		s.publishTaskUpdated(log, id)
		return task, nil
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkAssignee(ctx, tx, "update_task", normalized.AssigneeID.Ptr()); err != nil {
			return err
		}
		updated, err := s.taskStore.WithTx(tx).Update(ctx, id, normalized)
		if err != nil {
			return s.mapStoreError(log, "update_task", err)
		}
		task = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task updated", slog.Int64("task_id", id))
	s.publishTaskUpdated(log, id)
	return task, nil
}

func (s *TaskServiceImpl) publishTaskUpdated(log *slog.Logger, id int64) {
	if s.notifier != nil {
		notify(log, "task_updated", func() error { return s.notifier.PublishTaskUpdated(id) })
	}
}

// checkAssignee verifies that assigneeID, when set, references an existing user.
func (s *TaskServiceImpl) checkAssignee(ctx context.Context, tx *sql.Tx, op string, assigneeID *int64) error {
	if assigneeID == nil {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.userStore.WithTx(tx).GetByID(ctx, *assigneeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("assignee not found", slog.Int64("assignee_id", *assigneeID))
			return NewServiceError(op, "assignee not found", ErrAssigneeNotFound)
		}
		log.Error("failed to look up assignee",
			slog.Int64("assignee_id", *assigneeID),
			slog.String("error", err.Error()))
		return NewServiceError(op, "failed to look up assignee", err)
	}
	return nil
}

func (s *TaskServiceImpl) mapStoreError(log *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug("task not found", slog.String("operation", op))
		return NewServiceError(op, "task not found", ErrTaskNotFound)
	case errors.Is(err, store.ErrForeignKey):
		// A user removed between the assignee check and the write lands here.
		log.Debug("assignee rejected by store", slog.String("operation", op))
		return NewServiceError(op, "assignee not found", ErrAssigneeNotFound)
	case errors.Is(err, store.ErrValueTooLong):
		log.Debug("value rejected by store", slog.String("operation", op))
		return NewServiceError(op, "invalid input", errValueTooLong)
	case errors.Is(err, store.ErrInvalidEntity), errors.Is(err, store.ErrDuplicate):
		log.Warn("integrity violation", slog.String("operation", op), slog.String("error", err.Error()))
		return NewServiceError(op, "constraint violation", ErrIntegrity)
	case errors.Is(err, domain.ErrValidation):
		return NewServiceError(op, "invalid input", err)
	}
	log.Error("task store failure", slog.String("operation", op), slog.String("error", err.Error()))
	return NewServiceError(op, "store failure", err)
}
