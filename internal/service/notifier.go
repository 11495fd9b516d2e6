package service

import (
	"fmt"
	"log/slog"
)

// UserNotifier is told about user writes after they are persisted.
type UserNotifier interface {
	PublishUserCreated(userID int64) error
	PublishUserUpdated(userID int64) error
}

// TaskNotifier is told about task writes after they are persisted.
type TaskNotifier interface {
	PublishTaskCreated(taskID int64, assigneeID *int64) error
	PublishTaskUpdated(taskID int64) error
}

// notify runs publish and swallows both its error and any panic. A write
// that has been persisted is reported as successful whatever happens here.
func notify(log *slog.Logger, event string, publish func() error) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("notification panicked",
				slog.String("event", event),
				slog.String("panic", fmt.Sprint(p)))
		}
	}()

	if err := publish(); err != nil {
		log.Warn("notification not delivered",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}
