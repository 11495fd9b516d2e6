package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/worktracker/internal/config"
	"github.com/phrazzld/worktracker/internal/platform/postgres"
	"github.com/phrazzld/worktracker/internal/realtime"
	"github.com/phrazzld/worktracker/internal/service"
	"github.com/phrazzld/worktracker/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	registry *prometheus.Registry

	userStore store.UserStore
	taskStore store.TaskStore

	dispatcher *realtime.Dispatcher
	hub        *realtime.Hub

	userService service.UserService
	taskService service.TaskService
}

// newApplication wires stores, the notification hub and services on top of
// an established database connection. The hub's dispatcher is started here
// and stopped by cleanup.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.dispatcher = realtime.NewDispatcher(realtime.DispatcherConfig{
		QueueSize:   cfg.Realtime.QueueSize,
		WorkerCount: cfg.Realtime.WorkerCount,
	}, logger)
	app.dispatcher.Start()
	app.hub = realtime.NewHub(app.dispatcher, realtime.NewMetrics(app.registry), logger)

	app.userService = service.NewUserService(app.userStore, app.hub, logger)
	app.taskService = service.NewTaskService(app.taskStore, app.userStore, db, app.hub, logger)

	logger.Info("application initialized",
		slog.Int("realtime_queue_size", cfg.Realtime.QueueSize),
		slog.Int("realtime_workers", cfg.Realtime.WorkerCount))
	return app, nil
}

// writeTimeout is the per-message WebSocket write deadline.
func (app *application) writeTimeout() time.Duration {
	return time.Duration(app.config.Realtime.WriteTimeoutSeconds) * time.Second
}

// cleanup closes live WebSocket connections, drains the dispatcher and
// closes the database. ctx bounds how long pending deliveries may run.
func (app *application) cleanup(ctx context.Context) {
	if app.hub != nil {
		app.hub.CloseAll()
	}

	if app.dispatcher != nil {
		if err := app.dispatcher.Stop(ctx); err != nil {
			app.logger.Warn("dispatcher did not drain before shutdown deadline",
				slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
