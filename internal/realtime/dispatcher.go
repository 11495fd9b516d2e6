package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Errors returned by Dispatcher.Submit.
var (
	ErrDispatcherClosed = errors.New("dispatcher is closed")
	ErrQueueFull        = errors.New("dispatch queue is full")
)

// Job is a unit of delivery work run on a dispatcher worker.
// ctx is cancelled when the dispatcher is forced to stop.
type Job func(ctx context.Context)

// DispatcherConfig holds the queue and worker settings for a Dispatcher.
type DispatcherConfig struct {
	// QueueSize bounds the number of pending jobs. Defaults to 1 when not positive.
	QueueSize int
	// WorkerCount is the number of worker goroutines. Defaults to 1 when not positive.
	WorkerCount int
}

// Dispatcher moves work from request goroutines onto a fixed set of workers.
// Submit never blocks: a full queue is reported to the caller instead.
type Dispatcher struct {
	jobs        chan Job
	workerCount int

	mu     sync.RWMutex
	closed bool

	startOnce sync.Once
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher. Call Start before submitting work.
func NewDispatcher(cfg DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dispatcher"))

	if cfg.QueueSize <= 0 {
		logger.Warn("invalid queue size specified, using default", slog.Int("specified", cfg.QueueSize))
		cfg.QueueSize = 1
	}
	if cfg.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default", slog.Int("specified", cfg.WorkerCount))
		cfg.WorkerCount = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		jobs:        make(chan Job, cfg.QueueSize),
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// Start launches the worker goroutines. Calling it more than once has no effect.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		for i := 0; i < d.workerCount; i++ {
			d.wg.Add(1)
			go d.worker(i)
		}
		d.logger.Info("dispatcher started",
			slog.Int("workers", d.workerCount),
			slog.Int("queue_capacity", cap(d.jobs)))
	})
}

// Submit enqueues job without waiting for it to run.
func (d *Dispatcher) Submit(job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.jobs <- job:
		return nil
	default:
		return fmt.Errorf("%w: capacity %d reached", ErrQueueFull, cap(d.jobs))
	}
}

// Stop rejects new jobs and waits for queued ones to finish. If ctx expires
// first, running jobs see their context cancelled and Stop returns ctx.Err().
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		d.logger.Warn("dispatcher stop timed out, cancelling pending deliveries")
		return ctx.Err()
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for job := range d.jobs {
		d.run(id, job)
	}
}

func (d *Dispatcher) run(id int, job Job) {
	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("dispatch job panicked",
				slog.Int("worker_id", id),
				slog.String("panic", fmt.Sprint(p)))
		}
	}()
	job(d.ctx)
}
