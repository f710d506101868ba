package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"videomind/internal/app/errors"
)

// Dispatcher hands submitted jobs to a bounded worker pool over a buffered
// channel. The bounded queue gives the intake path backpressure instead of
// an unbounded number of background executions.
type Dispatcher struct {
	orchestrator *Orchestrator
	queue        chan string
	workers      int
	logger       *slog.Logger

	mu      sync.Mutex
	wg      sync.WaitGroup
	running bool
	cancel  context.CancelFunc
}

func NewDispatcher(orchestrator *Orchestrator, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		orchestrator: orchestrator,
		queue:        make(chan string, queueSize),
		workers:      workers,
		logger:       logger,
	}
}

// Start launches the worker goroutines. Each worker drains the queue and runs
// one job at a time, so one job's blocking calls never stall another worker.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}

	ctx, d.cancel = context.WithCancel(ctx)
	d.running = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}

	d.logger.Info("pipeline dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case jobID, ok := <-d.queue:
			if !ok {
				return
			}
			queueDepth.Set(float64(len(d.queue)))
			d.logger.Info("job dequeued", "worker", id, "job_id", jobID)
			if err := d.orchestrator.Process(ctx, jobID); err != nil {
				d.logger.Warn("job ended in failure", "worker", id, "job_id", jobID, "error", err)
			}
		}
	}
}

// Submit enqueues a job for processing. Returns errors.ErrQueueFull when the
// buffer is at capacity, letting the caller surface backpressure instead of
// silently piling up work.
func (d *Dispatcher) Submit(jobID string) error {
	d.mu.Lock()
	running := d.running
	d.mu.Unlock()
	if !running {
		return errors.ErrPoolNotRunning
	}

	select {
	case d.queue <- jobID:
		queueDepth.Set(float64(len(d.queue)))
		return nil
	default:
		return errors.ErrQueueFull
	}
}

// Stop cancels the workers and waits for in-flight jobs to finish their
// current stage writes.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	cancel := d.cancel
	d.mu.Unlock()

	cancel()
	d.wg.Wait()
}
