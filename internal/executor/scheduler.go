package executor

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"
	"time"

	"github.com/elijahr/lk/internal/models"
)

// DefaultWorkers is the worker bound used when none is configured.
const DefaultWorkers = 10

// TaskRunner defines the behavior required to execute one search task.
type TaskRunner interface {
	Run(ctx context.Context, task models.SearchTask) (*models.DirectoryResult, error)
}

// Logger receives scheduling events. Implementations must be safe to call
// from the controller goroutine; they are never called from workers.
type Logger interface {
	LogTaskStart(task models.SearchTask)
	LogTaskComplete(task models.SearchTask, result *models.DirectoryResult, duration time.Duration)
	LogTaskFail(err *TaskError)
	LogSummary(stats models.RunStats)
}

// JoinOrder selects which active worker the controller waits on when every
// slot is busy.
type JoinOrder string

const (
	// JoinFIFO waits on the oldest started worker, even if a newer one has
	// already finished. Results are emitted in task start order.
	JoinFIFO JoinOrder = "fifo"
	// JoinCompletion waits on whichever worker finishes first. The result
	// set is the same as JoinFIFO but output order follows completion.
	JoinCompletion JoinOrder = "completion"
)

// ParseJoinOrder validates a join order name. The empty string means JoinFIFO.
func ParseJoinOrder(s string) (JoinOrder, error) {
	switch JoinOrder(s) {
	case "", JoinFIFO:
		return JoinFIFO, nil
	case JoinCompletion:
		return JoinCompletion, nil
	default:
		return "", fmt.Errorf("invalid join order %q, must be one of: fifo, completion", s)
	}
}

// SchedulerConfig configures a Scheduler.
type SchedulerConfig struct {
	Workers   int       // Maximum simultaneously running workers (<= 0 means DefaultWorkers)
	JoinOrder JoinOrder // Empty means JoinFIFO
}

// Scheduler runs search tasks on a bounded set of goroutine workers.
// Workers share nothing mutable: each receives its task by value and hands
// back exactly one outcome on its own channel.
type Scheduler struct {
	runner    TaskRunner
	logger    Logger
	workers   int
	joinOrder JoinOrder
}

// NewScheduler constructs a Scheduler. The logger parameter is optional and
// can be nil to disable logging.
func NewScheduler(runner TaskRunner, logger Logger, cfg SchedulerConfig) *Scheduler {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	joinOrder := cfg.JoinOrder
	if joinOrder == "" {
		joinOrder = JoinFIFO
	}

	return &Scheduler{
		runner:    runner,
		logger:    logger,
		workers:   workers,
		joinOrder: joinOrder,
	}
}

// Workers returns the worker bound.
func (s *Scheduler) Workers() int {
	return s.workers
}

// outcome is the single message a worker sends when its task ends.
type outcome struct {
	result   *models.DirectoryResult
	err      error
	duration time.Duration
}

// worker is an admitted task together with its result future.
type worker struct {
	task models.SearchTask
	done chan outcome
}

// Run drains tasks through at most Workers concurrent workers and passes
// every successful result to onResult, from the calling goroutine only.
//
// The loop admits the next pending task while a slot is free, and otherwise
// joins one active worker. A worker that fails or panics is logged and
// counted in RunStats.FailedTasks; its directory simply has no result.
//
// When ctx is cancelled, Run stops admitting, cancels every active worker,
// drops pending tasks and returns ErrInterrupted without calling onResult
// again.
func (s *Scheduler) Run(ctx context.Context, tasks iter.Seq[models.SearchTask], onResult func(*models.DirectoryResult)) (models.RunStats, error) {
	if s == nil || s.runner == nil {
		return models.RunStats{}, fmt.Errorf("task runner is required")
	}

	startedAt := time.Now()
	var stats models.RunStats

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	next, stop := iter.Pull(tasks)
	defer stop()

	var (
		pending   []models.SearchTask
		exhausted bool
		active    []*worker
		running   atomic.Int32
		peak      atomic.Int32
		finished  chan *worker
	)
	if s.joinOrder == JoinCompletion {
		// Never blocks a worker: at most s.workers are active.
		finished = make(chan *worker, s.workers)
	}

	interrupted := func() (models.RunStats, error) {
		cancel()
		stats.PeakWorkers = int(peak.Load())
		stats.Elapsed = time.Since(startedAt)
		return stats, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}

	for {
		if ctx.Err() != nil {
			return interrupted()
		}

		if len(pending) == 0 && !exhausted {
			if task, ok := next(); ok {
				pending = append(pending, task)
			} else {
				exhausted = true
			}
		}

		if len(pending) == 0 && len(active) == 0 {
			break
		}

		if len(active) < s.workers && len(pending) > 0 {
			task := pending[0]
			pending = pending[1:]
			active = append(active, s.start(runCtx, task, &running, &peak, finished))
			continue
		}

		var w *worker
		var idx int
		if s.joinOrder == JoinCompletion {
			select {
			case w = <-finished:
			case <-ctx.Done():
				return interrupted()
			}
			idx = indexOf(active, w)
		} else {
			w = active[0]
		}

		var out outcome
		select {
		case out = <-w.done:
		case <-ctx.Done():
			return interrupted()
		}
		if ctx.Err() != nil {
			// Both channels were ready; an interrupt wins over the result.
			return interrupted()
		}
		active = append(active[:idx], active[idx+1:]...)

		s.join(w.task, out, &stats, onResult)
	}

	stats.PeakWorkers = int(peak.Load())
	stats.Elapsed = time.Since(startedAt)
	if s.logger != nil {
		s.logger.LogSummary(stats)
	}
	return stats, nil
}

// start launches a worker goroutine for task.
func (s *Scheduler) start(ctx context.Context, task models.SearchTask, running, peak *atomic.Int32, finished chan<- *worker) *worker {
	w := &worker{task: task, done: make(chan outcome, 1)}
	if s.logger != nil {
		s.logger.LogTaskStart(task)
	}

	go func() {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		begin := time.Now()
		out := s.execute(ctx, task)
		out.duration = time.Since(begin)

		running.Add(-1)
		w.done <- out
		if finished != nil {
			finished <- w
		}
	}()

	return w
}

// execute runs the task, converting a panic into a failed outcome.
func (s *Scheduler) execute(ctx context.Context, task models.SearchTask) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("worker panic: %v", r)}
		}
	}()

	result, err := s.runner.Run(ctx, task)
	return outcome{result: result, err: err}
}

// join records a finished worker's outcome.
func (s *Scheduler) join(task models.SearchTask, out outcome, stats *models.RunStats, onResult func(*models.DirectoryResult)) {
	if out.err == nil && out.result == nil {
		out.err = fmt.Errorf("no result produced")
	}

	if out.err != nil {
		stats.FailedTasks++
		if s.logger != nil {
			s.logger.LogTaskFail(NewTaskError(task.ShortID(), task.Directory, "task failed", out.err))
		}
		return
	}

	stats.Add(out.result)
	if s.logger != nil {
		s.logger.LogTaskComplete(task, out.result, out.duration)
	}
	if onResult != nil {
		onResult(out.result)
	}
}

func indexOf(active []*worker, w *worker) int {
	for i, a := range active {
		if a == w {
			return i
		}
	}
	return -1
}
