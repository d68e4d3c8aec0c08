package task

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"formkit/log"
)

// ErrBusy is returned by Submit while a worker is still active.
// Re-submission is a no-op; the first submit wins.
var ErrBusy = errors.New("task: a worker is already running")

// Body is a long-running operation executed on a worker goroutine. It must
// check ctx.Stopped() at its own cadence and post progress messages; it has
// no return value contract beyond its side effects. A body that never
// checks the stop signal cannot be cancelled.
type Body func(ctx *Context)

// Context is handed to a task body. It bundles the stop signal and the
// progress queue so the body has no access to the runner itself.
type Context struct {
	runner *Runner
}

// Stopped reports whether cancellation has been requested. Cooperative
// only; the body decides when to observe it.
func (c *Context) Stopped() bool {
	return c.runner.stop.Load()
}

// Post pushes a raw progress message.
func (c *Context) Post(stage Stage, percent float64, text string) {
	c.runner.queue.Push(Message{Stage: stage, Percent: percent, Text: text})
}

// Start posts the protocol's opening message, switching the indicator to
// its active state.
func (c *Context) Start() {
	c.Post(StageStart, 0, "Processing ...")
}

// Progress posts a determinate percentage update.
func (c *Context) Progress(percent float64, text string) {
	c.Post(StageProcessing, percent, text)
}

// Finish posts the terminal message. Every body must reach it on every
// exit path, including cancellation, to keep the indicator consistent.
func (c *Context) Finish() {
	c.Post(StageStop, 100, "Stopped")
}

// Runner executes at most one background task at a time. The stop signal
// and the progress queue are the only state shared with the worker; both
// are safe for the single-writer/single-reader pattern used here.
type Runner struct {
	queue *Queue
	stop  atomic.Bool

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewRunner creates a runner posting progress to queue.
func NewRunner(queue *Queue) *Runner {
	return &Runner{queue: queue}
}

// Queue returns the progress queue the runner posts to.
func (r *Runner) Queue() *Queue {
	return r.queue
}

// Submit starts body on a fresh worker goroutine. If a worker is already
// active it returns ErrBusy and does nothing else. The stop signal is
// cleared before the worker starts.
func (r *Runner) Submit(body Body) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrBusy
	}
	r.running = true
	done := make(chan struct{})
	r.done = done
	r.mu.Unlock()

	r.stop.Store(false)
	runID := uuid.NewString()
	log.Debug("task started", log.String("run_id", runID))

	go func() {
		defer func() {
			// A body that panics would otherwise leave the indicator
			// active forever; force it idle and record the failure.
			if rec := recover(); rec != nil {
				log.Error("task panicked", log.String("run_id", runID), log.Any("panic", rec))
				r.queue.Push(Message{Stage: StageStop, Percent: 100, Text: "Failed"})
			}
			r.mu.Lock()
			r.running = false
			r.done = nil
			r.mu.Unlock()
			close(done)
			log.Debug("task finished", log.String("run_id", runID))
		}()
		body(&Context{runner: r})
	}()
	return nil
}

// Cancel requests cooperative cancellation by setting the stop signal.
// It returns immediately; use Done to observe worker exit without
// blocking the interactive loop.
func (r *Runner) Cancel() {
	r.mu.Lock()
	active := r.running
	r.mu.Unlock()
	if !active {
		return
	}
	r.stop.Store(true)
	log.Debug("task cancel requested")
}

// Done returns a channel closed when the current worker exits. If no
// worker is active, the returned channel is already closed.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		return r.done
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

// Running reports whether a worker is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
