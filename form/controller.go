package form

import (
	"sync"

	"formkit/log"
	"formkit/task"
)

// State is the controller's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateShuttingDown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting-down"
	default:
		return "unknown"
	}
}

// TaskFunc is the long-running operation behind the form's Submit action.
// It runs on a worker goroutine with the model snapshot taken at submit
// time. The content of the operation belongs entirely to the embedding
// application; the controller only provides execution, cancellation, and
// progress scaffolding around it.
type TaskFunc func(ctx *task.Context, model Model)

// Controller owns the form's data model, mediates between fields and the
// task runner, and implements the startup/shutdown lifecycle including the
// quit-confirmation guard while a task runs.
type Controller struct {
	registry *Registry
	queue    *task.Queue
	runner   *task.Runner
	taskFn   TaskFunc

	mu           sync.Mutex
	model        Model
	shuttingDown bool

	// ConfirmQuit asks the user whether to force-quit while a task is
	// running; decided receives the answer. When nil, no confirmation is
	// required and quit proceeds as if accepted. The ui package wires
	// this to a dialog.
	ConfirmQuit func(message string, decided func(force bool))

	// OnTerminate performs the actual shutdown (closing the window,
	// stopping collaborator processes). Called once, after any running
	// worker has exited.
	OnTerminate func()

	// OnIdle is invoked (from a worker-side goroutine) every time the
	// controller returns to idle, whether by completion or cancel. The
	// ui package marshals it onto the UI thread.
	OnIdle func()
}

// NewController creates a controller over the given registry. The stop
// signal and progress queue are constructed here, once per controller,
// and shared by reference with the worker; there is no cross-instance
// coupling.
func NewController(registry *Registry, taskFn TaskFunc) *Controller {
	queue := task.NewQueue()
	return &Controller{
		registry: registry,
		queue:    queue,
		runner:   task.NewRunner(queue),
		taskFn:   taskFn,
	}
}

// Registry returns the controller's field registry.
func (c *Controller) Registry() *Registry { return c.registry }

// Queue returns the progress queue for wiring a progress indicator.
func (c *Controller) Queue() *task.Queue { return c.queue }

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	shuttingDown := c.shuttingDown
	c.mu.Unlock()
	if shuttingDown {
		return StateShuttingDown
	}
	if c.runner.Running() {
		return StateRunning
	}
	return StateIdle
}

// Model returns the snapshot taken at the last submit, or nil before the
// first one.
func (c *Controller) Model() Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// Submit snapshots the field values into the model and starts the task on
// a fresh worker. While a worker is active it is a no-op returning
// task.ErrBusy; only the first submit is honored.
func (c *Controller) Submit() error {
	if c.taskFn == nil {
		return nil
	}
	model := c.registry.Snapshot()

	err := c.runner.Submit(func(ctx *task.Context) {
		c.taskFn(ctx, model)
	})
	if err != nil {
		log.Debug("submit ignored", log.Err(err))
		return err
	}

	c.mu.Lock()
	c.model = model
	c.mu.Unlock()

	go func() {
		<-c.runner.Done()
		if c.OnIdle != nil {
			c.OnIdle()
		}
	}()
	return nil
}

// Cancel requests cooperative cancellation of the running task, if any.
// It never blocks; OnIdle fires once the worker has exited.
func (c *Controller) Cancel() {
	c.runner.Cancel()
}

// Running reports whether a worker is active.
func (c *Controller) Running() bool {
	return c.runner.Running()
}

// Done exposes the runner's completion channel for non-blocking joins.
func (c *Controller) Done() <-chan struct{} {
	return c.runner.Done()
}

// Reset replaces every field's value with its registered default. It is
// independent of run state and idempotent.
func (c *Controller) Reset() {
	c.registry.Reset()
	log.Debug("form reset to defaults")
}

// LoadPreset reads path and applies it onto the fields.
func (c *Controller) LoadPreset(path string) error {
	return LoadPreset(path, c.registry)
}

// SavePreset writes the persistable fields to path.
func (c *Controller) SavePreset(path string) error {
	return SavePreset(path, c.registry)
}

// Quit implements the shutdown lifecycle. Idle controllers terminate
// immediately, with no prompt. While a worker is active the user is asked
// to confirm; declining aborts the shutdown and the worker runs on,
// untouched. Accepting (or having no ConfirmQuit hook) sets the stop
// signal, waits for the worker to exit, then calls OnTerminate.
func (c *Controller) Quit() {
	c.mu.Lock()
	if c.shuttingDown {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if !c.runner.Running() {
		c.terminate()
		return
	}

	if c.ConfirmQuit == nil {
		c.forceQuit()
		return
	}
	c.ConfirmQuit("A task is still running. Stop it and quit?", func(force bool) {
		if !force {
			log.Debug("quit declined, staying in running state")
			return
		}
		c.forceQuit()
	})
}

// forceQuit signals the worker to stop and terminates once it has exited.
// The wait happens off the interactive thread.
func (c *Controller) forceQuit() {
	c.mu.Lock()
	c.shuttingDown = true
	c.mu.Unlock()

	c.runner.Cancel()
	go func() {
		<-c.runner.Done()
		c.terminate()
	}()
}

func (c *Controller) terminate() {
	c.mu.Lock()
	c.shuttingDown = true
	c.mu.Unlock()
	log.Info("controller terminating")
	if c.OnTerminate != nil {
		c.OnTerminate()
	}
}
