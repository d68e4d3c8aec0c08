package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"formkit/internal/util"
	"formkit/task"
)

// DefaultPollInterval is the queue polling cadence used when the caller
// passes zero.
const DefaultPollInterval = 100 * time.Millisecond

// poller drains a progress queue on a fixed interval and applies each
// message on the UI thread, preserving post order. The apply callback
// must panic on a stage outside the protocol vocabulary; that is a
// programming error in the producer, not a runtime condition.
type poller struct {
	queue    *task.Queue
	interval time.Duration
	apply    func(task.Message)
	stop     chan struct{}
}

func newPoller(queue *task.Queue, interval time.Duration, apply func(task.Message)) *poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &poller{queue: queue, interval: interval, apply: apply}
}

// Start launches the polling goroutine. Idempotent Start/Stop pairs are
// not supported; each poller runs once.
func (p *poller) Start() {
	p.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				msgs := p.queue.Drain()
				if len(msgs) == 0 {
					continue
				}
				fyne.Do(func() {
					for _, m := range msgs {
						p.apply(m)
					}
				})
			}
		}
	}()
}

// Stop ends the polling goroutine. Messages already queued stay queued.
func (p *poller) Stop() {
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

// ProgressBar is a determinate progress indicator fed by a task queue.
// Percent updates and the status text arrive through the progress
// protocol; the bar itself renders the percentage.
type ProgressBar struct {
	bar    *widget.ProgressBar
	status *widget.Label
	bound  binding.Float
	object fyne.CanvasObject
	poller *poller
	active bool
}

// NewProgressBar creates a determinate bar draining queue every interval.
// Pass 0 for the default interval. Call Start to begin polling.
func NewProgressBar(queue *task.Queue, interval time.Duration) *ProgressBar {
	p := &ProgressBar{bound: binding.NewFloat()}
	p.bar = widget.NewProgressBarWithData(p.bound)
	p.bar.Min = 0
	p.bar.Max = 1
	p.status = widget.NewLabel("")
	p.object = container.NewVBox(p.bar, p.status)
	p.poller = newPoller(queue, interval, p.Apply)
	return p
}

// Apply processes one protocol message. Exported for headless drains;
// the poller calls it on the UI thread.
func (p *ProgressBar) Apply(m task.Message) {
	switch m.Stage {
	case task.StageStart:
		p.active = true
		_ = p.bound.Set(0)
		p.status.SetText(m.Text)
	case task.StageProcessing:
		_ = p.bound.Set(util.Clamp01(m.Percent / 100))
		p.status.SetText(fmt.Sprintf("%s (%s)", m.Text, util.Percentify(m.Percent)))
	case task.StageStop:
		p.active = false
		_ = p.bound.Set(util.Clamp01(m.Percent / 100))
		p.status.SetText(m.Text)
	default:
		panic(fmt.Sprintf("ui: unknown progress stage %q", m.Stage))
	}
}

// Active reports whether a start message has been seen without its stop.
func (p *ProgressBar) Active() bool { return p.active }

// Start begins polling the queue.
func (p *ProgressBar) Start() { p.poller.Start() }

// Stop ends polling.
func (p *ProgressBar) Stop() { p.poller.Stop() }

// Object returns the renderable bar with its status line.
func (p *ProgressBar) Object() fyne.CanvasObject { return p.object }

// WaitBar is an indeterminate activity indicator fed by a task queue.
// It animates between the start and stop messages; processing messages
// only update the status text.
type WaitBar struct {
	bar    *widget.ProgressBarInfinite
	status *widget.Label
	object fyne.CanvasObject
	poller *poller
	active bool
}

// NewWaitBar creates an indeterminate bar draining queue every interval.
// Pass 0 for the default interval. Call Start to begin polling.
func NewWaitBar(queue *task.Queue, interval time.Duration) *WaitBar {
	w := &WaitBar{}
	w.bar = widget.NewProgressBarInfinite()
	w.bar.Stop()
	w.status = widget.NewLabel("")
	w.object = container.NewVBox(w.bar, w.status)
	w.poller = newPoller(queue, interval, w.Apply)
	return w
}

// Apply processes one protocol message.
func (w *WaitBar) Apply(m task.Message) {
	switch m.Stage {
	case task.StageStart:
		w.active = true
		w.bar.Start()
		w.status.SetText(m.Text)
	case task.StageProcessing:
		w.status.SetText(m.Text)
	case task.StageStop:
		w.active = false
		w.bar.Stop()
		w.status.SetText(m.Text)
	default:
		panic(fmt.Sprintf("ui: unknown progress stage %q", m.Stage))
	}
}

// Active reports whether a start message has been seen without its stop.
func (w *WaitBar) Active() bool { return w.active }

// Start begins polling the queue.
func (w *WaitBar) Start() { w.poller.Start() }

// Stop ends polling.
func (w *WaitBar) Stop() { w.poller.Stop() }

// Object returns the renderable bar with its status line.
func (w *WaitBar) Object() fyne.CanvasObject { return w.object }
