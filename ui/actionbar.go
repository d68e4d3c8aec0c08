package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"formkit/form"
	"formkit/log"
	"formkit/task"
)

// ActionBar is the Reset / Cancel / Submit button row of a one-shot form.
// Submit while a task runs is swallowed; the first submit wins. Button
// enablement follows the controller's run state.
type ActionBar struct {
	controller *form.Controller

	ResetBtn  *TooltipButton
	CancelBtn *TooltipButton
	SubmitBtn *TooltipButton

	object fyne.CanvasObject
}

// NewActionBar creates an action bar driving ctrl. It chains itself onto
// the controller's OnIdle hook to restore button state when a task ends.
func NewActionBar(ctrl *form.Controller) *ActionBar {
	b := &ActionBar{controller: ctrl}

	b.ResetBtn = NewTooltipButton("Reset", "Restore every field to its default value", func() {
		ctrl.Reset()
	})
	b.CancelBtn = NewTooltipButton("Cancel", "Ask the running task to stop", func() {
		ctrl.Cancel()
	})
	b.SubmitBtn = NewTooltipButton("Submit", "Snapshot the form and run the task", func() {
		if err := ctrl.Submit(); err != nil {
			if errors.Is(err, task.ErrBusy) {
				return
			}
			log.Error("submit failed", log.Err(err))
			return
		}
		b.setRunning(true)
	})
	b.CancelBtn.Disable()

	chainOnIdle(ctrl, func() {
		fyne.Do(func() { b.setRunning(false) })
	})

	b.object = container.NewGridWithColumns(3, b.ResetBtn, b.CancelBtn, b.SubmitBtn)
	return b
}

func (b *ActionBar) setRunning(running bool) {
	if running {
		b.SubmitBtn.Disable()
		b.ResetBtn.Disable()
		b.CancelBtn.Enable()
	} else {
		b.SubmitBtn.Enable()
		b.ResetBtn.Enable()
		b.CancelBtn.Disable()
	}
}

// Object returns the renderable button row.
func (b *ActionBar) Object() fyne.CanvasObject { return b.object }

// OnOffActionBar is the Start / Stop variant for realtime forms that run
// until told otherwise instead of running one bounded task.
type OnOffActionBar struct {
	controller *form.Controller

	StartBtn *TooltipButton
	StopBtn  *TooltipButton

	object fyne.CanvasObject
}

// NewOnOffActionBar creates a start/stop bar driving ctrl.
func NewOnOffActionBar(ctrl *form.Controller) *OnOffActionBar {
	b := &OnOffActionBar{controller: ctrl}

	b.StartBtn = NewTooltipButton("Start", "Start the realtime task", func() {
		if err := ctrl.Submit(); err != nil {
			return
		}
		b.setRunning(true)
	})
	b.StopBtn = NewTooltipButton("Stop", "Stop the realtime task", func() {
		ctrl.Cancel()
	})
	b.StopBtn.Disable()

	chainOnIdle(ctrl, func() {
		fyne.Do(func() { b.setRunning(false) })
	})

	b.object = container.NewGridWithColumns(2, b.StartBtn, b.StopBtn)
	return b
}

func (b *OnOffActionBar) setRunning(running bool) {
	if running {
		b.StartBtn.Disable()
		b.StopBtn.Enable()
	} else {
		b.StartBtn.Enable()
		b.StopBtn.Disable()
	}
}

// Object returns the renderable button row.
func (b *OnOffActionBar) Object() fyne.CanvasObject { return b.object }

// chainOnIdle appends fn to the controller's OnIdle hook without
// clobbering a hook the embedder already installed.
func chainOnIdle(ctrl *form.Controller, fn func()) {
	prev := ctrl.OnIdle
	ctrl.OnIdle = func() {
		if prev != nil {
			prev()
		}
		fn()
	}
}
