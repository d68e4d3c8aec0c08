package ui

import (
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"formkit/form"
	"formkit/log"
)

// Options configures an assembled form window.
type Options struct {
	Title string
	Size  fyne.Size
	Menu  MenuOptions

	// Realtime selects the start/stop action bar with an indeterminate
	// wait bar instead of the one-shot submit bar with a determinate
	// progress bar.
	Realtime bool

	// PollInterval is the progress queue polling cadence; zero means
	// DefaultPollInterval.
	PollInterval time.Duration
}

// App is a fully assembled form window: menu, two-pane form view,
// progress indicator, and action bar, all wired to one controller.
// Embedders that need a different layout compose the pieces directly.
type App struct {
	FyneApp    fyne.App
	Window     fyne.Window
	Controller *form.Controller

	Form     *FormView
	Progress *ProgressBar
	Wait     *WaitBar
	Actions  *ActionBar
	OnOff    *OnOffActionBar
}

// NewApp builds the window around ctrl.
func NewApp(ctrl *form.Controller, opts Options) *App {
	a := &App{
		FyneApp:    fyneapp.New(),
		Controller: ctrl,
	}
	if opts.Title == "" {
		opts.Title = "Form"
	}
	a.Window = a.FyneApp.NewWindow(opts.Title)
	a.Window.SetMainMenu(BuildMainMenu(a.FyneApp, a.Window, ctrl, opts.Menu))

	a.Form = NewFormView(a.Window, ctrl.Registry())

	var indicator, actions fyne.CanvasObject
	if opts.Realtime {
		a.Wait = NewWaitBar(ctrl.Queue(), opts.PollInterval)
		a.OnOff = NewOnOffActionBar(ctrl)
		indicator, actions = a.Wait.Object(), a.OnOff.Object()
	} else {
		a.Progress = NewProgressBar(ctrl.Queue(), opts.PollInterval)
		a.Actions = NewActionBar(ctrl)
		indicator, actions = a.Progress.Object(), a.Actions.Object()
	}
	bottom := container.NewVBox(indicator, actions)

	a.Window.SetContent(container.NewBorder(nil, bottom, nil, nil, a.Form.Object()))
	BindLifecycle(a.Window, ctrl)

	size := opts.Size
	if size.IsZero() {
		size = fyne.NewSize(640, 520)
	}
	a.Window.Resize(size)
	return a
}

// Run starts the progress poller and blocks in the Fyne event loop until
// the controller terminates.
func (a *App) Run() {
	if a.Progress != nil {
		a.Progress.Start()
		defer a.Progress.Stop()
	}
	if a.Wait != nil {
		a.Wait.Start()
		defer a.Wait.Stop()
	}
	log.Info("ui started")
	a.Window.ShowAndRun()
}
