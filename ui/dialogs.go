package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"formkit/form"
	"formkit/internal/util"
	"formkit/log"
)

// ShowInfo displays an informational prompt.
func ShowInfo(w fyne.Window, title, message string) {
	dialog.ShowInformation(title, message, w)
}

// ShowWarning displays a warning prompt.
func ShowWarning(w fyne.Window, message string) {
	dialog.ShowInformation("Warning", message, w)
}

// ShowError displays an error prompt.
func ShowError(w fyne.Window, err error) {
	dialog.ShowError(err, w)
}

// BindLifecycle wires the controller's shutdown lifecycle to the window:
// the close button routes through the controller, quitting while a task
// runs asks for confirmation, and termination closes the window. Call it
// once after both the window content and the controller hooks are set.
func BindLifecycle(w fyne.Window, ctrl *form.Controller) {
	ctrl.ConfirmQuit = func(message string, decided func(force bool)) {
		dialog.ShowConfirm("Quit", message, decided, w)
	}

	prev := ctrl.OnTerminate
	ctrl.OnTerminate = func() {
		if prev != nil {
			prev()
		}
		// Termination may arrive from the worker-join goroutine.
		fyne.Do(w.Close)
	}

	w.SetCloseIntercept(ctrl.Quit)
}

// presetFilter matches the flat JSON preset files.
var presetFilter = storage.NewExtensionFileFilter([]string{".json"})

// ShowLoadPreset opens a file picker and applies the chosen preset onto
// the controller's fields. Read and parse failures surface in an error
// dialog; keys missing from the file are non-fatal by design.
func ShowLoadPreset(w fyne.Window, ctrl *form.Controller) {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		if err := ctrl.LoadPreset(path); err != nil {
			log.Error("preset load failed", log.Err(err))
			ShowError(w, err)
		}
	}, w)
	open.SetFilter(presetFilter)
	open.Show()
}

// ShowSavePreset opens a save picker and writes the persistable fields
// to the chosen path.
func ShowSavePreset(w fyne.Window, ctrl *form.Controller) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		// Only the path is needed; the preset writer owns the file.
		writer.Close()
		path := writer.URI().Path()
		if err := ctrl.SavePreset(path); err != nil {
			log.Error("preset save failed", log.Err(err))
			ShowError(w, err)
		}
	}, w)
	save.SetFilter(presetFilter)
	save.SetFileName("preset.json")
	save.Show()
}

// showPassgenDialog shows the password generator dialog and hands the
// generated password to onGenerated.
func showPassgenDialog(w fyne.Window, onGenerated func(password string)) {
	opts := util.PassgenOptions{
		Length: 32,
		Upper:  true, Lower: true, Numbers: true, Symbols: true,
	}

	lengthLabel := widget.NewLabel(fmt.Sprintf("Length: %d", opts.Length))
	lengthSlider := widget.NewSlider(12, 64)
	lengthSlider.Value = float64(opts.Length)
	lengthSlider.Step = 1
	lengthSlider.OnChanged = func(value float64) {
		opts.Length = int(value)
		lengthLabel.SetText(fmt.Sprintf("Length: %d", opts.Length))
	}

	upperCheck := widget.NewCheck("Uppercase", func(checked bool) { opts.Upper = checked })
	upperCheck.SetChecked(opts.Upper)
	lowerCheck := widget.NewCheck("Lowercase", func(checked bool) { opts.Lower = checked })
	lowerCheck.SetChecked(opts.Lower)
	numsCheck := widget.NewCheck("Numbers", func(checked bool) { opts.Numbers = checked })
	numsCheck.SetChecked(opts.Numbers)
	symbolsCheck := widget.NewCheck("Symbols", func(checked bool) { opts.Symbols = checked })
	symbolsCheck.SetChecked(opts.Symbols)

	content := container.NewVBox(
		lengthLabel,
		lengthSlider,
		upperCheck,
		lowerCheck,
		numsCheck,
		symbolsCheck,
	)

	dialog.ShowCustomConfirm("Generate password:", "Generate", "Cancel", content, func(generate bool) {
		if !generate {
			return
		}
		if !opts.Upper && !opts.Lower && !opts.Numbers && !opts.Symbols {
			return
		}
		password, err := util.GenPassword(opts)
		if err != nil {
			ShowError(w, err)
			return
		}
		onGenerated(password)
	}, w)
}
