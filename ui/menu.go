package ui

import (
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"

	"formkit/form"
	"formkit/log"
)

// MenuOptions configures the main menu's help targets. Empty URLs leave
// the item disabled.
type MenuOptions struct {
	HelpURL   string
	ReportURL string
}

// BuildMainMenu assembles the standard form menu: File with preset
// load/save and quit, Help with the documentation link, the current log
// file, and the issue tracker.
func BuildMainMenu(a fyne.App, w fyne.Window, ctrl *form.Controller, opts MenuOptions) *fyne.MainMenu {
	loadItem := fyne.NewMenuItem("Load Preset ...", func() {
		ShowLoadPreset(w, ctrl)
	})
	saveItem := fyne.NewMenuItem("Save Preset ...", func() {
		ShowSavePreset(w, ctrl)
	})
	quitItem := fyne.NewMenuItem("Quit", ctrl.Quit)
	quitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		loadItem,
		saveItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	helpItem := fyne.NewMenuItem("Help", func() {
		openURL(a, w, opts.HelpURL)
	})
	helpItem.Disabled = opts.HelpURL == ""

	logItem := fyne.NewMenuItem("Open Log", func() {
		path := log.FilePath()
		if path == "" {
			ShowInfo(w, "Log", "File logging is not enabled")
			return
		}
		openURL(a, w, "file://"+path)
	})

	reportItem := fyne.NewMenuItem("Report a Problem", func() {
		openURL(a, w, opts.ReportURL)
	})
	reportItem.Disabled = opts.ReportURL == ""

	helpMenu := fyne.NewMenu("Help",
		helpItem,
		logItem,
		reportItem,
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

func openURL(a fyne.App, w fyne.Window, raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		ShowError(w, fmt.Errorf("bad link %q: %w", raw, err))
		return
	}
	if err := a.OpenURL(u); err != nil {
		log.Warn("open url failed", log.String("url", raw), log.Err(err))
		ShowError(w, err)
	}
}
