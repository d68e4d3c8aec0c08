// Command formdemo shows the one-shot side of formkit: a character
// designer form whose Submit runs a simulated export task behind a
// determinate progress bar. It also runs headless with --headless,
// rendering the same progress protocol on the terminal.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"github.com/spf13/cobra"

	"formkit/form"
	"formkit/internal/cli"
	"formkit/log"
	"formkit/task"
	"formkit/ui"
)

var (
	presetPath string
	logPath    string
	headless   bool
	exportPath string
)

var rootCmd = &cobra.Command{
	Use:   "formdemo",
	Short: "Character designer demo form",
	Long: `formdemo is a demo of the formkit one-shot form: typed entries over
two pages, preset load/save, and a background task reporting progress
through the task queue. Run without flags for the GUI, or with
--headless to run the task once in the terminal.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&presetPath, "preset", "", "preset file to load at startup")
	rootCmd.Flags().StringVar(&logPath, "log", "", "write a debug log to this file")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run the task once without a GUI")
	rootCmd.Flags().StringVar(&exportPath, "out", "", "export file path (overrides the form default)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildRegistry declares the character designer form: a profile page, a
// plot page, and an output page.
func buildRegistry() *form.Registry {
	reg := form.NewRegistry()

	profile := reg.AddGroup("Profile")
	reg.MustAdd(profile, form.NewStringField("name", "Name", "Character name", "Robin Sena"))
	reg.MustAdd(profile, form.NewIntField("age", "Age", "Age in years", 15, 0, math.MaxInt))
	reg.MustAdd(profile, form.NewFloatField("height", "Height (m)", "Body height in meters", 1.68, 0.0, 2.0).SetStep(0.01, 2))
	reg.MustAdd(profile, form.NewFloatField("weight", "Weight (kg)", "Body weight in kilograms", 51, 50.2, 70.3).SetStep(0.1, 1))
	reg.MustAdd(profile, form.NewOptionField("gender", "Gender", "", []string{"Male", "Female", "[Secret]"}, "Female"))
	reg.MustAdd(profile, form.NewBoolField("is_protagonist", "Protagonist", "Whether this character leads the story", true))
	reg.MustAdd(profile, form.NewStringField("bio", "Bio", "Free-form background story", "A soft-spoken hunter with pyrokinetic abilities.").Multiline())

	plot := reg.AddGroup("Plot")
	reg.MustAdd(plot, form.NewMultiOptionField("occupation", "Occupation", "Roles this character plays",
		[]string{"Lead", "Warrior", "Wizard", "Detective", "Hacker", "Clerk"},
		[]string{"Wizard", "Detective"}))

	output := reg.AddGroup("Output")
	reg.MustAdd(output, form.NewFileField("export", "Export Path", "Path to the exported character sheet", nil, ".json"))
	reg.MustAdd(output, form.NewStringField("signing_key", "Signing Key", "Optional key embedded in the export", "").Secret())

	return reg
}

// designCharacter is the demo task: it simulates slow work while posting
// determinate progress, then exports the model as JSON.
func designCharacter(ctx *task.Context, model form.Model) {
	ctx.Start()
	for p := 0; p <= 100; p++ {
		if ctx.Stopped() {
			ctx.Finish()
			return
		}
		time.Sleep(10 * time.Millisecond)
		ctx.Progress(float64(p), "Processing ...")
	}

	if err := exportModel(model); err != nil {
		log.Error("export failed", log.Err(err))
		ctx.Post(task.StageStop, 100, "Export failed")
		return
	}
	ctx.Finish()
}

// exportModel writes the snapshot to the export path, if one is set.
// Secret fields never leave the process.
func exportModel(model form.Model) error {
	paths, _ := model["export"].([]string)
	if len(paths) == 0 {
		return nil
	}
	out := make(form.Model, len(model))
	for k, v := range model {
		if k == "signing_key" {
			continue
		}
		out[k] = v
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(paths[0], append(data, '\n'), 0644); err != nil {
		return err
	}
	log.Info("character exported", log.String("path", paths[0]))
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	if logPath != "" {
		if err := log.EnableFileLogging(logPath, log.LevelDebug); err != nil {
			return err
		}
	}

	reg := buildRegistry()
	ctrl := form.NewController(reg, designCharacter)

	if presetPath != "" {
		if err := ctrl.LoadPreset(presetPath); err != nil {
			return err
		}
	}
	if exportPath != "" {
		f, err := reg.Lookup("export")
		if err != nil {
			return err
		}
		f.(*form.StringListField).Set([]string{exportPath})
	}

	if headless {
		return runHeadless(ctrl)
	}

	app := ui.NewApp(ctrl, ui.Options{
		Title: "Form Demo: Character Design",
		Size:  fyne.NewSize(800, 600),
		Menu: ui.MenuOptions{
			HelpURL:   "https://github.com/formkit-go/formkit#readme",
			ReportURL: "https://github.com/formkit-go/formkit/issues",
		},
	})
	app.Run()
	return nil
}

// runHeadless runs the task once with a terminal progress line. Ctrl+C
// requests the same cooperative cancellation the GUI Cancel button does.
func runHeadless(ctrl *form.Controller) error {
	// Presets never carry secret fields, so prompt for the key here.
	if f, err := ctrl.Registry().Lookup("signing_key"); err == nil {
		key := f.(*form.StringField)
		if key.Get() == "" {
			if password, err := cli.ReadPassword(false); err == nil {
				key.Set(password)
			} else {
				log.Warn("no signing key provided", log.Err(err))
			}
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nCancelling ...")
		ctrl.Cancel()
	}()

	if err := ctrl.Submit(); err != nil {
		return err
	}
	progress := cli.NewProgress(os.Stderr)
	progress.Pump(ctrl.Queue(), ctrl.Done(), 0)
	return nil
}
