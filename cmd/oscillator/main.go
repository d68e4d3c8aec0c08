// Command oscillator shows the realtime side of formkit: a control form
// whose field tracers drive an external csound synthesizer over OSC/UDP
// while a task keeps the wait bar animated between Start and Stop.
//
// The csound script runs an OSC server listening for:
//
//	/oscillator i  waveform index
//	/frequency  i  frequency in Hz
//	/gain       f  gain in dB
//	/play       i  1 to start, 0 to stop
//	/quit       i  shut the engine down
package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"fyne.io/fyne/v2"
	"github.com/hypebeast/go-osc/osc"
	"github.com/spf13/cobra"

	"formkit/form"
	"formkit/log"
	"formkit/task"
	"formkit/ui"
)

var (
	oscHost    string
	oscPort    int
	csoundPath string
	logPath    string
)

var rootCmd = &cobra.Command{
	Use:   "oscillator",
	Short: "Realtime oscillator control demo",
	Long: `oscillator is a demo of the formkit realtime form: per-field change
tracers send OSC messages the moment a value changes, and the Start/Stop
bar gates the tone. Point --csound at a script to have the synthesizer
spawned and torn down with the window.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&oscHost, "host", "127.0.0.1", "OSC server host")
	rootCmd.Flags().IntVar(&oscPort, "port", 10000, "OSC server port")
	rootCmd.Flags().StringVar(&csoundPath, "csound", "", "csound script to spawn (optional)")
	rootCmd.Flags().StringVar(&logPath, "log", "", "write a debug log to this file")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// sender wraps the OSC client with the small message vocabulary the
// csound script understands.
type sender struct {
	client *osc.Client
}

func newSender(host string, port int) *sender {
	return &sender{client: osc.NewClient(host, port)}
}

func (s *sender) send(address string, arg any) {
	msg := osc.NewMessage(address)
	msg.Append(arg)
	if err := s.client.Send(msg); err != nil {
		log.Warn("osc send failed", log.String("address", address), log.Err(err))
	}
}

func (s *sender) Oscillator(index int) { s.send("/oscillator", int32(index)) }
func (s *sender) Frequency(hz int)     { s.send("/frequency", int32(hz)) }
func (s *sender) Gain(db float64)      { s.send("/gain", float32(db)) }
func (s *sender) Play(on bool) {
	if on {
		s.send("/play", int32(1))
	} else {
		s.send("/play", int32(0))
	}
}
func (s *sender) Quit() { s.send("/quit", int32(1)) }

// buildRegistry declares the control form and wires the tracers that
// push every change to the synthesizer immediately.
func buildRegistry(snd *sender) *form.Registry {
	reg := form.NewRegistry()
	general := reg.AddGroup("General")

	wave := form.NewOptionField("oscillator", "Oscillator", "Oscillator waveform types",
		[]string{"Sine", "Square", "Sawtooth"}, "Square")
	wave.OnChanged(func(_ string, index int) {
		// Retrigger so the engine picks the new wavetable up mid-tone.
		snd.Play(false)
		time.Sleep(100 * time.Millisecond)
		snd.Oscillator(index)
		snd.Play(true)
	})
	reg.MustAdd(general, wave)

	freq := form.NewIntField("frequency", "Frequency (Hz)", "Frequency of the output signal in Hertz", 440, 20, 20000)
	freq.OnChanged(snd.Frequency)
	reg.MustAdd(general, freq)

	gain := form.NewFloatField("gain", "Gain (dB)", "Gain of the output signal in dB", -16.0, -48.0, 0.0).SetStep(1.0, 2)
	gain.OnChanged(snd.Gain)
	reg.MustAdd(general, gain)

	return reg
}

// playTone is the realtime task: it pushes the full state, opens the
// gate, and idles until cancelled.
func playTone(snd *sender) form.TaskFunc {
	return func(ctx *task.Context, model form.Model) {
		options := []string{"Sine", "Square", "Sawtooth"}
		for i, o := range options {
			if o == model["oscillator"] {
				snd.Oscillator(i)
			}
		}
		snd.Frequency(model["frequency"].(int))
		snd.Gain(model["gain"].(float64))
		snd.Play(true)

		ctx.Start()
		for !ctx.Stopped() {
			time.Sleep(50 * time.Millisecond)
		}
		snd.Play(false)
		ctx.Finish()
	}
}

func run(cmd *cobra.Command, args []string) error {
	if logPath != "" {
		if err := log.EnableFileLogging(logPath, log.LevelDebug); err != nil {
			return err
		}
	}

	snd := newSender(oscHost, oscPort)
	reg := buildRegistry(snd)
	ctrl := form.NewController(reg, playTone(snd))

	var engine *exec.Cmd
	if csoundPath != "" {
		engine = exec.Command("csound", csoundPath, "-odac")
		engine.Stdout = os.Stderr
		engine.Stderr = os.Stderr
		if err := engine.Start(); err != nil {
			return fmt.Errorf("starting csound: %w", err)
		}
		log.Info("csound started", log.Int("pid", engine.Process.Pid), log.String("script", csoundPath))
	}

	ctrl.OnTerminate = func() {
		snd.Quit()
		if engine != nil && engine.Process != nil {
			_ = engine.Process.Kill()
			_ = engine.Wait()
		}
	}

	app := ui.NewApp(ctrl, ui.Options{
		Title:    "Controller Demo: Oscillator",
		Size:     fyne.NewSize(800, 600),
		Realtime: true,
		Menu: ui.MenuOptions{
			HelpURL:   "https://github.com/formkit-go/formkit#readme",
			ReportURL: "https://github.com/formkit-go/formkit/issues",
		},
	})
	app.Run()
	return nil
}
