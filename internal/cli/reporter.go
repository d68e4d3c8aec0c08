// Package cli provides the terminal side of formkit for headless runs:
// a single-line progress renderer fed by the task queue, and secure
// password prompting.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"formkit/internal/util"
	"formkit/task"
)

// DefaultPollInterval matches the GUI poller cadence.
const DefaultPollInterval = 100 * time.Millisecond

// Progress renders the task progress protocol on a single terminal line
// that gets overwritten. It understands the same closed stage vocabulary
// as the GUI indicators and panics on anything else.
type Progress struct {
	mu       sync.Mutex
	out      io.Writer
	width    int // bar cell count
	status   string
	percent  float64
	active   bool
	lastLine int // length of last printed line (for clearing)
}

// NewProgress creates a renderer writing to out. When out is a terminal
// the bar width follows the terminal width; otherwise a fixed width is
// used so piped output stays stable.
func NewProgress(out io.Writer) *Progress {
	p := &Progress{out: out, width: 30}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			p.width = max(min(cols/3, 60), 10)
		}
	}
	return p
}

// Apply processes one protocol message and redraws the line.
func (p *Progress) Apply(m task.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch m.Stage {
	case task.StageStart:
		p.active = true
		p.percent = 0
		p.status = m.Text
		p.render()
	case task.StageProcessing:
		p.percent = m.Percent
		p.status = m.Text
		p.render()
	case task.StageStop:
		p.active = false
		p.percent = m.Percent
		p.status = m.Text
		p.render()
		fmt.Fprintln(p.out)
	default:
		panic(fmt.Sprintf("cli: unknown progress stage %q", m.Stage))
	}
}

// Active reports whether a start message has been seen without its stop.
func (p *Progress) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// render redraws the progress line. Caller holds the lock.
func (p *Progress) render() {
	filled := int(util.Ratio(p.percent, 0, 100) * float64(p.width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	line := fmt.Sprintf("\r[%s] %s | %s", bar, util.Percentify(p.percent), p.status)
	if len(line) < p.lastLine {
		line += strings.Repeat(" ", p.lastLine-len(line))
	}
	p.lastLine = len(line)

	fmt.Fprint(p.out, line)
}

// Pump drains q on a fixed interval until done closes, then drains one
// final time so trailing messages are not lost. Messages are applied in
// post order. Pass 0 for the default interval.
func (p *Progress) Pump(q *task.Queue, done <-chan struct{}, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			for _, m := range q.Drain() {
				p.Apply(m)
			}
			return
		case <-ticker.C:
			for _, m := range q.Drain() {
				p.Apply(m)
			}
		}
	}
}
