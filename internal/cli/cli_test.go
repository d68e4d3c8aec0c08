package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"formkit/task"
)

func TestProgress(t *testing.T) {
	t.Run("NewProgress", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgress(&buf)
		if p == nil {
			t.Fatal("NewProgress returned nil")
		}
		// Non-terminal writers keep the fixed width.
		if p.width != 30 {
			t.Errorf("expected width 30, got %d", p.width)
		}
	})

	t.Run("StartRendersEmptyBar", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgress(&buf)

		p.Apply(task.Message{Stage: task.StageStart, Text: "Processing ..."})
		if !p.Active() {
			t.Error("expected active after start")
		}
		out := buf.String()
		if !strings.Contains(out, "0%") {
			t.Errorf("expected 0%% in output, got %q", out)
		}
		if !strings.Contains(out, "Processing ...") {
			t.Errorf("expected status in output, got %q", out)
		}
		if strings.Contains(out, "█") {
			t.Errorf("expected no filled cells at 0%%, got %q", out)
		}
	})

	t.Run("ProcessingFillsBar", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgress(&buf)

		p.Apply(task.Message{Stage: task.StageStart})
		p.Apply(task.Message{Stage: task.StageProcessing, Percent: 50, Text: "halfway"})
		out := buf.String()
		if !strings.Contains(out, "50%") {
			t.Errorf("expected 50%% in output, got %q", out)
		}
		if strings.Count(out, "█") != 15 {
			t.Errorf("expected 15 filled cells, got %d", strings.Count(out, "█"))
		}
	})

	t.Run("StopEndsLine", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgress(&buf)

		p.Apply(task.Message{Stage: task.StageStart})
		p.Apply(task.Message{Stage: task.StageStop, Percent: 100, Text: "Stopped"})
		if p.Active() {
			t.Error("expected idle after stop")
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected a trailing newline after stop")
		}
	})

	t.Run("UnknownStagePanics", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgress(&buf)
		defer func() {
			if recover() == nil {
				t.Error("expected a panic for an unknown stage")
			}
		}()
		p.Apply(task.Message{Stage: "/reformatting"})
	})

	t.Run("PumpDrainsUntilDone", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgress(&buf)
		q := task.NewQueue()

		q.Push(task.Message{Stage: task.StageStart, Text: "Processing ..."})
		for i := 20; i <= 100; i += 20 {
			q.Push(task.Message{Stage: task.StageProcessing, Percent: float64(i), Text: "working"})
		}
		q.Push(task.Message{Stage: task.StageStop, Percent: 100, Text: "Stopped"})

		done := make(chan struct{})
		close(done)
		p.Pump(q, done, time.Millisecond)

		if q.Len() != 0 {
			t.Errorf("expected drained queue, %d left", q.Len())
		}
		if p.Active() {
			t.Error("expected idle after pumping through stop")
		}
		if !strings.Contains(buf.String(), "100%") {
			t.Errorf("expected 100%% in output, got %q", buf.String())
		}
	})
}

func TestPasswordErrors(t *testing.T) {
	if ErrPasswordEmpty.Error() == "" || ErrPasswordMismatch.Error() == "" {
		t.Error("expected descriptive error messages")
	}
}
