package task

import (
	"sync"
	"testing"
)

func TestStageValid(t *testing.T) {
	tests := []struct {
		stage Stage
		valid bool
	}{
		{StageStart, true},
		{StageStop, true},
		{StageProcessing, true},
		{Stage("/bogus"), false},
		{Stage(""), false},
	}

	for _, tt := range tests {
		if tt.stage.Valid() != tt.valid {
			t.Errorf("Stage(%q).Valid() = %v, want %v", tt.stage, tt.stage.Valid(), tt.valid)
		}
	}
}

func TestQueueDrainOrder(t *testing.T) {
	q := NewQueue()
	q.Push(Message{Stage: StageStart, Percent: 0, Text: "a"})
	q.Push(Message{Stage: StageProcessing, Percent: 50, Text: "b"})
	q.Push(Message{Stage: StageStop, Percent: 100, Text: "c"})

	msgs := q.Drain()
	if len(msgs) != 3 {
		t.Fatalf("Drain returned %d messages, want 3", len(msgs))
	}

	want := []Stage{StageStart, StageProcessing, StageStop}
	for i, m := range msgs {
		if m.Stage != want[i] {
			t.Errorf("message %d stage = %s, want %s", i, m.Stage, want[i])
		}
	}

	if got := q.Drain(); got != nil {
		t.Errorf("second Drain should return nil, got %d messages", len(got))
	}
}

func TestQueueLen(t *testing.T) {
	q := NewQueue()
	if q.Len() != 0 {
		t.Errorf("empty queue Len = %d", q.Len())
	}
	q.Push(Message{Stage: StageStart})
	q.Push(Message{Stage: StageStop})
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}
	q.Drain()
	if q.Len() != 0 {
		t.Errorf("Len after Drain = %d, want 0", q.Len())
	}
}

func TestQueueProducerConsumerOrder(t *testing.T) {
	// Single producer posting 0..100; the consumer must observe every
	// percentage in post order regardless of how drains interleave.
	q := NewQueue()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := 0; p <= 100; p++ {
			q.Push(Message{Stage: StageProcessing, Percent: float64(p)})
		}
	}()

	var seen []Message
	for len(seen) < 101 {
		seen = append(seen, q.Drain()...)
	}
	wg.Wait()

	for i, m := range seen {
		if m.Percent != float64(i) {
			t.Fatalf("message %d percent = %v, want %d", i, m.Percent, i)
		}
	}
}
