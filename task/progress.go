// Package task provides background task execution for formkit controllers:
// a single-worker runner with a cooperative stop signal, and a FIFO progress
// channel carrying (stage, percent, text) messages from the worker to the UI.
//
// The worker side posts messages through a Context; the UI side drains the
// queue on a fixed polling interval and never blocks. Messages are observed
// in the exact order they were posted (single producer, single consumer).
package task

import (
	"fmt"
	"sync"
)

// Stage is a progress protocol instruction understood by the UI-side
// consumer. The vocabulary is closed; a consumer receiving any other value
// is a programming error, not a runtime condition.
type Stage string

const (
	// StageStart switches the indicator to its active state.
	StageStart Stage = "/start"

	// StageStop switches the indicator to its idle/completed state.
	StageStop Stage = "/stop"

	// StageProcessing updates the displayed percentage. Only meaningful
	// for determinate indicators.
	StageProcessing Stage = "/processing"
)

// Valid reports whether s belongs to the protocol vocabulary.
func (s Stage) Valid() bool {
	return s == StageStart || s == StageStop || s == StageProcessing
}

// Message is one progress update. Percent is a 0-100 percentage and is
// meaningful only for StageProcessing; Text is a display string.
type Message struct {
	Stage   Stage
	Percent float64
	Text    string
}

func (m Message) String() string {
	return fmt.Sprintf("%s %.0f%% %q", m.Stage, m.Percent, m.Text)
}

// Queue is an unbounded thread-safe FIFO of progress messages. The producer
// (worker goroutine) never blocks on Push; the consumer drains everything
// queued so far with Drain.
type Queue struct {
	mu   sync.Mutex
	msgs []Message
}

// NewQueue creates an empty progress queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a message. Never blocks.
func (q *Queue) Push(m Message) {
	q.mu.Lock()
	q.msgs = append(q.msgs, m)
	q.mu.Unlock()
}

// Drain removes and returns all currently queued messages in post order.
// Returns nil when the queue is empty.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return nil
	}
	out := q.msgs
	q.msgs = nil
	return out
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}
