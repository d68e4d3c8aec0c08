package task

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitRunsBody(t *testing.T) {
	q := NewQueue()
	r := NewRunner(q)

	var ran atomic.Bool
	if err := r.Submit(func(ctx *Context) {
		ran.Store(true)
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	<-r.Done()
	if !ran.Load() {
		t.Error("body did not run")
	}
	if r.Running() {
		t.Error("Running should be false after worker exit")
	}
}

func TestSubmitWhileBusyIsNoOp(t *testing.T) {
	q := NewQueue()
	r := NewRunner(q)

	release := make(chan struct{})
	if err := r.Submit(func(ctx *Context) {
		<-release
	}); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	// Only the first submit is honored while the worker is active.
	var second atomic.Bool
	for i := 0; i < 3; i++ {
		err := r.Submit(func(ctx *Context) { second.Store(true) })
		if !errors.Is(err, ErrBusy) {
			t.Errorf("Submit %d while busy: err = %v, want ErrBusy", i, err)
		}
	}

	close(release)
	<-r.Done()
	if second.Load() {
		t.Error("a rejected body must never run")
	}
}

func TestCancelConverges(t *testing.T) {
	q := NewQueue()
	r := NewRunner(q)

	if err := r.Submit(func(ctx *Context) {
		for !ctx.Stopped() {
			time.Sleep(time.Millisecond)
		}
		ctx.Finish()
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	r.Cancel()
	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not exit after Cancel")
	}
	if r.Running() {
		t.Error("no worker should remain active after cancel converges")
	}
}

func TestCancelWhileIdleIsNoOp(t *testing.T) {
	r := NewRunner(NewQueue())
	r.Cancel() // must not panic or set anything observable

	// A later submit must still start with a clear stop signal.
	if err := r.Submit(func(ctx *Context) {
		if ctx.Stopped() {
			t.Error("stop signal must be cleared at task start")
		}
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	<-r.Done()
}

func TestDoneIdleIsClosed(t *testing.T) {
	r := NewRunner(NewQueue())
	select {
	case <-r.Done():
	default:
		t.Error("Done of an idle runner should be closed")
	}
}

func TestResubmitAfterCompletion(t *testing.T) {
	r := NewRunner(NewQueue())

	for i := 0; i < 3; i++ {
		if err := r.Submit(func(ctx *Context) {}); err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
		<-r.Done()
	}
}

func TestFullRunProtocol(t *testing.T) {
	// A task posting 0..100 then stop must leave the consumer with
	// percent 100 and a final StageStop.
	q := NewQueue()
	r := NewRunner(q)

	if err := r.Submit(func(ctx *Context) {
		ctx.Start()
		for p := 0; p <= 100; p++ {
			ctx.Progress(float64(p), "Processing ...")
		}
		ctx.Finish()
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	<-r.Done()

	msgs := q.Drain()
	if len(msgs) != 103 {
		t.Fatalf("got %d messages, want 103", len(msgs))
	}
	if msgs[0].Stage != StageStart {
		t.Errorf("first stage = %s, want %s", msgs[0].Stage, StageStart)
	}
	last := msgs[len(msgs)-1]
	if last.Stage != StageStop {
		t.Errorf("last stage = %s, want %s", last.Stage, StageStop)
	}
	prev := msgs[len(msgs)-2]
	if prev.Stage != StageProcessing || prev.Percent != 100 {
		t.Errorf("final processing message = %v, want 100%%", prev)
	}
}

func TestPanicForcesIndicatorIdle(t *testing.T) {
	q := NewQueue()
	r := NewRunner(q)

	if err := r.Submit(func(ctx *Context) {
		ctx.Start()
		panic("worker blew up")
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	<-r.Done()

	msgs := q.Drain()
	if len(msgs) == 0 {
		t.Fatal("no messages after panicking worker")
	}
	last := msgs[len(msgs)-1]
	if last.Stage != StageStop {
		t.Errorf("panicking worker must still end with %s, got %s", StageStop, last.Stage)
	}
	if r.Running() {
		t.Error("runner must be idle after worker panic")
	}

	// The runner must accept new work afterwards.
	if err := r.Submit(func(ctx *Context) {}); err != nil {
		t.Errorf("Submit after panic failed: %v", err)
	}
	<-r.Done()
}
