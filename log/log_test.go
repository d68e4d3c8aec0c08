package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if tt.level.String() != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, tt.level.String(), tt.expected)
		}
	}
}

func TestFieldCreators(t *testing.T) {
	f := String("key", "value")
	if f.Key != "key" || f.Value != "value" {
		t.Errorf("String field incorrect: %+v", f)
	}

	f = Int("count", 42)
	if f.Key != "count" || f.Value != 42 {
		t.Errorf("Int field incorrect: %+v", f)
	}

	f = Float64("gain", -16.0)
	if f.Key != "gain" || f.Value != -16.0 {
		t.Errorf("Float64 field incorrect: %+v", f)
	}

	f = Bool("running", true)
	if f.Key != "running" || f.Value != true {
		t.Errorf("Bool field incorrect: %+v", f)
	}

	err := errors.New("test error")
	f = Err(err)
	if f.Key != "error" || f.Value != "test error" {
		t.Errorf("Err field incorrect: %+v", f)
	}

	f = Err(nil)
	if f.Key != "error" || f.Value != nil {
		t.Errorf("Err(nil) field incorrect: %+v", f)
	}

	f = Duration("elapsed", 5*time.Second)
	if f.Key != "elapsed" || f.Value != "5s" {
		t.Errorf("Duration field incorrect: %+v", f)
	}
}

func TestNullLogger(t *testing.T) {
	logger := &nullLogger{}

	// These should all be no-ops
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")

	if logger.WithFields(String("k", "v")) != logger {
		t.Error("nullLogger.WithFields should return the same logger")
	}
}

func TestSimpleLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLogger(&buf, LevelInfo)

	logger.Info("preset loaded", String("path", "a.preset.json"), Int("fields", 7))

	out := buf.String()
	if !strings.Contains(out, "INFO preset loaded") {
		t.Errorf("missing message in output: %q", out)
	}
	if !strings.Contains(out, "path=a.preset.json") || !strings.Contains(out, "fields=7") {
		t.Errorf("missing fields in output: %q", out)
	}
}

func TestSimpleLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLogger(&buf, LevelWarn)

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("levels below threshold should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN kept") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLogger(&buf, LevelDebug).WithFields(String("task", "export"))

	logger.Info("started")

	out := buf.String()
	if !strings.Contains(out, "task=export") {
		t.Errorf("persistent field missing: %q", out)
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(NewSimpleLogger(&buf, LevelDebug))
	Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Error("package-level logger not used after SetLogger")
	}

	SetLogger(nil)
	if _, ok := GetLogger().(*nullLogger); !ok {
		t.Error("SetLogger(nil) should install the null logger")
	}
}
