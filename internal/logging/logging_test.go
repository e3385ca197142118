package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLevel("verbose"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseLevel(verbose) = %v, want ErrInvalid", err)
	}
}

func TestNew_JSONCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })

	l.Debug("frame", "n", 1)
	l.Info("started")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("line is not JSON: %q", line)
		}
		run, _ := rec["run"].(string)
		if _, err := uuid.Parse(run); err != nil || run != l.RunID.String() {
			t.Errorf("run = %q, want %s", run, l.RunID)
		}
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q, want only the warning", out)
	}
	if !strings.Contains(out, "run=") {
		t.Errorf("text output missing run attribute: %q", out)
	}
}

func TestNew_DistinctRuns(t *testing.T) {
	a, _ := New(Options{Output: &bytes.Buffer{}})
	b, _ := New(Options{Output: &bytes.Buffer{}})
	if a.RunID == b.RunID {
		t.Error("two loggers share a run id")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluster.log")
	l, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	l.Info("to file")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want the record", data)
	}
}

func TestNew_BadFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("New() = %v, want ErrInvalid", err)
	}
}
