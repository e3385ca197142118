package main

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/cluster"
	"github.com/gogpu/cluster/recording"
	"github.com/gogpu/cluster/telemetry"
)

func newWindowFrames(ctx context.Context, limit cluster.FrameLimit, present error) *windowFrames {
	rec := recording.NewRecorder(recording.WithPresentHook(func(*recording.Recorder) error {
		return present
	}))
	var state telemetry.State
	return &windowFrames{
		ctx:   ctx,
		limit: limit,
		loop:  cluster.NewFrameLoop(rec, cluster.DefaultGauges(&state), cluster.WithFrameLimit(limit)),
	}
}

func TestWindowFrames_RendersWhileLive(t *testing.T) {
	w := newWindowFrames(context.Background(), cluster.Uncapped, nil)
	for range 3 {
		if !w.next() {
			t.Fatalf("next() = false on a live context (err %v)", w.err)
		}
	}
	if got := w.loop.Frames(); got != 3 {
		t.Errorf("Frames() = %d, want 3", got)
	}
}

func TestWindowFrames_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := newWindowFrames(ctx, cluster.Uncapped, nil)
	if !w.next() {
		t.Fatal("next() = false before cancel")
	}

	cancel()
	if w.next() {
		t.Error("next() = true after the shared context was cancelled")
	}
	if w.err != nil {
		t.Errorf("err = %v, want nil for a plain cancel", w.err)
	}
	if got := w.loop.Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1", got)
	}
}

func TestWindowFrames_StopsOnFrameError(t *testing.T) {
	errLost := errors.New("device lost")
	w := newWindowFrames(context.Background(), cluster.Uncapped, errLost)

	if w.next() {
		t.Fatal("next() = true after a failed frame")
	}
	if !errors.Is(w.err, errLost) {
		t.Fatalf("err = %v, want %v", w.err, errLost)
	}
	// Later draw callbacks keep reporting the stop without rendering.
	if w.next() {
		t.Error("next() = true after a previous failure")
	}
	if got := w.loop.Frames(); got != 0 {
		t.Errorf("Frames() = %d, want 0", got)
	}
}

func TestWindowFrames_CapSkipsEarlyFrames(t *testing.T) {
	w := newWindowFrames(context.Background(), cluster.Capped(1), nil)
	for range 3 {
		if !w.next() {
			t.Fatalf("next() = false (err %v)", w.err)
		}
	}
	if got := w.loop.Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1 within one capped interval", got)
	}
}
