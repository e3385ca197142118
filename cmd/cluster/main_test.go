package main

import (
	"errors"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/cluster/backend"
	"github.com/gogpu/cluster/fonts"
	"github.com/gogpu/cluster/internal/config"
	"github.com/gogpu/cluster/telemetry"
)

func TestOpenSource_Sim(t *testing.T) {
	cfg := config.Default()
	cfg.Source = config.SourceSim
	cfg.Sim.Period = 0

	src, err := openSource(&cfg)
	if err != nil {
		t.Fatalf("openSource() = %v", err)
	}
	f, err := src.ReadFrame()
	if err != nil || f.ID != telemetry.SpeedID {
		t.Errorf("first frame = %v, %v; want a speed frame", f, err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestRun_HeadlessSnapshot(t *testing.T) {
	for _, name := range []string{backend.Software, backend.Antialias} {
		t.Run(name, func(t *testing.T) {
			snap := filepath.Join(t.TempDir(), "frame.png")
			cfg := config.Default()
			cfg.Source = config.SourceSim
			cfg.Sim.Period = 0
			cfg.Display = config.DisplayHeadless
			cfg.Backend = name
			cfg.Frames = 3
			cfg.Snapshot = snap

			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
			if err := run(&cfg, log); err != nil {
				t.Fatalf("run() = %v", err)
			}

			f, err := os.Open(snap)
			if err != nil {
				t.Fatalf("snapshot not written: %v", err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("snapshot is not a PNG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 600 {
				t.Errorf("snapshot size = %v, want 1200x600", b)
			}
		})
	}
}

func TestRun_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Source = config.SourceSim
	cfg.Display = config.DisplayHeadless
	cfg.Backend = "vector"

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if err := run(&cfg, log); err == nil {
		t.Error("run() with an unknown backend succeeded")
	}
}

// closedSource behaves like a bus whose socket has gone away.
type closedSource struct{}

func (closedSource) ReadFrame() (telemetry.Frame, error) {
	return telemetry.Frame{}, telemetry.ErrSourceClosed
}

func (closedSource) Close() error { return nil }

func TestServe_LinkFailureIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Display = config.DisplayHeadless
	cfg.Backend = backend.Software
	cfg.Frames = 0 // only the link can stop the display

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	err := serve(&cfg, log, fonts.Default(), closedSource{})
	if !errors.Is(err, telemetry.ErrSourceClosed) {
		t.Fatalf("serve() = %v, want %v", err, telemetry.ErrSourceClosed)
	}
}
