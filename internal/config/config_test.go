package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("cluster", nil)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if *cfg != Default() {
		t.Errorf("Load() = %+v, want %+v", *cfg, Default())
	}
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load("cluster", []string{
		"--source=sim",
		"--backend", "software",
		"--display=headless",
		"--fps=60",
		"--frames=10",
		"--clamp-needle",
		"--read-timeout=1s",
		"--log-level=debug",
		"--log-format=json",
		"--sim-seed=42",
		"--sim-period=5ms",
	})
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	want := Default()
	want.Source = SourceSim
	want.Backend = "software"
	want.Display = DisplayHeadless
	want.FPS = 60
	want.Frames = 10
	want.ClampNeedle = true
	want.ReadTimeout = time.Second
	want.Log.Level = "debug"
	want.Log.Format = "json"
	want.Sim = Sim{Seed: 42, Period: 5 * time.Millisecond}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CLUSTER_SOURCE", "sim")
	t.Setenv("CLUSTER_FPS", "30")
	t.Setenv("CLUSTER_LOG_LEVEL", "warn")
	t.Setenv("CLUSTER_SIM_PERIOD", "20ms")

	cfg, err := Load("cluster", nil)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Source != SourceSim || cfg.FPS != 30 || cfg.Log.Level != "warn" || cfg.Sim.Period != 20*time.Millisecond {
		t.Errorf("env not applied: %+v", *cfg)
	}

	// Flags beat the environment.
	cfg, err = Load("cluster", []string{"--fps=15"})
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.FPS != 15 {
		t.Errorf("FPS = %d, want flag value 15", cfg.FPS)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluster.yaml")
	data := []byte(`
source: sim
interface: can1
backend: software
fps: 50
log:
  level: error
  file: /tmp/cluster.log
sim:
  seed: 9
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CLUSTER_FPS", "25")

	cfg, err := Load("cluster", []string{"--config", path, "--backend=antialias"})
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Source != SourceSim || cfg.Interface != "can1" {
		t.Errorf("file values not applied: %+v", *cfg)
	}
	if cfg.Backend != "antialias" {
		t.Errorf("Backend = %q, want flag value antialias", cfg.Backend)
	}
	if cfg.FPS != 25 {
		t.Errorf("FPS = %d, want env value 25", cfg.FPS)
	}
	if cfg.Log.Level != "error" || cfg.Log.File != "/tmp/cluster.log" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want file values merged with defaults", cfg.Log)
	}
	if cfg.Sim.Seed != 9 || cfg.Sim.Period != Default().Sim.Period {
		t.Errorf("Sim = %+v, want seed 9 and default period", cfg.Sim)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"help", []string{"--help"}, pflag.ErrHelp},
		{"bad source", []string{"--source=usb"}, ErrInvalid},
		{"bad display", []string{"--display=hud"}, ErrInvalid},
		{"negative fps", []string{"--fps=-1"}, ErrInvalid},
		{"bad log level", []string{"--log-level=loud"}, ErrInvalid},
		{"bad log format", []string{"--log-format=xml"}, ErrInvalid},
		{"empty backend", []string{"--backend="}, ErrInvalid},
		{"empty interface", []string{"--interface="}, ErrInvalid},
		{"negative timeout", []string{"--read-timeout=-1s"}, ErrInvalid},
		{"missing file", []string{"--config=/nonexistent/cluster.yaml"}, os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("cluster", tt.args)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load(%v) = %v, want %v", tt.args, err, tt.want)
			}
		})
	}

	if _, err := Load("cluster", []string{"--no-such-flag"}); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestValidate_SimNeedsNoInterface(t *testing.T) {
	cfg := Default()
	cfg.Source = SourceSim
	cfg.Interface = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
