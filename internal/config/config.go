// Package config loads the cluster's runtime configuration.
//
// Values come from, in decreasing precedence: command-line flags,
// CLUSTER_* environment variables (dots become underscores, so log.level
// is CLUSTER_LOG_LEVEL), an optional YAML file named by --config, and
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CLUSTER"

// Telemetry sources.
const (
	SourceSocketCAN = "socketcan"
	SourceSim       = "sim"
)

// Displays.
const (
	DisplayWindow   = "window"
	DisplayHeadless = "headless"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete runtime configuration.
type Config struct {
	Source      string        `mapstructure:"source"`
	Interface   string        `mapstructure:"interface"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	Backend     string        `mapstructure:"backend"`
	Display     string        `mapstructure:"display"`
	FPS         int           `mapstructure:"fps"`
	Font        string        `mapstructure:"font"`
	Snapshot    string        `mapstructure:"snapshot"`
	Frames      uint64        `mapstructure:"frames"`
	ClampNeedle bool          `mapstructure:"clamp_needle"`
	Log         Log           `mapstructure:"log"`
	Sim         Sim           `mapstructure:"sim"`
}

// Log configures the process logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Sim configures the built-in telemetry simulator.
type Sim struct {
	Seed   uint64        `mapstructure:"seed"`
	Period time.Duration `mapstructure:"period"`
}

// Default returns the built-in configuration: live vcan0 telemetry drawn
// with the antialias backend in a window, uncapped.
func Default() Config {
	return Config{
		Source:      SourceSocketCAN,
		Interface:   "vcan0",
		ReadTimeout: 250 * time.Millisecond,
		Backend:     "antialias",
		Display:     DisplayWindow,
		Log:         Log{Level: "info", Format: "text"},
		Sim:         Sim{Seed: 1, Period: 10 * time.Millisecond},
	}
}

// flagKeys maps flag names to configuration keys where they differ.
var flagKeys = map[string]string{
	"read-timeout": "read_timeout",
	"clamp-needle": "clamp_needle",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"log-file":     "log.file",
	"sim-seed":     "sim.seed",
	"sim-period":   "sim.period",
}

// Flags returns a flag set declaring every configuration key.
// Defaults shown in usage come from Default.
func Flags(name string) *pflag.FlagSet {
	d := Default()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "YAML configuration file")
	fs.String("source", d.Source, "telemetry source: socketcan or sim")
	fs.String("interface", d.Interface, "SocketCAN interface")
	fs.Duration("read-timeout", d.ReadTimeout, "bus read timeout, 0 blocks")
	fs.String("backend", d.Backend, "canvas backend: antialias or software")
	fs.String("display", d.Display, "display: window or headless")
	fs.Int("fps", d.FPS, "frame cap, 0 for uncapped")
	fs.String("font", d.Font, "TrueType font file, empty for Go Regular")
	fs.String("snapshot", d.Snapshot, "headless: write the last frame to this PNG file")
	fs.Uint64("frames", d.Frames, "headless: stop after this many frames, 0 runs until interrupted")
	fs.Bool("clamp-needle", d.ClampNeedle, "keep the needle within the dial")
	fs.String("log-level", d.Log.Level, "log level: debug, info, warn or error")
	fs.String("log-format", d.Log.Format, "log format: text or json")
	fs.String("log-file", d.Log.File, "log to this file with rotation instead of stderr")
	fs.Uint64("sim-seed", d.Sim.Seed, "simulator random seed")
	fs.Duration("sim-period", d.Sim.Period, "simulator step period")
	return fs
}

// Load parses args (without the program name) and resolves the
// configuration. It returns pflag.ErrHelp when help was requested.
func Load(name string, args []string) (*Config, error) {
	fs := Flags(name)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return FromFlags(fs)
}

// FromFlags resolves the configuration from an already parsed flag set
// created by Flags.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := f.Name
		if k, ok := flagKeys[f.Name]; ok {
			key = k
		}
		_ = v.BindPFlag(key, f)
	})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("source", d.Source)
	v.SetDefault("interface", d.Interface)
	v.SetDefault("read_timeout", d.ReadTimeout)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("display", d.Display)
	v.SetDefault("fps", d.FPS)
	v.SetDefault("font", d.Font)
	v.SetDefault("snapshot", d.Snapshot)
	v.SetDefault("frames", d.Frames)
	v.SetDefault("clamp_needle", d.ClampNeedle)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("sim.seed", d.Sim.Seed)
	v.SetDefault("sim.period", d.Sim.Period)
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSocketCAN:
		if c.Interface == "" {
			return fmt.Errorf("%w: interface is required for source %q", ErrInvalid, c.Source)
		}
	case SourceSim:
	default:
		return fmt.Errorf("%w: source %q (want socketcan or sim)", ErrInvalid, c.Source)
	}
	switch c.Display {
	case DisplayWindow, DisplayHeadless:
	default:
		return fmt.Errorf("%w: display %q (want window or headless)", ErrInvalid, c.Display)
	}
	if c.Backend == "" {
		return fmt.Errorf("%w: backend is empty", ErrInvalid)
	}
	if c.FPS < 0 {
		return fmt.Errorf("%w: fps %d is negative", ErrInvalid, c.FPS)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("%w: read_timeout %v is negative", ErrInvalid, c.ReadTimeout)
	}
	if c.Sim.Period < 0 {
		return fmt.Errorf("%w: sim.period %v is negative", ErrInvalid, c.Sim.Period)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	return nil
}
