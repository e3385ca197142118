// Command cluster renders a live instrument cluster: a speedometer and a
// tachometer fed from CAN bus telemetry.
//
// Usage:
//
//	cluster [flags]
//
// By default frames are read from the vcan0 SocketCAN interface and drawn
// in a 1200x600 window. Use --source=sim to drive the gauges from the
// built-in simulator and --display=headless to render without a window,
// optionally saving the last frame with --snapshot. Run with --help for
// every flag; each also has a CLUSTER_* environment variable.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/pflag"

	"github.com/gogpu/cluster"
	"github.com/gogpu/cluster/backend"
	_ "github.com/gogpu/cluster/backend/antialias"
	_ "github.com/gogpu/cluster/backend/software"
	"github.com/gogpu/cluster/fonts"
	"github.com/gogpu/cluster/internal/config"
	"github.com/gogpu/cluster/internal/logging"
	"github.com/gogpu/cluster/telemetry"
)

func main() {
	cfg, err := config.Load("cluster", os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(log.Logger)
	cluster.SetLogger(log.Logger)
	telemetry.SetLogger(log.Logger)

	if err := run(cfg, log.Logger); err != nil {
		log.Error("cluster: fatal", "err", err)
		_ = log.Close()
		os.Exit(1)
	}
	_ = log.Close()
}

// run wires the source, link, canvas and display, and blocks until the
// display stops.
func run(cfg *config.Config, log *slog.Logger) error {
	log.Info("cluster: starting",
		"version", cluster.Version,
		"source", cfg.Source,
		"backend", cfg.Backend,
		"display", cfg.Display,
	)

	face, err := fonts.Load(cfg.Font)
	if err != nil {
		return err
	}
	defer face.Close()

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	return serve(cfg, log, face, src)
}

// serve runs the link and the display over an open source. A link that
// stops on its own is fatal: it stops the display and its error is
// returned once the display has exited.
func serve(cfg *config.Config, log *slog.Logger, face *fonts.Source, src source) (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var state telemetry.State
	link := telemetry.NewLink(src, &state)

	var (
		wg      sync.WaitGroup
		linkErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if linkErr = link.Run(ctx); linkErr != nil {
			log.Error("cluster: telemetry stopped", "err", linkErr)
			cancel()
		}
	}()

	// Stop the link before returning: cancel, then close the source so a
	// blocked read returns.
	defer func() {
		cancel()
		if cerr := src.Close(); cerr != nil {
			log.Warn("cluster: close source", "err", cerr)
		}
		wg.Wait()
		if err == nil {
			err = linkErr
		}
		st := link.Stats()
		log.Info("cluster: telemetry summary",
			"read", st.Read, "decoded", st.Decoded, "ignored", st.Ignored,
			"rejected", st.Rejected, "errors", st.Errors)
	}()

	renderer := cluster.NewGaugeRenderer(cluster.WithNeedleClamp(cfg.ClampNeedle))
	bcfg := backend.Config{Font: face}

	switch cfg.Display {
	case config.DisplayHeadless:
		return runHeadless(ctx, cancel, cfg, bcfg, renderer, &state)
	default:
		return runWindow(ctx, cancel, cfg, bcfg, renderer, &state)
	}
}
