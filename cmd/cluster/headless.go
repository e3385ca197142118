package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/cluster"
	"github.com/gogpu/cluster/backend"
	"github.com/gogpu/cluster/internal/config"
	"github.com/gogpu/cluster/telemetry"
)

// runHeadless renders offscreen until interrupted or until cfg.Frames
// frames have been presented, then writes the snapshot if one was asked for.
func runHeadless(ctx context.Context, cancel context.CancelFunc, cfg *config.Config,
	bcfg backend.Config, renderer *cluster.GaugeRenderer, state *telemetry.State) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var frames uint64
	bcfg.Present = func(image.Image) error {
		frames++
		if cfg.Frames > 0 && frames >= cfg.Frames {
			cancel()
		}
		return nil
	}

	canvas, err := backend.New(cfg.Backend, bcfg)
	if err != nil {
		return err
	}
	defer canvas.Close()

	loop := cluster.NewFrameLoop(canvas, cluster.DefaultGauges(state),
		cluster.WithRenderer(renderer),
		cluster.WithFrameLimit(cluster.Capped(cfg.FPS)),
	)
	if err := loop.Run(ctx); err != nil {
		return err
	}

	if cfg.Snapshot == "" {
		return nil
	}
	return writePNG(cfg.Snapshot, canvas.Image())
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is operator-provided
	if err != nil {
		return fmt.Errorf("cluster: snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("cluster: snapshot %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cluster: snapshot %s: %w", path, err)
	}
	cluster.Logger().Info("cluster: snapshot written", "path", path)
	return nil
}
