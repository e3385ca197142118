package main

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"

	"github.com/gogpu/cluster"
	"github.com/gogpu/cluster/backend"
	"github.com/gogpu/cluster/internal/config"
	"github.com/gogpu/cluster/telemetry"
)

// runWindow shows the cluster in a gogpu window. The window owns the event
// loop: each draw callback renders one frame with the selected backend and
// uploads it through a ggcanvas texture. Closing the window cancels the
// shared context, which stops the telemetry link; cancelling the context
// from elsewhere (link failure, frame error) closes the window.
func runWindow(ctx context.Context, cancel context.CancelFunc, cfg *config.Config,
	bcfg backend.Config, renderer *cluster.GaugeRenderer, state *telemetry.State) error {
	log := cluster.Logger()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("Instrument Cluster").
		WithSize(cluster.Width, cluster.Height).
		WithContinuousRender(true))

	var surface *ggcanvas.Canvas
	bcfg.Present = func(frame image.Image) error {
		if surface == nil {
			return nil
		}
		buf := gg.ImageBufFromImage(frame)
		return surface.Draw(func(cc *gg.Context) {
			cc.DrawImage(buf, 0, 0)
		})
	}

	canvas, err := backend.New(cfg.Backend, bcfg)
	if err != nil {
		return err
	}
	defer canvas.Close()

	frames := &windowFrames{
		ctx:   ctx,
		limit: cluster.Capped(cfg.FPS),
	}
	frames.loop = cluster.NewFrameLoop(canvas, cluster.DefaultGauges(state),
		cluster.WithRenderer(renderer),
		cluster.WithFrameLimit(frames.limit),
	)

	// Wake an idle event loop so the draw callback sees the cancellation.
	go func() {
		<-ctx.Done()
		app.RequestRedraw()
	}()

	closing := false
	app.OnDraw(func(dc *gogpu.Context) {
		if surface == nil && frames.err == nil && ctx.Err() == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			sf, serr := ggcanvas.New(provider, cluster.Width, cluster.Height)
			if serr != nil {
				frames.err = fmt.Errorf("cluster: window surface: %w", serr)
			} else {
				surface = sf
				log.Info("cluster: window open", "backend", dc.Backend(), "limit", frames.limit.String())
			}
		}

		if !frames.next() {
			if !closing {
				closing = true
				if frames.err != nil {
					log.Error("cluster: window stopping", "err", frames.err)
				}
				cancel()
				app.Quit()
			}
			return
		}
		if err := surface.RenderTo(dc.AsTextureDrawer()); err != nil {
			log.Warn("cluster: present to window", "err", err)
		}
	})

	app.OnClose(func() {
		log.Info("cluster: window closed", "frames", frames.loop.Frames())
		cancel()
		if surface != nil {
			_ = surface.Close()
		}
		gg.CloseAccelerator()
	})

	if err := app.Run(); err != nil {
		return err
	}
	cancel()
	return frames.err
}

// windowFrames paces the frame loop from the window's draw callback and
// decides when the window has to close.
type windowFrames struct {
	ctx   context.Context
	loop  *cluster.FrameLoop
	limit cluster.FrameLimit
	last  time.Time
	err   error
}

// next renders a frame when one is due. With a cap, frames that are not
// yet due are skipped and the window shows the previous texture again.
// next returns false once the shared context is cancelled or a frame has
// failed; err holds the failure.
func (w *windowFrames) next() bool {
	if w.err != nil || w.ctx.Err() != nil {
		return false
	}
	if iv := w.limit.Interval(); iv > 0 && time.Since(w.last) < iv {
		return true
	}
	w.last = time.Now()
	if err := w.loop.Frame(); err != nil {
		w.err = err
		return false
	}
	return true
}
