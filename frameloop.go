package cluster

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"
)

// Surface size of the cluster display, in pixels.
const (
	Width  = 1200
	Height = 600
)

// EventSource delivers input events to the frame loop.
type EventSource interface {
	// PollEvents drains all pending events without blocking and reports
	// whether one of them asked the application to quit.
	PollEvents() (quit bool)
}

// FrameLimit selects between an uncapped frame rate and a fixed cap.
type FrameLimit struct {
	fps int
}

// Uncapped renders frames back to back.
var Uncapped = FrameLimit{}

// Capped limits rendering to fps frames per second.
// Non-positive fps means Uncapped.
func Capped(fps int) FrameLimit {
	if fps <= 0 {
		return Uncapped
	}
	return FrameLimit{fps: fps}
}

// FPS returns the frame cap, or 0 when uncapped.
func (l FrameLimit) FPS() int {
	return l.fps
}

// Interval returns the minimum time between frames, or 0 when uncapped.
func (l FrameLimit) Interval() time.Duration {
	if l.fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(l.fps)
}

// String returns "uncapped" or the cap in frames per second.
func (l FrameLimit) String() string {
	if l.fps <= 0 {
		return "uncapped"
	}
	return strconv.Itoa(l.fps) + "fps"
}

// Pacer spaces frames according to a FrameLimit.
type Pacer struct {
	ticker *time.Ticker
}

// NewPacer starts a pacer for l. Call Stop when done.
func (l FrameLimit) NewPacer() *Pacer {
	if d := l.Interval(); d > 0 {
		return &Pacer{ticker: time.NewTicker(d)}
	}
	return &Pacer{}
}

// Wait blocks until the next frame is due. It reports false if ctx was
// cancelled first. An uncapped pacer never blocks.
func (p *Pacer) Wait(ctx context.Context) bool {
	if p.ticker == nil {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-p.ticker.C:
		return true
	}
}

// Stop releases the pacer's timer.
func (p *Pacer) Stop() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

// Gauge binds a fixed dial layout to a live value.
type Gauge struct {
	Center   Point
	MaxValue int
	TickMin  int
	TickMax  int
	TickStep int
	Label    string
	Value    func() int
}

// Spec samples the gauge's value and returns the spec for this frame.
func (g Gauge) Spec() GaugeSpec {
	var v int
	if g.Value != nil {
		v = g.Value()
	}
	return GaugeSpec{
		Center:   g.Center,
		Value:    v,
		MaxValue: g.MaxValue,
		TickMin:  g.TickMin,
		TickMax:  g.TickMax,
		TickStep: g.TickStep,
		Label:    g.Label,
	}
}

// FrameLoop clears the canvas, draws every gauge and presents, once per
// frame. It runs on a single goroutine and never waits on telemetry.
type FrameLoop struct {
	canvas   Canvas
	gauges   []Gauge
	renderer *GaugeRenderer
	events   EventSource
	quit     context.CancelFunc
	limit    FrameLimit

	frames atomic.Uint64
	warned []bool // per gauge, invalid spec already logged
}

// NewFrameLoop creates a loop drawing gauges onto canvas.
func NewFrameLoop(canvas Canvas, gauges []Gauge, opts ...LoopOption) *FrameLoop {
	o := defaultLoopOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = NewGaugeRenderer()
	}
	return &FrameLoop{
		canvas:   canvas,
		gauges:   gauges,
		renderer: o.renderer,
		events:   o.events,
		quit:     o.quit,
		limit:    o.limit,
		warned:   make([]bool, len(gauges)),
	}
}

// Frames returns the number of frames presented so far.
func (l *FrameLoop) Frames() uint64 {
	return l.frames.Load()
}

// Limit returns the loop's frame rate mode.
func (l *FrameLoop) Limit() FrameLimit {
	return l.limit
}

// Run renders frames until ctx is cancelled or a quit event arrives.
// A quit event invokes the function set with WithQuit before Run returns.
// Run returns the first Present error; a clean shutdown returns nil.
func (l *FrameLoop) Run(ctx context.Context) error {
	log := Logger()
	log.Info("cluster: frame loop started", "gauges", len(l.gauges), "limit", l.limit.String())

	pacer := l.limit.NewPacer()
	defer pacer.Stop()

	for ctx.Err() == nil {
		if l.events != nil && l.events.PollEvents() {
			log.Info("cluster: quit requested")
			if l.quit != nil {
				l.quit()
			}
			break
		}
		if err := l.Frame(); err != nil {
			return err
		}
		if !pacer.Wait(ctx) {
			break
		}
	}

	log.Info("cluster: frame loop stopped", "frames", l.Frames())
	return nil
}

// Frame renders and presents exactly one frame. Displays that own their
// event loop call it from their draw callback instead of using Run.
func (l *FrameLoop) Frame() error {
	l.canvas.Clear(l.renderer.palette.Background)

	for i, g := range l.gauges {
		if err := l.renderer.DrawGauge(l.canvas, g.Spec()); err != nil {
			if !l.warned[i] {
				Logger().Warn("cluster: gauge skipped", "gauge", i, "label", g.Label, "err", err)
				l.warned[i] = true
			}
		}
	}

	if err := l.canvas.Present(); err != nil {
		return fmt.Errorf("cluster: present frame %d: %w", l.frames.Load(), err)
	}
	if n := l.frames.Add(1); n%600 == 0 {
		Logger().Debug("cluster: frames presented", "frames", n)
	}
	return nil
}
