package cluster

import "context"

// RendererOption configures a GaugeRenderer during creation.
//
// Example:
//
//	// Default cluster look
//	r := cluster.NewGaugeRenderer()
//
//	// Smaller dial that pins the needle at the ends of the scale
//	r := cluster.NewGaugeRenderer(cluster.WithRadius(180), cluster.WithNeedleClamp(true))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for GaugeRenderer creation.
type rendererOptions struct {
	radius      int
	palette     Palette
	clampNeedle bool
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		radius:  DefaultRadius,
		palette: DefaultPalette(),
	}
}

// WithRadius sets the outer tick radius in pixels.
// Non-positive values are ignored.
func WithRadius(r int) RendererOption {
	return func(o *rendererOptions) {
		if r > 0 {
			o.radius = r
		}
	}
}

// WithPalette sets the gauge colors.
func WithPalette(p Palette) RendererOption {
	return func(o *rendererOptions) {
		o.palette = p
	}
}

// WithNeedleClamp pins the needle to [0, MaxValue] before the angle is
// computed. By default out-of-range values extrapolate past the tick arc.
// The numeric readout always shows the raw value.
func WithNeedleClamp(clamp bool) RendererOption {
	return func(o *rendererOptions) {
		o.clampNeedle = clamp
	}
}

// LoopOption configures a FrameLoop during creation.
type LoopOption func(*loopOptions)

// loopOptions holds optional configuration for FrameLoop creation.
type loopOptions struct {
	renderer *GaugeRenderer
	events   EventSource
	quit     context.CancelFunc
	limit    FrameLimit
}

// defaultLoopOptions returns the default loop options: default renderer,
// no event source and an uncapped frame rate.
func defaultLoopOptions() loopOptions {
	return loopOptions{
		limit: Uncapped,
	}
}

// WithRenderer sets the gauge renderer used by the loop.
func WithRenderer(r *GaugeRenderer) LoopOption {
	return func(o *loopOptions) {
		o.renderer = r
	}
}

// WithEvents sets the source of input events polled at the start of each
// frame. Without one the loop only stops when its context is cancelled.
func WithEvents(ev EventSource) LoopOption {
	return func(o *loopOptions) {
		o.events = ev
	}
}

// WithQuit sets the function invoked when a quit event arrives, typically
// the cancel function of the context shared with the telemetry link.
func WithQuit(quit context.CancelFunc) LoopOption {
	return func(o *loopOptions) {
		o.quit = quit
	}
}

// WithFrameLimit sets the frame rate mode.
func WithFrameLimit(l FrameLimit) LoopOption {
	return func(o *loopOptions) {
		o.limit = l
	}
}
