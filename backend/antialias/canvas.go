// Package antialias implements the cluster canvas on a gg drawing context.
//
// Lines and circles are stroked by gg's analytic coverage rasterizer and
// text is shaped and drawn with gg's text package, so every primitive is
// antialiased natively. Importing the package registers it under
// backend.Antialias.
package antialias

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/cluster"
	"github.com/gogpu/cluster/backend"
)

func init() {
	backend.Register(backend.Antialias, func(cfg backend.Config) (backend.Canvas, error) {
		return New(cfg)
	})
}

// Canvas is a cluster.Canvas drawing with a gg.Context.
//
// gg reports stroke failures per call; Canvas keeps the first one of a
// frame and returns it from Present.
type Canvas struct {
	dc      *gg.Context
	faces   [3]text.Face
	present backend.PresentFunc
	flush   func() error
	err     error
}

// Verify at compile time that Canvas implements backend.Canvas.
var _ backend.Canvas = (*Canvas)(nil)

// New creates a canvas with its own offscreen gg context.
func New(cfg backend.Config) (*Canvas, error) {
	cfg = cfg.WithDefaults()
	return Wrap(gg.NewContext(cfg.Width, cfg.Height), cfg)
}

// Wrap creates a canvas drawing onto an existing context, such as one
// owned by a window surface. cfg.Width and cfg.Height are ignored.
func Wrap(dc *gg.Context, cfg backend.Config) (*Canvas, error) {
	cfg = cfg.WithDefaults()
	src, err := text.NewFontSource(cfg.Font.Data())
	if err != nil {
		return nil, fmt.Errorf("antialias: font %s: %w", cfg.Font.Name(), err)
	}
	c := &Canvas{dc: dc, present: cfg.Present, flush: dc.FlushGPU}
	for tier, size := range cfg.Sizes {
		c.faces[tier] = src.Face(size)
	}
	cluster.Logger().Debug("antialias: canvas ready",
		"width", dc.Width(), "height", dc.Height(), "font", cfg.Font.Name())
	return c, nil
}

// Name returns backend.Antialias.
func (c *Canvas) Name() string { return backend.Antialias }

// Context returns the underlying gg context.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Image returns a copy of the surface. A failed GPU flush is kept and
// reported by the next Present.
func (c *Canvas) Image() image.Image {
	c.keep(c.flush())
	return c.dc.Image()
}

// Clear fills the surface with col.
func (c *Canvas) Clear(col cluster.RGBA) {
	c.dc.ClearWithColor(toGG(col))
}

// DrawPoint fills the one pixel square containing p.
func (c *Canvas) DrawPoint(p cluster.Point, col cluster.RGBA) {
	c.setColor(col)
	c.dc.DrawRectangle(float64(int(p.X)), float64(int(p.Y)), 1, 1)
	c.keep(c.dc.Fill())
}

// DrawLine strokes a line with flat caps.
func (c *Canvas) DrawLine(p1, p2 cluster.Point, thickness float64, col cluster.RGBA) {
	c.setColor(col)
	c.dc.SetLineWidth(thickness)
	c.dc.SetLineCap(gg.LineCapButt)
	c.dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	c.keep(c.dc.Stroke())
}

// DrawCircle strokes a one pixel circle outline at the given opacity.
func (c *Canvas) DrawCircle(center cluster.Point, radius float64, col cluster.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}
	c.setColor(col.WithAlpha(alpha))
	c.dc.SetLineWidth(1)
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.keep(c.dc.Stroke())
}

// MeasureText returns the advance width and line height of s.
func (c *Canvas) MeasureText(s string, tier cluster.FontTier) (w, h float64) {
	return text.Measure(s, c.face(tier))
}

// DrawText draws s with the top-left corner of its line box at p.
func (c *Canvas) DrawText(s string, p cluster.Point, tier cluster.FontTier, col cluster.RGBA) {
	f := c.face(tier)
	c.setColor(col)
	c.dc.SetFont(f)
	c.dc.DrawString(s, p.X, p.Y+f.Metrics().Ascent)
}

// Present flushes pending GPU work, then hands the frame to the configured
// PresentFunc. It returns the first drawing or flush error of the frame,
// if any, without presenting.
func (c *Canvas) Present() error {
	c.keep(c.flush())
	err := c.err
	c.err = nil
	if err != nil {
		return fmt.Errorf("antialias: draw: %w", err)
	}
	if c.present == nil {
		return nil
	}
	return c.present(c.dc.Image())
}

// Close releases the gg context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}

func (c *Canvas) setColor(col cluster.RGBA) {
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
}

func (c *Canvas) keep(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *Canvas) face(tier cluster.FontTier) text.Face {
	if int(tier) >= len(c.faces) {
		tier = cluster.TierSmall
	}
	return c.faces[tier]
}

func toGG(col cluster.RGBA) gg.RGBA {
	return gg.RGBA{R: col.R, G: col.G, B: col.B, A: col.A}
}
