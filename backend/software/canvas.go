// Package software implements the cluster canvas by plotting every pixel
// by hand.
//
// Circles use Wu's antialiased circle walk over one octant mirrored eight
// ways. Lines of any thickness are drawn by sampling the pixels around the
// segment and weighting each by its distance from the centre line, which
// gives flat, antialiased ends. Text is rendered with x/image font faces.
//
// Importing the package registers it under backend.Software.
package software

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/cluster"
	"github.com/gogpu/cluster/backend"
)

func init() {
	backend.Register(backend.Software, func(cfg backend.Config) (backend.Canvas, error) {
		return New(cfg)
	})
}

// Canvas is a cluster.Canvas drawing into a Pixmap.
type Canvas struct {
	pm      *Pixmap
	faces   [3]font.Face
	present backend.PresentFunc
}

// Verify at compile time that Canvas implements backend.Canvas.
var _ backend.Canvas = (*Canvas)(nil)

// New creates a software canvas. Zero config fields take their defaults.
func New(cfg backend.Config) (*Canvas, error) {
	cfg = cfg.WithDefaults()
	c := &Canvas{
		pm:      NewPixmap(cfg.Width, cfg.Height),
		present: cfg.Present,
	}
	for tier, size := range cfg.Sizes {
		f, err := cfg.Font.Face(size)
		if err != nil {
			return nil, err
		}
		c.faces[tier] = f
	}
	cluster.Logger().Debug("software: canvas ready",
		"width", cfg.Width, "height", cfg.Height, "font", cfg.Font.Name())
	return c, nil
}

// Name returns backend.Software.
func (c *Canvas) Name() string { return backend.Software }

// Pixmap returns the canvas surface.
func (c *Canvas) Pixmap() *Pixmap { return c.pm }

// Image returns the surface. It aliases the canvas memory and changes with
// the next frame.
func (c *Canvas) Image() image.Image { return c.pm.Image() }

// Clear fills the surface with col.
func (c *Canvas) Clear(col cluster.RGBA) { c.pm.Clear(col) }

// DrawPoint blends col into the pixel containing p.
func (c *Canvas) DrawPoint(p cluster.Point, col cluster.RGBA) {
	c.pm.Blend(int(math.Floor(p.X)), int(math.Floor(p.Y)), col, 1)
}

// DrawLine draws a thick line with flat ends.
func (c *Canvas) DrawLine(p1, p2 cluster.Point, thickness float64, col cluster.RGBA) {
	half := max(thickness, 1) / 2
	d := p2.Sub(p1)
	length := d.Length()
	if length == 0 {
		c.DrawPoint(p1, col)
		return
	}
	dir := d.Normalize()
	n := dir.Perp()

	// Bounding box of the segment grown by the half width and one pixel
	// of antialiasing.
	pad := half + 1
	x0 := int(math.Floor(min(p1.X, p2.X) - pad))
	x1 := int(math.Ceil(max(p1.X, p2.X) + pad))
	y0 := int(math.Floor(min(p1.Y, p2.Y) - pad))
	y1 := int(math.Ceil(max(p1.Y, p2.Y) + pad))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.pm.Width()-1), min(y1, c.pm.Height()-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			// Sample at the pixel centre.
			v := cluster.Pt(float64(x)+0.5, float64(y)+0.5).Sub(p1)
			along := v.X*dir.X + v.Y*dir.Y
			across := math.Abs(v.X*n.X + v.Y*n.Y)

			cov := coverage(across, half)
			if along < 0 {
				cov *= coverage(-along, 0)
			} else if along > length {
				cov *= coverage(along-length, 0)
			}
			c.pm.Blend(x, y, col, cov)
		}
	}
}

// coverage is the fraction of a pixel at distance d from an edge placed
// half units from the centre line, with a one pixel ramp.
func coverage(d, half float64) float64 {
	return min(max(half+0.5-d, 0), 1)
}

// DrawCircle draws an antialiased one pixel circle outline with Wu's
// algorithm: for each step along the fast axis the two pixels straddling
// the true circle split the intensity by distance.
func (c *Canvas) DrawCircle(center cluster.Point, radius float64, col cluster.RGBA, alpha uint8) {
	if radius <= 0 || alpha == 0 {
		return
	}
	col = col.WithAlpha(alpha)
	cx, cy := int(math.Round(center.X)), int(math.Round(center.Y))

	// Walk the octant from the top of the circle until x passes y.
	limit := int(math.Ceil(radius / math.Sqrt2))
	for x := 0; x <= limit; x++ {
		y := math.Sqrt(radius*radius - float64(x*x))
		yi := int(math.Floor(y))
		frac := y - float64(yi)
		c.plot8(cx, cy, x, yi, col, 1-frac)
		c.plot8(cx, cy, x, yi+1, col, frac)
	}
}

// plot8 blends the eight symmetric points of (dx, dy) around (cx, cy).
// Points that coincide under the symmetry are blended once.
func (c *Canvas) plot8(cx, cy, dx, dy int, col cluster.RGBA, cov float64) {
	if cov <= 0 {
		return
	}
	pts := [8][2]int{
		{dx, dy}, {-dx, dy}, {dx, -dy}, {-dx, -dy},
		{dy, dx}, {-dy, dx}, {dy, -dx}, {-dy, -dx},
	}
	for i, p := range pts {
		dup := false
		for _, q := range pts[:i] {
			if p == q {
				dup = true
				break
			}
		}
		if !dup {
			c.pm.Blend(cx+p[0], cy+p[1], col, cov)
		}
	}
}

// MeasureText returns the advance width and line height of s.
func (c *Canvas) MeasureText(s string, tier cluster.FontTier) (w, h float64) {
	f := c.face(tier)
	return fixedToFloat(font.MeasureString(f, s)), fixedToFloat(f.Metrics().Height)
}

// DrawText draws s with the top-left corner of its line box at p.
func (c *Canvas) DrawText(s string, p cluster.Point, tier cluster.FontTier, col cluster.RGBA) {
	f := c.face(tier)
	d := font.Drawer{
		Dst:  c.pm.Image(),
		Src:  image.NewUniform(col),
		Face: f,
		Dot: fixed.Point26_6{
			X: floatToFixed(p.X),
			Y: floatToFixed(p.Y) + f.Metrics().Ascent,
		},
	}
	d.DrawString(s)
}

// Present hands the frame to the configured PresentFunc.
func (c *Canvas) Present() error {
	if c.present == nil {
		return nil
	}
	return c.present(c.pm.Image())
}

// Close releases nothing; faces belong to the font source.
func (c *Canvas) Close() error { return nil }

func (c *Canvas) face(tier cluster.FontTier) font.Face {
	if int(tier) >= len(c.faces) {
		tier = cluster.TierSmall
	}
	return c.faces[tier]
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
