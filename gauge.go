package cluster

import (
	"errors"
	"fmt"
	"strconv"
)

// Gauge sweep geometry, in degrees.
const (
	// SweepStart is the angle of the minimum value (lower left).
	SweepStart = -225.0
	// SweepDegrees is the active arc of a gauge. The remaining 90 degrees at
	// the bottom of the dial hold the numeric readout.
	SweepDegrees = 270.0
)

// Gauge dimensions, in pixels.
const (
	DefaultRadius = 225

	NeedleWidth  = 8
	needleLength = 95 // needle runs from radius-95 to radius

	majorTickLength = 24 // 30 * 0.8
	minorTickLength = 16 // 20 * 0.8
	tickLabelInset  = 60

	haloWidth     = 20
	hubRadius     = 130
	hubGlowRadius = 180

	readoutRise = 35 // readout top edge sits this far above the center
	labelDrop   = 40 // label top edge sits this far below the center
)

// ErrInvalidGauge is returned when a GaugeSpec violates its invariants.
var ErrInvalidGauge = errors.New("cluster: invalid gauge spec")

// GaugeSpec describes one gauge for one frame.
type GaugeSpec struct {
	Center   Point
	Value    int
	MaxValue int
	TickMin  int
	TickMax  int
	TickStep int
	Label    string
}

// Validate checks TickStep > 0, TickMax > TickMin and MaxValue > 0.
func (s GaugeSpec) Validate() error {
	switch {
	case s.TickStep <= 0:
		return fmt.Errorf("%w: tick step %d must be positive", ErrInvalidGauge, s.TickStep)
	case s.TickMax <= s.TickMin:
		return fmt.Errorf("%w: tick range [%d, %d] is empty", ErrInvalidGauge, s.TickMin, s.TickMax)
	case s.MaxValue <= 0:
		return fmt.Errorf("%w: max value %d must be positive", ErrInvalidGauge, s.MaxValue)
	}
	return nil
}

// ColorRing is a band of concentric circles fading from Color at Inner to
// fully transparent at Outer.
type ColorRing struct {
	Inner int
	Outer int
	Color RGBA
}

// NeedleAngle maps value in [0, maxValue] onto the sweep. Values outside
// the range extrapolate past the ends of the arc.
func NeedleAngle(value, maxValue float64) float64 {
	return value/maxValue*SweepDegrees + SweepStart
}

// TickAngle maps v in [lo, hi] onto the sweep.
func TickAngle(v, lo, hi float64) float64 {
	return (v-lo)/(hi-lo)*SweepDegrees + SweepStart
}

// GlowAlpha returns the opacity of the circle at offset within a ring of the
// given width: 255 at offset 0, falling linearly to 0 at offset == width.
func GlowAlpha(offset, width int) uint8 {
	if width <= 0 || offset >= width {
		return 0
	}
	if offset <= 0 {
		return 255
	}
	return uint8(255 * (1 - float64(offset)/float64(width)))
}

// MajorTickColor returns the redline color for ticks in the last two steps
// of the scale and the neutral tick color otherwise.
func (p Palette) MajorTickColor(v, tickMax, step int) RGBA {
	if v >= tickMax-2*step {
		return p.Redline
	}
	return p.Tick
}

// MinorTickColor is the darker counterpart of MajorTickColor for the
// half-step tick following v.
func (p Palette) MinorTickColor(v, tickMax, step int) RGBA {
	if v > tickMax-3*step {
		return p.MinorRed
	}
	return p.MinorTick
}

// Needle is the computed needle geometry.
type Needle struct {
	Angle    float64
	From, To Point
}

// Tick is the computed geometry of one tick mark.
type Tick struct {
	Value    int
	Minor    bool
	Angle    float64
	From, To Point
	Color    RGBA
	LabelAt  Point // center of the label, zero for minor ticks
}

// Layout holds everything DrawGauge computes before touching the canvas.
type Layout struct {
	Needle Needle
	Ticks  []Tick
	Rings  []ColorRing
}

// GaugeRenderer draws radial gauges onto a Canvas.
// It holds no per-frame state and is safe to reuse across frames.
type GaugeRenderer struct {
	radius  int
	palette Palette
	clamp   bool
}

// NewGaugeRenderer creates a renderer with the cluster's default radius and
// palette.
func NewGaugeRenderer(opts ...RendererOption) *GaugeRenderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GaugeRenderer{
		radius:  o.radius,
		palette: o.palette,
		clamp:   o.clampNeedle,
	}
}

// Radius returns the outer tick radius in pixels.
func (r *GaugeRenderer) Radius() int {
	return r.radius
}

// Palette returns the renderer's colors.
func (r *GaugeRenderer) Palette() Palette {
	return r.palette
}

// Layout computes the needle, tick and ring geometry of spec.
func (r *GaugeRenderer) Layout(spec GaugeSpec) (Layout, error) {
	if err := spec.Validate(); err != nil {
		return Layout{}, err
	}

	c := spec.Center
	radius := float64(r.radius)

	value := spec.Value
	if r.clamp {
		value = min(max(value, 0), spec.MaxValue)
	}
	angle := NeedleAngle(float64(value), float64(spec.MaxValue))

	l := Layout{
		Needle: Needle{
			Angle: angle,
			From:  Polar(c, radius-needleLength, angle),
			To:    Polar(c, radius, angle),
		},
		Rings: []ColorRing{
			{Inner: r.radius, Outer: r.radius + haloWidth, Color: r.palette.Accent},
			{Inner: hubRadius, Outer: hubGlowRadius, Color: r.palette.HubGlow},
		},
	}

	lo, hi := float64(spec.TickMin), float64(spec.TickMax)
	for i := spec.TickMin; ; i += spec.TickStep {
		a := TickAngle(float64(i), lo, hi)
		l.Ticks = append(l.Ticks, Tick{
			Value:   i,
			Angle:   a,
			From:    Polar(c, radius-majorTickLength, a),
			To:      Polar(c, radius, a),
			Color:   r.palette.MajorTickColor(i, spec.TickMax, spec.TickStep),
			LabelAt: Polar(c, radius-tickLabelInset, a),
		})

		// The half step past a tick near math.MaxInt does not exist.
		if mv := i + spec.TickStep/2; i < spec.TickMax && mv >= i {
			ma := TickAngle(float64(mv), lo, hi)
			l.Ticks = append(l.Ticks, Tick{
				Value: mv,
				Minor: true,
				Angle: ma,
				From:  Polar(c, radius-minorTickLength, ma),
				To:    Polar(c, radius, ma),
				Color: r.palette.MinorTickColor(i, spec.TickMax, spec.TickStep),
			})
		}

		// Stop before stepping past TickMax. The distance is taken
		// unsigned so that neither it nor the step can overflow.
		if uint(spec.TickMax-i) < uint(spec.TickStep) {
			break
		}
	}
	return l, nil
}

// DrawGauge renders one gauge: outer halo, needle, hub, ticks with labels,
// and the numeric readout. Nothing is drawn if spec is invalid.
func (r *GaugeRenderer) DrawGauge(cv Canvas, spec GaugeSpec) error {
	l, err := r.Layout(spec)
	if err != nil {
		return err
	}
	c := spec.Center

	drawGlow(cv, c, l.Rings[0])

	cv.DrawLine(l.Needle.From, l.Needle.To, NeedleWidth, r.palette.Accent)

	cv.DrawCircle(c, hubRadius, r.palette.Accent, 254)
	drawGlow(cv, c, l.Rings[1])

	for _, t := range l.Ticks {
		cv.DrawLine(t.From, t.To, 1, t.Color)
		if t.Minor {
			continue
		}
		s := strconv.Itoa(t.Value)
		w, h := cv.MeasureText(s, TierSmall)
		cv.DrawText(s, Pt(t.LabelAt.X-w/2, t.LabelAt.Y-h/2), TierSmall, r.palette.TickLabel)
	}

	s := strconv.Itoa(spec.Value)
	w, _ := cv.MeasureText(s, TierLarge)
	cv.DrawText(s, Pt(c.X-w/2, c.Y-readoutRise), TierLarge, r.palette.Readout)

	if spec.Label != "" {
		w, _ = cv.MeasureText(spec.Label, TierNormal)
		cv.DrawText(spec.Label, Pt(c.X-w/2, c.Y+labelDrop), TierNormal, r.palette.Label)
	}
	return nil
}

// drawGlow draws one circle per pixel of ring width with linearly
// decreasing opacity.
func drawGlow(cv Canvas, center Point, ring ColorRing) {
	width := ring.Outer - ring.Inner
	for i := 0; i < width; i++ {
		cv.DrawCircle(center, float64(ring.Inner+i), ring.Color, GlowAlpha(i, width))
	}
}
