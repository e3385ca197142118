package cluster

// FontTier selects one of the fixed text sizes used by the cluster.
type FontTier uint8

const (
	// TierSmall is used for tick labels.
	TierSmall FontTier = iota
	// TierNormal is used for gauge labels.
	TierNormal
	// TierLarge is used for the numeric readout.
	TierLarge
)

// fontTierNames maps FontTier values to their string representation.
var fontTierNames = [...]string{
	TierSmall:  "small",
	TierNormal: "normal",
	TierLarge:  "large",
}

// String returns the tier name.
func (t FontTier) String() string {
	if int(t) < len(fontTierNames) {
		return fontTierNames[t]
	}
	return "unknown"
}

// FontSizes maps each tier to a size in points.
type FontSizes [3]float64

// DefaultFontSizes returns the cluster's text sizes: 14pt small, 20pt normal,
// 55pt large.
func DefaultFontSizes() FontSizes {
	return FontSizes{TierSmall: 14, TierNormal: 20, TierLarge: 55}
}

// Canvas is the drawing capability the gauge renderer is written against.
// Backends provide it either with native antialiased primitives or by
// plotting pixels manually; gauges look the same on both.
//
// A Canvas is used from a single goroutine.
type Canvas interface {
	// Clear fills the whole surface with c.
	Clear(c RGBA)

	// DrawPoint blends c into the pixel containing p.
	DrawPoint(p Point, c RGBA)

	// DrawLine draws a line from p1 to p2 that is thickness pixels wide.
	DrawLine(p1, p2 Point, thickness float64, c RGBA)

	// DrawCircle draws a one pixel wide antialiased circle outline.
	// The color's own alpha is replaced by alpha.
	DrawCircle(center Point, radius float64, c RGBA, alpha uint8)

	// MeasureText returns the advance width and line height of s.
	MeasureText(s string, tier FontTier) (w, h float64)

	// DrawText draws s with the top-left corner of its line box at p.
	DrawText(s string, p Point, tier FontTier, c RGBA)

	// Present publishes the finished frame.
	Present() error
}
