package cluster

import (
	"image/color"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements the color.Color interface (alpha-premultiplied, 16-bit).
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(to8(c.A)) * 0x101
	r = uint32(to8(c.R*c.A)) * 0x101
	g = uint32(to8(c.G*c.A)) * 0x101
	b = uint32(to8(c.B*c.A)) * 0x101
	return r, g, b, a
}

// NRGBA converts the color to a non-premultiplied 8-bit color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB8(n.R, n.G, n.B).WithAlpha(n.A)
}

// RGB8 creates an opaque color from 8-bit RGB components.
func RGB8(r, g, b uint8) RGBA {
	return RGBA{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// WithAlpha returns the color with its alpha replaced by a/255.
func (c RGBA) WithAlpha(a uint8) RGBA {
	c.A = float64(a) / 255
	return c
}

// to8 scales a [0, 1] component to [0, 255], rounding to nearest.
func to8(x float64) uint8 {
	return uint8(clamp255(x*255) + 0.5)
}

// clamp255 clamps a value to [0, 255].
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Colors used by the instrument cluster.
var (
	Black         = RGB8(0, 0, 0)
	LightGray     = RGB8(200, 200, 200)
	DarkGray      = RGB8(100, 100, 100)
	RedOrange     = RGB8(255, 51, 0)
	DarkRedOrange = RGB8(128, 26, 0)
	BluePurple    = RGB8(128, 0, 255)
	DarkPurple    = RGB8(51, 0, 102)
	LightPurple   = RGB8(204, 153, 255)
)

// Palette assigns colors to the parts of a gauge.
type Palette struct {
	Background RGBA // frame clear color
	Accent     RGBA // outer halo, needle and hub ring
	HubGlow    RGBA // inner halo
	Tick       RGBA // major tick below the redline
	Redline    RGBA // major tick inside the redline
	MinorTick  RGBA // minor tick below the redline
	MinorRed   RGBA // minor tick inside the redline
	TickLabel  RGBA
	Readout    RGBA
	Label      RGBA
}

// DefaultPalette returns the purple-on-black cluster palette.
func DefaultPalette() Palette {
	return Palette{
		Background: Black,
		Accent:     BluePurple,
		HubGlow:    DarkPurple,
		Tick:       LightGray,
		Redline:    RedOrange,
		MinorTick:  DarkGray,
		MinorRed:   DarkRedOrange,
		TickLabel:  DarkGray,
		Readout:    LightGray,
		Label:      LightPurple,
	}
}
