package backend

import (
	"errors"
	"image"

	"github.com/gogpu/cluster"
	"github.com/gogpu/cluster/fonts"
)

// Backend name constants.
const (
	// Antialias is the name of the gg-based backend.
	Antialias = "antialias"
	// Software is the name of the manual pixel-plotting backend.
	Software = "software"
)

// ErrUnknownBackend is returned when no backend is registered under a name.
var ErrUnknownBackend = errors.New("backend: unknown backend")

// PresentFunc receives each finished frame. The image is only valid until
// the function returns.
type PresentFunc func(frame image.Image) error

// Config describes the surface a backend creates.
type Config struct {
	// Width and Height of the surface in pixels.
	// Zero means cluster.Width by cluster.Height.
	Width, Height int

	// Font used for all text. Nil means fonts.Default().
	Font *fonts.Source

	// Sizes of the three text tiers. Zero means cluster.DefaultFontSizes().
	Sizes cluster.FontSizes

	// Present is called from Canvas.Present. Nil discards frames.
	Present PresentFunc
}

// WithDefaults returns c with zero fields replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.Width <= 0 {
		c.Width = cluster.Width
	}
	if c.Height <= 0 {
		c.Height = cluster.Height
	}
	if c.Font == nil {
		c.Font = fonts.Default()
	}
	if c.Sizes == (cluster.FontSizes{}) {
		c.Sizes = cluster.DefaultFontSizes()
	}
	return c
}

// Canvas is a cluster.Canvas backed by an offscreen surface.
type Canvas interface {
	cluster.Canvas

	// Name returns the backend identifier.
	Name() string

	// Image returns the current surface contents.
	Image() image.Image

	// Close releases the surface. The canvas must not be used afterwards.
	Close() error
}

// Factory creates a canvas for cfg. Factories receive cfg with defaults
// already applied.
type Factory func(cfg Config) (Canvas, error)
