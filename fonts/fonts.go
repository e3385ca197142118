// Package fonts loads the typeface used for all cluster text.
//
// A Source holds the raw font file once; each canvas backend builds its
// own faces from it at the sizes in cluster.FontSizes. With no path the
// embedded Go Regular typeface is used, so the cluster runs without any
// font installed on the host.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultName is the name of the embedded typeface.
const DefaultName = "Go Regular"

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("fonts: invalid font data")

// Source is a parsed TrueType or OpenType font file.
// It is safe for concurrent use.
type Source struct {
	name string
	data []byte
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Default returns the embedded Go Regular typeface.
func Default() *Source {
	s, err := Parse(DefaultName, goregular.TTF)
	if err != nil {
		// The embedded font is known good.
		panic(err)
	}
	return s
}

// Load reads a font file. An empty path returns Default.
func Load(path string) (*Source, error) {
	if path == "" {
		return Default(), nil
	}
	// #nosec G304 -- font path comes from the operator's configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fonts: read %s: %w", path, err)
	}
	return Parse(filepath.Base(path), data)
}

// Parse builds a Source from font file bytes.
func Parse(name string, data []byte) (*Source, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFont, name, err)
	}
	return &Source{name: name, data: data, font: f, faces: make(map[float64]font.Face)}, nil
}

// Name returns the font's file or display name.
func (s *Source) Name() string { return s.name }

// Data returns the raw font file. Callers must not modify it.
func (s *Source) Data() []byte { return s.data }

// Face returns an x/image face at size pixels (72 DPI, so points equal
// pixels). Faces are cached per size.
func (s *Source) Face(size float64) (font.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: %s at %.0fpx: %w", s.name, size, err)
	}
	s.faces[size] = f
	return f, nil
}

// Close releases cached faces.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for size, f := range s.faces {
		errs = append(errs, f.Close())
		delete(s.faces, size)
	}
	return errors.Join(errs...)
}
