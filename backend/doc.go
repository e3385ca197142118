// Package backend selects the canvas implementation the cluster draws on.
//
// Two backends exist. Both implement cluster.Canvas and produce the same
// gauges; they differ in how primitives reach pixels:
//
//   - "antialias": primitives are stroked by gg's analytic rasterizer,
//     text is shaped by gg's text package.
//   - "software": every pixel is plotted by hand into an RGBA buffer,
//     text is drawn with x/image font faces.
//
// # Backend Registration
//
// Backends register themselves from init() functions, so a program links
// in the ones it wants with blank imports:
//
//	import (
//		_ "github.com/gogpu/cluster/backend/antialias"
//		_ "github.com/gogpu/cluster/backend/software"
//	)
//
// # Backend Selection
//
// New creates a canvas by name; Default picks the preferred registered
// backend:
//
//	canvas, err := backend.New("software", backend.Config{
//		Font:    fonts.Default(),
//		Present: func(img image.Image) error { return show(img) },
//	})
//	if err != nil {
//		return err
//	}
//	defer canvas.Close()
package backend
