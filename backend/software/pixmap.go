package software

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/gogpu/cluster"
)

// Pixmap is an RGBA pixel buffer with source-over blending.
// Pixels are stored premultiplied, as in image.RGBA, so x/image font
// drawing can target it directly.
type Pixmap struct {
	img *image.RGBA
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.img.Rect.Dx() }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.img.Rect.Dy() }

// Image returns the backing image. It aliases the pixmap's memory.
func (p *Pixmap) Image() *image.RGBA { return p.img }

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c cluster.RGBA) {
	px := color.RGBAModel.Convert(c).(color.RGBA)
	data := p.img.Pix
	for i := 0; i < len(data); i += 4 {
		data[i+0] = px.R
		data[i+1] = px.G
		data[i+2] = px.B
		data[i+3] = px.A
	}
}

// Blend composites c over the pixel at (x, y) with the given coverage in
// [0, 1]. Out of bounds pixels are ignored.
func (p *Pixmap) Blend(x, y int, c cluster.RGBA, coverage float64) {
	if !(image.Point{X: x, Y: y}.In(p.img.Rect)) || coverage <= 0 {
		return
	}
	a := c.A * min(coverage, 1)
	if a <= 0 {
		return
	}
	i := p.img.PixOffset(x, y)
	d := p.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	d[0] = blend8(c.R*a, d[0], inv)
	d[1] = blend8(c.G*a, d[1], inv)
	d[2] = blend8(c.B*a, d[2], inv)
	d[3] = blend8(a, d[3], inv)
}

// blend8 returns src + dst*inv, with src in [0, 1] and dst in [0, 255].
func blend8(src float64, dst uint8, inv float64) uint8 {
	v := src*255 + float64(dst)*inv
	return uint8(min(max(v, 0), 255) + 0.5)
}

// At returns the straight-alpha color of a single pixel.
func (p *Pixmap) At(x, y int) cluster.RGBA {
	return cluster.FromColor(p.img.At(x, y))
}

// EncodePNG writes the pixmap to w as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.img)
}
