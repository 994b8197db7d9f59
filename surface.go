package lifelike

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

type Point struct {
	X, Y int
}

// Neighbors returns the Moore neighborhood of p, row by row.
// Coordinates are not clipped or wrapped.
func (p Point) Neighbors() [8]Point {
	return [8]Point{
		{p.X - 1, p.Y - 1}, {p.X, p.Y - 1}, {p.X + 1, p.Y - 1},
		{p.X - 1, p.Y}, {p.X + 1, p.Y},
		{p.X - 1, p.Y + 1}, {p.X, p.Y + 1}, {p.X + 1, p.Y + 1},
	}
}

// Color is an 8-bit RGB triple. Alpha never takes part in comparisons.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{255, 255, 255}
	Gray  = Color{127, 127, 127}
	Dark  = Color{63, 63, 63}
)

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func ColorFromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// Surface is a row-major RGBA8 pixel buffer with its origin at the top left.
// The byte offset of (x, y) is (y*width + x) * 4.
type Surface struct {
	img  *image.NRGBA
	w, h int
}

func NewSurface(width, height int, fill Color) *Surface {
	s := &Surface{
		img: image.NewNRGBA(image.Rect(0, 0, width, height)),
		w:   width,
		h:   height,
	}
	s.Fill(fill)
	return s
}

// SurfaceFromPixels wraps a decoded RGBA8 buffer. The buffer is used in place.
func SurfaceFromPixels(width, height int, pix []byte) (*Surface, error) {
	if width < 1 || height < 1 {
		return nil, ErrEmptyImage
	}
	if len(pix) != width*height*4 {
		return nil, ErrInputFormat
	}
	return &Surface{
		img: &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)},
		w:   width,
		h:   height,
	}, nil
}

// SurfaceFromImage converts any decoded image to a non-premultiplied RGBA8 surface.
func SurfaceFromImage(img image.Image) (*Surface, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 1 || h < 1 {
		return nil, ErrEmptyImage
	}
	if src, ok := img.(*image.NRGBA); ok && src.Stride == w*4 {
		pix := make([]byte, w*h*4)
		copy(pix, src.Pix)
		return SurfaceFromPixels(w, h, pix)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return SurfaceFromPixels(w, h, dst.Pix)
}

func (s *Surface) Width() int  { return s.w }
func (s *Surface) Height() int { return s.h }

func (s *Surface) Size() image.Point { return image.Point{s.w, s.h} }

// NRGBA exposes the backing image, e.g. for encoding.
func (s *Surface) NRGBA() *image.NRGBA { return s.img }

func (s *Surface) In(p Point) bool {
	return p.X >= 0 && p.X < s.w && p.Y >= 0 && p.Y < s.h
}

// LinearIndex is y*width + x. It does not check bounds.
func (s *Surface) LinearIndex(p Point) int {
	return p.Y*s.w + p.X
}

func (s *Surface) pixOffset(p Point) int {
	if !s.In(p) {
		panic(&OutOfBoundsError{Point: p, Width: s.w, Height: s.h})
	}
	return s.LinearIndex(p) * 4
}

// ColorAt panics with *OutOfBoundsError when p lies outside the surface.
func (s *Surface) ColorAt(p Point) Color {
	off := s.pixOffset(p)
	pix := s.img.Pix[off : off+3 : off+3]
	return Color{pix[0], pix[1], pix[2]}
}

// SetColorAt panics with *OutOfBoundsError when p lies outside the surface.
// Alpha is forced opaque.
func (s *Surface) SetColorAt(p Point, c Color) {
	off := s.pixOffset(p)
	pix := s.img.Pix[off : off+4 : off+4]
	pix[0] = c.R
	pix[1] = c.G
	pix[2] = c.B
	pix[3] = 255
}

func (s *Surface) Fill(c Color) {
	pix := s.img.Pix
	for off := 0; off+3 < len(pix); off += 4 {
		pix[off] = c.R
		pix[off+1] = c.G
		pix[off+2] = c.B
		pix[off+3] = 255
	}
}

func (s *Surface) Clone() *Surface {
	pix := make([]byte, len(s.img.Pix))
	copy(pix, s.img.Pix)
	return &Surface{
		img: &image.NRGBA{Pix: pix, Stride: s.img.Stride, Rect: s.img.Rect},
		w:   s.w,
		h:   s.h,
	}
}
