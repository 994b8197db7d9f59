package lifelike

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	red   = Color{255, 0, 0}
	green = Color{0, 255, 0}
	blue  = Color{0, 0, 255}
	black = Color{0, 0, 0}
)

// surfaceFromRows builds a surface whose rows are given top to bottom.
func surfaceFromRows(t testing.TB, rows ...[]Color) *Surface {
	t.Helper()
	s := NewSurface(len(rows[0]), len(rows), White)
	for y, row := range rows {
		if len(row) != s.Width() {
			t.Fatalf("row %d has %d pixels, want %d", y, len(row), s.Width())
		}
		for x, c := range row {
			s.SetColorAt(Point{x, y}, c)
		}
	}
	return s
}

func TestSurfaceLayout(t *testing.T) {
	s := NewSurface(3, 2, White)
	s.SetColorAt(Point{2, 1}, Color{1, 2, 3})
	if got := s.LinearIndex(Point{2, 1}); got != 5 {
		t.Fatalf("LinearIndex = %d, want 5", got)
	}
	pix := s.NRGBA().Pix
	if len(pix) != 3*2*4 {
		t.Fatalf("len(Pix) = %d, want 24", len(pix))
	}
	off := 5 * 4
	if pix[off] != 1 || pix[off+1] != 2 || pix[off+2] != 3 || pix[off+3] != 255 {
		t.Fatalf("pixel bytes = %v", pix[off:off+4])
	}
	if got := s.ColorAt(Point{0, 0}); got != White {
		t.Fatalf("fill color = %v, want white", got)
	}
}

func TestSurfaceColorIgnoresAlpha(t *testing.T) {
	pix := []byte{10, 20, 30, 0, 10, 20, 30, 255}
	s, err := SurfaceFromPixels(2, 1, pix)
	if err != nil {
		t.Fatal(err)
	}
	if s.ColorAt(Point{0, 0}) != s.ColorAt(Point{1, 0}) {
		t.Fatal("colors differing only in alpha compare unequal")
	}
}

func TestSurfaceOutOfBounds(t *testing.T) {
	s := NewSurface(2, 2, White)
	for _, p := range []Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		func() {
			defer func() {
				r := recover()
				oob, ok := r.(*OutOfBoundsError)
				if !ok {
					t.Fatalf("ColorAt(%v) recovered %v, want *OutOfBoundsError", p, r)
				}
				if oob.Point != p || oob.Width != 2 || oob.Height != 2 {
					t.Fatalf("unexpected error %+v", oob)
				}
			}()
			s.ColorAt(p)
		}()
	}
}

func TestSurfaceFromPixelsErrors(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		pix  []byte
		want error
	}{
		{"zero width", 0, 1, nil, ErrEmptyImage},
		{"zero height", 1, 0, nil, ErrEmptyImage},
		{"rgb buffer", 2, 1, make([]byte, 6), ErrInputFormat},
		{"short buffer", 2, 2, make([]byte, 12), ErrInputFormat},
	}
	for _, tt := range tests {
		if _, err := SurfaceFromPixels(tt.w, tt.h, tt.pix); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestSurfaceFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(5, 5, color.RGBA{255, 0, 0, 255})
	img.Set(6, 5, color.RGBA{0, 0, 255, 255})
	s, err := SurfaceFromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if s.Width() != 2 || s.Height() != 1 {
		t.Fatalf("size = %v", s.Size())
	}
	if got := s.ColorAt(Point{0, 0}); got != red {
		t.Errorf("(0,0) = %v, want red", got)
	}
	if got := s.ColorAt(Point{1, 0}); got != blue {
		t.Errorf("(1,0) = %v, want blue", got)
	}

	if _, err := SurfaceFromImage(image.NewGray(image.Rect(0, 0, 0, 3))); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("empty image err = %v", err)
	}
}

func TestSurfaceClone(t *testing.T) {
	s := NewSurface(2, 2, White)
	c := s.Clone()
	c.SetColorAt(Point{1, 1}, black)
	if s.ColorAt(Point{1, 1}) != White {
		t.Fatal("clone shares pixels with original")
	}
}
