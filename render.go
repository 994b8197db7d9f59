package lifelike

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the presentation colors of a frame.
type Palette struct {
	Alive, Dead, Border colorful.Color
}

func DefaultPalette() Palette {
	return Palette{
		Alive:  Dark.Colorful(),
		Dead:   White.Colorful(),
		Border: Gray.Colorful(),
	}
}

// ParsePalette reads three hex colors such as "#3f3f3f".
func ParsePalette(alive, dead, border string) (Palette, error) {
	var p Palette
	var err error
	if p.Alive, err = colorful.Hex(alive); err != nil {
		return Palette{}, fmt.Errorf("alive color: %w", err)
	}
	if p.Dead, err = colorful.Hex(dead); err != nil {
		return Palette{}, fmt.Errorf("dead color: %w", err)
	}
	if p.Border, err = colorful.Hex(border); err != nil {
		return Palette{}, fmt.Errorf("border color: %w", err)
	}
	return p, nil
}

// Colors lists alive, dead and border, in that order.
func (p Palette) Colors() []colorful.Color {
	return []colorful.Color{p.Alive, p.Dead, p.Border}
}

func (w *World) SetPalette(p Palette) { w.palette = p }

func (w *World) Palette() Palette { return w.palette }

// Render paints the current generation into dst: every cell in the alive or
// dead color, then every marked border pixel on top.
func (w *World) Render(dst *Surface) error {
	if dst.Width() != w.w || dst.Height() != w.h {
		return fmt.Errorf("%w: %dx%d, want %dx%d", ErrSurfaceSize, dst.Width(), dst.Height(), w.w, w.h)
	}
	alive := ColorFromColorful(w.palette.Alive)
	dead := ColorFromColorful(w.palette.Dead)
	border := ColorFromColorful(w.palette.Border)

	for i := range w.cells {
		c := dead
		if w.front[i] {
			c = alive
		}
		for _, p := range w.cells[i].Pixels {
			dst.SetColorAt(p, c)
		}
	}
	for y := range w.h {
		for x := range w.w {
			p := Point{x, y}
			if w.borders.ColorAt(p) != White {
				dst.SetColorAt(p, border)
			}
		}
	}
	return nil
}

// Image renders the current generation into a new surface.
func (w *World) Image() *Surface {
	dst := NewSurface(w.w, w.h, White)
	// Sizes match by construction.
	_ = w.Render(dst)
	return dst
}
