package lifelike

import (
	"fmt"
	"image"
	"log"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

type Options struct {
	// Treat the image as a torus: left touches right, top touches bottom.
	Wrap  bool
	Rules Rules
	// Seed for the initial state. 0 picks a time-derived seed.
	// Ignored when Random is set.
	Seed   uint64
	Random BoolSource
	// Presentation colors of the built world.
	Palette Palette
	// Progress output. Nil is silent.
	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Rules:   DefaultRules(),
		Palette: DefaultPalette(),
	}
}

// BoolSource yields independent, unbiased booleans.
type BoolSource interface {
	Bool() bool
}

type randBools struct {
	r *rand.Rand
}

func (b randBools) Bool() bool { return b.r.Uint64()&1 == 1 }

func NewRandomSource(seed uint64) BoolSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return randBools{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// WorldBuilder runs the one-shot pipeline from a source image to a World.
// Intermediate results stay available after Build.
type WorldBuilder struct {
	Source *Surface
	// Quantization palette. Empty means the source is segmented as is.
	Palette      []colorful.Color
	Quantized    *Surface
	Segmentation *Segmentation
	Initial      []bool
}

func NewWorldBuilder(src *Surface, palette []colorful.Color) *WorldBuilder {
	return &WorldBuilder{
		Source:  src,
		Palette: palette,
	}
}

func (wb *WorldBuilder) Build(opt Options) (*World, error) {
	if err := wb.quantize(); err != nil {
		return nil, &StageError{Stage: StageQuantize, Err: err}
	}
	logf(opt.Logger, "Finding cells in image...")
	if err := wb.segment(opt.Wrap); err != nil {
		return nil, &StageError{Stage: StageSegment, Err: err}
	}
	logf(opt.Logger, "Found %d cells.", len(wb.Segmentation.Cells))

	random := opt.Random
	if random == nil {
		random = NewRandomSource(opt.Seed)
	}
	wb.seed(random)

	world, err := NewWorld(wb.Segmentation, opt.Rules, wb.Initial)
	if err != nil {
		return nil, &StageError{Stage: StageSeed, Err: err}
	}
	if opt.Palette != (Palette{}) {
		world.SetPalette(opt.Palette)
	}
	return world, nil
}

func logf(l *log.Logger, format string, args ...any) {
	if l != nil {
		l.Printf(format, args...)
	}
}

// ============ QUANTIZE ============

// quantize snaps every pixel to the perceptually nearest palette color, so
// noisy or anti-aliased regions collapse into solid cells.
func (wb *WorldBuilder) quantize() error {
	if wb.Source == nil {
		return ErrEmptyImage
	}
	if len(wb.Palette) == 0 {
		wb.Quantized = wb.Source
		return nil
	}
	src := wb.Source
	w, h := src.Width(), src.Height()
	out := NewSurface(w, h, White)
	nearest := make(map[Color]Color)
	for y := range h {
		for x := range w {
			p := Point{x, y}
			c := src.ColorAt(p)
			q, ok := nearest[c]
			if !ok {
				q = NearestColor(c, wb.Palette)
				nearest[c] = q
			}
			out.SetColorAt(p, q)
		}
	}
	wb.Quantized = out
	return nil
}

// NearestColor returns the palette entry closest to c in CIE Lab.
func NearestColor(c Color, palette []colorful.Color) Color {
	if len(palette) == 0 {
		return c
	}
	cc := c.Colorful()
	best := 0
	bestD := cc.DistanceLab(palette[0])
	for i := 1; i < len(palette); i++ {
		if d := cc.DistanceLab(palette[i]); d < bestD {
			bestD = d
			best = i
		}
	}
	return ColorFromColorful(palette[best])
}

// ============ SEGMENT ============

func (wb *WorldBuilder) segment(wrap bool) error {
	seg, err := Segment(wb.Quantized, wrap)
	if err != nil {
		return err
	}
	wb.Segmentation = seg
	return nil
}

// ============ SEED ============

// seed draws exactly one boolean per cell.
func (wb *WorldBuilder) seed(random BoolSource) {
	n := len(wb.Segmentation.Cells)
	wb.Initial = make([]bool, n)
	for i := range n {
		wb.Initial[i] = random.Bool()
	}
}

// Size of the world the builder produces, for presentation layers.
func (wb *WorldBuilder) Size() image.Point {
	if wb.Source == nil {
		return image.Point{}
	}
	return wb.Source.Size()
}

// String summarizes the build for progress output.
func (wb *WorldBuilder) String() string {
	if wb.Segmentation == nil {
		return "lifelike: world not built"
	}
	return fmt.Sprintf("lifelike: %dx%d image, %d cells", wb.Segmentation.Width, wb.Segmentation.Height, len(wb.Segmentation.Cells))
}
