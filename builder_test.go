package lifelike

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"
)

type countingSource struct {
	n int
}

func (c *countingSource) Bool() bool {
	c.n++
	return c.n%2 == 1
}

func quadrants(t testing.TB) *Surface {
	return surfaceFromRows(t,
		[]Color{red, red, green, green},
		[]Color{red, red, green, green},
		[]Color{blue, blue, black, black},
		[]Color{blue, blue, black, black},
	)
}

func TestBuildDrawsOneBoolPerCell(t *testing.T) {
	src := &countingSource{}
	opt := DefaultOptions()
	opt.Random = src
	wb := NewWorldBuilder(quadrants(t), nil)
	w, err := wb.Build(opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Cells()) != 4 {
		t.Fatalf("got %d cells, want 4", len(w.Cells()))
	}
	if src.n != 4 {
		t.Fatalf("drew %d booleans, want 4", src.n)
	}
	if diff := cmp.Diff([]bool{true, false, true, false}, w.State()); diff != "" {
		t.Fatalf("initial state (-want +got):\n%s", diff)
	}
	if len(w.back) != 4 || w.Population() != 2 {
		t.Fatalf("back buffer %d, population %d", len(w.back), w.Population())
	}
	if wb.Size().X != 4 || wb.Size().Y != 4 {
		t.Fatalf("size = %v", wb.Size())
	}
}

func TestBuildSeedIsReproducible(t *testing.T) {
	build := func(seed uint64) []bool {
		opt := DefaultOptions()
		opt.Seed = seed
		wb := NewWorldBuilder(quadrants(t), nil)
		if _, err := wb.Build(opt); err != nil {
			t.Fatal(err)
		}
		return wb.Initial
	}
	if diff := cmp.Diff(build(11), build(11)); diff != "" {
		t.Fatalf("same seed, different state:\n%s", diff)
	}
}

func TestBuildQuantize(t *testing.T) {
	nearRed := Color{250, 4, 0}
	src := surfaceFromRows(t, []Color{red, nearRed, blue, blue})

	w, err := NewWorldBuilder(src, nil).Build(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Cells()) != 3 {
		t.Fatalf("without palette: %d cells, want 3", len(w.Cells()))
	}

	palette := []colorful.Color{red.Colorful(), blue.Colorful()}
	wb := NewWorldBuilder(src, palette)
	w, err = wb.Build(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Cells()) != 2 {
		t.Fatalf("with palette: %d cells, want 2", len(w.Cells()))
	}
	if got := wb.Quantized.ColorAt(Point{1, 0}); got != red {
		t.Fatalf("quantized near-red = %v, want red", got)
	}
	if got := src.ColorAt(Point{1, 0}); got != nearRed {
		t.Fatal("quantize modified the source surface")
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := NewWorldBuilder(nil, nil).Build(DefaultOptions())
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageQuantize || !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("err = %v", err)
	}

	_, err = NewWorldBuilder(NewSurface(0, 5, White), nil).Build(DefaultOptions())
	if !errors.As(err, &se) || se.Stage != StageSegment || !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildLogs(t *testing.T) {
	var buf bytes.Buffer
	opt := DefaultOptions()
	opt.Logger = log.New(&buf, "", 0)
	if _, err := NewWorldBuilder(quadrants(t), nil).Build(opt); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Found 4 cells.") {
		t.Fatalf("log output %q", buf.String())
	}
}

func TestNearestColor(t *testing.T) {
	palette := []colorful.Color{black.Colorful(), White.Colorful()}
	if got := NearestColor(Color{30, 30, 30}, palette); got != black {
		t.Errorf("dark gray -> %v", got)
	}
	if got := NearestColor(Color{220, 220, 220}, palette); got != White {
		t.Errorf("light gray -> %v", got)
	}
	if got := NearestColor(green, nil); got != green {
		t.Errorf("empty palette -> %v", got)
	}
}
