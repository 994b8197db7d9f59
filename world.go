package lifelike

import "fmt"

// Rules are inclusive score bounds. A live cell survives when its score is in
// [SurviveMin, SurviveMax]; a dead cell is born when it is in [BirthMin, BirthMax].
type Rules struct {
	SurviveMin, SurviveMax uint
	BirthMin, BirthMax     uint
	// Weight each live neighbor by its own degree, rescaled by 4/degree of the cell.
	Proportional bool
}

// DefaultRules is Conway's B3/S23.
func DefaultRules() Rules {
	return Rules{
		SurviveMin: 2,
		SurviveMax: 3,
		BirthMin:   3,
		BirthMax:   3,
	}
}

func (r Rules) Next(alive bool, score uint) bool {
	if alive {
		return score >= r.SurviveMin && score <= r.SurviveMax
	}
	return score >= r.BirthMin && score <= r.BirthMax
}

// World advances cell liveness over a fixed cell graph.
// Step and Render must not run concurrently on the same World.
type World struct {
	cells   []Cell
	borders *Surface
	w, h    int
	rules   Rules
	palette Palette

	front, back []bool
	generation  int
}

// NewWorld takes ownership of the segmentation's cells and overlay.
// initial holds one liveness value per cell.
func NewWorld(seg *Segmentation, rules Rules, initial []bool) (*World, error) {
	if len(initial) != len(seg.Cells) {
		return nil, fmt.Errorf("%w: %d values for %d cells", ErrStateLength, len(initial), len(seg.Cells))
	}
	for i := range seg.Cells {
		for _, j := range seg.Cells[i].Neighbors {
			if j == i || j < 0 || j >= len(seg.Cells) || !seg.Cells[j].IsNeighbor(i) {
				return nil, fmt.Errorf("%w: cell %d lists %d", ErrAsymmetricAdjacency, i, j)
			}
		}
	}
	front := make([]bool, len(initial))
	copy(front, initial)
	return &World{
		cells:   seg.Cells,
		borders: seg.Borders,
		w:       seg.Width,
		h:       seg.Height,
		rules:   rules,
		palette: DefaultPalette(),
		front:   front,
		back:    make([]bool, len(initial)),
	}, nil
}

func (w *World) Cells() []Cell     { return w.cells }
func (w *World) Rules() Rules      { return w.rules }
func (w *World) Borders() *Surface { return w.borders }
func (w *World) Width() int        { return w.w }
func (w *World) Height() int       { return w.h }
func (w *World) Generation() int   { return w.generation }

func (w *World) Alive(i int) bool { return w.front[i] }

func (w *World) Population() int {
	n := 0
	for _, alive := range w.front {
		if alive {
			n++
		}
	}
	return n
}

// State returns a copy of the current generation.
func (w *World) State() []bool {
	out := make([]bool, len(w.front))
	copy(out, w.front)
	return out
}

// SetState overwrites the current generation. The generation counter is unchanged.
func (w *World) SetState(state []bool) error {
	if len(state) != len(w.front) {
		return fmt.Errorf("%w: %d values for %d cells", ErrStateLength, len(state), len(w.front))
	}
	copy(w.front, state)
	return nil
}

// Score is the neighbor influence on cell i in the current generation.
// With proportional rules a cell without neighbors scores 0.
func (w *World) Score(i int) uint {
	cell := &w.cells[i]
	var score uint
	for _, n := range cell.Neighbors {
		if !w.front[n] {
			continue
		}
		if w.rules.Proportional {
			score += uint(len(w.cells[n].Neighbors))
		} else {
			score++
		}
	}
	if w.rules.Proportional {
		degree := uint(len(cell.Neighbors))
		if degree == 0 {
			return 0
		}
		score = score * 4 / degree
	}
	return score
}

// Step computes the next generation from the current one and swaps buffers.
func (w *World) Step() {
	for i := range w.cells {
		w.back[i] = w.rules.Next(w.front[i], w.Score(i))
	}
	w.front, w.back = w.back, w.front
	w.generation++
}
