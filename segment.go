package lifelike

import "slices"

// Cell is one automaton node: a maximal 8-connected region of a single color.
// Its index in Segmentation.Cells is its identity.
type Cell struct {
	Color Color
	// Discovery order. Complete and duplicate-free.
	Pixels []Point
	// Indices of differently colored cells that touch this one. Symmetric, no self-loops.
	Neighbors []int
}

func (c *Cell) Degree() int { return len(c.Neighbors) }

func (c *Cell) IsNeighbor(i int) bool { return slices.Contains(c.Neighbors, i) }

const unassigned = -1

// BorderColor marks region contours in Segmentation.Borders. White means no border.
var BorderColor = Gray

type Segmentation struct {
	Width, Height int
	Cells         []Cell
	// CellMap[y*Width+x] is the index of the cell owning (x, y).
	CellMap []int
	Borders *Surface
}

func (s *Segmentation) CellAt(p Point) int {
	return s.CellMap[p.Y*s.Width+p.X]
}

// IsBorder reports whether p was marked as a cell contour pixel.
func (s *Segmentation) IsBorder(p Point) bool {
	return s.Borders.ColorAt(p) != White
}

// pointQueue is a FIFO backed by a slice and a read cursor.
type pointQueue struct {
	items []Point
	head  int
}

func newPointQueue(capacity int) pointQueue {
	return pointQueue{items: make([]Point, 0, capacity)}
}

func (q *pointQueue) push(p Point) { q.items = append(q.items, p) }

func (q *pointQueue) empty() bool { return q.head == len(q.items) }

func (q *pointQueue) pop() Point {
	p := q.items[q.head]
	q.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head >= 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return p
}

func (q *pointQueue) reset() {
	q.items = q.items[:0]
	q.head = 0
}

type segmenter struct {
	src      *Surface
	wrap     bool
	w, h     int
	cells    []Cell
	cellMap  []int
	borders  *Surface
	frontier pointQueue
	// Per-cell scratch queue, reused so flooding a cell does not allocate a new one.
	scratch pointQueue
}

// Segment partitions src into same-color 8-connected cells, discovers which
// cells touch, and marks the contour of every cell in a border overlay.
// With wrap the image is treated as a torus.
func Segment(src *Surface, wrap bool) (seg *Segmentation, err error) {
	if src == nil || src.Width() < 1 || src.Height() < 1 {
		return nil, ErrEmptyImage
	}
	defer func() {
		if r := recover(); r != nil {
			oob, ok := r.(*OutOfBoundsError)
			if !ok {
				panic(r)
			}
			seg, err = nil, oob
		}
	}()

	w, h := src.Width(), src.Height()
	s := &segmenter{
		src:      src,
		wrap:     wrap,
		w:        w,
		h:        h,
		cells:    make([]Cell, 0, 100),
		cellMap:  make([]int, w*h),
		borders:  NewSurface(w, h, White),
		frontier: newPointQueue(min(w*h, 1<<16)),
		scratch:  newPointQueue(min(w*h, 1<<16)),
	}
	for i := range s.cellMap {
		s.cellMap[i] = unassigned
	}
	s.run()

	return &Segmentation{
		Width:   w,
		Height:  h,
		Cells:   s.cells,
		CellMap: s.cellMap,
		Borders: s.borders,
	}, nil
}

func (s *segmenter) run() {
	s.frontier.push(Point{0, 0})
	for !s.frontier.empty() {
		p := s.frontier.pop()
		idx := s.src.LinearIndex(p)
		// Already consumed by an earlier cell.
		if s.cellMap[idx] != unassigned {
			continue
		}
		s.cells = append(s.cells, Cell{
			Color:     s.src.ColorAt(p),
			Pixels:    make([]Point, 0, 16),
			Neighbors: make([]int, 0, 8),
		})
		ci := len(s.cells) - 1
		s.cellMap[idx] = ci
		// Finish this cell before seeding another one, or a concave region
		// could be split across several cells.
		s.flood(p, ci)
	}
}

func (s *segmenter) flood(start Point, ci int) {
	cellColor := s.cells[ci].Color
	s.scratch.reset()
	s.scratch.push(start)
	for !s.scratch.empty() {
		p := s.scratch.pop()
		s.cells[ci].Pixels = append(s.cells[ci].Pixels, p)
		for _, n := range p.Neighbors() {
			if s.wrap {
				// Shift by the dimension first so the remainder is never negative.
				n = Point{(n.X + s.w) % s.w, (n.Y + s.h) % s.h}
			} else if !s.src.In(n) {
				s.markBorder(p)
				continue
			}

			idx := s.src.LinearIndex(n)
			owner := s.cellMap[idx]
			switch {
			case owner == unassigned:
				if s.src.ColorAt(n) == cellColor {
					s.cellMap[idx] = ci
					s.scratch.push(n)
				} else {
					s.frontier.push(n)
					s.markBorder(p)
				}
			case owner == ci:
			case s.cells[owner].Color != cellColor:
				s.markBorder(p)
				s.link(ci, owner)
			}
		}
	}
}

func (s *segmenter) link(a, b int) {
	if a == b || s.cells[a].IsNeighbor(b) {
		return
	}
	s.cells[a].Neighbors = append(s.cells[a].Neighbors, b)
	s.cells[b].Neighbors = append(s.cells[b].Neighbors, a)
}

func (s *segmenter) markBorder(p Point) {
	s.borders.SetColorAt(p, BorderColor)
}
