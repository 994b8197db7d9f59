package lifelike

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"
)

// CellGraph exports the adjacency of cells as an undirected gonum graph.
// Node IDs are cell indices.
func CellGraph(cells []Cell) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range cells {
		g.AddNode(simple.Node(i))
	}
	for i := range cells {
		for _, j := range cells[i].Neighbors {
			if i < j {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	return g
}

func (w *World) Graph() *simple.UndirectedGraph { return CellGraph(w.cells) }

// Report describes the tessellation found in an image.
type Report struct {
	Cells      int
	Edges      int
	Colors     int
	Components int
	// Cells without neighbors. They can never be born under rules with BirthMin > 0.
	Isolated     int
	MinDegree    int
	MaxDegree    int
	MeanDegree   float64
	StdDevDegree float64
	MeanArea     float64
	// Degree -> number of cells with that degree.
	DegreeHistogram map[int]int
}

func Analyze(cells []Cell) Report {
	r := Report{Cells: len(cells)}
	if len(cells) == 0 {
		return r
	}
	degrees := lo.Map(cells, func(c Cell, _ int) int { return c.Degree() })
	r.Edges = lo.Sum(degrees) / 2
	r.Colors = len(lo.Uniq(lo.Map(cells, func(c Cell, _ int) Color { return c.Color })))
	r.Isolated = lo.Count(degrees, 0)
	r.MinDegree = lo.Min(degrees)
	r.MaxDegree = lo.Max(degrees)
	r.DegreeHistogram = lo.CountValues(degrees)

	fd := make([]float64, len(degrees))
	for i, d := range degrees {
		fd[i] = float64(d)
	}
	r.MeanDegree = stat.Mean(fd, nil)
	if len(fd) > 1 {
		r.StdDevDegree = stat.StdDev(fd, nil)
	}
	if math.IsNaN(r.StdDevDegree) {
		r.StdDevDegree = 0
	}
	area := lo.SumBy(cells, func(c Cell) int { return len(c.Pixels) })
	r.MeanArea = float64(area) / float64(len(cells))

	r.Components = len(topo.ConnectedComponents(CellGraph(cells)))
	return r
}
