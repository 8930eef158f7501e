package core

import "sort"

// SparseGrid keeps only alive cells. A dead cell is never stored.
type SparseGrid struct {
	cells map[Coord]struct{}
}

// NewSparseGrid returns an empty grid.
func NewSparseGrid() *SparseGrid {
	return &SparseGrid{cells: make(map[Coord]struct{})}
}

// Get returns 1 for an alive cell and 0 for anything else.
func (s *SparseGrid) Get(c Coord) uint8 {
	if _, ok := s.cells[c]; ok {
		return 1
	}
	return 0
}

// Set stores v at c. Zero removes the entry. Bounds are the caller's problem.
func (s *SparseGrid) Set(c Coord, v uint8) {
	if v == 0 {
		delete(s.cells, c)
		return
	}
	s.cells[c] = struct{}{}
}

// AliveNeighbors counts alive cells in the Moore neighborhood of c.
func (s *SparseGrid) AliveNeighbors(c Coord) int {
	n := 0
	for _, d := range Moore {
		if _, ok := s.cells[c.Add(d[0], d[1])]; ok {
			n++
		}
	}
	return n
}

// Len returns the number of alive cells.
func (s *SparseGrid) Len() int { return len(s.cells) }

// Cells returns the alive coordinates in row-major order.
func (s *SparseGrid) Cells() []Coord {
	out := make([]Coord, 0, len(s.cells))
	for c := range s.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Dense materializes the grid onto an n*n board. Cells off the board are dropped.
func (s *SparseGrid) Dense(n int) *DenseGrid {
	g := NewDenseGrid(n)
	for c := range s.cells {
		if g.InBounds(c.X, c.Y) {
			g.data[g.Index(c.X, c.Y)] = 1
		}
	}
	return g
}

// Replace swaps the contents for the alive cells of g.
func (s *SparseGrid) Replace(g *DenseGrid) {
	next := make(map[Coord]struct{}, s.Len())
	for y := 0; y < g.N; y++ {
		row := g.data[y*g.N : (y+1)*g.N]
		for x, v := range row {
			if v != 0 {
				next[Coord{X: x, Y: y}] = struct{}{}
			}
		}
	}
	s.cells = next
}

// FromDense builds a sparse grid from the alive cells of g.
func FromDense(g *DenseGrid) *SparseGrid {
	s := NewSparseGrid()
	s.Replace(g)
	return s
}
