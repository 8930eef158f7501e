package core

// DenseGrid stores a square board of 0/1 cells in row-major order. It is a
// transient view; the sparse grid is the system of record.
type DenseGrid struct {
	N    int
	data []uint8
}

// NewDenseGrid allocates an all-dead board with side n.
func NewDenseGrid(n int) *DenseGrid {
	if n < 0 {
		n = 0
	}
	return &DenseGrid{N: n, data: make([]uint8, n*n)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *DenseGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *DenseGrid) Index(x, y int) int { return y*g.N + x }

// InBounds reports whether (x, y) lies on the board. The board does not wrap.
func (g *DenseGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.N && y < g.N
}

// At returns the cell value at (x, y), or 0 outside the board.
func (g *DenseGrid) At(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.data[g.Index(x, y)]
}

// Set writes v at (x, y). Out of range writes are ignored.
func (g *DenseGrid) Set(x, y int, v uint8) {
	if !g.InBounds(x, y) {
		return
	}
	if v != 0 {
		v = 1
	}
	g.data[g.Index(x, y)] = v
}

// Alive counts live cells.
func (g *DenseGrid) Alive() int {
	n := 0
	for _, c := range g.data {
		if c != 0 {
			n++
		}
	}
	return n
}
