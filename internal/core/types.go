package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Coord addresses a single cell. It is comparable and used directly as a map key.
type Coord struct {
	X int
	Y int
}

// Add returns c offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord { return Coord{X: c.X + dx, Y: c.Y + dy} }

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Source exposes a running automaton to renderers. Cells returns a row-major
// snapshot that the caller may keep.
type Source interface {
	Name() string
	Size() Size
	Cells() []uint8
}

// Moore lists the eight neighbor offsets around a cell.
var Moore = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}
