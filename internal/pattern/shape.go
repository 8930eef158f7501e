package pattern

import (
	"sort"
	"strconv"
	"strings"

	"gol-miner/internal/core"
)

// Occurrence is one connected group of live cells found in a snapshot.
type Occurrence struct {
	// Origin is the top-left corner of the bounding box on the board.
	Origin core.Coord
	// Cells are relative to Origin, row-major.
	Cells  []core.Coord
	Width  int
	Height int
	// Key is identical for shapes equal up to rotation and reflection.
	Key string
	// Descriptor is the feature vector fed to the clusterer.
	Descriptor []float64
}

// newOccurrence builds an occurrence from absolute board coordinates.
func newOccurrence(abs []core.Coord) Occurrence {
	rel, origin, w, h := normalize(abs)
	return Occurrence{
		Origin:     origin,
		Cells:      rel,
		Width:      w,
		Height:     h,
		Key:        canonicalKey(rel),
		Descriptor: describe(rel, w, h),
	}
}

// normalize shifts cells so the bounding box starts at (0,0) and sorts them.
func normalize(cells []core.Coord) ([]core.Coord, core.Coord, int, int) {
	if len(cells) == 0 {
		return nil, core.Coord{}, 0, 0
	}
	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := minX, minY
	for _, c := range cells[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}
	out := make([]core.Coord, len(cells))
	for i, c := range cells {
		out[i] = core.Coord{X: c.X - minX, Y: c.Y - minY}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, core.Coord{X: minX, Y: minY}, maxX - minX + 1, maxY - minY + 1
}

var symmetries = [8]func(c core.Coord) core.Coord{
	func(c core.Coord) core.Coord { return core.Coord{X: c.X, Y: c.Y} },
	func(c core.Coord) core.Coord { return core.Coord{X: -c.Y, Y: c.X} },
	func(c core.Coord) core.Coord { return core.Coord{X: -c.X, Y: -c.Y} },
	func(c core.Coord) core.Coord { return core.Coord{X: c.Y, Y: -c.X} },
	func(c core.Coord) core.Coord { return core.Coord{X: -c.X, Y: c.Y} },
	func(c core.Coord) core.Coord { return core.Coord{X: c.X, Y: -c.Y} },
	func(c core.Coord) core.Coord { return core.Coord{X: c.Y, Y: c.X} },
	func(c core.Coord) core.Coord { return core.Coord{X: -c.Y, Y: -c.X} },
}

// canonicalKey returns the smallest encoding of cells over the 8 symmetries.
func canonicalKey(cells []core.Coord) string {
	best := ""
	buf := make([]core.Coord, len(cells))
	for i, f := range symmetries {
		for j, c := range cells {
			buf[j] = f(c)
		}
		rel, _, w, h := normalize(buf)
		key := encode(rel, w, h)
		if i == 0 || key < best {
			best = key
		}
	}
	return best
}

func encode(rel []core.Coord, w, h int) string {
	bits := make([]byte, w*h)
	for i := range bits {
		bits[i] = '0'
	}
	for _, c := range rel {
		bits[c.Y*w+c.X] = '1'
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(w))
	b.WriteByte('x')
	b.WriteString(strconv.Itoa(h))
	b.WriteByte(':')
	b.Write(bits)
	return b.String()
}

// describe returns [cells, width, height, perimeter, adjacent pairs].
// Width and height are sorted so rotated copies describe identically.
func describe(rel []core.Coord, w, h int) []float64 {
	set := make(map[core.Coord]struct{}, len(rel))
	for _, c := range rel {
		set[c] = struct{}{}
	}
	perimeter := 0
	pairs := 0
	for _, c := range rel {
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			if _, ok := set[c.Add(d[0], d[1])]; !ok {
				perimeter++
			}
		}
		for _, d := range core.Moore {
			if _, ok := set[c.Add(d[0], d[1])]; ok {
				pairs++
			}
		}
	}
	lo, hi := min(w, h), max(w, h)
	return []float64{float64(len(rel)), float64(lo), float64(hi), float64(perimeter), float64(pairs / 2)}
}
