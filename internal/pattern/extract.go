package pattern

import "gol-miner/internal/core"

// Extract finds the 8-connected groups of live cells in g. Groups are seeded
// in row-major order, so the same board always yields the same sequence.
// Groups with more than maxCells cells are skipped; maxCells <= 0 keeps all.
func Extract(g *core.DenseGrid, maxCells int) []Occurrence {
	n := g.N
	cells := g.Cells()
	visited := make([]bool, len(cells))
	var out []Occurrence
	var queue []core.Coord

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			idx := y*n + x
			if cells[idx] == 0 || visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue[:0], core.Coord{X: x, Y: y})
			for head := 0; head < len(queue); head++ {
				c := queue[head]
				for _, d := range core.Moore {
					nx, ny := c.X+d[0], c.Y+d[1]
					if nx < 0 || ny < 0 || nx >= n || ny >= n {
						continue
					}
					ni := ny*n + nx
					if cells[ni] == 0 || visited[ni] {
						continue
					}
					visited[ni] = true
					queue = append(queue, core.Coord{X: nx, Y: ny})
				}
			}
			if maxCells > 0 && len(queue) > maxCells {
				continue
			}
			component := make([]core.Coord, len(queue))
			copy(component, queue)
			out = append(out, newOccurrence(component))
		}
	}
	return out
}
