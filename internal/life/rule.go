// Package life implements the Conway update rule on a bounded board.
package life

import "gol-miner/internal/core"

// NextState returns the value of (x, y) in the following generation. Neighbors
// off the board count as dead.
func NextState(g *core.DenseGrid, x, y int) uint8 {
	n := g.N
	cells := g.Cells()
	neighbors := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= n {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= n {
				continue
			}
			neighbors += int(cells[ny*n+nx])
		}
	}
	return Rule(cells[y*n+x] == 1, neighbors)
}

// Rule applies B3/S23 to a cell with the given live neighbor count.
func Rule(alive bool, neighbors int) uint8 {
	if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
		return 1
	}
	return 0
}

// AdvanceRows writes rows [y0, y1) of the successor of src into dst.
// Workers calling it on disjoint row ranges never touch the same bytes.
func AdvanceRows(src, dst *core.DenseGrid, y0, y1 int) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > src.N {
		y1 = src.N
	}
	out := dst.Cells()
	for y := y0; y < y1; y++ {
		for x := 0; x < src.N; x++ {
			out[y*src.N+x] = NextState(src, x, y)
		}
	}
}

// Advance computes one full generation into a new board.
func Advance(g *core.DenseGrid) *core.DenseGrid {
	next := core.NewDenseGrid(g.N)
	AdvanceRows(g, next, 0, g.N)
	return next
}
