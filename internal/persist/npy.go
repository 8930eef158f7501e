package persist

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"gol-miner/internal/core"
)

// EncodeNPY serializes g as a NumPy float64 array with shape (N, N) in C
// order, readable with np.load.
func EncodeNPY(g *core.DenseGrid) ([]byte, error) {
	if g == nil || g.N == 0 {
		return nil, errors.New("npy: empty board")
	}
	data := make([]float64, len(g.Cells()))
	for i, c := range g.Cells() {
		data[i] = float64(c)
	}

	var buf bytes.Buffer
	if err := npyio.Write(&buf, mat.NewDense(g.N, g.N, data)); err != nil {
		return nil, fmt.Errorf("npy: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeNPY reads a square two-dimensional array back into a board. Any
// non-zero element is a live cell.
func DecodeNPY(b []byte) (*core.DenseGrid, error) {
	var m mat.Dense
	if err := npyio.Read(bytes.NewReader(b), &m); err != nil {
		return nil, fmt.Errorf("npy: %w", err)
	}
	rows, cols := m.Dims()
	if rows != cols {
		return nil, fmt.Errorf("npy: want a square board, got %dx%d", rows, cols)
	}
	g := core.NewDenseGrid(rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if m.At(y, x) != 0 {
				g.Set(x, y, 1)
			}
		}
	}
	return g, nil
}
