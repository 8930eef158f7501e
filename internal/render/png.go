// Package render turns board snapshots into pictures.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"gol-miner/internal/core"
)

// PNGRenderer writes each snapshot to Dir as a PNG. With Keep set every
// frame gets its own numbered file, otherwise latest.png is overwritten.
type PNGRenderer struct {
	Dir   string
	Scale int
	Keep  bool
	On    color.Color
	Off   color.Color

	frame int
}

// NewPNGRenderer returns a renderer drawing white cells on black.
func NewPNGRenderer(dir string, scale int) *PNGRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &PNGRenderer{Dir: dir, Scale: scale, On: color.White, Off: color.Black}
}

// Image converts g into an RGBA image.
func (r *PNGRenderer) Image(g *core.DenseGrid) *image.RGBA {
	buf := make([]byte, 4*len(g.Cells()))
	fillBinaryRGBA(buf, g.Cells(), r.On, r.Off)
	side := g.N * r.Scale
	return &image.RGBA{
		Pix:    scaleRGBA(buf, g.N, r.Scale),
		Stride: 4 * side,
		Rect:   image.Rect(0, 0, side, side),
	}
}

// Render implements loop.Renderer.
func (r *PNGRenderer) Render(g *core.DenseGrid) error {
	name := "latest.png"
	if r.Keep {
		name = fmt.Sprintf("frame_%06d.png", r.frame)
	}
	r.frame++

	path := filepath.Join(r.Dir, name)
	f, err := os.Create(path + ".tmp")
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := png.Encode(f, r.Image(g)); err != nil {
		f.Close()
		return fmt.Errorf("render: encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return os.Rename(path+".tmp", path)
}
