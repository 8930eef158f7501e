//go:build ebiten

package app

import (
	"image/color"

	"gol-miner/internal/core"
	"gol-miner/internal/render"
	"gol-miner/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Viewer adapts a running simulation to the ebiten.Game interface. The
// simulation advances on its own goroutine; the viewer only draws snapshots.
type Viewer struct {
	src     core.Source
	painter *render.GridPainter
	overlay *ui.Overlay

	onColor  color.Color
	offColor color.Color

	scale  int
	frozen bool
	cells  []uint8
}

// NewViewer constructs a Viewer for the provided source.
func NewViewer(src core.Source, scale int) *Viewer {
	size := src.Size()
	return &Viewer{
		src:      src,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(src),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
	}
}

// Update handles per-frame input and refreshes the snapshot.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.frozen = !v.frozen
	}
	v.overlay.Update()
	if !v.frozen || v.cells == nil {
		v.cells = v.src.Cells()
	}
	return nil
}

// Draw renders the latest snapshot.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.painter.Blit(screen, v.cells, v.onColor, v.offColor, v.scale)
	v.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := v.src.Size()
	return s.W * v.scale, s.H * v.scale
}
