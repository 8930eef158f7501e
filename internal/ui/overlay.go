//go:build ebiten

package ui

import (
	"image/color"

	"gol-miner/internal/core"
	"gol-miner/internal/loop"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type reportProvider interface {
	Last() loop.Report
}

// Overlay draws run statistics on top of the board.
type Overlay struct {
	src   core.Source
	show  bool
	panel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(src core.Source) *Overlay {
	return &Overlay{src: src, show: true}
}

// Update toggles the panel with Tab.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.src.(reportProvider)
	if !ok {
		return
	}
	lines := Lines(provider.Last())

	const lineHeight = 14
	w, h := 180, lineHeight*len(lines)+8
	if o.panel == nil || o.panel.Bounds().Dx() != w || o.panel.Bounds().Dy() != h {
		o.panel = ebiten.NewImage(w, h)
	}
	o.panel.Fill(color.RGBA{A: 180})
	for i, line := range lines {
		text.Draw(o.panel, line, basicfont.Face7x13, 6, lineHeight*(i+1), color.White)
	}
	screen.DrawImage(o.panel, &ebiten.DrawImageOptions{})
}
