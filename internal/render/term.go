package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gol-miner/internal/core"
)

// TermRenderer prints the top-left corner of the board to a terminal.
type TermRenderer struct {
	Out io.Writer
	// Max is the largest side drawn; bigger boards are cropped.
	Max int

	alive lipgloss.Style
	dead  lipgloss.Style
	frame lipgloss.Style
}

// NewTermRenderer returns a renderer writing to out.
func NewTermRenderer(out io.Writer, max int) *TermRenderer {
	if max <= 0 {
		max = 64
	}
	return &TermRenderer{
		Out:   out,
		Max:   max,
		alive: lipgloss.NewStyle().Foreground(lipgloss.Color("#7CFC00")),
		dead:  lipgloss.NewStyle().Foreground(lipgloss.Color("#303030")),
		frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5f87af")),
	}
}

// Text draws g as rows of glyphs.
func (r *TermRenderer) Text(g *core.DenseGrid) string {
	side := min(g.N, r.Max)
	var b strings.Builder
	for y := 0; y < side; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < side; x++ {
			if g.At(x, y) == 1 {
				b.WriteString(r.alive.Render("█"))
			} else {
				b.WriteString(r.dead.Render("·"))
			}
		}
	}
	return b.String()
}

// Render implements loop.Renderer.
func (r *TermRenderer) Render(g *core.DenseGrid) error {
	_, err := fmt.Fprintln(r.Out, r.frame.Render(r.Text(g)))
	return err
}
