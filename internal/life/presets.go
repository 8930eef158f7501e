package life

import (
	"fmt"
	"sort"

	"gol-miner/internal/core"
)

// Preset is a named starting shape, given relative to its top-left corner.
type Preset struct {
	Name  string
	Cells []core.Coord
}

var presets = map[string]Preset{
	"blinker": {Name: "blinker", Cells: []core.Coord{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}},
	"block":   {Name: "block", Cells: []core.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}},
	"glider":  {Name: "glider", Cells: []core.Coord{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}},
	"beehive": {Name: "beehive", Cells: []core.Coord{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 3, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}},
}

// LookupPreset returns the named preset.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// At returns the preset cells translated by (x, y).
func (p Preset) At(x, y int) []core.Coord {
	out := make([]core.Coord, len(p.Cells))
	for i, c := range p.Cells {
		out[i] = c.Add(x, y)
	}
	return out
}

// Bounds returns the width and height of the preset's bounding box,
// measured from the origin.
func (p Preset) Bounds() (w, h int) {
	for _, c := range p.Cells {
		w = max(w, c.X+1)
		h = max(h, c.Y+1)
	}
	return w, h
}

// Tile stamps the preset on a lattice with the given spacing across an n*n
// board, starting at the origin and skipping positions where it would not fit.
// A board smaller than spacing gets a single copy when the shape fits.
func (p Preset) Tile(n, spacing int) []core.Coord {
	if spacing <= 0 {
		return nil
	}
	w, h := p.Bounds()
	var out []core.Coord
	for y := 0; y+h <= n; y += spacing {
		for x := 0; x+w <= n; x += spacing {
			out = append(out, p.At(x, y)...)
		}
	}
	return out
}
