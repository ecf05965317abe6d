package appstate

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// PaletteColor is a named toolbar swatch.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var paletteNames = []string{
	"black", "white", "red", "lime", "blue", "yellow", "cyan", "magenta",
	"maroon", "green", "navy", "olive", "teal", "purple", "orange", "gray",
}

// Palette returns the toolbar swatches in display order.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(paletteNames))
	for i, n := range paletteNames {
		out[i] = PaletteColor{Name: n, Color: colornames.Map[n]}
	}
	return out
}

// Widths are the stroke widths offered by the toolbar.
var Widths = []float64{2, 5, 10, 20, 40}

// AlphaSteps are the opacity percentages offered by the toolbar.
var AlphaSteps = []int{25, 50, 75, 100}
