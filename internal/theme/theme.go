package theme

import (
	"image/color"
)

// Theme is the colour palette for the window chrome and the blank canvas.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the toolbar and canvas
	Foreground color.RGBA // status text

	// Canvas
	Canvas color.RGBA // blank surface when no background image is set

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonSelected        color.RGBA // the active shape kind, width or colour
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
}

// Default returns the built in light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		Canvas:                color.RGBA{255, 255, 255, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonSelected:        color.RGBA{160, 190, 230, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
	}
}
