package render

import (
	"image"
	"image/color"

	"github.com/example/drawboard/internal/geom"
	"github.com/example/drawboard/internal/shape"
)

// Hint layout used for the placeholder text shown on an empty surface.
const (
	HintInset = 8
	HintSize  = 14
)

// HintColor is the placeholder text colour (#666666).
var HintColor = color.RGBA{0x66, 0x66, 0x66, 0xff}

// TextStyle describes how DrawText renders a string.
type TextStyle struct {
	Color color.Color
	Size  float64
}

// Renderer draws primitives onto a 2D surface. Coordinates are surface
// coordinates with the origin at the top-left corner.
type Renderer interface {
	// DrawImage draws img with its top-left corner at the surface origin.
	DrawImage(img image.Image)
	DrawPolyline(pts []geom.Point, st shape.Style)
	// DrawClosedPath strokes pts and joins the last point back to the first.
	DrawClosedPath(pts []geom.Point, st shape.Style)
	DrawCircle(center geom.Point, radius float64, st shape.Style)
	DrawOval(left, top, right, bottom float64, st shape.Style)
	DrawLine(p1, p2 geom.Point, st shape.Style)
	// DrawText renders text with its top-left corner at origin, wrapping
	// words so no line is wider than maxWidth.
	DrawText(text string, origin geom.Point, ts TextStyle, maxWidth float64)
}

// Scene is everything needed to draw one frame of the surface.
type Scene struct {
	// Size is the surface size in pixels.
	Size image.Point
	// Background is already scaled to Size, or nil.
	Background image.Image
	// Shapes holds the committed stack, oldest first.
	Shapes []shape.Shape
	// Live is the in-progress shape carrying the current live style.
	Live        shape.Shape
	Hint        string
	HintVisible bool
}
