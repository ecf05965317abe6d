package shape

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned for colour strings that are neither a hex
// value nor a known colour name.
var ErrInvalidColor = errors.New("invalid color")

// Default stroke settings for a fresh surface.
const (
	DefaultWidth = 10.0
	DefaultAlpha = 255
)

// Style is the stroke used for a shape. Committed shapes keep the copy that
// was current when their gesture ended.
type Style struct {
	Color color.RGBA
	Width float64
	Alpha uint8
}

// DefaultStyle returns an opaque black stroke of DefaultWidth.
func DefaultStyle() Style {
	return Style{
		Color: color.RGBA{0, 0, 0, 255},
		Width: DefaultWidth,
		Alpha: DefaultAlpha,
	}
}

// NRGBA returns the stroke colour with the style alpha applied.
func (s Style) NRGBA() color.NRGBA {
	return color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Alpha}
}

// AlphaFromPercent clamps p to [0,100] and maps it onto 0-255, truncating.
// Integer arithmetic keeps 100 at exactly 255.
func AlphaFromPercent(p int) uint8 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return uint8(p * 255 / 100)
}

// PercentFromAlpha is the inverse of AlphaFromPercent, rounded to the
// nearest percent.
func PercentFromAlpha(a uint8) int {
	return (int(a)*100 + 127) / 255
}

// ParseColor parses #RRGGBB, #AARRGGBB or a CSS colour name. The returned
// alpha is 255 unless the 8 digit form supplied one.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if !strings.HasPrefix(spec, "#") {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	hex := spec[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	a := uint8(255)
	if len(hex) == 8 {
		a = uint8(val >> 24)
	}
	return color.RGBA{
		R: uint8(val >> 16),
		G: uint8(val >> 8),
		B: uint8(val),
		A: a,
	}, nil
}

// FormatColor writes c as #RRGGBB.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
