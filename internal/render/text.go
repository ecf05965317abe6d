package render

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/example/drawboard/internal/geom"
)

var (
	regularOnce sync.Once
	regularFont *sfnt.Font
	regularErr  error

	textFaces sync.Map // map[float64]font.Face
)

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = HintSize
	}
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	if regularErr != nil {
		return nil, fmt.Errorf("parse text font: %w", regularErr)
	}
	if face, ok := textFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(regularFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := textFaces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// WrapText splits text into lines no wider than maxWidth, breaking between
// words. A word wider than maxWidth gets a line to itself. Explicit newlines
// are kept. A non-positive maxWidth disables wrapping.
func WrapText(face font.Face, text string, maxWidth float64) []string {
	var out []string
	limit := fixed.Int26_6(maxWidth * 64)
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		if maxWidth <= 0 {
			out = append(out, strings.Join(words, " "))
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(face, candidate) <= limit {
				line = candidate
				continue
			}
			out = append(out, line)
			line = w
		}
		out = append(out, line)
	}
	return out
}

// DrawText renders text with its top-left corner at origin, wrapping at
// maxWidth. Text that cannot be drawn is skipped.
func (r *Raster) DrawText(text string, origin geom.Point, ts TextStyle, maxWidth float64) {
	if strings.TrimSpace(text) == "" {
		return
	}
	face, err := faceForSize(ts.Size)
	if err != nil {
		return
	}
	col := ts.Color
	if col == nil {
		col = HintColor
	}
	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	x := int(origin.X) + r.origin.X
	y := int(origin.Y) + r.origin.Y + m.Ascent.Ceil()
	d := &font.Drawer{Dst: r.dst, Src: image.NewUniform(col), Face: face}
	for _, line := range WrapText(face, text, maxWidth) {
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
		y += lineHeight
	}
}
