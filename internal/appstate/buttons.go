package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/drawboard/internal/geom"
	"github.com/example/drawboard/internal/render"
	"github.com/example/drawboard/internal/shape"
	"github.com/example/drawboard/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is an interactive toolbar element. Activate performs the button's
// action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
	Selected() bool
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

// Invalidate drops the cached renderings.
func (cb *CacheButton) Invalidate() { cb.cache = [3]*image.RGBA{} }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// base carries what every toolbar button shares.
type base struct {
	rect       image.Rectangle
	theme      *theme.Theme
	selected   func() bool
	onActivate func()
}

func (b *base) Rect() image.Rectangle     { return b.rect }
func (b *base) SetRect(r image.Rectangle) { b.rect = r }

func (b *base) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

func (b *base) Selected() bool { return b.selected != nil && b.selected() }

func (b *base) fill(dst *image.RGBA, state ButtonState) {
	c := b.theme.ButtonBackground
	switch state {
	case StateHover:
		c = b.theme.ButtonBackgroundHover
	case StatePressed:
		c = b.theme.ButtonSelected
	}
	draw.Draw(dst, b.rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawLabel(dst *image.RGBA, x, y int, label string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(label)
}

func labelWidth(label string) int {
	return font.MeasureString(basicfont.Face7x13, label).Ceil()
}

// LabelButton is a text button: shape kinds and history actions.
type LabelButton struct {
	base
	label string
}

func (lb *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	lb.fill(dst, state)
	drawLabel(dst, lb.rect.Min.X+4, lb.rect.Min.Y+16, lb.label, lb.theme.ButtonText)
}

// SwatchButton selects a palette colour.
type SwatchButton struct {
	base
	color color.RGBA
}

func (sb *SwatchButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, sb.rect, image.NewUniform(sb.color), image.Point{}, draw.Src)
	if state == StateHover {
		draw.Draw(dst, sb.rect, image.NewUniform(color.RGBA{255, 255, 255, 80}), image.Point{}, draw.Over)
	}
	border := sb.theme.ButtonBorder
	if state == StatePressed {
		border = sb.theme.ButtonSelected
		strokeRect(dst, sb.rect.Inset(1), border)
	}
	strokeRect(dst, sb.rect, border)
}

// WidthButton selects a stroke width and previews it.
type WidthButton struct {
	base
	width float64
	color func() color.RGBA
}

func (wb *WidthButton) Draw(dst *image.RGBA, state ButtonState) {
	wb.fill(dst, state)
	drawLabel(dst, wb.rect.Min.X+4, wb.rect.Min.Y+12, formatWidth(wb.width), wb.theme.ButtonText)
	st := shape.DefaultStyle()
	st.Color = wb.color()
	// Keep the preview inside the row.
	st.Width = min(wb.width, float64(wb.rect.Dy()-4))
	y := float64(wb.rect.Min.Y + wb.rect.Dy()/2)
	r := render.NewRaster(dst.SubImage(wb.rect).(*image.RGBA))
	r.DrawLine(geom.Pt(30, y-float64(wb.rect.Min.Y)), geom.Pt(float64(wb.rect.Dx()-6), y-float64(wb.rect.Min.Y)), st)
}

// AlphaButton selects an opacity.
type AlphaButton struct {
	base
	percent int
	color   func() color.RGBA
}

func (ab *AlphaButton) Draw(dst *image.RGBA, state ButtonState) {
	ab.fill(dst, state)
	drawLabel(dst, ab.rect.Min.X+4, ab.rect.Min.Y+12, formatPercent(ab.percent), ab.theme.ButtonText)
	sw := image.Rect(ab.rect.Max.X-22, ab.rect.Min.Y+2, ab.rect.Max.X-4, ab.rect.Max.Y-2)
	c := ab.color()
	c.A = shape.AlphaFromPercent(ab.percent)
	draw.Draw(dst, sw, image.NewUniform(color.NRGBA{c.R, c.G, c.B, c.A}), image.Point{}, draw.Over)
	strokeRect(dst, sw, ab.theme.ButtonBorder)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
