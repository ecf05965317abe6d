package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/example/drawboard/internal/shape"
)

const (
	tabHeight    = 24
	bottomHeight = 24
	rowHeight    = 24
	smallRow     = 16
	swatchSize   = 16
	swatchStep   = 18
	groupGap     = 4

	minToolbarWidth = 4 + 5*swatchStep
)

// kindKeys are the single-letter shortcuts for each shape kind, in toolbar
// order.
var kindKeys = []struct {
	kind  shape.Kind
	key   rune
	label string
}{
	{shape.FreehandPath, 'p', "P:Path"},
	{shape.Triangle, 't', "T:Triangle"},
	{shape.Quadrilateral, 'r', "R:Rect"},
	{shape.Circle, 'c', "C:Circle"},
	{shape.Ellipse, 'e', "E:Ellipse"},
	{shape.Arrow, 'a', "A:Arrow"},
	{shape.Line, 'l', "L:Line"},
}

type toolbar struct {
	width   int
	buttons []*CacheButton
	hover   int
	styled  shape.Style // style the cached previews were drawn with
}

func newToolbar(a *AppState) *toolbar {
	t := &toolbar{hover: -1}
	th := a.theme
	b := a.board
	currentColor := func() color.RGBA { return b.Style().Color }

	add := func(btn Button) { t.buttons = append(t.buttons, &CacheButton{Button: btn}) }
	for _, kk := range kindKeys {
		k := kk.kind
		add(&LabelButton{base: base{
			theme:      th,
			selected:   func() bool { return b.Kind() == k },
			onActivate: func() { a.trigger("shape:" + k.String()) },
		}, label: kk.label})
	}
	for _, pc := range Palette() {
		c := pc.Color
		add(&SwatchButton{base: base{
			theme:      th,
			selected:   func() bool { return sameRGB(b.Style().Color, c) },
			onActivate: func() { a.setColor(c) },
		}, color: c})
	}
	for _, w := range Widths {
		w := w
		add(&WidthButton{base: base{
			theme:      th,
			selected:   func() bool { return b.Style().Width == w },
			onActivate: func() { a.setWidth(w) },
		}, width: w, color: currentColor})
	}
	for _, p := range AlphaSteps {
		p := p
		add(&AlphaButton{base: base{
			theme:      th,
			selected:   func() bool { return shape.PercentFromAlpha(b.Style().Alpha) == p },
			onActivate: func() { a.setAlpha(p) },
		}, percent: p, color: currentColor})
	}
	for _, act := range []struct{ name, label string }{
		{"undo", "^Z:Undo"},
		{"redo", "^Y:Redo"},
		{"clear", "Del:Clear"},
	} {
		name := act.name
		add(&LabelButton{base: base{theme: th, onActivate: func() { a.trigger(name) }}, label: act.label})
	}

	t.width = minToolbarWidth
	for _, kk := range kindKeys {
		t.width = max(t.width, labelWidth(kk.label)+8)
	}
	t.layout()
	return t
}

// layout positions every button below the title bar.
func (t *toolbar) layout() {
	y := tabHeight
	x := 4
	var prev string
	for _, cb := range t.buttons {
		kind := fmt.Sprintf("%T", cb.Button)
		if prev != "" && kind != prev {
			if prev == "*appstate.SwatchButton" && x != 4 {
				y += swatchStep
			}
			y += groupGap
			x = 4
		}
		prev = kind
		switch cb.Button.(type) {
		case *SwatchButton:
			cb.SetRect(image.Rect(x, y, x+swatchSize, y+swatchSize))
			x += swatchStep
			if x+swatchSize > t.width {
				x = 4
				y += swatchStep
			}
		case *WidthButton, *AlphaButton:
			cb.SetRect(image.Rect(0, y, t.width, y+smallRow))
			y += smallRow
		default:
			cb.SetRect(image.Rect(0, y, t.width, y+rowHeight))
			y += rowHeight
		}
	}
}

// hit returns the index of the button under p, or -1.
func (t *toolbar) hit(p image.Point) int {
	for i, cb := range t.buttons {
		if p.In(cb.Rect()) {
			return i
		}
	}
	return -1
}

func (t *toolbar) draw(dst *image.RGBA, style shape.Style, bg color.RGBA) {
	draw.Draw(dst, image.Rect(0, tabHeight, t.width, dst.Bounds().Max.Y), image.NewUniform(bg), image.Point{}, draw.Src)
	if style.Color != t.styled.Color {
		for _, cb := range t.buttons {
			switch cb.Button.(type) {
			case *WidthButton, *AlphaButton:
				cb.Invalidate()
			}
		}
	}
	t.styled = style
	for i, cb := range t.buttons {
		state := StateDefault
		if cb.Selected() {
			state = StatePressed
		} else if i == t.hover {
			state = StateHover
		}
		cb.Draw(dst, state)
	}
}

func sameRGB(a, b color.RGBA) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B
}

func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

func formatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}
