package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/drawboard/internal/render"
	"github.com/example/drawboard/internal/shape"
)

// statusLine summarises the board for the title bar.
func (a *AppState) statusLine() string {
	st := a.board.Style()
	committed, undone := a.board.History()
	return fmt.Sprintf("%s  %s  w%s  %s  undo %d  redo %d",
		a.board.Kind(), shape.FormatColor(st.Color), formatWidth(st.Width),
		formatPercent(shape.PercentFromAlpha(st.Alpha)), committed, undone)
}

// drawFrame paints the whole window into dst, which must match the window
// size.
func (a *AppState) drawFrame(dst *image.RGBA) {
	th := a.theme
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)

	// title bar
	draw.Draw(dst, image.Rect(0, 0, a.width, tabHeight), image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	drawLabel(dst, 4, 16, "drawboard", th.Foreground)
	drawLabel(dst, a.toolbar.width+4, 16, a.statusLine(), th.Foreground)

	a.toolbar.draw(dst, a.board.Style(), th.ToolbarBackground)

	cr := a.canvasRect().Intersect(dst.Bounds())
	if !cr.Empty() {
		canvas := dst.SubImage(cr).(*image.RGBA)
		draw.Draw(canvas, cr, image.NewUniform(th.Canvas), image.Point{}, draw.Src)
		a.board.Render(render.NewRaster(canvas))
	}

	a.drawShortcuts(dst)

	if a.messageVisible() {
		a.drawMessage(dst, cr)
	}
}

// layoutShortcuts places the bottom bar buttons for the current window
// height.
func (a *AppState) layoutShortcuts() {
	top := a.height - bottomHeight
	a.shortcutRects = a.shortcutRects[:0]
	x := 4
	for _, sc := range bottomShortcuts {
		r := image.Rect(x, top+2, x+labelWidth(sc.Label)+8, a.height-2)
		a.shortcutRects = append(a.shortcutRects, r)
		x = r.Max.X + 4
	}
}

func (a *AppState) drawShortcuts(dst *image.RGBA) {
	th := a.theme
	draw.Draw(dst, image.Rect(0, a.height-bottomHeight, a.width, a.height), image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	for i, r := range a.shortcutRects {
		c := th.ButtonBackground
		if i == a.hoverShortcut {
			c = th.ButtonBackgroundHover
		}
		draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
		drawLabel(dst, r.Min.X+4, r.Min.Y+14, bottomShortcuts[i].Label, th.ButtonText)
	}
}

func (a *AppState) drawMessage(dst *image.RGBA, canvas image.Rectangle) {
	w := labelWidth(a.message) + 16
	h := 24
	x := canvas.Min.X + (canvas.Dx()-w)/2
	y := canvas.Max.Y - h - 8
	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(dst, r, image.NewUniform(color.RGBA{0, 0, 0, 200}), image.Point{}, draw.Over)
	drawLabel(dst, r.Min.X+8, r.Min.Y+16, a.message, color.White)
}
