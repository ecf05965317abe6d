// Package board turns pointer gestures into committed shapes and owns the
// history, live style and background of one drawing surface.
package board

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/example/drawboard/internal/geom"
	"github.com/example/drawboard/internal/history"
	"github.com/example/drawboard/internal/render"
	"github.com/example/drawboard/internal/shape"
)

// ErrInvalidWidth is returned for stroke widths that are not positive.
var ErrInvalidWidth = errors.New("invalid stroke width")

// Board is a drawing surface driven by a host that delivers pointer and
// resize events from a single goroutine. It is not safe for concurrent use.
type Board struct {
	hist  *history.Store
	kind  shape.Kind
	style shape.Style
	live  shape.Live

	hint       string
	hintFlag   bool
	size       image.Point
	background image.Image
	scaledBg   *image.RGBA
	redraw     func()
}

// Option configures a Board created by New.
type Option func(*Board)

// WithKind selects the shape kind of the first gesture.
func WithKind(k shape.Kind) Option {
	return func(b *Board) { b.kind = k }
}

// WithStyle sets the initial live style.
func WithStyle(st shape.Style) Option {
	return func(b *Board) { b.style = st }
}

// WithHint sets the placeholder text shown while nothing is drawn.
func WithHint(text string) Option {
	return func(b *Board) { b.hint = text }
}

// WithSize sets the initial surface size.
func WithSize(w, h int) Option {
	return func(b *Board) { b.size = image.Pt(w, h) }
}

// WithRedraw registers fn to be called after every state change.
func WithRedraw(fn func()) Option {
	return func(b *Board) { b.redraw = fn }
}

// New returns an empty board drawing freehand paths with the default style.
func New(opts ...Option) *Board {
	b := &Board{
		hist:     history.New(),
		kind:     shape.FreehandPath,
		style:    shape.DefaultStyle(),
		hintFlag: true,
	}
	for _, o := range opts {
		o(b)
	}
	b.live = shape.NewLive(b.kind)
	return b
}

func (b *Board) requestRedraw() {
	if b.redraw != nil {
		b.redraw()
	}
}

// PointerDown starts a gesture at (x, y), replacing any unfinished one.
func (b *Board) PointerDown(x, y float64) {
	b.live.Begin(geom.Pt(x, y))
	b.requestRedraw()
}

// PointerMove extends the current gesture. It is ignored when no gesture
// has begun.
func (b *Board) PointerMove(x, y float64) {
	if !b.live.Begun() {
		return
	}
	b.live.Update(geom.Pt(x, y))
	b.requestRedraw()
}

// PointerUp applies (x, y) as the final update and commits the gesture with
// a copy of the live style. The undone stack is left as it is. It is
// ignored when no gesture has begun.
func (b *Board) PointerUp(x, y float64) {
	if !b.live.Begun() {
		return
	}
	b.live.Update(geom.Pt(x, y))
	b.hist.Commit(b.live.Freeze(b.style))
	b.hintFlag = false
	b.requestRedraw()
}

// Drawing reports whether a gesture is in progress.
func (b *Board) Drawing() bool { return b.live.Begun() }

// Kind returns the kind the next gesture will produce.
func (b *Board) Kind() shape.Kind { return b.kind }

// SetShapeKind selects the kind for the next gesture. Any partial geometry
// of the current gesture is discarded.
func (b *Board) SetShapeKind(k shape.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("set shape kind: %v", k)
	}
	b.kind = k
	b.live = shape.NewLive(k)
	b.requestRedraw()
	return nil
}

// Style returns the live style.
func (b *Board) Style() shape.Style { return b.style }

// SetStyle replaces colour, width and alpha together. Nothing changes if
// either the colour or the width is invalid.
func (b *Board) SetStyle(colorHex string, width float64, alphaPercent int) error {
	c, err := shape.ParseColor(colorHex)
	if err != nil {
		return err
	}
	if err := ValidateWidth(width); err != nil {
		return err
	}
	b.style.Color = c
	b.style.Width = width
	b.style.Alpha = shape.AlphaFromPercent(alphaPercent)
	b.requestRedraw()
	return nil
}

// SetColor changes the live colour. Alpha is set separately.
func (b *Board) SetColor(colorHex string) error {
	c, err := shape.ParseColor(colorHex)
	if err != nil {
		return err
	}
	b.style.Color = c
	b.requestRedraw()
	return nil
}

// SetStrokeWidth changes the live stroke width.
func (b *Board) SetStrokeWidth(w float64) error {
	if err := ValidateWidth(w); err != nil {
		return err
	}
	b.style.Width = w
	b.requestRedraw()
	return nil
}

// SetAlpha sets the live opacity from a percentage clamped to [0,100].
func (b *Board) SetAlpha(percent int) {
	b.style.Alpha = shape.AlphaFromPercent(percent)
	b.requestRedraw()
}

// ValidateWidth reports an error wrapping ErrInvalidWidth unless w is a
// positive finite stroke width.
func ValidateWidth(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, w)
	}
	return nil
}

// SetBackgroundImage sets the image drawn under every shape, scaled to the
// surface once its size is known. A nil image removes the background.
func (b *Board) SetBackgroundImage(img image.Image) {
	b.background = img
	b.rescaleBackground()
	b.requestRedraw()
}

// Background returns the original, unscaled background image.
func (b *Board) Background() image.Image { return b.background }

// SurfaceResized records the new surface size and rescales the background.
// Committed shapes keep their absolute coordinates.
func (b *Board) SurfaceResized(w, h int) {
	b.size = image.Pt(w, h)
	b.rescaleBackground()
	b.requestRedraw()
}

// Size returns the surface size.
func (b *Board) Size() image.Point { return b.size }

func (b *Board) rescaleBackground() {
	b.scaledBg = render.ScaleToFill(b.background, b.size)
}

// Undo moves the newest committed shape onto the undone stack. It reports
// false when there was nothing to undo.
func (b *Board) Undo() bool {
	_, ok := b.hist.Undo()
	if ok {
		b.requestRedraw()
	}
	return ok
}

// Redo moves the newest undone shape back onto the committed stack. It
// reports false when there was nothing to redo.
func (b *Board) Redo() bool {
	_, ok := b.hist.Redo()
	if ok {
		b.requestRedraw()
	}
	return ok
}

// Clear empties both stacks, drops the live gesture and shows the hint
// again. It reports whether anything was removed.
func (b *Board) Clear() bool {
	changed := b.hist.Len() > 0 || b.hist.UndoneLen() > 0 || b.live.Begun()
	b.hist.Clear()
	b.live.Reset()
	b.hintFlag = true
	b.requestRedraw()
	return changed
}

// History returns the sizes of the committed and undone stacks.
func (b *Board) History() (committed, undone int) {
	return b.hist.Len(), b.hist.UndoneLen()
}

// Committed returns a copy of the committed stack, oldest first.
func (b *Board) Committed() []shape.Shape { return b.hist.Committed() }

// Undone returns a copy of the undone stack, oldest first.
func (b *Board) Undone() []shape.Shape { return b.hist.Undone() }

// Hint returns the placeholder text.
func (b *Board) Hint() string { return b.hint }

// SetHint replaces the placeholder text.
func (b *Board) SetHint(text string) {
	b.hint = text
	b.requestRedraw()
}

// HintVisible reports whether the hint is drawn: before the first commit,
// after Clear, and whenever the committed stack is empty.
func (b *Board) HintVisible() bool {
	return b.hintFlag || b.hist.Len() == 0
}

// Scene returns a snapshot of everything needed to draw the surface. The
// snapshot shares no mutable state with the board.
func (b *Board) Scene() render.Scene {
	sc := render.Scene{
		Size:        b.size,
		Shapes:      b.hist.Committed(),
		Live:        b.live.Shape(b.style),
		Hint:        b.hint,
		HintVisible: b.HintVisible(),
	}
	if b.scaledBg != nil {
		sc.Background = b.scaledBg
	}
	return sc
}

// Render draws the current scene onto r.
func (b *Board) Render(r render.Renderer) {
	render.Draw(b.Scene(), r)
}
