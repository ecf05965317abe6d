package render

import (
	"github.com/example/drawboard/internal/geom"
	"github.com/example/drawboard/internal/shape"
)

// Draw replays sc onto r, back to front: background, committed shapes in
// stack order, the live shape, then the hint. The whole scene is redrawn on
// every call so undo never needs to erase anything.
func Draw(sc Scene, r Renderer) {
	if sc.Background != nil {
		r.DrawImage(sc.Background)
	}
	for _, s := range sc.Shapes {
		DrawShape(r, s)
	}
	if liveVisible(sc.Live) {
		DrawShape(r, sc.Live)
	}
	if sc.HintVisible {
		maxWidth := float64(sc.Size.X - 2*HintInset)
		r.DrawText(sc.Hint, geom.Pt(HintInset, HintInset), TextStyle{Color: HintColor, Size: HintSize}, maxWidth)
	}
}

// DrawShape dispatches s to the primitive matching its kind.
func DrawShape(r Renderer, s shape.Shape) {
	switch s.Kind {
	case shape.FreehandPath:
		if len(s.Points) > 0 {
			r.DrawPolyline(s.Points, s.Style)
		}
	case shape.Triangle, shape.Quadrilateral:
		if len(s.Points) > 0 {
			r.DrawClosedPath(s.Points, s.Style)
		}
	case shape.Circle:
		r.DrawCircle(s.Start, s.Radius, s.Style)
	case shape.Ellipse:
		b := geom.EllipseBounds(s.Start, s.End)
		r.DrawOval(b.Left, b.Top, b.Right, b.Bottom, s.Style)
	case shape.Arrow:
		w1, w2 := geom.ArrowHead(s.Start, s.End, geom.ArrowHeadLength, geom.ArrowHeadAngle)
		r.DrawLine(s.Start, s.End, s.Style)
		r.DrawLine(s.End, w1, s.Style)
		r.DrawLine(s.End, w2, s.Style)
	case shape.Line:
		r.DrawLine(s.Start, s.End, s.Style)
	}
}

// liveVisible hides arrows and lines that have not started yet so they do
// not leave a dot at the origin.
func liveVisible(s shape.Shape) bool {
	switch s.Kind {
	case shape.Arrow, shape.Line:
		return !(s.Start.IsZero() && s.End.IsZero())
	}
	return true
}
