package shape

import "github.com/example/drawboard/internal/geom"

// Shape is a committed drawing record. Only the geometry fields relevant to
// Kind are meaningful:
//
//	FreehandPath, Triangle, Quadrilateral: Points
//	Circle:                                Start (centre) and Radius
//	Ellipse:                               Start and End (opposite corners)
//	Arrow, Line:                           Start and End
type Shape struct {
	Kind   Kind
	Points []geom.Point
	Start  geom.Point
	End    geom.Point
	Radius float64
	Style  Style
}

// Clone returns a copy that shares no memory with s.
func (s Shape) Clone() Shape {
	out := s
	if s.Points != nil {
		out.Points = append([]geom.Point(nil), s.Points...)
	}
	return out
}

// Equal reports whether a and b have the same kind, geometry and style.
func Equal(a, b Shape) bool {
	if a.Kind != b.Kind || a.Start != b.Start || a.End != b.End || a.Radius != b.Radius || a.Style != b.Style {
		return false
	}
	if len(a.Points) != len(b.Points) {
		return false
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			return false
		}
	}
	return true
}
