package shape

import "github.com/example/drawboard/internal/geom"

// Live is the shape being built by the current gesture. Its geometry is
// interpreted according to its kind; fields of other kinds stay zero.
// The zero value is an idle freehand path.
type Live struct {
	kind   Kind
	begun  bool
	points []geom.Point
	start  geom.Point
	end    geom.Point
	radius float64
}

// NewLive returns an idle live shape of kind k.
func NewLive(k Kind) Live { return Live{kind: k} }

// Kind returns the kind the live shape is building.
func (l *Live) Kind() Kind { return l.kind }

// Begun reports whether a gesture has started and not yet been frozen.
func (l *Live) Begun() bool { return l.begun }

// Begin starts a gesture at p, dropping any previous geometry.
func (l *Live) Begin(p geom.Point) {
	l.Reset()
	l.begun = true
	switch l.kind {
	case FreehandPath:
		l.points = []geom.Point{p}
	case Triangle, Quadrilateral:
		l.start = p
	case Circle:
		l.start = p
		l.radius = 0
	case Ellipse, Arrow, Line:
		l.start = p
		l.end = p
	}
}

// Update moves the gesture to p. Freehand paths append a segment; every
// other kind recomputes its geometry from the start point.
func (l *Live) Update(p geom.Point) {
	if !l.begun {
		return
	}
	switch l.kind {
	case FreehandPath:
		l.points = append(l.points, p)
	case Triangle:
		l.end = p
		l.points = geom.TrianglePath(l.start, p)
	case Quadrilateral:
		l.end = p
		l.points = geom.QuadrilateralPath(l.start, p)
	case Circle:
		l.radius = geom.CircleRadius(l.start, p)
	case Ellipse, Arrow, Line:
		l.end = p
	}
}

// Shape returns a detached snapshot of the live geometry drawn with st.
func (l *Live) Shape(st Style) Shape {
	s := Shape{
		Kind:   l.kind,
		Start:  l.start,
		End:    l.end,
		Radius: l.radius,
		Style:  st,
	}
	if len(l.points) > 0 {
		s.Points = append([]geom.Point(nil), l.points...)
	}
	switch l.kind {
	case Triangle, Quadrilateral:
		// Path kinds are described by their outline only.
		s.Start, s.End = geom.Point{}, geom.Point{}
	}
	return s
}

// Freeze returns the committed form of the gesture and resets l.
func (l *Live) Freeze(st Style) Shape {
	s := l.Shape(st)
	l.Reset()
	return s
}

// Reset clears all geometry while keeping the kind.
func (l *Live) Reset() {
	*l = Live{kind: l.kind}
}
