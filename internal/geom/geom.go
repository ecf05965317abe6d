package geom

import (
	"math"
	"strconv"
)

// Arrow head defaults used for every committed and live arrow.
const (
	ArrowHeadLength = 50.0
	ArrowHeadAngle  = math.Pi / 4
)

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// IsZero reports whether both coordinates are exactly zero.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64) + ")"
}

// Rect is an axis aligned rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// CircleRadius returns the radius of a circle centred at center passing
// through p.
func CircleRadius(center, p Point) float64 {
	return Distance(center, p)
}

// EllipseBounds returns the bounding rectangle spanned by two opposite
// corners, regardless of the order they were given in.
func EllipseBounds(p1, p2 Point) Rect {
	return Rect{
		Left:   math.Min(p1.X, p2.X),
		Top:    math.Min(p1.Y, p2.Y),
		Right:  math.Max(p1.X, p2.X),
		Bottom: math.Max(p1.Y, p2.Y),
	}
}

// QuadrilateralPath returns the closed outline of the axis aligned rectangle
// with opposite corners start and cur. The first point is repeated at the end.
func QuadrilateralPath(start, cur Point) []Point {
	return []Point{
		{start.X, start.Y},
		{cur.X, start.Y},
		{cur.X, cur.Y},
		{start.X, cur.Y},
		{start.X, start.Y},
	}
}

// TrianglePath returns the closed outline of an upward pointing triangle
// whose base lies on the horizontal through start. The drag distance sets the
// height; the vertical direction of the drag is ignored.
func TrianglePath(start, cur Point) []Point {
	side := Distance(start, cur)
	height := side * math.Sqrt(3) / 2
	midX := (start.X + cur.X) / 2
	return []Point{
		{start.X, start.Y},
		{cur.X, start.Y},
		{midX, start.Y - height},
		{start.X, start.Y},
	}
}

// ArrowHead returns the two wing end points of an arrow pointing from start
// to end. When start equals end the direction angle is zero.
func ArrowHead(start, end Point, length, angle float64) (Point, Point) {
	dir := math.Atan2(end.Y-start.Y, end.X-start.X)
	w1 := Point{
		X: end.X - length*math.Cos(dir-angle),
		Y: end.Y - length*math.Sin(dir-angle),
	}
	w2 := Point{
		X: end.X - length*math.Cos(dir+angle),
		Y: end.Y - length*math.Sin(dir+angle),
	}
	return w1, w2
}
