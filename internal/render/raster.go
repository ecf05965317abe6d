package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/drawboard/internal/geom"
	"github.com/example/drawboard/internal/shape"
)

// Raster draws onto an RGBA image. Sub-images work as well; surface
// coordinates are offset by the image's bounds origin.
type Raster struct {
	dst    *image.RGBA
	origin image.Point
}

var _ Renderer = (*Raster)(nil)

// NewRaster returns a Renderer drawing onto dst.
func NewRaster(dst *image.RGBA) *Raster {
	return &Raster{dst: dst, origin: dst.Bounds().Min}
}

// RenderImage draws sc onto a new image of sc.Size filled with blank.
func RenderImage(sc Scene, blank color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, sc.Size.X, sc.Size.Y))
	if blank != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(blank), image.Point{}, draw.Src)
	}
	Draw(sc, NewRaster(img))
	return img
}

func (r *Raster) DrawImage(img image.Image) {
	b := img.Bounds()
	dr := b.Sub(b.Min).Add(r.origin).Intersect(r.dst.Bounds())
	if dr.Empty() {
		return
	}
	draw.Draw(r.dst, dr, img, b.Min, draw.Over)
}

// DrawPolyline strokes pts in order. Points with NaN or infinite
// coordinates are dropped.
func (r *Raster) DrawPolyline(pts []geom.Point, st shape.Style) {
	pts = finitePoints(pts)
	s := r.newStroke(pts, st.Width)
	if s == nil {
		return
	}
	if len(pts) == 1 {
		s.dot(r.pixel(pts[0]))
	}
	// Segments are clipped to the mask so the walk never leaves it.
	clip := s.mask.Bounds().Sub(r.origin).Inset(-s.pad)
	for i := 1; i < len(pts); i++ {
		if a, b, ok := clipSegment(pts[i-1], pts[i], clip); ok {
			s.segment(r.pixel(a), r.pixel(b))
		}
	}
	r.composite(s, st)
}

func (r *Raster) DrawClosedPath(pts []geom.Point, st shape.Style) {
	if len(pts) > 1 && pts[0] != pts[len(pts)-1] {
		pts = append(append([]geom.Point(nil), pts...), pts[0])
	}
	r.DrawPolyline(pts, st)
}

func (r *Raster) DrawLine(p1, p2 geom.Point, st shape.Style) {
	r.DrawPolyline([]geom.Point{p1, p2}, st)
}

func (r *Raster) DrawCircle(center geom.Point, radius float64, st shape.Style) {
	r.DrawOval(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius, st)
}

// DrawOval strokes the ellipse inscribed in the rectangle. An empty
// rectangle draws nothing and a flat one draws a line.
func (r *Raster) DrawOval(left, top, right, bottom float64, st shape.Style) {
	rx := math.Abs(right-left) / 2
	ry := math.Abs(bottom-top) / 2
	cx := left/2 + right/2
	cy := top/2 + bottom/2
	if !finite(rx) || !finite(ry) || !finite(cx) || !finite(cy) || rx == 0 && ry == 0 {
		return
	}
	if rx == 0 || ry == 0 {
		r.DrawLine(geom.Pt(cx-rx, cy-ry), geom.Pt(cx+rx, cy+ry), st)
		return
	}
	perimeter := 2 * math.Pi * math.Hypot(rx, ry)
	if perimeter > maxOvalSteps {
		r.scanOval(cx, cy, rx, ry, st)
		return
	}
	steps := int(math.Ceil(perimeter))
	if steps < 8 {
		steps = 8
	}
	pts := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		pts = append(pts, geom.Pt(cx+math.Cos(angle)*rx, cy+math.Sin(angle)*ry))
	}
	r.DrawPolyline(pts, st)
}

// scanOval covers every mask pixel whose distance to the ellipse is within
// half the pen width. The work is bounded by the visible part of the
// bounding box, not by the perimeter.
func (r *Raster) scanOval(cx, cy, rx, ry float64, st shape.Style) {
	s := r.newStroke([]geom.Point{{X: cx - rx, Y: cy - ry}, {X: cx + rx, Y: cy + ry}}, st.Width)
	if s == nil {
		return
	}
	half := penWidth(st.Width, r.dst.Bounds()) / 2
	half = max(half, 0.5)
	b := s.mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		v := float64(y-r.origin.Y) - cy
		for x := b.Min.X; x < b.Max.X; x++ {
			u := float64(x-r.origin.X) - cx
			if ovalDistance(u, v, rx, ry) <= half {
				s.mask.Pix[s.mask.PixOffset(x, y)] = 0xff
			}
		}
	}
	r.composite(s, st)
}

// ovalDistance approximates the distance from (u, v), relative to the
// centre, to the ellipse with radii rx and ry. Circles are exact.
func ovalDistance(u, v, rx, ry float64) float64 {
	if rx == ry {
		return math.Abs(math.Hypot(u, v) - rx)
	}
	f := u*u/(rx*rx) + v*v/(ry*ry) - 1
	g := 2 * math.Hypot(u/(rx*rx), v/(ry*ry))
	if g == 0 {
		return math.Inf(1)
	}
	return math.Abs(f) / g
}

func (r *Raster) pixel(p geom.Point) image.Point {
	return image.Pt(int(math.Round(clampCoord(p.X)))+r.origin.X, int(math.Round(clampCoord(p.Y)))+r.origin.Y)
}

// maxOvalSteps bounds the polyline used for an ellipse; larger ones are
// scanned instead.
const maxOvalSteps = 4096

// coordLimit keeps coordinates far outside any surface representable as int.
const coordLimit = 1 << 30

func clampCoord(v float64) float64 {
	return math.Max(-coordLimit, math.Min(coordLimit, v))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finitePoints(pts []geom.Point) []geom.Point {
	for i, p := range pts {
		if finite(p.X) && finite(p.Y) {
			continue
		}
		out := append([]geom.Point(nil), pts[:i]...)
		for _, q := range pts[i+1:] {
			if finite(q.X) && finite(q.Y) {
				out = append(out, q)
			}
		}
		return out
	}
	return pts
}

// clipSegment trims a-b to r with Liang-Barsky and reports whether any of
// it remains.
func clipSegment(a, b geom.Point, r image.Rectangle) (geom.Point, geom.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, a.X - float64(r.Min.X)},
		{dx, float64(r.Max.X) - a.X},
		{-dy, a.Y - float64(r.Min.Y)},
		{dy, float64(r.Max.Y) - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}
	if t0 == 0 && t1 == 1 {
		return a, b, true
	}
	return geom.Pt(a.X+t0*dx, a.Y+t0*dy), geom.Pt(a.X+t1*dx, a.Y+t1*dy), true
}

// penWidth normalises a stroke width: at least one pixel and no wider than
// twice the destination's diagonal.
func penWidth(width float64, dst image.Rectangle) float64 {
	if width < 1 || math.IsNaN(width) {
		return 1
	}
	return math.Min(width, 2*math.Hypot(float64(dst.Dx()), float64(dst.Dy()))+2)
}

func (r *Raster) composite(s *stroke, st shape.Style) {
	src := image.NewUniform(st.NRGBA())
	draw.DrawMask(r.dst, s.mask.Bounds(), src, image.Point{}, s.mask, s.mask.Bounds().Min, draw.Over)
}

// stroke accumulates coverage for one primitive so overlapping segments of
// the same shape are blended only once.
type stroke struct {
	mask *image.Alpha
	disc []image.Point
	pad  int
}

// newStroke sizes the mask to the bounding box of pts grown by the stroke
// width and clipped to the destination. It returns nil if nothing would be
// visible.
func (r *Raster) newStroke(pts []geom.Point, width float64) *stroke {
	if len(pts) == 0 {
		return nil
	}
	width = penWidth(width, r.dst.Bounds())
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	minX, minY = clampCoord(minX), clampCoord(minY)
	maxX, maxY = clampCoord(maxX), clampCoord(maxY)
	pad := int(math.Ceil(width/2)) + 1
	bounds := image.Rect(
		int(math.Floor(minX))-pad, int(math.Floor(minY))-pad,
		int(math.Ceil(maxX))+pad+1, int(math.Ceil(maxY))+pad+1,
	).Add(r.origin).Intersect(r.dst.Bounds())
	if bounds.Empty() {
		return nil
	}
	return &stroke{mask: image.NewAlpha(bounds), disc: discOffsets(width), pad: pad}
}

// discOffsets lists the pixel offsets covered by a round pen of the given
// width.
func discOffsets(width float64) []image.Point {
	rad := width / 2
	if rad < 0.5 {
		return []image.Point{{}}
	}
	n := int(math.Ceil(rad))
	limit := rad * rad
	var out []image.Point
	for dy := -n; dy <= n; dy++ {
		for dx := -n; dx <= n; dx++ {
			if float64(dx*dx+dy*dy) <= limit {
				out = append(out, image.Pt(dx, dy))
			}
		}
	}
	if len(out) == 0 {
		out = append(out, image.Point{})
	}
	return out
}

func (s *stroke) dot(p image.Point) {
	b := s.mask.Bounds()
	for _, o := range s.disc {
		q := p.Add(o)
		if q.In(b) {
			s.mask.Pix[s.mask.PixOffset(q.X, q.Y)] = 0xff
		}
	}
}

// segment stamps the pen along a Bresenham walk from a to b.
func (s *stroke) segment(a, b image.Point) {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		s.dot(image.Pt(x0, y0))
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
