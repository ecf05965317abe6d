package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/example/drawboard/internal/geom"
	"github.com/example/drawboard/internal/shape"
)

// recorder logs every primitive it receives.
type recorder struct {
	calls  []string
	styles []shape.Style
	texts  []string
}

func (r *recorder) DrawImage(img image.Image) {
	r.calls = append(r.calls, fmt.Sprintf("image %v", img.Bounds().Size()))
}

func (r *recorder) DrawPolyline(pts []geom.Point, st shape.Style) {
	r.calls = append(r.calls, fmt.Sprintf("polyline %v", pts))
	r.styles = append(r.styles, st)
}

func (r *recorder) DrawClosedPath(pts []geom.Point, st shape.Style) {
	r.calls = append(r.calls, fmt.Sprintf("path %v", pts))
	r.styles = append(r.styles, st)
}

func (r *recorder) DrawCircle(c geom.Point, radius float64, st shape.Style) {
	r.calls = append(r.calls, fmt.Sprintf("circle %v %g", c, radius))
	r.styles = append(r.styles, st)
}

func (r *recorder) DrawOval(l, t, rt, b float64, st shape.Style) {
	r.calls = append(r.calls, fmt.Sprintf("oval %g %g %g %g", l, t, rt, b))
	r.styles = append(r.styles, st)
}

func (r *recorder) DrawLine(p1, p2 geom.Point, st shape.Style) {
	r.calls = append(r.calls, fmt.Sprintf("line %v %v", p1, p2))
	r.styles = append(r.styles, st)
}

func (r *recorder) DrawText(text string, origin geom.Point, ts TextStyle, maxWidth float64) {
	r.calls = append(r.calls, fmt.Sprintf("text %v %g", origin, maxWidth))
	r.texts = append(r.texts, text)
}

func kinds(calls []string) string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = strings.Fields(c)[0]
	}
	return strings.Join(out, ",")
}

func TestDrawOrder(t *testing.T) {
	red := shape.DefaultStyle()
	red.Color = color.RGBA{255, 0, 0, 255}
	sc := Scene{
		Size:       image.Pt(100, 80),
		Background: image.NewRGBA(image.Rect(0, 0, 100, 80)),
		Shapes: []shape.Shape{
			{Kind: shape.Line, Start: geom.Pt(1, 1), End: geom.Pt(5, 5), Style: red},
			{Kind: shape.Circle, Start: geom.Pt(10, 10), Radius: 3, Style: shape.DefaultStyle()},
		},
		Live:        shape.Shape{Kind: shape.FreehandPath, Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Style: shape.DefaultStyle()},
		Hint:        "draw here",
		HintVisible: true,
	}
	rec := &recorder{}
	Draw(sc, rec)
	if got, want := kinds(rec.calls), "image,line,circle,polyline,text"; got != want {
		t.Fatalf("draw order %s, want %s", got, want)
	}
	if rec.styles[0] != red {
		t.Fatalf("first shape drawn with %+v, want its own style", rec.styles[0])
	}
	if rec.calls[4] != "text (8,8) 84" {
		t.Fatalf("hint placement %q", rec.calls[4])
	}
}

func TestDrawSkipsHiddenHint(t *testing.T) {
	rec := &recorder{}
	Draw(Scene{Size: image.Pt(10, 10), Hint: "x"}, rec)
	for _, c := range rec.calls {
		if strings.HasPrefix(c, "text") {
			t.Fatal("hint drawn while hidden")
		}
	}
}

func TestDrawSkipsUnstartedArrowAndLine(t *testing.T) {
	for _, k := range []shape.Kind{shape.Arrow, shape.Line} {
		rec := &recorder{}
		Draw(Scene{Live: shape.Shape{Kind: k}, HintVisible: true}, rec)
		if got := kinds(rec.calls); got != "text" {
			t.Fatalf("%v: got %s, want only the hint", k, got)
		}
	}
}

func TestDrawArrowThreeSegments(t *testing.T) {
	rec := &recorder{}
	s := shape.Shape{Kind: shape.Arrow, Start: geom.Pt(0, 0), End: geom.Pt(100, 0), Style: shape.DefaultStyle()}
	DrawShape(rec, s)
	if len(rec.calls) != 3 {
		t.Fatalf("arrow drew %d primitives, want 3: %v", len(rec.calls), rec.calls)
	}
	if rec.calls[0] != "line (0,0) (100,0)" {
		t.Fatalf("shaft = %q", rec.calls[0])
	}
	for _, c := range rec.calls[1:] {
		if !strings.HasPrefix(c, "line (100,0) ") {
			t.Fatalf("head segment %q does not start at the tip", c)
		}
	}
}

func TestDrawDegenerateArrow(t *testing.T) {
	rec := &recorder{}
	p := geom.Pt(5, 5)
	DrawShape(rec, shape.Shape{Kind: shape.Arrow, Start: p, End: p, Style: shape.DefaultStyle()})
	if len(rec.calls) != 3 {
		t.Fatalf("degenerate arrow drew %v", rec.calls)
	}
}

func TestDrawEllipseNormalisesCorners(t *testing.T) {
	rec := &recorder{}
	DrawShape(rec, shape.Shape{Kind: shape.Ellipse, Start: geom.Pt(30, 40), End: geom.Pt(10, 20), Style: shape.DefaultStyle()})
	if len(rec.calls) != 1 || rec.calls[0] != "oval 10 20 30 40" {
		t.Fatalf("ellipse = %v", rec.calls)
	}
}

func TestDrawEmptyPathIsNoop(t *testing.T) {
	rec := &recorder{}
	for _, k := range []shape.Kind{shape.FreehandPath, shape.Triangle, shape.Quadrilateral} {
		DrawShape(rec, shape.Shape{Kind: k})
	}
	if len(rec.calls) != 0 {
		t.Fatalf("empty paths drew %v", rec.calls)
	}
}
