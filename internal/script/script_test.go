package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/geom"
	"github.com/example/drawboard/internal/shape"
)

func TestRunScript(t *testing.T) {
	src := `# two shapes then undo
resize 200 100
shape rect
style #FF0000 4 50
drag 10 10 50 40
shape arrow
down 0 0
move 20 20
up 60 30
undo
`
	b := board.New()
	if err := Run(b, strings.NewReader(src)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c, u := b.History(); c != 1 || u != 1 {
		t.Fatalf("stacks = %d/%d, want 1/1", c, u)
	}
	rect := b.Committed()[0]
	if rect.Kind != shape.Quadrilateral {
		t.Fatalf("kind = %v", rect.Kind)
	}
	want := geom.QuadrilateralPath(geom.Pt(10, 10), geom.Pt(50, 40))
	if len(rect.Points) != len(want) || rect.Points[2] != want[2] {
		t.Fatalf("rect points = %v, want %v", rect.Points, want)
	}
	if rect.Style.Width != 4 || rect.Style.Alpha != 127 {
		t.Fatalf("rect style = %+v", rect.Style)
	}
	arrow := b.Undone()[0]
	if arrow.Kind != shape.Arrow || arrow.End != geom.Pt(60, 30) {
		t.Fatalf("undone arrow = %+v", arrow)
	}
	if b.Size().X != 200 {
		t.Fatalf("size = %v", b.Size())
	}
}

func TestDragSteps(t *testing.T) {
	b := board.New()
	if err := Exec(b, "drag 0 0 10 0 5"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	pts := b.Committed()[0].Points
	// down, four moves, up
	if len(pts) != 6 {
		t.Fatalf("freehand drag has %d points, want 6: %v", len(pts), pts)
	}
	if pts[1] != geom.Pt(2, 0) || pts[5] != geom.Pt(10, 0) {
		t.Fatalf("points = %v", pts)
	}
}

func TestExecErrors(t *testing.T) {
	b := board.New()
	if err := Exec(b, "fly 1 2"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("unknown command err = %v", err)
	}
	if err := Exec(b, "color #XYZ"); !errors.Is(err, shape.ErrInvalidColor) {
		t.Fatalf("bad colour err = %v", err)
	}
	if err := Exec(b, "width -2"); !errors.Is(err, board.ErrInvalidWidth) {
		t.Fatalf("bad width err = %v", err)
	}
	for _, line := range []string{"down 1", "move a b", "shape hexagon", "resize 0 10", "drag 0 0 1 1 0", "alpha x",
		"drag NaN 0 10 10", "down Inf 1", "move 1 -inf", "width NaN", "drag 0 0 1e400 1", "drag 0 0 1 1 20000"} {
		if err := Exec(b, line); err == nil {
			t.Fatalf("Exec(%q) succeeded", line)
		}
	}
	if c, _ := b.History(); c != 0 {
		t.Fatal("failed commands changed history")
	}
}

func TestRunReportsLine(t *testing.T) {
	err := Run(board.New(), strings.NewReader("undo\n\nbogus\n"))
	if err == nil || !strings.HasPrefix(err.Error(), "line 3:") {
		t.Fatalf("err = %v, want line 3 prefix", err)
	}
}

func TestHintAndClear(t *testing.T) {
	b := board.New()
	for _, line := range []string{"hint draw  something here", "drag 0 0 5 5", "clear"} {
		if err := Exec(b, line); err != nil {
			t.Fatalf("Exec(%q): %v", line, err)
		}
	}
	if b.Hint() != "draw something here" {
		t.Fatalf("hint = %q", b.Hint())
	}
	if !b.HintVisible() {
		t.Fatal("hint hidden after clear")
	}
}

func TestUsageSorted(t *testing.T) {
	u := Usage()
	if len(u) == 0 || !strings.HasPrefix(u[0], "alpha") {
		t.Fatalf("usage = %v", u)
	}
}
