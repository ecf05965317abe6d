package appstate

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/geom"
	"github.com/example/drawboard/internal/shape"
)

func newTestApp(t *testing.T, opts ...Option) *AppState {
	t.Helper()
	return New(append([]Option{WithCanvasSize(200, 100)}, opts...)...)
}

type point struct{ x, y float32 }

func press(a *AppState, p point) {
	a.handleMouse(mouse.Event{X: p.x, Y: p.y, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
}

func moveTo(a *AppState, p point) {
	a.handleMouse(mouse.Event{X: p.x, Y: p.y, Direction: mouse.DirNone})
}

func release(a *AppState, p point) {
	a.handleMouse(mouse.Event{X: p.x, Y: p.y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

// canvasPoint converts canvas coordinates to window coordinates.
func canvasPoint(a *AppState, x, y float32) point {
	cr := a.canvasRect()
	return point{float32(cr.Min.X) + x, float32(cr.Min.Y) + y}
}

func inside(r image.Rectangle) point {
	return point{float32(r.Min.X + 2), float32(r.Min.Y + 2)}
}

func TestNewSizesBoardToCanvas(t *testing.T) {
	a := newTestApp(t)
	if got := a.Board().Size(); got != image.Pt(200, 100) {
		t.Fatalf("board size = %v, want 200x100", got)
	}
	a.resize(a.toolbar.width+300, tabHeight+bottomHeight+150)
	if got := a.Board().Size(); got != image.Pt(300, 150) {
		t.Fatalf("board size after resize = %v", got)
	}
	a.resize(10, 10)
	if got := a.Board().Size(); got != (image.Point{}) {
		t.Fatalf("board size in tiny window = %v", got)
	}
}

func TestCanvasGestureCommitsInCanvasCoordinates(t *testing.T) {
	a := newTestApp(t, WithBoardOptions(board.WithKind(shape.Line)))
	press(a, canvasPoint(a, 10, 20))
	moveTo(a, canvasPoint(a, 30, 20))
	// leaving the canvas keeps the gesture alive
	moveTo(a, point{1, 1})
	release(a, canvasPoint(a, 50, 25))
	got := a.Board().Committed()
	if len(got) != 1 {
		t.Fatalf("committed %d shapes, want 1", len(got))
	}
	if got[0].Start != geom.Pt(10, 20) || got[0].End != geom.Pt(50, 25) {
		t.Fatalf("line = %+v", got[0])
	}
}

func TestToolbarClickSelectsKindAndStyle(t *testing.T) {
	a := New(WithCanvasSize(400, 600))
	for _, cb := range a.toolbar.buttons {
		lb, ok := cb.Button.(*LabelButton)
		if !ok || lb.label != "C:Circle" {
			continue
		}
		press(a, inside(cb.Rect()))
	}
	if a.Board().Kind() != shape.Circle {
		t.Fatalf("kind = %v, want circle", a.Board().Kind())
	}
	for _, cb := range a.toolbar.buttons {
		if wb, ok := cb.Button.(*WidthButton); ok && wb.width == 20 {
			press(a, inside(cb.Rect()))
		}
		if ab, ok := cb.Button.(*AlphaButton); ok && ab.percent == 50 {
			press(a, inside(cb.Rect()))
		}
	}
	st := a.Board().Style()
	if st.Width != 20 || st.Alpha != shape.AlphaFromPercent(50) {
		t.Fatalf("style = %+v", st)
	}
	if c, _ := a.Board().History(); c != 0 {
		t.Fatal("toolbar clicks committed shapes")
	}
}

func TestToolbarButtonsDoNotOverlap(t *testing.T) {
	a := newTestApp(t)
	for i, x := range a.toolbar.buttons {
		if x.Rect().Empty() {
			t.Fatalf("button %d has no area", i)
		}
		for j, y := range a.toolbar.buttons[i+1:] {
			if x.Rect().Overlaps(y.Rect()) {
				t.Fatalf("buttons %d and %d overlap: %v %v", i, i+1+j, x.Rect(), y.Rect())
			}
		}
	}
}

func TestKeyShortcuts(t *testing.T) {
	a := newTestApp(t, WithBoardOptions(board.WithKind(shape.Quadrilateral)))
	drag := func() {
		press(a, canvasPoint(a, 1, 1))
		release(a, canvasPoint(a, 9, 9))
	}
	drag()
	drag()

	a.handleKey(key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl, Direction: key.DirPress})
	if c, u := a.Board().History(); c != 1 || u != 1 {
		t.Fatalf("after ctrl+z stacks = %d/%d", c, u)
	}
	a.handleKey(key.Event{Rune: 'Z', Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress})
	if c, u := a.Board().History(); c != 2 || u != 0 {
		t.Fatalf("after ctrl+shift+z stacks = %d/%d", c, u)
	}
	a.handleKey(key.Event{Code: key.CodeZ, Modifiers: key.ModControl, Direction: key.DirPress})
	a.handleKey(key.Event{Code: key.CodeY, Modifiers: key.ModControl, Direction: key.DirPress})
	if c, u := a.Board().History(); c != 2 || u != 0 {
		t.Fatalf("after code-only ctrl+z ctrl+y stacks = %d/%d", c, u)
	}
	a.handleKey(key.Event{Rune: 'E', Code: key.CodeE, Modifiers: key.ModShift, Direction: key.DirPress})
	if a.Board().Kind() != shape.Ellipse {
		t.Fatalf("kind = %v, want ellipse", a.Board().Kind())
	}
	a.handleKey(key.Event{Rune: 'a', Code: key.CodeA, Direction: key.DirRelease})
	if a.Board().Kind() != shape.Ellipse {
		t.Fatal("key release triggered an action")
	}
	a.handleKey(key.Event{Code: key.CodeDeleteForward, Direction: key.DirPress})
	if c, u := a.Board().History(); c != 0 || u != 0 {
		t.Fatalf("after delete stacks = %d/%d", c, u)
	}
	if a.handleKey(key.Event{Rune: 'x', Code: key.CodeX, Direction: key.DirPress}) {
		t.Fatal("unbound key closed the window")
	}
	if !a.handleKey(key.Event{Rune: 'q', Code: key.CodeQ, Direction: key.DirPress}) {
		t.Fatal("q did not close the window")
	}
}

func TestSaveWritesExportedImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out.png")
	a := newTestApp(t, WithOutput(out), WithBoardOptions(board.WithHint("draw here")))
	a.trigger("save")

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open saved file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Size() != image.Pt(200, 100) {
		t.Fatalf("saved size = %v", img.Bounds().Size())
	}
	// the hint is not part of the export
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, g, bl, _ := img.At(x, y).RGBA(); r != 0xffff || g != 0xffff || bl != 0xffff {
				t.Fatalf("pixel (%d,%d) not blank", x, y)
			}
		}
	}
	if !strings.HasPrefix(a.message, "saved ") {
		t.Fatalf("message = %q", a.message)
	}
}

func TestSaveDirUsesTimestamp(t *testing.T) {
	old := now
	now = func() time.Time { return time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC) }
	t.Cleanup(func() { now = old })

	dir := t.TempDir()
	a := newTestApp(t, WithSaveDir(dir))
	a.trigger("save")
	if _, err := os.Stat(filepath.Join(dir, "drawboard-20240304-050607.png")); err != nil {
		t.Fatalf("timestamped file missing: %v", err)
	}
}

func TestCopyAndPaste(t *testing.T) {
	var copied image.Image
	oldWrite, oldRead := writeClipboard, readClipboard
	writeClipboard = func(img image.Image) error { copied = img; return nil }
	readClipboard = func() (image.Image, error) { return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil }
	t.Cleanup(func() { writeClipboard, readClipboard = oldWrite, oldRead })

	a := newTestApp(t)
	a.trigger("copy")
	if copied == nil || copied.Bounds().Size() != image.Pt(200, 100) {
		t.Fatalf("copied = %v", copied)
	}
	a.trigger("paste")
	sc := a.Board().Scene()
	if sc.Background == nil || sc.Background.Bounds().Size() != image.Pt(200, 100) {
		t.Fatalf("background = %v", sc.Background)
	}
}

func TestCaptureFailureLeavesBackground(t *testing.T) {
	old := takeScreenshot
	takeScreenshot = func(context.Context) (image.Image, error) { return nil, errors.New("no portal") }
	t.Cleanup(func() { takeScreenshot = old })

	a := newTestApp(t)
	a.trigger("capture")
	a.finishCapture(<-a.captured)
	if a.Board().Background() != nil {
		t.Fatal("failed capture set a background")
	}
	if !strings.Contains(a.message, "no portal") {
		t.Fatalf("message = %q", a.message)
	}
	if a.capturing {
		t.Fatal("capture still marked in progress")
	}
}

func TestCaptureRunsOffTheEventLoop(t *testing.T) {
	unblock := make(chan struct{})
	old := takeScreenshot
	takeScreenshot = func(context.Context) (image.Image, error) {
		<-unblock
		return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
	}
	t.Cleanup(func() { takeScreenshot = old })

	a := newTestApp(t)
	a.trigger("capture")
	// the screenshot is still blocked, yet the trigger returned
	if !a.capturing || a.Board().Background() != nil {
		t.Fatal("capture did not start asynchronously")
	}
	a.trigger("capture")
	if !strings.Contains(a.message, "already in progress") {
		t.Fatalf("second capture message = %q", a.message)
	}
	a.applyCapture()
	if a.Board().Background() != nil {
		t.Fatal("background applied before the screenshot finished")
	}

	close(unblock)
	a.finishCapture(<-a.captured)
	if a.Board().Background() == nil || a.capturing {
		t.Fatal("finished screenshot not applied")
	}
}

func TestDrawFrameRendersBoardInCanvas(t *testing.T) {
	a := newTestApp(t, WithBoardOptions(board.WithKind(shape.Line)))
	if err := a.Board().SetColor("#FF0000"); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	press(a, canvasPoint(a, 10, 50))
	release(a, canvasPoint(a, 150, 50))

	dst := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
	a.drawFrame(dst)
	cr := a.canvasRect()
	got := dst.RGBAAt(cr.Min.X+80, cr.Min.Y+50)
	if got.R < 200 || got.G > 50 || got.B > 50 {
		t.Fatalf("line pixel = %v, want red", got)
	}
	if got := dst.RGBAAt(cr.Min.X+80, cr.Min.Y+90); got != a.theme.Canvas {
		t.Fatalf("blank canvas pixel = %v, want %v", got, a.theme.Canvas)
	}
	if len(a.shortcutRects) != len(bottomShortcuts) {
		t.Fatalf("shortcut rects = %d", len(a.shortcutRects))
	}
}

func TestShortcutBarTriggersAction(t *testing.T) {
	a := New(WithCanvasSize(600, 400))
	quitIdx := -1
	for i, sc := range bottomShortcuts {
		if sc.Action == "quit" {
			quitIdx = i
		}
	}
	press(a, inside(a.shortcutRects[quitIdx]))
	if !a.quit {
		t.Fatal("quit shortcut not triggered")
	}
}
