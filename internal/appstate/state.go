// Package appstate hosts a drawing board in a shiny window: it routes mouse
// and keyboard events to the board, draws the toolbar chrome and runs the
// save, clipboard and screenshot actions.
package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/capture"
	"github.com/example/drawboard/internal/clipboard"
	"github.com/example/drawboard/internal/notify"
	"github.com/example/drawboard/internal/render"
	"github.com/example/drawboard/internal/shape"
	"github.com/example/drawboard/internal/theme"
)

const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 600
	messageDuration     = 2 * time.Second
	captureTimeout      = time.Minute
)

var (
	writeClipboard = clipboard.WriteImage
	readClipboard  = clipboard.ReadImage
	takeScreenshot = func(ctx context.Context) (image.Image, error) {
		return capture.Screenshot(ctx, capture.Options{})
	}
	now = time.Now
)

// AppState holds the board and window state for the UI.
type AppState struct {
	Output  string
	SaveDir string

	board    *board.Board
	theme    *theme.Theme
	notifier *notify.Notifier
	toolbar  *toolbar

	actions map[string]func()
	keys    keymap

	width, height int
	drawing       bool
	hoverShortcut int
	shortcutRects []image.Rectangle
	message       string
	messageUntil  time.Time
	quit          bool

	boardOpts []board.Option
	updateCh  chan struct{}
	onClose   func()

	capturing bool
	captured  chan captureResult
}

// captureResult carries a finished screenshot back to the event loop.
type captureResult struct {
	img image.Image
	err error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithBoardOptions forwards options to the board the window hosts.
func WithBoardOptions(opts ...board.Option) Option {
	return func(a *AppState) { a.boardOpts = append(a.boardOpts, opts...) }
}

// WithOutput sets the file written by the save action.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSaveDir sets the directory for timestamped saves when no output file
// is configured.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithNotifier sets the desktop notifier used by save, copy and background
// actions.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithCanvasSize sets the initial drawing area size in pixels.
func WithCanvasSize(w, h int) Option {
	return func(a *AppState) { a.width, a.height = w, h }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		width:         defaultCanvasWidth,
		height:        defaultCanvasHeight,
		hoverShortcut: -1,
		updateCh:      make(chan struct{}, 1),
		captured:      make(chan captureResult, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	a.board = board.New(append(a.boardOpts, board.WithRedraw(a.RequestRedraw))...)
	a.toolbar = newToolbar(a)
	a.width += a.toolbar.width
	a.height += tabHeight + bottomHeight
	a.registerActions()
	a.resize(a.width, a.height)
	return a
}

// Board returns the hosted board.
func (a *AppState) Board() *board.Board { return a.board }

// RequestRedraw asks the window to repaint. It is safe to call from any
// goroutine and never blocks.
func (a *AppState) RequestRedraw() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) registerActions() {
	a.actions = map[string]func(){}
	a.keys = keymap{}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		a.actions[name] = fn
		a.keys.add(name, keys)
	}

	for _, kk := range kindKeys {
		k := kk.kind
		register("shape:"+k.String(), shortcutList{{Rune: kk.key}}, func() {
			if err := a.board.SetShapeKind(k); err != nil {
				a.flash(err.Error())
			}
		})
	}
	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, func() {
		if !a.board.Undo() {
			a.flash("nothing to undo")
		}
	})
	register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, func() {
		if !a.board.Redo() {
			a.flash("nothing to redo")
		}
	})
	register("clear", shortcutList{{Code: key.CodeDeleteForward}}, func() {
		if a.board.Clear() {
			a.flash("cleared")
		}
	})
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, a.save)
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, a.copy)
	register("paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, a.paste)
	register("capture", shortcutList{{Rune: 'n', Modifiers: key.ModControl}}, a.captureBackground)
	register("quit", shortcutList{{Rune: 'q'}}, func() { a.quit = true })
}

// trigger runs the named action.
func (a *AppState) trigger(name string) {
	if fn, ok := a.actions[name]; ok {
		fn()
	}
	a.RequestRedraw()
}

func (a *AppState) setColor(c color.RGBA) {
	if err := a.board.SetColor(shape.FormatColor(c)); err != nil {
		a.flash(err.Error())
	}
}

func (a *AppState) setWidth(w float64) {
	if err := a.board.SetStrokeWidth(w); err != nil {
		a.flash(err.Error())
	}
}

func (a *AppState) setAlpha(p int) { a.board.SetAlpha(p) }

func (a *AppState) flash(msg string) {
	log.Print(msg)
	a.message = msg
	a.messageUntil = now().Add(messageDuration)
	a.RequestRedraw()
}

func (a *AppState) messageVisible() bool {
	return a.message != "" && now().Before(a.messageUntil)
}

// canvasRect is the board area in window coordinates.
func (a *AppState) canvasRect() image.Rectangle {
	origin := image.Pt(a.toolbar.width, tabHeight)
	return image.Rectangle{
		Min: origin,
		Max: image.Pt(max(a.width, origin.X), max(a.height-bottomHeight, origin.Y)),
	}
}

func (a *AppState) resize(w, h int) {
	a.width, a.height = w, h
	a.layoutShortcuts()
	cr := a.canvasRect()
	a.board.SurfaceResized(cr.Dx(), cr.Dy())
}

// exportImage renders the committed scene without the placeholder hint.
func (a *AppState) exportImage() *image.RGBA {
	sc := a.board.Scene()
	sc.HintVisible = false
	return render.RenderImage(sc, a.theme.Canvas)
}

func (a *AppState) savePath() string {
	if a.Output != "" {
		return a.Output
	}
	name := fmt.Sprintf("drawboard-%s.png", now().Format("20060102-150405"))
	return filepath.Join(a.SaveDir, name)
}

func (a *AppState) save() {
	path := a.savePath()
	if err := writePNG(path, a.exportImage()); err != nil {
		a.flash(fmt.Sprintf("save: %v", err))
		return
	}
	a.notifier.Save(path)
	a.flash("saved " + path)
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (a *AppState) copy() {
	if err := writeClipboard(a.exportImage()); err != nil {
		a.flash(fmt.Sprintf("copy: %v", err))
		return
	}
	a.notifier.Copy("drawing")
	a.flash("drawing copied to clipboard")
}

func (a *AppState) paste() {
	img, err := readClipboard()
	if err != nil {
		a.flash(fmt.Sprintf("paste: %v", err))
		return
	}
	a.board.SetBackgroundImage(img)
	a.notifier.Background("clipboard")
	a.flash("background set from clipboard")
}

// captureBackground starts a screenshot in the background so the window
// keeps painting while the portal dialog is open. The result is applied by
// applyCapture on the event loop.
func (a *AppState) captureBackground() {
	if a.capturing {
		a.flash("screenshot already in progress")
		return
	}
	a.capturing = true
	a.flash("capturing screen")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
		defer cancel()
		img, err := takeScreenshot(ctx)
		a.captured <- captureResult{img: img, err: err}
		a.RequestRedraw()
	}()
}

// applyCapture installs a finished screenshot, if one is waiting.
func (a *AppState) applyCapture() {
	select {
	case res := <-a.captured:
		a.finishCapture(res)
	default:
	}
}

func (a *AppState) finishCapture(res captureResult) {
	a.capturing = false
	if res.err != nil {
		a.flash(fmt.Sprintf("screenshot: %v", res.err))
		return
	}
	a.board.SetBackgroundImage(res.img)
	a.notifier.Background("screenshot")
	a.flash("background set from screenshot")
}

// handleMouse routes a window mouse event. Presses on the canvas start a
// gesture that keeps receiving moves until the button is released, even
// when the pointer leaves the canvas.
func (a *AppState) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	cr := a.canvasRect()
	cx := float64(e.X) - float64(cr.Min.X)
	cy := float64(e.Y) - float64(cr.Min.Y)

	if a.drawing {
		switch {
		case e.Direction == mouse.DirNone:
			a.board.PointerMove(cx, cy)
		case e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
			a.drawing = false
			a.board.PointerUp(cx, cy)
		}
		return
	}

	if a.messageVisible() && e.Direction == mouse.DirPress {
		a.messageUntil = time.Time{}
		a.RequestRedraw()
	}

	hover := -1
	if p.Y < a.height-bottomHeight {
		hover = a.toolbar.hit(p)
	}
	if hover != a.toolbar.hover {
		a.toolbar.hover = hover
		a.RequestRedraw()
	}
	hoverShortcut := -1
	for i, r := range a.shortcutRects {
		if p.In(r) {
			hoverShortcut = i
		}
	}
	if hoverShortcut != a.hoverShortcut {
		a.hoverShortcut = hoverShortcut
		a.RequestRedraw()
	}

	if e.Direction != mouse.DirPress || e.Button != mouse.ButtonLeft {
		return
	}
	switch {
	case hover >= 0:
		a.toolbar.buttons[hover].Activate()
		a.RequestRedraw()
	case hoverShortcut >= 0:
		a.trigger(bottomShortcuts[hoverShortcut].Action)
	case p.In(cr):
		a.drawing = true
		a.board.PointerDown(cx, cy)
	}
}

// handleKey runs the action bound to a key press and reports whether the
// window should close.
func (a *AppState) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return a.quit
	}
	if name, ok := a.keys.lookup(e); ok {
		a.trigger(name)
	}
	return a.quit
}

// Run opens the window and blocks until it is closed.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the event loop on screen s.
func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: "drawboard"})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			if e.WidthPx > 0 && e.HeightPx > 0 {
				a.resize(e.WidthPx, e.HeightPx)
			}
		case paint.Event:
			a.applyCapture()
			a.paint(s, w)
		case mouse.Event:
			a.handleMouse(e)
		case key.Event:
			if a.handleKey(e) {
				return
			}
		case error:
			log.Print(e)
		}
	}
}

func (a *AppState) paint(s screen.Screen, w screen.Window) {
	b, err := s.NewBuffer(image.Pt(a.width, a.height))
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	a.drawFrame(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func (a *AppState) notifyClose() {
	if a.onClose != nil {
		a.onClose()
	}
}
