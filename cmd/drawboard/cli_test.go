package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/capture"
	"github.com/example/drawboard/internal/config"
	"github.com/example/drawboard/internal/shape"
	"github.com/example/drawboard/internal/theme"
)

func testRoot() *root {
	return &root{program: "drawboard", config: config.New(), activeTheme: theme.Default()}
}

func TestRenderWritesScriptResult(t *testing.T) {
	out := filepath.Join(t.TempDir(), "board.png")
	cmd, err := parseRenderCmd([]string{"-size", "60x40", "-output", out, "-script", "-", "-hint", "hidden"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var stdout bytes.Buffer
	cmd.stdin = strings.NewReader("shape line\ncolor #FF0000\nwidth 4\ndrag 0 20 59 20\n")
	cmd.stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Size() != image.Pt(60, 40) {
		t.Fatalf("size = %v", img.Bounds().Size())
	}
	r, g, b, _ := img.At(30, 20).RGBA()
	if r>>8 < 200 || g>>8 > 50 || b>>8 > 50 {
		t.Fatalf("line pixel = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(30, 5).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatal("blank area is not the canvas colour")
	}
	if !strings.Contains(stdout.String(), "1 shapes") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRenderScriptErrorNamesLine(t *testing.T) {
	cmd, err := parseRenderCmd([]string{"-output", filepath.Join(t.TempDir(), "x.png"), "-script", "-"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdin = strings.NewReader("undo\nfly 1 2\n")
	err = cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v, want line 2", err)
	}
}

func TestRenderToClipboard(t *testing.T) {
	original := copyToClipboardFn
	var copied image.Image
	copyToClipboardFn = func(img image.Image) error { copied = img; return nil }
	t.Cleanup(func() { copyToClipboardFn = original })

	cmd, err := parseRenderCmd([]string{"-to-clip", "-size", "10x10"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdout = &bytes.Buffer{}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if copied == nil || copied.Bounds().Dx() != 10 {
		t.Fatalf("copied = %v", copied)
	}
}

func TestParseRenderRequiresDestination(t *testing.T) {
	_, err := parseRenderCmd([]string{"-size", "10x10"}, testRoot())
	if err == nil || !strings.Contains(err.Error(), "-to-clipboard") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseSize(t *testing.T) {
	good := map[string]image.Point{"800x600": image.Pt(800, 600), " 3X4 ": image.Pt(3, 4)}
	for in, want := range good {
		got, err := parseSize(in)
		if err != nil || got != want {
			t.Fatalf("parseSize(%q) = %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "800", "0x10", "ax1", "10x-1"} {
		if _, err := parseSize(in); err == nil {
			t.Fatalf("parseSize(%q) succeeded", in)
		}
	}
}

func TestBoardFlagsDefaultFromConfig(t *testing.T) {
	r := testRoot()
	r.config.Shape = "arrow"
	r.config.Style = config.Style{Color: "#00FF00", Width: 3, Alpha: 50}
	r.config.Hint = "sketch"
	cmd, err := parseInteractiveCmd(nil, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts, err := cmd.board.options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	b := board.New(opts...)
	if b.Kind() != shape.Arrow || b.Hint() != "sketch" {
		t.Fatalf("kind %v hint %q", b.Kind(), b.Hint())
	}
	st := b.Style()
	if st.Color.G != 255 || st.Width != 3 || st.Alpha != shape.AlphaFromPercent(50) {
		t.Fatalf("style = %+v", st)
	}

	// flags override the configuration
	cmd, err = parseInteractiveCmd([]string{"-shape", "circle", "-alpha", "100"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts, err = cmd.board.options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	b = board.New(opts...)
	if b.Kind() != shape.Circle || b.Style().Alpha != 255 {
		t.Fatalf("kind %v alpha %d", b.Kind(), b.Style().Alpha)
	}
}

func TestBoardFlagsRejectBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"-shape", "hexagon"},
		{"-color", "#12"},
		{"-width", "0"},
		{"-width", "Inf"},
		{"-width", "NaN"},
		{"-size", "big"},
	} {
		cmd, err := parseInteractiveCmd(args, testRoot())
		if err != nil {
			t.Fatalf("parse %v: %v", args, err)
		}
		_, err = cmd.board.options()
		if err == nil {
			t.Fatalf("options accepted %v", args)
		}
		if args[0] == "-width" && !errors.Is(err, board.ErrInvalidWidth) {
			t.Fatalf("options(%v) = %v, want ErrInvalidWidth", args, err)
		}
	}
}

func TestInteractiveSession(t *testing.T) {
	out := filepath.Join(t.TempDir(), "session.png")
	cmd, err := parseInteractiveCmd([]string{"-size", "20x20"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var stdout, stderr bytes.Buffer
	cmd.stdin = strings.NewReader("shape rect\ndrag 0 0 5 5\nundo\nbogus\nsave " + out + "\nexit\nredo\n")
	cmd.stdout = &stdout
	cmd.stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"committed 1 undone 0", "committed 0 undone 1", "saved " + out} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout.String())
		}
	}
	if n := strings.Count(stdout.String(), "committed 1 undone 0"); n != 1 {
		t.Fatalf("commands after exit were run: %d matches", n)
	}
	if !strings.Contains(stderr.String(), "unknown command") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}

func TestRenderRejectsNonFiniteScript(t *testing.T) {
	cmd, err := parseRenderCmd([]string{"-output", filepath.Join(t.TempDir(), "x.png"), "-script", "-", "-size", "40x40"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdin = strings.NewReader("shape line\ndrag NaN 0 10 10\n")
	cmd.stdout = &bytes.Buffer{}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v, want a line 2 error", err)
	}
}

func TestRenderFarGeometryFinishes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "far.png")
	cmd, err := parseRenderCmd([]string{"-output", out, "-script", "-", "-size", "40x40"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdin = strings.NewReader("shape circle\ndrag 20 20 20 3e6\nshape line\ndrag 0 20 2e7 20\n")
	cmd.stdout = &bytes.Buffer{}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestWindowRunCaptureError(t *testing.T) {
	original := captureScreenshotFn
	sentinel := errors.New("denied")
	captureScreenshotFn = func(context.Context, capture.Options) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenshotFn = original })

	cmd, err := parseWindowCmd([]string{"-background-screen"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to contain %q, got %v", want, err)
		}
	}
}

func TestWindowRejectsMissingBackground(t *testing.T) {
	cmd, err := parseWindowCmd([]string{"-background", filepath.Join(t.TempDir(), "missing.png")}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "failed to load background") {
		t.Fatalf("err = %v", err)
	}
}

func TestUsageErrorRendersHelp(t *testing.T) {
	r := newRoot()
	help := (&UsageError{of: r}).Error()
	for _, want := range []string{"Usage: drawboard", "render", "-notify-save"} {
		if !strings.Contains(help, want) {
			t.Fatalf("root help missing %q:\n%s", want, help)
		}
	}
	cmd, err := parseRenderCmd([]string{"-to-clipboard"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	help = (&UsageError{of: cmd}).Error()
	for _, want := range []string{"drag <x0> <y0> <x1> <y1> [steps]", "-script"} {
		if !strings.Contains(help, want) {
			t.Fatalf("render help missing %q:\n%s", want, help)
		}
	}
}

func TestListCommands(t *testing.T) {
	var buf bytes.Buffer
	printShapes(&buf)
	if !strings.Contains(buf.String(), "rect") || !strings.Contains(buf.String(), "rectangle") {
		t.Fatalf("shapes = %q", buf.String())
	}
	buf.Reset()
	printColors(&buf)
	for _, want := range []string{"red", "#FF0000", "widths: 2 5 10 20 40", "alpha: 25% 50% 75% 100%"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("colors missing %q:\n%s", want, buf.String())
		}
	}
}

func TestConfigPrint(t *testing.T) {
	r := testRoot()
	r.config.Theme = "dark"
	cmd, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	cmd.stdout = &buf
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "theme = dark") || !strings.Contains(buf.String(), "[style]") {
		t.Fatalf("config print = %q", buf.String())
	}
}

func TestRenderShadowGrowsOutput(t *testing.T) {
	original := copyToClipboardFn
	var copied image.Image
	copyToClipboardFn = func(img image.Image) error { copied = img; return nil }
	t.Cleanup(func() { copyToClipboardFn = original })

	cmd, err := parseRenderCmd([]string{"-to-clipboard", "-shadow", "-size", "10x10"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdout = &bytes.Buffer{}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if copied == nil || copied.Bounds().Size() != image.Pt(34, 34) {
		t.Fatalf("copied = %v", copied)
	}
}

func TestUsageFuncPrintsCommandHelp(t *testing.T) {
	original := usageOutput
	var buf bytes.Buffer
	usageOutput = &buf
	t.Cleanup(func() { usageOutput = original })

	cmd, err := parseWindowCmd(nil, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.fs.Usage()
	for _, want := range []string{"-background-screen", "-output", "(default 800x600)"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("window usage missing %q:\n%s", want, buf.String())
		}
	}
	if got := collectFlags(nil); len(got) != 0 {
		t.Fatalf("collectFlags(nil) = %v", got)
	}
}
