package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/clipboard"
	"github.com/example/drawboard/internal/render"
	"github.com/example/drawboard/internal/script"
	"github.com/example/drawboard/internal/theme"
)

var copyToClipboardFn = clipboard.WriteImage

// renderCmd replays a gesture script against a board and writes the result.
type renderCmd struct {
	*root
	fs          *flag.FlagSet
	board       boardFlags
	script      string
	output      string
	toClipboard bool
	shadow      bool

	stdin  io.Reader
	stdout io.Writer
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// Commands lists the script commands for the help text.
func (c *renderCmd) Commands() []string {
	return script.Usage()
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	c.board.register(fs, configOf(r), "800x600")
	fs.StringVar(&c.script, "script", "", "gesture script to replay, - for standard input")
	fs.StringVar(&c.output, "output", "", "output PNG file")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.BoolVar(&c.shadow, "shadow", false, "frame the output with a drop shadow")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.output == "" && !c.toClipboard {
		return nil, errors.New("an output file or -to-clipboard is required")
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	opts, err := c.board.options()
	if err != nil {
		return err
	}
	b := board.New(opts...)
	bg, err := c.board.loadBackground()
	if err != nil {
		return err
	}
	if bg != nil {
		b.SetBackgroundImage(bg)
	}
	if err := c.replay(b); err != nil {
		return err
	}

	img := exportImage(b, c.canvasTheme())
	if c.shadow {
		img, _ = render.DefaultShadow().Apply(img)
	}
	if c.output != "" {
		if err := savePNG(c.output, img); err != nil {
			return fmt.Errorf("failed to save %s: %w", c.output, err)
		}
		c.notifySave(c.output)
		committed, _ := b.History()
		fmt.Fprintf(c.stdout, "wrote %s (%dx%d, %d shapes)\n", c.output, img.Bounds().Dx(), img.Bounds().Dy(), committed)
	}
	if c.toClipboard {
		if err := copyToClipboardFn(img); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		c.notifyCopy("rendered board")
		fmt.Fprintln(c.stdout, "copied to clipboard")
	}
	return nil
}

func (c *renderCmd) replay(b *board.Board) error {
	var in io.Reader
	switch c.script {
	case "":
		return nil
	case "-":
		in = c.stdin
	default:
		f, err := os.Open(c.script)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	if err := script.Run(b, in); err != nil {
		return fmt.Errorf("script %s: %w", c.script, err)
	}
	return nil
}

// exportImage renders the board without its placeholder hint.
func exportImage(b *board.Board, t *theme.Theme) *image.RGBA {
	sc := b.Scene()
	sc.HintVisible = false
	return render.RenderImage(sc, t.Canvas)
}

func savePNG(path string, img image.Image) error {
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
