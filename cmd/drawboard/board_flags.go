package main

import (
	"flag"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/config"
	"github.com/example/drawboard/internal/render"
	"github.com/example/drawboard/internal/shape"
)

// boardFlags are the board settings shared by the window, render and
// interactive commands. Their defaults come from the configuration.
type boardFlags struct {
	shape      string
	color      string
	width      float64
	alpha      int
	hint       string
	size       string
	background string
}

func configOf(r *root) *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (b *boardFlags) register(fs *flag.FlagSet, cfg *config.Config, defaultSize string) {
	def := shape.DefaultStyle()
	kind := cfg.Shape
	if kind == "" {
		kind = shape.FreehandPath.String()
	}
	col := cfg.Style.Color
	if col == "" {
		col = shape.FormatColor(def.Color)
	}
	width := cfg.Style.Width
	if width <= 0 {
		width = def.Width
	}
	alpha := cfg.Style.Alpha
	if alpha < 0 {
		alpha = shape.PercentFromAlpha(def.Alpha)
	}
	fs.StringVar(&b.shape, "shape", kind, "initial shape kind (see the shapes command)")
	fs.StringVar(&b.color, "color", col, "stroke color name, #RRGGBB or #AARRGGBB")
	fs.Float64Var(&b.width, "width", width, "stroke width in pixels")
	fs.IntVar(&b.alpha, "alpha", alpha, "stroke opacity in percent (0-100)")
	fs.StringVar(&b.hint, "hint", cfg.Hint, "placeholder text shown while the board is empty")
	fs.StringVar(&b.size, "size", defaultSize, "surface size as WxH")
	fs.StringVar(&b.background, "background", "", "image file to draw behind the shapes")
}

// options validates the flags and turns them into board options.
func (b *boardFlags) options() ([]board.Option, error) {
	kind, err := shape.ParseKind(b.shape)
	if err != nil {
		return nil, fmt.Errorf("-shape: %w", err)
	}
	col, err := shape.ParseColor(b.color)
	if err != nil {
		return nil, fmt.Errorf("-color: %w", err)
	}
	if err := board.ValidateWidth(b.width); err != nil {
		return nil, fmt.Errorf("-width: %w", err)
	}
	st := shape.Style{Color: col, Width: b.width, Alpha: shape.AlphaFromPercent(b.alpha)}
	opts := []board.Option{board.WithKind(kind), board.WithStyle(st), board.WithHint(b.hint)}
	if b.size != "" {
		size, err := parseSize(b.size)
		if err != nil {
			return nil, fmt.Errorf("-size: %w", err)
		}
		opts = append(opts, board.WithSize(size.X, size.Y))
	}
	return opts, nil
}

// loadBackground decodes the -background file, or returns nil when none was
// given.
func (b *boardFlags) loadBackground() (image.Image, error) {
	if b.background == "" {
		return nil, nil
	}
	img, err := render.LoadImage(b.background)
	if err != nil {
		return nil, fmt.Errorf("failed to load background: %w", err)
	}
	return img, nil
}

func parseSize(s string) (image.Point, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid size %q, want WxH", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid size %q, want WxH", s)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("invalid size %q, dimensions must be positive", s)
	}
	return image.Pt(w, h), nil
}
