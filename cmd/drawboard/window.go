package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/example/drawboard/internal/appstate"
	"github.com/example/drawboard/internal/capture"
)

const screenshotTimeout = time.Minute

var captureScreenshotFn = capture.Screenshot

// windowCmd opens the interactive drawing surface.
type windowCmd struct {
	*root
	fs     *flag.FlagSet
	board  boardFlags
	output string
	screen bool
}

func (w *windowCmd) FlagSet() *flag.FlagSet {
	return w.fs
}

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	w := &windowCmd{root: r, fs: fs}
	fs.Usage = usageFunc(w)
	w.board.register(fs, configOf(r), "800x600")
	fs.StringVar(&w.output, "output", "", "file written by Ctrl+S (default: a timestamped file in the save directory)")
	fs.BoolVar(&w.screen, "background-screen", false, "capture the desktop and use it as the background")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: w}
	}
	return w, nil
}

func (w *windowCmd) Run() error {
	opts, err := w.board.options()
	if err != nil {
		return err
	}
	size, err := parseSize(w.board.size)
	if err != nil {
		return fmt.Errorf("-size: %w", err)
	}
	bg, err := w.board.loadBackground()
	if err != nil {
		return err
	}
	if w.screen {
		ctx, cancel := context.WithTimeout(context.Background(), screenshotTimeout)
		shot, err := captureScreenshotFn(ctx, capture.Options{})
		cancel()
		if err != nil {
			return fmt.Errorf("failed to capture screen: %w", err)
		}
		bg = shot
	}

	cfg := configOf(w.root)
	stateOpts := []appstate.Option{
		appstate.WithBoardOptions(opts...),
		appstate.WithCanvasSize(size.X, size.Y),
		appstate.WithOutput(w.output),
		appstate.WithSaveDir(cfg.SaveDir),
	}
	if w.root != nil {
		stateOpts = append(stateOpts, appstate.WithNotifier(w.notifier))
	}
	stateOpts = append(stateOpts, appstate.WithTheme(w.canvasTheme()))
	state := appstate.New(stateOpts...)
	if bg != nil {
		state.Board().SetBackgroundImage(bg)
	}
	if w.screen {
		w.notifyBackground("screenshot")
	}
	state.Run()
	return nil
}
