// Package script drives a board from line oriented gesture commands, for
// headless rendering and the interactive prompt.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/shape"
)

// ErrUnknownCommand is returned for a command name the interpreter does not
// recognise.
var ErrUnknownCommand = errors.New("unknown command")

// DefaultDragSteps is the number of moves a drag command emits between its
// end points when no step count is given.
const DefaultDragSteps = 8

// MaxDragSteps bounds the pointer moves a single drag may generate.
const MaxDragSteps = 10000

type command struct {
	usage string
	args  int // minimum argument count
	run   func(b *board.Board, args []string) error
}

var commands = map[string]command{
	"shape": {"shape <kind>", 1, func(b *board.Board, a []string) error {
		k, err := shape.ParseKind(a[0])
		if err != nil {
			return err
		}
		return b.SetShapeKind(k)
	}},
	"style": {"style <color> <width> <alpha>", 3, func(b *board.Board, a []string) error {
		w, err := parseFloat(a[1])
		if err != nil {
			return err
		}
		p, err := strconv.Atoi(a[2])
		if err != nil {
			return fmt.Errorf("alpha %q: %w", a[2], err)
		}
		return b.SetStyle(a[0], w, p)
	}},
	"color": {"color <color>", 1, func(b *board.Board, a []string) error {
		return b.SetColor(a[0])
	}},
	"width": {"width <width>", 1, func(b *board.Board, a []string) error {
		w, err := parseFloat(a[0])
		if err != nil {
			return err
		}
		return b.SetStrokeWidth(w)
	}},
	"alpha": {"alpha <percent>", 1, func(b *board.Board, a []string) error {
		p, err := strconv.Atoi(a[0])
		if err != nil {
			return fmt.Errorf("alpha %q: %w", a[0], err)
		}
		b.SetAlpha(p)
		return nil
	}},
	"hint": {"hint <text...>", 0, func(b *board.Board, a []string) error {
		b.SetHint(strings.Join(a, " "))
		return nil
	}},
	"down": {"down <x> <y>", 2, pointer((*board.Board).PointerDown)},
	"move": {"move <x> <y>", 2, pointer((*board.Board).PointerMove)},
	"up":   {"up <x> <y>", 2, pointer((*board.Board).PointerUp)},
	"drag": {"drag <x0> <y0> <x1> <y1> [steps]", 4, runDrag},
	"undo": {"undo", 0, func(b *board.Board, _ []string) error {
		b.Undo()
		return nil
	}},
	"redo": {"redo", 0, func(b *board.Board, _ []string) error {
		b.Redo()
		return nil
	}},
	"clear": {"clear", 0, func(b *board.Board, _ []string) error {
		b.Clear()
		return nil
	}},
	"resize": {"resize <width> <height>", 2, func(b *board.Board, a []string) error {
		w, err := strconv.Atoi(a[0])
		if err != nil {
			return fmt.Errorf("width %q: %w", a[0], err)
		}
		h, err := strconv.Atoi(a[1])
		if err != nil {
			return fmt.Errorf("height %q: %w", a[1], err)
		}
		if w <= 0 || h <= 0 {
			return fmt.Errorf("resize to %dx%d: size must be positive", w, h)
		}
		b.SurfaceResized(w, h)
		return nil
	}},
}

// Usage lists the command synopses in alphabetical order.
func Usage() []string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = commands[n].usage
	}
	return out
}

// Exec runs one command line against b. Blank lines and lines starting
// with '#' are ignored.
func Exec(b *board.Board, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	if len(args) < cmd.args {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	if err := cmd.run(b, args); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Run executes every line read from r, stopping at the first failure. The
// returned error names the failing line.
func Run(b *board.Board, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if err := Exec(b, scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

func pointer(fn func(*board.Board, float64, float64)) func(*board.Board, []string) error {
	return func(b *board.Board, a []string) error {
		x, y, err := parseXY(a[0], a[1])
		if err != nil {
			return err
		}
		fn(b, x, y)
		return nil
	}
}

func runDrag(b *board.Board, a []string) error {
	x0, y0, err := parseXY(a[0], a[1])
	if err != nil {
		return err
	}
	x1, y1, err := parseXY(a[2], a[3])
	if err != nil {
		return err
	}
	steps := DefaultDragSteps
	if len(a) > 4 {
		steps, err = strconv.Atoi(a[4])
		if err != nil || steps < 1 || steps > MaxDragSteps {
			return fmt.Errorf("steps %q: must be an integer from 1 to %d", a[4], MaxDragSteps)
		}
	}
	b.PointerDown(x0, y0)
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		b.PointerMove(x0+(x1-x0)*t, y0+(y1-y0)*t)
	}
	b.PointerUp(x1, y1)
	return nil
}

func parseXY(xs, ys string) (float64, float64, error) {
	x, err := parseFloat(xs)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseFloat(ys)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
