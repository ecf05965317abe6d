package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/drawboard/internal/appstate"
	"github.com/example/drawboard/internal/shape"
)

// listCmd prints a fixed table: the shape kinds or the palette.
type listCmd struct {
	*root
	fs      *flag.FlagSet
	name    string
	summary string
	print   func(w io.Writer)
	stdout  io.Writer
}

func (l *listCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func (l *listCmd) Template() string {
	return "list.txt"
}

func (l *listCmd) Name() string { return l.name }

func (l *listCmd) Summary() string { return l.summary }

func parseListCmd(name, summary string, print func(io.Writer), args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cmd := &listCmd{root: r, fs: fs, name: name, summary: summary, print: print, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (l *listCmd) Program() string {
	if l.root == nil {
		return "drawboard"
	}
	return l.root.Program()
}

func (l *listCmd) Run() error {
	l.print(l.stdout)
	return nil
}

func parseShapesCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("shapes", "Lists the shape kinds accepted by -shape and the shape command.", printShapes, args, r)
}

func parseColorsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("colors", "Lists the toolbar palette, stroke widths and opacity steps.", printColors, args, r)
}

func printShapes(w io.Writer) {
	for _, k := range shape.Kinds() {
		aliases := shape.Aliases(k)
		if len(aliases) == 0 {
			fmt.Fprintln(w, k)
			continue
		}
		fmt.Fprintf(w, "%-10s (also %s)\n", k, strings.Join(aliases, ", "))
	}
}

func printColors(w io.Writer) {
	fmt.Fprintln(w, "palette:")
	for _, pc := range appstate.Palette() {
		fmt.Fprintf(w, "  %-8s %s\n", pc.Name, shape.FormatColor(pc.Color))
	}
	widths := make([]string, len(appstate.Widths))
	for i, v := range appstate.Widths {
		widths[i] = fmt.Sprint(v)
	}
	fmt.Fprintf(w, "widths: %s\n", strings.Join(widths, " "))
	alphas := make([]string, len(appstate.AlphaSteps))
	for i, v := range appstate.AlphaSteps {
		alphas[i] = fmt.Sprintf("%d%%", v)
	}
	fmt.Fprintf(w, "alpha: %s\n", strings.Join(alphas, " "))
}
