package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/script"
)

// interactiveCmd applies gesture commands typed at a prompt to one board.
type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	board boardFlags

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	fs.Usage = usageFunc(i)
	i.board.register(fs, configOf(r), "800x600")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	opts, err := i.board.options()
	if err != nil {
		return err
	}
	b := board.New(opts...)
	bg, err := i.board.loadBackground()
	if err != nil {
		return err
	}
	if bg != nil {
		b.SetBackgroundImage(bg)
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch strings.ToLower(fields[0]) {
		case "exit", "quit":
			return nil
		case "help":
			for _, u := range script.Usage() {
				fmt.Fprintln(i.stdout, u)
			}
			fmt.Fprintln(i.stdout, "save <file>")
			continue
		case "save":
			if len(fields) != 2 {
				fmt.Fprintln(i.stderr, "usage: save <file>")
				continue
			}
			i.save(b, fields[1])
			continue
		}
		if err := script.Exec(b, line); err != nil {
			fmt.Fprintln(i.stderr, err)
			continue
		}
		committed, undone := b.History()
		fmt.Fprintf(i.stdout, "committed %d undone %d\n", committed, undone)
	}
	return scanner.Err()
}

func (i *interactiveCmd) save(b *board.Board, path string) {
	if err := savePNG(path, exportImage(b, i.canvasTheme())); err != nil {
		fmt.Fprintf(i.stderr, "save: %v\n", err)
		return
	}
	i.notifySave(path)
	fmt.Fprintf(i.stdout, "saved %s\n", path)
}
