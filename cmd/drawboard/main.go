package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/drawboard/internal/config"
	"github.com/example/drawboard/internal/notify"
	"github.com/example/drawboard/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs               *flag.FlagSet
	program          string
	notifier         *notify.Notifier
	config           *config.Config
	configPath       string
	saveAlerts       bool
	copyAlerts       bool
	backgroundAlerts bool
	themeName        string
	activeTheme      *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences(os.Getenv)
	r := &root{
		fs:       flag.NewFlagSet("drawboard", flag.ExitOnError),
		program:  "drawboard",
		notifier: notify.New(prefs),
	}
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to read instead of the default search path")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.backgroundAlerts, "notify-background", false, "show a desktop notification after setting a background")
	// Precedence: CLI > Env > Config > Default. The theme flag defaults to
	// "" and falls back in Run.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, or a configured theme)")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the configuration file and overlays the environment.
// Notification flags that were not given on the command line take their
// value from the configuration.
func (r *root) loadConfig() {
	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	cfg.ApplyEnv(os.Getenv)
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	if !set["notify-background"] {
		r.backgroundAlerts = cfg.Notify.Background
	}
}

// resolveTheme picks the theme named on the command line, in the
// environment or in the configuration, falling back to the default.
func (r *root) resolveTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" {
		themeName = r.config.Theme
	}
	if cfgTheme, ok := r.config.Themes[themeName]; ok {
		return cfgTheme
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		if themeName != "" && !strings.EqualFold(themeName, "default") {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.config == nil {
		r.loadConfig()
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.notifier.Enable(notify.EventBackground, r.backgroundAlerts)
	if r.activeTheme == nil {
		r.activeTheme = r.resolveTheme()
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "window":
		cmd, err = parseWindowCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "shapes":
		cmd, err = parseShapesCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) canvasTheme() *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyBackground(source string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Background(source)
}
