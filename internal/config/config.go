package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/drawboard/internal/shape"
	"github.com/example/drawboard/internal/theme"
)

// Style holds the default stroke. Empty or zero fields fall back to
// shape.DefaultStyle.
type Style struct {
	Color string
	Width float64
	Alpha int // percent; -1 when unset
}

// Notify selects which events raise a desktop notification.
type Notify struct {
	Save       bool
	Copy       bool
	Background bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Shape   string
	Hint    string
	Style   Style
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a Config with every setting unset.
func New() *Config {
	return &Config{
		Style:  Style{Alpha: -1},
		Themes: make(map[string]*theme.Theme),
	}
}

// StrokeStyle merges the configured stroke over shape.DefaultStyle.
func (c *Config) StrokeStyle() (shape.Style, error) {
	st := shape.DefaultStyle()
	if c.Style.Color != "" {
		col, err := shape.ParseColor(c.Style.Color)
		if err != nil {
			return st, fmt.Errorf("style color: %w", err)
		}
		st.Color = col
	}
	if c.Style.Width > 0 {
		st.Width = c.Style.Width
	}
	if c.Style.Alpha >= 0 {
		st.Alpha = shape.AlphaFromPercent(c.Style.Alpha)
	}
	return st, nil
}

// ShapeKind returns the configured initial shape, FreehandPath when unset.
func (c *Config) ShapeKind() (shape.Kind, error) {
	if c.Shape == "" {
		return shape.FreehandPath, nil
	}
	return shape.ParseKind(c.Shape)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Shape != "" {
		fmt.Fprintf(&sb, "shape = %s\n", c.Shape)
	}
	if c.Hint != "" {
		fmt.Fprintf(&sb, "hint = %q\n", c.Hint)
	}
	sb.WriteString("\n")

	sb.WriteString("[style]\n")
	if c.Style.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Style.Color)
	}
	if c.Style.Width > 0 {
		fmt.Fprintf(&sb, "width = %s\n", strconv.FormatFloat(c.Style.Width, 'g', -1, 64))
	}
	if c.Style.Alpha >= 0 {
		fmt.Fprintf(&sb, "alpha = %d\n", c.Style.Alpha)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "background = %v\n", c.Notify.Background)
	sb.WriteString("\n")

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, e := range t.Colors() {
			fmt.Fprintf(&sb, "%s: %s\n", e.Key, theme.FormatColor(e.Color))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Environment variables that override the configuration file.
const (
	EnvTheme = "DRAWBOARD_THEME"
	EnvHint  = "DRAWBOARD_HINT"
)

// ApplyEnv overlays non-empty environment settings read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvTheme)); v != "" {
		c.Theme = v
	}
	if v := getenv(EnvHint); v != "" {
		c.Hint = v
	}
}
