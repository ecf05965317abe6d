package shape

import (
	"fmt"
	"sort"
	"strings"
)

// Kind selects which shape a gesture produces.
type Kind int

const (
	FreehandPath Kind = iota
	Triangle
	Quadrilateral
	Circle
	Ellipse
	Arrow
	Line
)

var kindNames = []string{
	FreehandPath:  "path",
	Triangle:      "triangle",
	Quadrilateral: "rect",
	Circle:        "circle",
	Ellipse:       "ellipse",
	Arrow:         "arrow",
	Line:          "line",
}

var kindAliases = map[string]Kind{
	"freehand":      FreehandPath,
	"pen":           FreehandPath,
	"draw":          FreehandPath,
	"rectangle":     Quadrilateral,
	"quad":          Quadrilateral,
	"quadrilateral": Quadrilateral,
	"oval":          Ellipse,
}

// Kinds returns every shape kind in toolbar order.
func Kinds() []Kind {
	return []Kind{FreehandPath, Triangle, Quadrilateral, Circle, Ellipse, Arrow, Line}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a known kind.
func (k Kind) Valid() bool { return k >= 0 && int(k) < len(kindNames) }

// Aliases returns the alternative names ParseKind accepts for k, sorted.
func Aliases(k Kind) []string {
	var out []string
	for name, ak := range kindAliases {
		if ak == k {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ParseKind resolves a kind from its name or one of its aliases.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}
