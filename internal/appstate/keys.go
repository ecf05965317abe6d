package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
// Either Rune or Code is set, never both.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

const modifierMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// keymap resolves key presses to action names.
type keymap map[KeyShortcut]string

func (m keymap) add(name string, keys KeyboardShortcuts) {
	if keys == nil {
		return
	}
	for _, sc := range keys.KeyboardShortcuts() {
		m[sc] = name
		if sc.Code == 0 && sc.Rune >= 'a' && sc.Rune <= 'z' {
			m[KeyShortcut{Code: key.CodeA + key.Code(sc.Rune-'a'), Modifiers: sc.Modifiers}] = name
		}
	}
}

// lookup matches by rune first and falls back to the key code, so that both
// drivers which report runes under Ctrl and those which do not are covered.
func (m keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers & modifierMask
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		if name, ok := m[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return name, true
		}
		// Shifted letters arrive upper case with ModShift already applied.
		if r != e.Rune {
			if name, ok := m[KeyShortcut{Rune: r, Modifiers: mods &^ key.ModShift}]; ok && mods&key.ModControl == 0 {
				return name, true
			}
		}
	}
	name, ok := m[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return name, ok
}

// Shortcut is a labelled action shown in the bottom bar.
type Shortcut struct {
	Label  string
	Action string
}

var bottomShortcuts = []Shortcut{
	{"^S:Save", "save"},
	{"^C:Copy", "copy"},
	{"^V:Paste bg", "paste"},
	{"^N:Screen bg", "capture"},
	{"Q:Quit", "quit"},
}
