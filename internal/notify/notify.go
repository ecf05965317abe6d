// Package notify raises desktop notifications when a board is saved, copied
// or given a new background.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// AppName identifies the sender to the notification service.
const AppName = "drawboard"

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when the rendered board is written to disk.
	EventSave Event = "save"
	// EventCopy fires when the rendered board is placed on the clipboard.
	EventCopy Event = "copy"
	// EventBackground fires when a screenshot or pasted image becomes the
	// background.
	EventBackground Event = "background"
)

// Preferences holds the title and per-event body templates. Each template
// receives one %s: the detail of the event.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built in wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Drawboard",
		Templates: map[Event]string{
			EventSave:       "Saved %s",
			EventCopy:       "Copied %s to clipboard",
			EventBackground: "Background set from %s",
		},
	}
}

// LoadPreferences overlays DRAWBOARD_NOTIFY_* environment variables on the
// defaults.
func LoadPreferences(getenv func(string) string) Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(getenv("DRAWBOARD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range map[Event]string{
		EventSave:       "DRAWBOARD_NOTIFY_SAVE_TEXT",
		EventCopy:       "DRAWBOARD_NOTIFY_COPY_TEXT",
		EventBackground: "DRAWBOARD_NOTIFY_BACKGROUND_TEXT",
	} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// Notifier sends notifications for the events it has been enabled for. A
// nil Notifier is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    func(title, body, icon string) error
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: desktopNotify}
}

// Enable turns notifications for event on or off.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports a written file, using it as the notification icon.
func (n *Notifier) Save(path string) {
	detail := strings.TrimSpace(path)
	icon := ""
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			icon = abs
		}
	}
	n.dispatch(EventSave, detail, icon)
}

// Copy reports a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, "")
}

// Background reports a new background and where it came from.
func (n *Notifier) Background(source string) {
	n.dispatch(EventBackground, source, "")
}

func (n *Notifier) dispatch(event Event, detail, icon string) {
	if n == nil || !n.enabled[event] {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, icon); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
