package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/vanderheijden86/ptour/pkg/tour"
)

// flipStep is the page offset of the flip-page bindings.
const flipStep = 2

// KeyMap holds the tour's key bindings. It implements help.KeyMap.
type KeyMap struct {
	Next     key.Binding
	Previous key.Binding
	FlipNext key.Binding
	FlipPrev key.Binding
	Jump     key.Binding
	First    key.Binding
	Last     key.Binding
	Done     key.Binding
	Up       key.Binding
	Down     key.Binding
	About    key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n", " ", "space"),
			key.WithHelp("→/l/space", "next page"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/h", "previous page"),
		),
		FlipNext: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "skip ahead"),
		),
		FlipPrev: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "skip back"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to page"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "first page"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last page"),
		),
		Done: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done (last page)"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		About: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "about"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy website"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.About, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.FlipNext, k.FlipPrev},
		{k.Jump, k.First, k.Last, k.Done},
		{k.Up, k.Down, k.About, k.Quit},
	}
}

// KeysWidget shows the key bindings on a page.
type KeysWidget struct {
	title  string
	keys   KeyMap
	help   help.Model
	closed bool
}

// NewKeysWidget is the factory for the "keys" widget kind.
func NewKeysWidget(spec tour.WidgetSpec, b tour.Branding) (tour.Widget, error) {
	return &KeysWidget{
		title: b.Apply(spec.Title),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}, nil
}

// View renders every binding in columns.
func (w *KeysWidget) View(width int) string {
	if w.closed {
		return ""
	}
	w.help.Width = width
	out := w.help.FullHelpView(w.keys.FullHelp())
	if w.title != "" {
		out = w.title + "\n" + out
	}
	return out
}

// Close marks the widget released.
func (w *KeysWidget) Close() {
	w.closed = true
}

// Widgets returns the widget factories available to tour pages, including
// the kinds provided by the UI.
func Widgets() tour.WidgetFactories {
	return tour.DefaultWidgets().With("keys", NewKeysWidget)
}
