package tour

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// ErrUnknownWidget is returned for a widget kind without a factory.
var ErrUnknownWidget = errors.New("unknown widget kind")

// Widget is embedded page content. A widget belongs to exactly one page and
// is released with Close when the page goes away.
type Widget interface {
	View(width int) string
	Close()
}

// WidgetSpec is the declarative description of a widget.
type WidgetSpec struct {
	Kind  string   `yaml:"kind" json:"kind"`
	Title string   `yaml:"title,omitempty" json:"title,omitempty"`
	Text  string   `yaml:"text,omitempty" json:"text,omitempty"`
	Items []string `yaml:"items,omitempty" json:"items,omitempty"`
}

// WidgetFactory creates a widget from its spec.
type WidgetFactory func(spec WidgetSpec, b Branding) (Widget, error)

// WidgetFactories maps widget kinds to factories.
type WidgetFactories map[string]WidgetFactory

// DefaultWidgets returns the widget kinds that need nothing from the UI.
func DefaultWidgets() WidgetFactories {
	return WidgetFactories{
		"markdown": NewMarkdownWidget,
		"list":     NewListWidget,
	}
}

// With returns a copy of f with kind registered.
func (f WidgetFactories) With(kind string, factory WidgetFactory) WidgetFactories {
	out := make(WidgetFactories, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out[kind] = factory
	return out
}

// New creates the widget described by spec.
func (f WidgetFactories) New(spec WidgetSpec, b Branding) (Widget, error) {
	factory, ok := f[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, spec.Kind)
	}
	return factory(spec, b)
}

// MarkdownWidget renders markdown text with glamour. Rendered output is
// cached per width.
type MarkdownWidget struct {
	text   string
	cache  map[int]string
	closed bool
}

// NewMarkdownWidget is the factory for the "markdown" kind.
func NewMarkdownWidget(spec WidgetSpec, b Branding) (Widget, error) {
	if strings.TrimSpace(spec.Text) == "" {
		return nil, errors.New("markdown widget needs text")
	}
	return &MarkdownWidget{
		text:  b.Apply(spec.Text),
		cache: make(map[int]string),
	}, nil
}

// View renders the markdown wrapped to width.
func (w *MarkdownWidget) View(width int) string {
	if w.closed {
		return ""
	}
	if out, ok := w.cache[width]; ok {
		return out
	}

	out := w.text
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := renderer.Render(w.text); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	w.cache[width] = out
	return out
}

// Close drops the render cache.
func (w *MarkdownWidget) Close() {
	w.closed = true
	w.cache = nil
}

// ListWidget renders a bullet list with an optional title.
type ListWidget struct {
	title string
	items []string
}

// NewListWidget is the factory for the "list" kind.
func NewListWidget(spec WidgetSpec, b Branding) (Widget, error) {
	if len(spec.Items) == 0 {
		return nil, errors.New("list widget needs items")
	}
	items := make([]string, len(spec.Items))
	for i, item := range spec.Items {
		items[i] = b.Apply(item)
	}
	return &ListWidget{title: b.Apply(spec.Title), items: items}, nil
}

// View renders the list. Items are not wrapped.
func (w *ListWidget) View(int) string {
	var sb strings.Builder
	if w.title != "" {
		sb.WriteString(w.title)
		sb.WriteString("\n")
	}
	for i, item := range w.items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("• ")
		sb.WriteString(item)
	}
	return sb.String()
}

// Close is a no-op.
func (w *ListWidget) Close() {}
