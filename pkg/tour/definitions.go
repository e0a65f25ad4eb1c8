package tour

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/ptour/pkg/metrics"
)

//go:embed pages.yaml
var defaultPagesYAML []byte

//go:embed images
var images embed.FS

// Resources returns the built-in images, addressed by resource:// URIs in
// page definitions.
func Resources() fs.FS {
	sub, err := fs.Sub(images, "images")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page kinds in a definitions document.
const (
	KindPage     = "page"
	KindHardware = "hardware"
)

// Definition is the declarative description of one page.
type Definition struct {
	ID          string      `yaml:"id" json:"id"`
	Kind        string      `yaml:"kind,omitempty" json:"kind,omitempty"`
	Summary     string      `yaml:"summary,omitempty" json:"summary,omitempty"`
	Explanation string      `yaml:"explanation,omitempty" json:"explanation,omitempty"`
	ImageURI    string      `yaml:"image-uri,omitempty" json:"image_uri,omitempty"`
	Widget      *WidgetSpec `yaml:"widget,omitempty" json:"widget,omitempty"`
	Compatibles Compatibles `yaml:"compatibles,omitempty" json:"compatibles,omitempty"`
}

// IsHardware reports whether the definition describes a hardware page.
// Declaring compatibles implies the hardware kind.
func (d Definition) IsHardware() bool {
	return d.Kind == KindHardware || len(d.Compatibles) > 0
}

// Compatibles is a list of device tree compatibles. It decodes from a YAML
// sequence or from a single string with one compatible per line and is
// normalized on assignment.
type Compatibles []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Compatibles) UnmarshalYAML(node *yaml.Node) error {
	var raw []string
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&raw); err != nil {
			return err
		}
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		raw = strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ';' })
	default:
		return fmt.Errorf("line %d: compatibles must be a list or a string", node.Line)
	}
	*c = NormalizeCompatibles(raw)
	return nil
}

// Document is the top level of a page definitions file.
type Document struct {
	Pages []Definition `yaml:"pages"`
}

// ErrNoPages is returned for a definitions document without pages.
var ErrNoPages = errors.New("no pages defined")

// ParseDefinitions decodes a page definitions document.
func ParseDefinitions(r io.Reader) ([]Definition, error) {
	defer metrics.Timer(metrics.DefinitionsParse)()
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoPages
		}
		return nil, fmt.Errorf("parsing page definitions: %w", err)
	}
	if len(doc.Pages) == 0 {
		return nil, ErrNoPages
	}

	seen := make(map[string]bool, len(doc.Pages))
	for i := range doc.Pages {
		d := &doc.Pages[i]
		if d.ID == "" {
			d.ID = fmt.Sprintf("page-%d", i+1)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate page id %q", d.ID)
		}
		seen[d.ID] = true
		switch d.Kind {
		case "", KindPage, KindHardware:
		default:
			return nil, fmt.Errorf("page %q: unknown kind %q", d.ID, d.Kind)
		}
	}
	return doc.Pages, nil
}

// LoadDefinitionsFile reads page definitions from path.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page definitions: %w", err)
	}
	defer f.Close()
	return ParseDefinitions(f)
}

// DefaultDefinitions returns the built-in tour.
func DefaultDefinitions() []Definition {
	defs, err := ParseDefinitions(bytes.NewReader(defaultPagesYAML))
	if err != nil {
		panic(fmt.Sprintf("built-in pages.yaml is invalid: %v", err))
	}
	return defs
}
