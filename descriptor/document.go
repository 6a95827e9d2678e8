// Package descriptor decodes and validates declarative interface documents.
//
// A document is a YAML mapping:
//
//	interface: main-menu
//	display: grid
//	rows: 2
//	columns: 1
//	styles:
//	  - name: big
//	    font_size: 32
//	components:
//	  - type: text
//	    id: title
//	    text: Hello
//	    style: big
//	    grid_cell: 0
package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Display is an interface layout mode.
type Display string

const (
	DisplayDefault Display = "default"
	DisplayGrid    Display = "grid"
)

// Document is one declarative interface description.
type Document struct {
	Interface  string           `yaml:"interface"`
	Display    Display          `yaml:"display"`
	Rows       int              `yaml:"rows,omitempty"`
	Columns    int              `yaml:"columns,omitempty"`
	Background any              `yaml:"background,omitempty"`
	Overlay    bool             `yaml:"overlay,omitempty"`
	Styles     []map[string]any `yaml:"styles,omitempty"`
	Components []map[string]any `yaml:"components"`

	// Path is the file the document was read from, empty for injected
	// documents.
	Path string `yaml:"path,omitempty"`
}

// Decode reads a single document from r and validates it.
func Decode(r io.Reader) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return decodeNode(&root)
}

// Parse is Decode over an in-memory buffer.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// LoadFile reads and validates the document stored at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

func decodeNode(root *yaml.Node) (*Document, error) {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, ErrEmptyDocument
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrMalformed)
	}
	if len(node.Content) == 0 {
		return nil, ErrEmptyDocument
	}
	if !hasKey(node, "components") {
		return nil, ErrMissingComponents
	}

	var doc Document
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Components == nil {
		doc.Components = []map[string]any{}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Validate checks the structural requirements of the document.
func (d *Document) Validate() error {
	if d.Interface == "" {
		return ErrMissingInterface
	}
	switch d.Display {
	case DisplayDefault:
	case DisplayGrid:
		if d.Rows <= 0 || d.Columns <= 0 {
			return fmt.Errorf("%s: %w", d.Interface, ErrIncompleteGrid)
		}
	default:
		return fmt.Errorf("%s: %w (got %q)", d.Interface, ErrInvalidDisplay, d.Display)
	}
	if d.Components == nil {
		return fmt.Errorf("%s: %w", d.Interface, ErrMissingComponents)
	}
	return nil
}

// Clone returns a deep copy of the document. Interfaces normalize their
// component mappings in place, so stored sources are cloned before use.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Background = cloneValue(d.Background)
	if d.Styles != nil {
		c.Styles = make([]map[string]any, len(d.Styles))
		for i, s := range d.Styles {
			c.Styles[i] = CloneMap(s)
		}
	}
	if d.Components != nil {
		c.Components = make([]map[string]any, len(d.Components))
		for i, comp := range d.Components {
			c.Components[i] = CloneMap(comp)
		}
	}
	return &c
}

// CloneMap deep-copies a decoded YAML mapping.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
