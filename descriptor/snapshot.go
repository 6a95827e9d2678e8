package descriptor

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Snapshot is the serialized form of a whole session: the focused interface
// and the source documents of every loaded interface.
type Snapshot struct {
	Focus      string      `yaml:"focus,omitempty"`
	Interfaces []*Document `yaml:"interfaces"`
}

// WriteSnapshot encodes s as YAML.
func WriteSnapshot(w io.Writer, s *Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot and validates
// every document in it.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i, doc := range s.Interfaces {
		if doc == nil {
			return nil, fmt.Errorf("%w: snapshot interface %d is empty", ErrMalformed, i)
		}
		if doc.Components == nil {
			doc.Components = []map[string]any{}
		}
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
