// Package sheet loads style definition documents. A document is YAML
// describing raw styles, scoped styles and animations with CSS declarations
// written inline, it is compiled against a dimension catalog into values the
// registry accepts.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v3"
)

var (
	// ErrUnknownDimension is returned for conditions on undefined dimensions.
	ErrUnknownDimension = errors.New("unknown dimension")
	// ErrUnknownReference is returned when a definition refers to a style
	// which is not defined in the document.
	ErrUnknownReference = errors.New("unknown style reference")
)

type (
	// RuleDef adds declarations when environment matches every condition.
	RuleDef struct {
		If  map[string]string `yaml:"if"`
		CSS string            `yaml:"css"`
	}

	StyleDef struct {
		Name string    `yaml:"name"`
		Base string    `yaml:"base"`
		When []RuleDef `yaml:"when,omitempty"`
	}

	ScopedDef struct {
		Name string `yaml:"name"`
		// Kind is one of button, link, disclosure, hover, tap, entry, trait
		// or effect.
		Kind      string            `yaml:"kind"`
		Phases    map[string]string `yaml:"phases,omitempty"`
		CSS       string            `yaml:"css,omitempty"`
		Anchor    string            `yaml:"anchor,omitempty"`
		Trait     string            `yaml:"trait,omitempty"`
		Dimension string            `yaml:"dimension,omitempty"`
		Cases     map[string]string `yaml:"cases,omitempty"`
		Uses      []string          `yaml:"uses,omitempty"`
		// Important emits every variant declaration with !important.
		Important bool `yaml:"important,omitempty"`
	}

	KeyframeDef struct {
		At        float64  `yaml:"at"`
		CSS       string   `yaml:"css,omitempty"`
		Scale     *float64 `yaml:"scale,omitempty"`
		Translate string   `yaml:"translate,omitempty"` // "x y"
		Rotate    *float64 `yaml:"rotate,omitempty"`    // degrees
	}

	AnimationDef struct {
		Name      string        `yaml:"name"`
		Trigger   string        `yaml:"trigger"`
		Lifecycle string        `yaml:"lifecycle,omitempty"`
		Duration  string        `yaml:"duration,omitempty"`
		Delay     string        `yaml:"delay,omitempty"`
		Easing    string        `yaml:"easing,omitempty"`
		Repeat    string        `yaml:"repeat,omitempty"` // count or "infinite"
		Reverse   bool          `yaml:"reverse,omitempty"`
		Anchor    string        `yaml:"anchor,omitempty"`
		Keyframes []KeyframeDef `yaml:"keyframes"`
	}

	// Document is a single style definition file.
	Document struct {
		Styles     []StyleDef     `yaml:"styles,omitempty"`
		Scoped     []ScopedDef    `yaml:"scoped,omitempty"`
		Animations []AnimationDef `yaml:"animations,omitempty"`
	}
)

// Parse decodes document, unknown fields are errors.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode style definitions: %w", err)
	}
	return doc, nil
}

// Load reads and decodes document from file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style definitions: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes document back to YAML.
func (d *Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal style definitions: %w", err)
	}
	return data, nil
}
