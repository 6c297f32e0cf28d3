// Package catalog manages prototype definitions: parsing them from YAML,
// persisting them in SQLite and installing them into an entity registry.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/roomsim/internal/entity"
)

// ErrCycle is returned by Install when definitions inherit from each other
// in a loop.
var ErrCycle = errors.New("catalog: inheritance cycle")

// Def is a prototype definition as written in a catalog file.
type Def struct {
	Name      string             `yaml:"name"`
	Parent    string             `yaml:"parent,omitempty"`
	Sprite    string             `yaml:"sprite,omitempty"`
	Mask      string             `yaml:"mask,omitempty"`
	Depth     *float64           `yaml:"depth,omitempty"`
	Visible   *bool              `yaml:"visible,omitempty"`
	Behaviors []string           `yaml:"behaviors,omitempty"`
	Defaults  map[string]Literal `yaml:"defaults,omitempty"`
}

// File is the top level of a catalog YAML document.
type File struct {
	Prototypes []Def `yaml:"prototypes"`
}

// Literal is a default property value kept in its textual form until it is
// installed. Strings starting with '$' are references to a named asset or
// prototype.
type Literal struct {
	Kind entity.Kind
	Text string
}

// UnmarshalYAML implements yaml.Unmarshaler using the scalar's resolved tag.
func (l *Literal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: default must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!int":
		l.Kind = entity.KindInt
	case "!!float":
		l.Kind = entity.KindReal
	case "!!bool":
		l.Kind = entity.KindBool
	case "!!str":
		if strings.HasPrefix(n.Value, "$") && len(n.Value) > 1 {
			l.Kind = entity.KindRef
			l.Text = n.Value[1:]
			return nil
		}
		l.Kind = entity.KindString
	default:
		return fmt.Errorf("line %d: unsupported default type %s", n.Line, n.ShortTag())
	}
	l.Text = n.Value
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l Literal) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: l.Text}
	switch l.Kind {
	case entity.KindInt:
		n.Tag = "!!int"
	case entity.KindReal:
		n.Tag = "!!float"
	case entity.KindBool:
		n.Tag = "!!bool"
	case entity.KindRef:
		n.Tag = "!!str"
		n.Value = "$" + l.Text
	default:
		n.Tag = "!!str"
	}
	return n, nil
}

// Value converts the literal. References are resolved with resolve, which
// may be nil; an unresolved reference keeps its name with no target.
func (l Literal) Value(resolve func(name string) (any, bool)) (entity.Value, error) {
	switch l.Kind {
	case entity.KindInt:
		i, err := strconv.ParseInt(l.Text, 0, 64)
		if err != nil {
			return entity.Value{}, fmt.Errorf("catalog: integer %q: %w", l.Text, err)
		}
		return entity.Int(i), nil
	case entity.KindReal:
		f, err := parseFloat(l.Text)
		if err != nil {
			return entity.Value{}, fmt.Errorf("catalog: real %q: %w", l.Text, err)
		}
		return entity.Real(f), nil
	case entity.KindBool:
		b, err := strconv.ParseBool(l.Text)
		if err != nil {
			return entity.Value{}, fmt.Errorf("catalog: boolean %q: %w", l.Text, err)
		}
		return entity.Bool(b), nil
	case entity.KindRef:
		var target any
		if resolve != nil {
			target, _ = resolve(l.Text)
		}
		return entity.Ref(l.Text, target), nil
	}
	return entity.String(l.Text), nil
}

// parseFloat accepts YAML's spellings of infinity and NaN as well as Go's.
func parseFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// ParseYAML parses a catalog document. Names must be present and unique
// within the document.
func ParseYAML(data []byte) ([]Def, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: cannot parse definitions: %w", err)
	}

	seen := make(map[string]bool, len(f.Prototypes))
	for i, d := range f.Prototypes {
		if d.Name == "" {
			return nil, fmt.Errorf("catalog: prototype %d has no name", i)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("catalog: %w %q", entity.ErrDuplicatePrototype, d.Name)
		}
		seen[d.Name] = true
	}
	return f.Prototypes, nil
}

// LoadFile reads and parses a catalog document.
func LoadFile(path string) ([]Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot read %s: %w", path, err)
	}
	defs, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Marshal encodes definitions as a catalog document.
func Marshal(defs []Def) ([]byte, error) {
	data, err := yaml.Marshal(File{Prototypes: defs})
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot encode definitions: %w", err)
	}
	return data, nil
}
