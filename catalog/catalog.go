// Package catalog describes the widget types a placeholder can become and
// the default size each one gets when placed without a sizing gesture.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flowgrid/core"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Common errors
var (
	ErrUnknownType   = errors.New("unknown widget type")
	ErrDuplicateType = errors.New("duplicate widget type")
	ErrUnnamedType   = errors.New("widget type has no name")
)

// WidgetType is one entry in the catalog.
type WidgetType struct {
	Name     string            `toml:"name" yaml:"name"`
	Label    string            `toml:"label" yaml:"label"`
	Width    float64           `toml:"width" yaml:"width"`
	Height   float64           `toml:"height" yaml:"height"`
	Template map[string]string `toml:"template" yaml:"template"`
}

// Size returns the widget's default size, or core.DefaultNodeSize when it
// has none.
func (w WidgetType) Size() core.Size {
	s := core.Size{Width: w.Width, Height: w.Height}
	if s.IsZero() {
		return core.DefaultNodeSize
	}
	return s
}

// Catalog is an ordered, name-indexed set of widget types.
type Catalog struct {
	types  []WidgetType
	byName map[string]int
}

type catalogFile struct {
	Widgets []WidgetType `toml:"widget" yaml:"widgets"`
}

// New builds a catalog, keeping the given order for the picker.
func New(types []WidgetType) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]int, len(types))}
	for _, t := range types {
		if t.Name == "" {
			return nil, ErrUnnamedType
		}
		if _, exists := c.byName[t.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
		}
		if t.Label == "" {
			t.Label = t.Name
		}
		c.byName[t.Name] = len(c.types)
		c.types = append(c.types, t)
	}
	return c, nil
}

// Default returns the built-in workflow widgets.
func Default() *Catalog {
	c, _ := New([]WidgetType{
		{Name: "trigger", Label: "Trigger", Width: 120, Height: 60},
		{Name: "script", Label: "Script", Width: 160, Height: 80, Template: map[string]string{"language": "shell"}},
		{Name: "agent", Label: "Agent", Width: 200, Height: 120, Template: map[string]string{"model": "default"}},
		{Name: "condition", Label: "Condition", Width: 120, Height: 80},
		{Name: "output", Label: "Output"},
	})
	return c
}

// Load reads a catalog file. Files ending in .yaml or .yml hold a
// top-level widgets list; anything else is TOML with [[widget]] tables.
func Load(path string) (*Catalog, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		var f catalogFile
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
		return New(f.Widgets)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return ParseYAML(data)
}

// Parse reads [[widget]] tables from TOML text.
func Parse(data string) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Widgets)
}

// ParseYAML reads a widgets list from YAML.
func ParseYAML(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Widgets)
}

// Types returns the widget types in picker order.
func (c *Catalog) Types() []WidgetType {
	out := make([]WidgetType, len(c.types))
	copy(out, c.types)
	return out
}

// Len returns the number of widget types.
func (c *Catalog) Len() int {
	return len(c.types)
}

// At returns the widget type at picker position i.
func (c *Catalog) At(i int) (WidgetType, bool) {
	if i < 0 || i >= len(c.types) {
		return WidgetType{}, false
	}
	return c.types[i], true
}

// Lookup finds a widget type by name.
func (c *Catalog) Lookup(name string) (WidgetType, error) {
	i, ok := c.byName[name]
	if !ok {
		return WidgetType{}, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return c.types[i], nil
}

// DefaultSize returns the size for a node of the named type. Unknown names
// get core.DefaultNodeSize.
func (c *Catalog) DefaultSize(name string) core.Size {
	t, err := c.Lookup(name)
	if err != nil {
		return core.DefaultNodeSize
	}
	return t.Size()
}
