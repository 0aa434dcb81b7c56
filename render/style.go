package render

import (
	"fmt"

	"github.com/tsawler/zonal/format"
)

// StyleMap translates geometry identifiers into presentation classes. It
// is a pure mapping with no logic of its own: different style maps can
// present the same geometry differently, which is what makes themes
// possible. Missing entries degrade to the empty string, never to an
// error.
type StyleMap struct {
	Zones       map[string]string `yaml:"zones" json:"zones"`
	Objects     map[string]string `yaml:"objects" json:"objects"`
	Breakpoints map[string]string `yaml:"breakpoints" json:"breakpoints"`
	Spacing     map[string]string `yaml:"spacing" json:"spacing"`
	Grid        GridConfig        `yaml:"grid" json:"grid"`
}

// GridConfig carries the layout constants a style map's CSS builds on.
type GridConfig struct {
	Columns  int    `yaml:"columns" json:"columns"`
	Gap      string `yaml:"gap" json:"gap"`
	MaxWidth string `yaml:"max-width" json:"max-width"`
}

// ZoneClasses returns the class string mapped to a zone id, or "".
func (m *StyleMap) ZoneClasses(zoneID string) string {
	if m == nil {
		return ""
	}
	return m.Zones[zoneID]
}

// ObjectClasses returns the class string mapped to an object type, or "".
func (m *StyleMap) ObjectClasses(typeName string) string {
	if m == nil {
		return ""
	}
	return m.Objects[typeName]
}

// LoadStyleMap reads a style map from a YAML or JSON file.
func LoadStyleMap(filename string) (*StyleMap, error) {
	var m StyleMap
	if err := format.UnmarshalFile(filename, &m); err != nil {
		return nil, fmt.Errorf("loading style map %s: %w", filename, err)
	}
	return &m, nil
}
