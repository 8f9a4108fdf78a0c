package tilemap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tilemap/pkg/grid"
)

// layout is the persisted form of a map. Only the dimensions survive a
// save: chunk handles, entity mappings, the event log and the atlas are
// runtime state and must be rebuilt after load.
type layout struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SaveLayout writes the map's dimensions to a YAML file.
func (m *Map) SaveLayout(path string) error {
	data, err := yaml.Marshal(layout{Width: m.dimensions.Width, Height: m.dimensions.Height})
	if err != nil {
		return fmt.Errorf("encoding map layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing map layout %s: %w", path, err)
	}
	return nil
}

// LoadLayout reads dimensions saved by SaveLayout.
func LoadLayout(path string) (grid.Dimensions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grid.Dimensions{}, fmt.Errorf("reading map layout %s: %w", path, err)
	}
	var l layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return grid.Dimensions{}, fmt.Errorf("parsing map layout %s: %w", path, err)
	}
	return grid.Dimensions{Width: l.Width, Height: l.Height}, nil
}
