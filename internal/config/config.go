// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Map      MapConfig      `yaml:"map"`
	Atlas    AtlasConfig    `yaml:"atlas"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// MapConfig holds the tile world layout.
type MapConfig struct {
	// Width and Height are the map size in chunks.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// ChunkWidth and ChunkHeight are the chunk size in tiles.
	ChunkWidth  int `yaml:"chunk_width"`
	ChunkHeight int `yaml:"chunk_height"`
	// Sparse selects map-backed chunk storage for mostly-empty worlds.
	Sparse bool `yaml:"sparse"`
}

// AtlasConfig holds the sprite sheet description. Either Path points at a
// YAML atlas file, or Sheet plus the tile size describes a uniform grid.
type AtlasConfig struct {
	Path       string `yaml:"path"`
	Sheet      string `yaml:"sheet"`
	TileWidth  int    `yaml:"tile_width"`
	TileHeight int    `yaml:"tile_height"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Map: MapConfig{
			Width:       4,
			Height:      4,
			ChunkWidth:  16,
			ChunkHeight: 16,
		},
		Atlas: AtlasConfig{
			Sheet:      "tiles.png",
			TileWidth:  16,
			TileHeight: 16,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
