// Package atlas maps sprite indexes to pixel rectangles inside a shared
// sprite sheet.
package atlas

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/texture"
)

// Atlas is a sprite sheet plus its rectangle table.
type Atlas struct {
	// Texture is the handle of the shared sheet in the texture store.
	Texture asset.Handle

	rects []texture.Rect
}

// New returns an atlas over an explicit rectangle table.
func New(tex asset.Handle, rects []texture.Rect) *Atlas {
	return &Atlas{Texture: tex, rects: rects}
}

// Grid returns an atlas that slices a sheet into uniform tiles, indexed
// row-major from the top-left.
func Grid(tex asset.Handle, sheetWidth, sheetHeight, tileWidth, tileHeight int) *Atlas {
	columns := sheetWidth / tileWidth
	rows := sheetHeight / tileHeight
	rects := make([]texture.Rect, 0, columns*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			rects = append(rects, texture.NewRect(x*tileWidth, y*tileHeight, tileWidth, tileHeight))
		}
	}
	return New(tex, rects)
}

// Rect returns the sheet rectangle for a sprite index. A false result
// means the sprite has no visual and the tile must be skipped.
func (a *Atlas) Rect(spriteIndex int) (texture.Rect, bool) {
	if spriteIndex < 0 || spriteIndex >= len(a.rects) {
		return texture.Rect{}, false
	}
	return a.rects[spriteIndex], true
}

// Len returns the number of sprites in the atlas.
func (a *Atlas) Len() int {
	return len(a.rects)
}

// fileSpec is the on-disk atlas description.
type fileSpec struct {
	Sheet      string `yaml:"sheet"`
	TileWidth  int    `yaml:"tile_width"`
	TileHeight int    `yaml:"tile_height"`
	Rects      []struct {
		X      int `yaml:"x"`
		Y      int `yaml:"y"`
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"rects"`
}

// LoadFile reads a YAML atlas description, loads its PNG sheet into the
// texture store, and returns the atlas. When the description carries no
// explicit rectangle list the sheet is sliced as a uniform grid.
func LoadFile(path string, textures *asset.Store[*texture.Texture]) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading atlas %s: %w", path, err)
	}
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing atlas %s: %w", path, err)
	}
	if spec.Sheet == "" {
		return nil, fmt.Errorf("atlas %s: missing sheet path", path)
	}

	sheet, err := texture.LoadPNG(spec.Sheet)
	if err != nil {
		return nil, err
	}
	handle := textures.Register(sheet)

	if len(spec.Rects) > 0 {
		rects := make([]texture.Rect, len(spec.Rects))
		for i, r := range spec.Rects {
			rects[i] = texture.NewRect(r.X, r.Y, r.Width, r.Height)
		}
		return New(handle, rects), nil
	}
	if spec.TileWidth <= 0 || spec.TileHeight <= 0 {
		return nil, fmt.Errorf("atlas %s: needs tile_width/tile_height or explicit rects", path)
	}
	return Grid(handle, sheet.Width, sheet.Height, spec.TileWidth, spec.TileHeight), nil
}
