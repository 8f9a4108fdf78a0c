package tilemap

import (
	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/tile"
)

// Chunk is one fixed-size rectangular tile region with its own destination
// texture. Local tile index = localY*Width + localX.
//
// Two storage strategies exist, chosen at construction: DenseChunk keeps a
// fixed slice and suits mostly-full regions, SparseChunk keeps a map and
// suits mostly-empty ones.
type Chunk interface {
	// Width returns the chunk width in tiles.
	Width() int
	// Height returns the chunk height in tiles.
	Height() int
	// Area returns Width*Height.
	Area() int
	// Tile returns the tile at a local index, if one is set.
	Tile(index int) (tile.Tile, bool)
	// SetTile places a tile at a local index.
	SetTile(index int, t tile.Tile)
	// RemoveTile clears a local index.
	RemoveTile(index int)
	// Clear removes every tile.
	Clear()
	// TextureHandle returns the chunk's destination pixel buffer handle.
	TextureHandle() asset.Handle
	// Attributes exports the chunk's tiles as parallel per-vertex
	// attribute arrays (sprite index, flags, RGBA color), one set of four
	// entries per tile.
	Attributes() (indexes []float32, flags []uint32, colors [][4]float32)
}

// DenseChunk stores tiles in a fixed-length slice.
type DenseChunk struct {
	width, height int
	tiles         []*tile.Tile
	texture       asset.Handle
}

// NewDense returns an empty dense chunk backed by the given texture.
func NewDense(width, height int, texture asset.Handle) *DenseChunk {
	return &DenseChunk{
		width:   width,
		height:  height,
		tiles:   make([]*tile.Tile, width*height),
		texture: texture,
	}
}

func (c *DenseChunk) Width() int  { return c.width }
func (c *DenseChunk) Height() int { return c.height }
func (c *DenseChunk) Area() int   { return c.width * c.height }

func (c *DenseChunk) Tile(index int) (tile.Tile, bool) {
	if index < 0 || index >= len(c.tiles) || c.tiles[index] == nil {
		return tile.Tile{}, false
	}
	return *c.tiles[index], true
}

func (c *DenseChunk) SetTile(index int, t tile.Tile) {
	if index < 0 || index >= len(c.tiles) {
		return
	}
	c.tiles[index] = &t
}

func (c *DenseChunk) RemoveTile(index int) {
	if index < 0 || index >= len(c.tiles) {
		return
	}
	c.tiles[index] = nil
}

func (c *DenseChunk) Clear() {
	c.tiles = make([]*tile.Tile, c.width*c.height)
}

func (c *DenseChunk) TextureHandle() asset.Handle { return c.texture }

func (c *DenseChunk) Attributes() ([]float32, []uint32, [][4]float32) {
	raws := make([]tile.RawTile, len(c.tiles))
	for i, t := range c.tiles {
		if t != nil {
			raws[i] = t.Raw()
		} else {
			raws[i] = tile.RawTile{Color: tile.Transparent}
		}
	}
	return tile.DenseAttributes(raws)
}

// SparseChunk stores tiles in a map keyed by local index.
type SparseChunk struct {
	width, height int
	tiles         map[int]tile.Tile
	texture       asset.Handle
}

// NewSparse returns an empty sparse chunk backed by the given texture.
func NewSparse(width, height int, texture asset.Handle) *SparseChunk {
	return &SparseChunk{
		width:   width,
		height:  height,
		tiles:   make(map[int]tile.Tile),
		texture: texture,
	}
}

func (c *SparseChunk) Width() int  { return c.width }
func (c *SparseChunk) Height() int { return c.height }
func (c *SparseChunk) Area() int   { return c.width * c.height }

func (c *SparseChunk) Tile(index int) (tile.Tile, bool) {
	t, ok := c.tiles[index]
	return t, ok
}

func (c *SparseChunk) SetTile(index int, t tile.Tile) {
	if index < 0 || index >= c.Area() {
		return
	}
	c.tiles[index] = t
}

func (c *SparseChunk) RemoveTile(index int) {
	delete(c.tiles, index)
}

func (c *SparseChunk) Clear() {
	c.tiles = make(map[int]tile.Tile)
}

func (c *SparseChunk) TextureHandle() asset.Handle { return c.texture }

func (c *SparseChunk) Attributes() ([]float32, []uint32, [][4]float32) {
	raws := make(map[int]tile.RawTile, len(c.tiles))
	for i, t := range c.tiles {
		raws[i] = t.Raw()
	}
	return tile.SparseAttributes(c.Area(), raws)
}
