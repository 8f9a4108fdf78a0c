package tile

// RawTile flag bits.
const (
	// FlagHFlip marks the sprite as horizontally flipped.
	FlagHFlip uint32 = 1 << 0
	// FlagVFlip marks the sprite as vertically flipped.
	FlagVFlip uint32 = 1 << 1
)

// RawTile is the compact render-side form of a Tile: sprite index, color
// and bit-packed orientation flags. The conversion is one way; RawTile is
// only used on the render-attribute export path, never for authoring.
type RawTile struct {
	// Index of the tile in the sprite sheet.
	Index int
	// Color, or tint, of the tile.
	Color Color
	// Flags holds the orientation bits, see FlagHFlip and FlagVFlip.
	Flags uint32
}

// Raw converts the tile to its compact form.
func (t Tile) Raw() RawTile {
	var flags uint32
	if t.HFlip {
		flags |= FlagHFlip
	}
	if t.VFlip {
		flags |= FlagVFlip
	}
	return RawTile{
		Index: t.SpriteIndex,
		Color: t.Tint,
		Flags: flags,
	}
}

// DenseAttributes splits a full tile collection into three parallel
// per-vertex attribute arrays, replicating each tile's attributes four
// times, one per quad corner.
func DenseAttributes(tiles []RawTile) (indexes []float32, flags []uint32, colors [][4]float32) {
	capacity := len(tiles) * 4
	indexes = make([]float32, 0, capacity)
	flags = make([]uint32, 0, capacity)
	colors = make([][4]float32, 0, capacity)
	for _, t := range tiles {
		for i := 0; i < 4; i++ {
			indexes = append(indexes, float32(t.Index))
			flags = append(flags, t.Flags)
			colors = append(colors, t.Color.Array())
		}
	}
	return indexes, flags, colors
}

// SparseAttributes splits a partial tile collection into per-vertex
// attribute arrays covering area tiles. Entries never set stay at the
// transparent sentinel and must be discarded by the renderer.
func SparseAttributes(area int, tiles map[int]RawTile) (indexes []float32, flags []uint32, colors [][4]float32) {
	indexes = make([]float32, area*4)
	flags = make([]uint32, area*4)
	colors = make([][4]float32, area*4)
	for index, t := range tiles {
		if index < 0 || index >= area {
			continue
		}
		for i := 0; i < 4; i++ {
			indexes[index*4+i] = float32(t.Index)
			flags[index*4+i] = t.Flags
			colors[index*4+i] = t.Color.Array()
		}
	}
	return indexes, flags, colors
}
