// Package tile defines the tile value types used by chunked tile maps: the
// authoring-side Tile, its compact render-side RawTile form, and the Setter
// batch used to stage multiple writes.
package tile

import (
	"github.com/Faultbox/tilemap/pkg/grid"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// White is the identity tint: the sprite is drawn unchanged.
var White = Color{1, 1, 1, 1}

// Transparent is the discard sentinel: a zero alpha tells the renderer to
// skip the tile entirely.
var Transparent = Color{}

// Array returns the color as a 4-element float array for vertex attributes.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Tile is one cell's visual description. It is immutable once built; use
// the constructors or a Builder.
type Tile struct {
	// Point is the tile coordinate where the tile exists.
	Point grid.Point
	// ZOrder is the draw layer. Higher places the tile above others.
	ZOrder int
	// SpriteIndex indexes the shared sprite sheet.
	SpriteIndex int
	// Tint is the desired tint and alpha. White means no change.
	Tint Color
	// HFlip mirrors the sprite horizontally.
	HFlip bool
	// VFlip mirrors the sprite vertically.
	VFlip bool
}

// New creates a tile at a point with a sprite index and no tint.
func New(point grid.Point, spriteIndex int) Tile {
	return Tile{Point: point, SpriteIndex: spriteIndex, Tint: White}
}

// WithZOrder creates a tile with a draw layer.
func WithZOrder(point grid.Point, spriteIndex, zOrder int) Tile {
	t := New(point, spriteIndex)
	t.ZOrder = zOrder
	return t
}

// WithTint creates a tile with a tint color.
func WithTint(point grid.Point, spriteIndex int, tint Color) Tile {
	t := New(point, spriteIndex)
	t.Tint = tint
	return t
}

// WithZOrderAndTint creates a tile with both a draw layer and a tint.
func WithZOrderAndTint(point grid.Point, spriteIndex, zOrder int, tint Color) Tile {
	t := WithZOrder(point, spriteIndex, zOrder)
	t.Tint = tint
	return t
}

// Builder constructs tiles with fluent setters. The zero value builds a
// default tile: origin point, sprite 0, white tint, no flips.
type Builder struct {
	tile Tile
}

// NewBuilder returns a Builder with default values.
func NewBuilder() Builder {
	return Builder{tile: Tile{Tint: White}}
}

// Point sets the tile coordinate.
func (b Builder) Point(p grid.Point) Builder {
	b.tile.Point = p
	return b
}

// ZOrder sets the draw layer.
func (b Builder) ZOrder(z int) Builder {
	b.tile.ZOrder = z
	return b
}

// SpriteIndex sets the sprite sheet index.
func (b Builder) SpriteIndex(i int) Builder {
	b.tile.SpriteIndex = i
	return b
}

// Tint sets the tint color.
func (b Builder) Tint(c Color) Builder {
	b.tile.Tint = c
	return b
}

// HFlip sets the horizontal flip flag.
func (b Builder) HFlip(flipped bool) Builder {
	b.tile.HFlip = flipped
	return b
}

// VFlip sets the vertical flip flag.
func (b Builder) VFlip(flipped bool) Builder {
	b.tile.VFlip = flipped
	return b
}

// Finish returns the built tile.
func (b Builder) Finish() Tile {
	return b.tile
}
