// Package grid provides integer coordinate math for chunked 2D tile worlds.
//
// Three coordinate spaces are related here: flat storage indexes into a
// map's chunk array, tile coordinates (one unit per tile), and chunk
// coordinates (one unit per chunk).
package grid

// Point is an integer 2D coordinate.
type Point struct {
	X, Y int
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Dimensions is a map size in chunks per axis.
type Dimensions struct {
	Width, Height int
}

// Area returns the total number of chunk slots.
func (d Dimensions) Area() int {
	return d.Width * d.Height
}

// Contains reports whether a chunk coordinate lies inside the map.
func (d Dimensions) Contains(p Point) bool {
	return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
}

// ContainsIndex reports whether a flat index lies inside the map.
func (d Dimensions) ContainsIndex(i int) bool {
	return i >= 0 && i < d.Area()
}

// ToIndex linearizes a chunk coordinate into a flat index.
// Callers must bounds-check the coordinate; out-of-range points produce
// out-of-range indexes, they are never wrapped.
func ToIndex(p Point, d Dimensions) int {
	return p.Y*d.Width + p.X
}

// FromIndex is the inverse of ToIndex.
func FromIndex(i int, d Dimensions) Point {
	return Point{i % d.Width, i / d.Width}
}

// divFloor returns floor(a / b) for positive b.
func divFloor(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// TileToChunk returns the chunk coordinate owning a tile coordinate.
// Division is floored on both axes, so negative tile coordinates resolve
// to negative chunk coordinates instead of rounding toward zero.
func TileToChunk(tile Point, chunkWidth, chunkHeight int) Point {
	return Point{divFloor(tile.X, chunkWidth), divFloor(tile.Y, chunkHeight)}
}

// Center returns the chunk coordinate of the map's center.
func Center(d Dimensions) Point {
	return Point{d.Width / 2, d.Height / 2}
}

// CenterTile returns the tile coordinate of the map's visual center, used
// to place chunks symmetrically around the world origin.
func CenterTile(d Dimensions, chunkWidth, chunkHeight int) Point {
	return Point{d.Width / 2 * chunkWidth, d.Height / 2 * chunkHeight}
}

// TranslationToTile converts a world-space position to the tile coordinate
// it falls into, given the pixel size of one tile. The integer conversion
// truncates toward zero, unlike TileToChunk's floored division: the two
// cells straddling an axis both resolve to the center-side coordinate.
func TranslationToTile(x, y float32, d Dimensions, chunkWidth, chunkHeight, tileWidth, tileHeight int) Point {
	center := CenterTile(d, chunkWidth, chunkHeight)
	return Point{
		X: int(x)/tileWidth + center.X,
		Y: int(y)/tileHeight + center.Y,
	}
}

// TranslationToChunk converts a world-space position to the chunk
// coordinate it falls into. Truncates toward zero like TranslationToTile.
func TranslationToChunk(x, y float32, d Dimensions, chunkWidth, chunkHeight, tileWidth, tileHeight int) Point {
	center := Center(d)
	return Point{
		X: int(x)/(tileWidth*chunkWidth) + center.X,
		Y: int(y)/(tileHeight*chunkHeight) + center.Y,
	}
}

// ChunkTranslation returns the world-space position of a chunk's sprite,
// placing the chunk grid symmetrically around the origin. The half-chunk
// offset centers each sprite on its cell.
func ChunkTranslation(index int, d Dimensions, chunkWidth, chunkHeight, tileWidth, tileHeight int) (float32, float32) {
	coord := FromIndex(index, d)
	center := Center(d)
	x := (float32(coord.X-center.X) + 0.5) * float32(tileWidth*chunkWidth)
	y := (float32(coord.Y-center.Y) + 0.5) * float32(tileHeight*chunkHeight)
	return x, y
}

// LocalCoord converts an absolute tile coordinate to the tile's position
// inside its owning chunk. The Y axis is flipped: chunk pixel rows run
// top-to-bottom while tile coordinates run bottom-to-top, so omitting the
// flip renders chunks upside-down.
func LocalCoord(tile, chunk Point, chunkWidth, chunkHeight int) Point {
	return Point{
		X: tile.X - chunk.X*chunkWidth,
		Y: (chunkHeight - 1) - (tile.Y - chunk.Y*chunkHeight),
	}
}
