package tile

// Point3 is a tile placement inside a chunk: a local 2D coordinate plus
// the tile's draw layer.
type Point3 struct {
	X, Y, Z int
}

// Entry is one staged write: a coordinate and the tile to place there.
type Entry struct {
	Coord Point3
	Tile  Tile
}

// Setter is an ordered batch of tile writes. Insertion order is preserved
// and duplicate coordinates are allowed; all entries are replayed in order,
// so for overlapping writes the last one wins.
type Setter struct {
	entries []Entry
}

// NewSetter returns a Setter with room for capacity entries.
func NewSetter(capacity int) *Setter {
	return &Setter{entries: make([]Entry, 0, capacity)}
}

// Push appends a write to the batch.
func (s *Setter) Push(coord Point3, t Tile) {
	s.entries = append(s.entries, Entry{Coord: coord, Tile: t})
}

// Len returns the number of staged writes.
func (s *Setter) Len() int {
	return len(s.entries)
}

// Entries returns the staged writes in insertion order. The slice is owned
// by the Setter; callers must not append to it.
func (s *Setter) Entries() []Entry {
	return s.entries
}
