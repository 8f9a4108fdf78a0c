// Package tilemap manages a large 2D world as fixed-size chunks of tiles.
//
// A Map owns a chunk-handle array indexed by linearized chunk coordinate,
// a mapping from index to visual entity, and a double-buffered event log.
// Mutators perform the coordinate math, update storage, and append events;
// a System drains the log once per frame and composites chunk textures.
//
// Everything here is single-threaded and frame-stepped. The Map has no
// internal locking; one logical owner mutates it per step.
package tilemap

import (
	"fmt"

	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/atlas"
	"github.com/Faultbox/tilemap/pkg/grid"
	"github.com/Faultbox/tilemap/pkg/tile"
)

// Params configures a new Map.
type Params struct {
	// Dimensions is the map size in chunks per axis.
	Dimensions grid.Dimensions
	// ChunkWidth and ChunkHeight are the chunk size in tiles.
	ChunkWidth, ChunkHeight int
	// TileWidth and TileHeight are the tile size in pixels, used for
	// world-space translation math.
	TileWidth, TileHeight int
}

// Map is the chunk store and event source for one tiled world.
type Map struct {
	dimensions  grid.Dimensions
	chunkWidth  int
	chunkHeight int
	tileWidth   int
	tileHeight  int

	handles  []asset.Handle
	entities map[int]Entity
	events   Events
	atlas    *atlas.Atlas
}

// New returns an empty map. Every chunk slot starts without a chunk.
func New(p Params) *Map {
	return &Map{
		dimensions:  p.Dimensions,
		chunkWidth:  p.ChunkWidth,
		chunkHeight: p.ChunkHeight,
		tileWidth:   p.TileWidth,
		tileHeight:  p.TileHeight,
		handles:     make([]asset.Handle, p.Dimensions.Area()),
		entities:    make(map[int]Entity),
	}
}

// Dimensions returns the map size in chunks.
func (m *Map) Dimensions() grid.Dimensions {
	return m.dimensions
}

// ChunkSize returns the chunk size in tiles.
func (m *Map) ChunkSize() (width, height int) {
	return m.chunkWidth, m.chunkHeight
}

// TileSize returns the tile size in pixels.
func (m *Map) TileSize() (width, height int) {
	return m.tileWidth, m.tileHeight
}

// SetDimensions resizes the map. This is destructive: the handle array is
// reallocated and all chunk handles and entity mappings are dropped.
func (m *Map) SetDimensions(d grid.Dimensions) {
	m.dimensions = d
	m.handles = make([]asset.Handle, d.Area())
	m.entities = make(map[int]Entity)
}

// SetAtlas sets the shared sprite atlas.
func (m *Map) SetAtlas(a *atlas.Atlas) {
	m.atlas = a
}

// Atlas returns the shared sprite atlas.
func (m *Map) Atlas() *atlas.Atlas {
	return m.atlas
}

// Events returns the map's event log.
func (m *Map) Events() *Events {
	return &m.events
}

// checkCoord validates the 2D coordinate, not its linearized index: an
// out-of-range coordinate can still linearize inside the handle array and
// would alias a different slot.
func (m *Map) checkCoord(p grid.Point) error {
	if !m.dimensions.Contains(p) {
		return fmt.Errorf("%w: chunk (%d,%d), map is %dx%d chunks",
			ErrOutOfBounds, p.X, p.Y, m.dimensions.Width, m.dimensions.Height)
	}
	return nil
}

// ChunkHandle returns the handle stored at a flat index, if the index is
// in bounds and the slot is occupied.
func (m *Map) ChunkHandle(index int) (asset.Handle, bool) {
	if !m.dimensions.ContainsIndex(index) {
		return 0, false
	}
	h := m.handles[index]
	return h, h.Valid()
}

// ContainsEntity reports whether a visual entity exists at an index.
func (m *Map) ContainsEntity(index int) bool {
	_, ok := m.entities[index]
	return ok
}

// InsertEntity records the visual entity spawned for an index.
func (m *Map) InsertEntity(index int, e Entity) {
	m.entities[index] = e
}

// Entity returns the visual entity at an index, if one exists.
func (m *Map) Entity(index int) (Entity, bool) {
	e, ok := m.entities[index]
	return e, ok
}

// RemoveEntity drops the entity mapping for an index.
func (m *Map) RemoveEntity(index int) {
	delete(m.entities, index)
}

// AddChunk registers a chunk in the store, records its handle at the
// coordinate's slot, and emits Created.
//
// The coordinate must be in range; this is a documented precondition, not
// a checked one. Use SetChunk for a bounds-checked write.
func (m *Map) AddChunk(c Chunk, at grid.Point, chunks *asset.Store[Chunk]) asset.Handle {
	index := grid.ToIndex(at, m.dimensions)
	handle := chunks.Register(c)
	m.events.Send(Created{Index: index, Chunk: handle})
	m.handles[index] = handle
	return handle
}

// SetChunk stores a chunk under a given handle at a coordinate. If a
// visual entity already exists at the slot a Refresh is emitted, otherwise
// a Created. Passing the null handle registers a fresh chunk.
func (m *Map) SetChunk(h asset.Handle, c Chunk, at grid.Point, chunks *asset.Store[Chunk]) error {
	if err := m.checkCoord(at); err != nil {
		return fmt.Errorf("set chunk: %w", err)
	}
	index := grid.ToIndex(at, m.dimensions)
	handle := chunks.Update(h, c)
	if m.ContainsEntity(index) {
		m.events.Send(Refresh{Chunk: handle})
	} else {
		m.events.Send(Created{Index: index, Chunk: handle})
	}
	m.handles[index] = handle
	return nil
}

// GetChunk resolves the chunk at a coordinate. An empty in-bounds slot is
// not an error: it returns (nil, false, nil).
func (m *Map) GetChunk(at grid.Point, chunks *asset.Store[Chunk]) (Chunk, bool, error) {
	if err := m.checkCoord(at); err != nil {
		return nil, false, fmt.Errorf("get chunk: %w", err)
	}
	index := grid.ToIndex(at, m.dimensions)
	h := m.handles[index]
	if !h.Valid() {
		return nil, false, nil
	}
	c, ok := chunks.Resolve(h)
	return c, ok, nil
}

// ChunkExists reports whether an in-bounds coordinate holds a chunk.
func (m *Map) ChunkExists(at grid.Point) bool {
	if !m.dimensions.Contains(at) {
		return false
	}
	return m.handles[grid.ToIndex(at, m.dimensions)].Valid()
}

// RemoveChunkHandle clears a slot without touching the chunk store. In the
// wider protocol this is destructive: pairing it with a Removed event and
// despawning the visual entity is the caller's responsibility.
func (m *Map) RemoveChunkHandle(index int) {
	if m.dimensions.ContainsIndex(index) {
		m.handles[index] = 0
	}
}

// DespawnChunk emits Despawned for the chunk at a coordinate. The chunk's
// storage stays; its tiles are cleared and its entity despawned when the
// event is consumed.
func (m *Map) DespawnChunk(at grid.Point) error {
	if err := m.checkCoord(at); err != nil {
		return fmt.Errorf("despawn chunk: %w", err)
	}
	index := grid.ToIndex(at, m.dimensions)
	h := m.handles[index]
	if !h.Valid() {
		return fmt.Errorf("despawn chunk at (%d,%d): %w", at.X, at.Y, ErrChunkNotFound)
	}
	entity := m.entities[index]
	m.events.Send(Despawned{Chunk: h, Entity: entity})
	return nil
}

// RemoveChunk emits Removed for the chunk at a coordinate. The handle slot
// is cleared and the entity despawned when the event is consumed.
func (m *Map) RemoveChunk(at grid.Point) error {
	if err := m.checkCoord(at); err != nil {
		return fmt.Errorf("remove chunk: %w", err)
	}
	index := grid.ToIndex(at, m.dimensions)
	if !m.handles[index].Valid() {
		return fmt.Errorf("remove chunk at (%d,%d): %w", at.X, at.Y, ErrChunkNotFound)
	}
	entity := m.entities[index]
	m.events.Send(Removed{Index: index, Entity: entity})
	return nil
}

// localPlacement resolves a tile coordinate to its owning chunk's handle
// and the tile's local placement inside that chunk.
func (m *Map) localPlacement(at grid.Point) (asset.Handle, grid.Point, error) {
	chunkCoord := grid.TileToChunk(at, m.chunkWidth, m.chunkHeight)
	if err := m.checkCoord(chunkCoord); err != nil {
		return 0, grid.Point{}, err
	}
	h := m.handles[grid.ToIndex(chunkCoord, m.dimensions)]
	if !h.Valid() {
		return 0, grid.Point{}, fmt.Errorf("chunk (%d,%d): %w", chunkCoord.X, chunkCoord.Y, ErrChunkNotFound)
	}
	return h, grid.LocalCoord(at, chunkCoord, m.chunkWidth, m.chunkHeight), nil
}

// SetTile stages one tile write at a tile coordinate and emits a Modified
// event for the owning chunk. The chunk must already exist: writing into
// an absent chunk reports ErrChunkNotFound.
func (m *Map) SetTile(at grid.Point, t tile.Tile) error {
	h, local, err := m.localPlacement(at)
	if err != nil {
		return fmt.Errorf("set tile at (%d,%d): %w", at.X, at.Y, err)
	}
	setter := tile.NewSetter(1)
	setter.Push(tile.Point3{X: local.X, Y: local.Y, Z: t.ZOrder}, t)
	m.events.Send(Modified{Chunk: h, Setter: setter})
	return nil
}

// SetTiles stages a batch of tile writes. Entries are grouped by owning
// chunk and one Modified event is emitted per affected chunk, in the order
// chunks are first touched; within a chunk the original relative order is
// kept. Batching bounds the event log by touched chunks, not tiles.
//
// Setter coordinates are absolute tile coordinates; the emitted events
// carry local chunk coordinates.
func (m *Map) SetTiles(setter *tile.Setter) error {
	var order []asset.Handle
	buckets := make(map[asset.Handle]*tile.Setter)
	for _, entry := range setter.Entries() {
		at := grid.Point{X: entry.Coord.X, Y: entry.Coord.Y}
		h, local, err := m.localPlacement(at)
		if err != nil {
			return fmt.Errorf("set tiles at (%d,%d): %w", at.X, at.Y, err)
		}
		bucket, ok := buckets[h]
		if !ok {
			bucket = tile.NewSetter(m.chunkWidth * m.chunkHeight)
			buckets[h] = bucket
			order = append(order, h)
		}
		bucket.Push(tile.Point3{X: local.X, Y: local.Y, Z: entry.Coord.Z}, entry.Tile)
	}
	for _, h := range order {
		m.events.Send(Modified{Chunk: h, Setter: buckets[h]})
	}
	return nil
}

// CenterTile returns the tile coordinate of the map's visual center.
func (m *Map) CenterTile() grid.Point {
	return grid.CenterTile(m.dimensions, m.chunkWidth, m.chunkHeight)
}

// TileCoord converts a world-space position to a tile coordinate.
func (m *Map) TileCoord(x, y float32) grid.Point {
	return grid.TranslationToTile(x, y, m.dimensions, m.chunkWidth, m.chunkHeight, m.tileWidth, m.tileHeight)
}

// ChunkCoord converts a world-space position to a chunk coordinate.
func (m *Map) ChunkCoord(x, y float32) grid.Point {
	return grid.TranslationToChunk(x, y, m.dimensions, m.chunkWidth, m.chunkHeight, m.tileWidth, m.tileHeight)
}
