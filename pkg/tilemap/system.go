package tilemap

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/grid"
	"github.com/Faultbox/tilemap/pkg/texture"
	"github.com/Faultbox/tilemap/pkg/tile"
)

// Placement describes where a chunk's sprite goes in world space and which
// texture it presents.
type Placement struct {
	X, Y    float32
	Texture asset.Handle
}

// Spawner is the host side of chunk visuals: it creates an entity for a
// Created chunk and destroys it again on Despawned or Removed.
type Spawner interface {
	Spawn(p Placement) Entity
	Despawn(e Entity)
}

// System is the per-frame consumer of a map's event log. Each Step swaps
// the log's generations, drains the system's reader, and reacts to each
// event: compositing sprite pixels into chunk textures and spawning or
// despawning chunk entities through the Spawner.
type System struct {
	m        *Map
	chunks   *asset.Store[Chunk]
	textures *asset.Store[*texture.Texture]
	spawner  Spawner
	reader   *Reader
	log      *zap.Logger
}

// NewSystem wires a driver to a map and its collaborators. A nil logger
// disables logging.
func NewSystem(m *Map, chunks *asset.Store[Chunk], textures *asset.Store[*texture.Texture], spawner Spawner, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{
		m:        m,
		chunks:   chunks,
		textures: textures,
		spawner:  spawner,
		reader:   m.Events().NewReader(),
		log:      log,
	}
}

// Step runs one frame of event consumption. Call exactly once per logical
// frame; calling it twice without new events is harmless, but skipping
// frames of consumption drops the skipped generation's events.
func (s *System) Step() error {
	s.m.Events().Update()

	var (
		created   []Created
		refreshed []Refresh
		modified  []Modified
		despawned []Despawned
		removed   []Removed
	)
	s.m.Events().Drain(s.reader, func(ev Event) {
		switch e := ev.(type) {
		case Created:
			created = append(created, e)
		case Refresh:
			refreshed = append(refreshed, e)
		case Modified:
			modified = append(modified, e)
		case Despawned:
			despawned = append(despawned, e)
		case Removed:
			removed = append(removed, e)
		}
	})

	for _, e := range created {
		if err := s.handleCreated(e); err != nil {
			return err
		}
	}
	for _, e := range refreshed {
		if err := s.recomposite(e.Chunk); err != nil {
			return err
		}
	}
	for _, e := range modified {
		if err := s.handleModified(e); err != nil {
			return err
		}
	}
	for _, e := range despawned {
		if err := s.handleDespawned(e); err != nil {
			return err
		}
	}
	for _, e := range removed {
		// Removal destroys the chunk outright: storage and pixel buffer
		// are released, not just the handle slot.
		if h, ok := s.m.ChunkHandle(e.Index); ok {
			if chunk, ok := s.chunks.Resolve(h); ok {
				s.textures.Remove(chunk.TextureHandle())
			}
			s.chunks.Remove(h)
		}
		s.m.RemoveChunkHandle(e.Index)
		s.m.RemoveEntity(e.Index)
		if e.Entity != 0 {
			s.spawner.Despawn(e.Entity)
		}
		s.log.Debug("chunk removed", zap.Int("index", e.Index))
	}
	return nil
}

// resolve fetches a chunk, its destination texture, and the shared sprite
// sheet for compositing.
func (s *System) resolve(h asset.Handle) (Chunk, *texture.Texture, *texture.Texture, error) {
	chunk, ok := s.chunks.Resolve(h)
	if !ok {
		return nil, nil, nil, fmt.Errorf("resolving chunk %d: %w", h, ErrChunkNotFound)
	}
	dst, ok := s.textures.Resolve(chunk.TextureHandle())
	if !ok {
		return nil, nil, nil, fmt.Errorf("chunk %d has no texture %d", h, chunk.TextureHandle())
	}
	a := s.m.Atlas()
	if a == nil {
		return nil, nil, nil, fmt.Errorf("map has no sprite atlas")
	}
	sheet, ok := s.textures.Resolve(a.Texture)
	if !ok {
		return nil, nil, nil, fmt.Errorf("sprite sheet texture %d not registered", a.Texture)
	}
	return chunk, dst, sheet, nil
}

func (s *System) handleCreated(e Created) error {
	if err := s.recomposite(e.Chunk); err != nil {
		return err
	}
	chunk, _ := s.chunks.Resolve(e.Chunk)
	dims := s.m.Dimensions()
	cw, ch := s.m.ChunkSize()
	tw, th := s.m.TileSize()
	x, y := grid.ChunkTranslation(e.Index, dims, cw, ch, tw, th)
	entity := s.spawner.Spawn(Placement{X: x, Y: y, Texture: chunk.TextureHandle()})
	s.m.InsertEntity(e.Index, entity)
	s.log.Debug("chunk created",
		zap.Int("index", e.Index),
		zap.Uint32("chunk", uint32(e.Chunk)),
		zap.Uint64("entity", uint64(entity)),
	)
	return nil
}

// recomposite redraws every present tile of a chunk into its texture.
func (s *System) recomposite(h asset.Handle) error {
	chunk, dst, sheet, err := s.resolve(h)
	if err != nil {
		return err
	}
	for i := 0; i < chunk.Area(); i++ {
		t, ok := chunk.Tile(i)
		if !ok {
			continue
		}
		if err := s.composite(t, i, chunk, dst, sheet); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) handleModified(e Modified) error {
	chunk, dst, sheet, err := s.resolve(e.Chunk)
	if err != nil {
		return err
	}
	for _, entry := range e.Setter.Entries() {
		index := entry.Coord.Y*chunk.Width() + entry.Coord.X
		chunk.SetTile(index, entry.Tile)
		if err := s.composite(entry.Tile, index, chunk, dst, sheet); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) handleDespawned(e Despawned) error {
	chunk, ok := s.chunks.Resolve(e.Chunk)
	if !ok {
		return fmt.Errorf("despawning chunk %d: %w", e.Chunk, ErrChunkNotFound)
	}
	chunk.Clear()
	if e.Entity != 0 {
		s.spawner.Despawn(e.Entity)
	}
	s.log.Debug("chunk despawned", zap.Uint32("chunk", uint32(e.Chunk)))
	return nil
}

// composite copies the tile's sprite-sheet region into the chunk texture
// at the tile's local position. Tiles whose sprite index has no atlas
// rectangle are skipped; that silent no-op is part of the contract.
func (s *System) composite(t tile.Tile, localIndex int, chunk Chunk, dst, sheet *texture.Texture) error {
	rect, ok := s.m.Atlas().Rect(t.SpriteIndex)
	if !ok {
		return nil
	}
	destX := (localIndex % chunk.Width()) * rect.Width()
	destY := (localIndex / chunk.Width()) * rect.Height()
	return texture.Blit(dst, sheet, rect, destX, destY)
}
