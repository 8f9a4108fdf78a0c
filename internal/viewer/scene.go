package viewer

import (
	"sort"

	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/tilemap"
)

// Sprite is a spawned chunk sprite positioned in world units.
type Sprite struct {
	X       float32
	Y       float32
	Texture asset.Handle
}

// Scene tracks the live chunk sprites. It implements tilemap.Spawner.
type Scene struct {
	sprites map[tilemap.Entity]Sprite
	nextID  tilemap.Entity
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{sprites: make(map[tilemap.Entity]Sprite)}
}

// Spawn places a new sprite and returns its entity id.
func (s *Scene) Spawn(p tilemap.Placement) tilemap.Entity {
	s.nextID++
	s.sprites[s.nextID] = Sprite{X: p.X, Y: p.Y, Texture: p.Texture}
	return s.nextID
}

// Despawn removes a sprite. Unknown entities are ignored.
func (s *Scene) Despawn(e tilemap.Entity) {
	delete(s.sprites, e)
}

// Len reports the number of live sprites.
func (s *Scene) Len() int {
	return len(s.sprites)
}

// Sprites returns the live sprites in stable spawn order.
func (s *Scene) Sprites() []Sprite {
	ids := make([]tilemap.Entity, 0, len(s.sprites))
	for id := range s.sprites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Sprite, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.sprites[id])
	}
	return out
}
