package viewer

import (
	"testing"

	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/tilemap"
)

func TestSceneSpawnDespawn(t *testing.T) {
	s := NewScene()

	a := s.Spawn(tilemap.Placement{X: 16, Y: -16, Texture: asset.Handle(1)})
	b := s.Spawn(tilemap.Placement{X: -16, Y: 16, Texture: asset.Handle(2)})

	if a == b {
		t.Fatalf("expected distinct entity ids, got %d twice", a)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 sprites, got %d", s.Len())
	}

	s.Despawn(a)
	if s.Len() != 1 {
		t.Fatalf("expected 1 sprite after despawn, got %d", s.Len())
	}

	sprites := s.Sprites()
	if len(sprites) != 1 || sprites[0].Texture != asset.Handle(2) {
		t.Errorf("unexpected surviving sprite: %+v", sprites)
	}

	// Despawning an unknown entity is a no-op.
	s.Despawn(tilemap.Entity(999))
	if s.Len() != 1 {
		t.Errorf("despawn of unknown entity changed scene, len = %d", s.Len())
	}
}

func TestSceneSpritesStableOrder(t *testing.T) {
	s := NewScene()
	for i := 1; i <= 4; i++ {
		s.Spawn(tilemap.Placement{X: float32(i), Texture: asset.Handle(i)})
	}

	sprites := s.Sprites()
	for i, sprite := range sprites {
		if sprite.Texture != asset.Handle(i+1) {
			t.Errorf("sprite %d: got texture %d, want %d", i, sprite.Texture, i+1)
		}
	}
}
