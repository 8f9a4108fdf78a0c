package tilemap

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/grid"
	"github.com/Faultbox/tilemap/pkg/tile"
)

// testMap returns a 2x2-chunk map of 4x4-tile chunks with 8x8-pixel tiles.
func testMap() *Map {
	return New(Params{
		Dimensions:  grid.Dimensions{Width: 2, Height: 2},
		ChunkWidth:  4,
		ChunkHeight: 4,
		TileWidth:   8,
		TileHeight:  8,
	})
}

func TestAddChunkEmitsCreated(t *testing.T) {
	m := testMap()
	chunks := asset.NewStore[Chunk]()

	h := m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 1, Y: 0}, chunks)
	if !h.Valid() {
		t.Fatal("AddChunk returned the null handle")
	}
	if !m.ChunkExists(grid.Point{X: 1, Y: 0}) {
		t.Error("chunk not recorded at (1,0)")
	}

	m.Events().Update()
	var got []Event
	m.Events().Drain(m.Events().NewReader(), func(ev Event) { got = append(got, ev) })
	if len(got) != 1 {
		t.Fatalf("drained %d events, want 1", len(got))
	}
	created, ok := got[0].(Created)
	if !ok {
		t.Fatalf("event = %T, want Created", got[0])
	}
	if created.Index != 1 || created.Chunk != h {
		t.Errorf("Created = %+v, want index 1, chunk %v", created, h)
	}
}

func TestSetChunkBounds(t *testing.T) {
	m := testMap()
	chunks := asset.NewStore[Chunk]()

	err := m.SetChunk(0, NewDense(4, 4, 0), grid.Point{X: 2, Y: 0}, chunks)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetChunk at x=2 on a 2-wide map: err = %v, want ErrOutOfBounds", err)
	}
	err = m.SetChunk(0, NewDense(4, 4, 0), grid.Point{X: 0, Y: 2}, chunks)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetChunk at y=2: err = %v, want ErrOutOfBounds", err)
	}
	if err := m.SetChunk(0, NewDense(4, 4, 0), grid.Point{X: 1, Y: 1}, chunks); err != nil {
		t.Errorf("SetChunk in bounds: %v", err)
	}
}

func TestOutOfRangeCoordDoesNotAlias(t *testing.T) {
	// On a 2x2 map, coordinate (2,0) linearizes to index 2, which is the
	// slot of coordinate (0,1). The write must be rejected on the
	// coordinate, never land in the aliased slot.
	m := testMap()
	chunks := asset.NewStore[Chunk]()

	err := m.SetChunk(0, NewDense(4, 4, 0), grid.Point{X: 2, Y: 0}, chunks)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetChunk at (2,0): err = %v, want ErrOutOfBounds", err)
	}
	if m.ChunkExists(grid.Point{X: 0, Y: 1}) {
		t.Error("chunk stored at aliased coordinate (0,1)")
	}
	if m.ChunkExists(grid.Point{X: 2, Y: 0}) {
		t.Error("ChunkExists reports an out-of-range coordinate")
	}

	// Tile (8,0) belongs to chunk (2,0); with a chunk present at (0,1)
	// the write must still be out of bounds, not redirected into it.
	m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 0, Y: 1}, chunks)
	err = m.SetTile(grid.Point{X: 8, Y: 0}, tile.New(grid.Point{X: 8, Y: 0}, 1))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetTile at (8,0): err = %v, want ErrOutOfBounds", err)
	}
	m.Events().Update()
	m.Events().Drain(m.Events().NewReader(), func(ev Event) {
		if _, ok := ev.(Modified); ok {
			t.Error("out-of-range SetTile emitted a Modified event")
		}
	})
}

func TestSetChunkCreatedVsRefresh(t *testing.T) {
	m := testMap()
	chunks := asset.NewStore[Chunk]()

	if err := m.SetChunk(0, NewDense(4, 4, 0), grid.Point{X: 0, Y: 0}, chunks); err != nil {
		t.Fatal(err)
	}
	h, _ := m.ChunkHandle(0)
	m.InsertEntity(0, 42)
	if err := m.SetChunk(h, NewDense(4, 4, 0), grid.Point{X: 0, Y: 0}, chunks); err != nil {
		t.Fatal(err)
	}

	m.Events().Update()
	var got []Event
	m.Events().Drain(m.Events().NewReader(), func(ev Event) { got = append(got, ev) })
	if len(got) != 2 {
		t.Fatalf("drained %d events, want 2", len(got))
	}
	if _, ok := got[0].(Created); !ok {
		t.Errorf("first event = %T, want Created", got[0])
	}
	if _, ok := got[1].(Refresh); !ok {
		t.Errorf("second event = %T, want Refresh after an entity exists", got[1])
	}
}

func TestGetChunk(t *testing.T) {
	m := testMap()
	chunks := asset.NewStore[Chunk]()

	// Out of bounds is an error.
	if _, _, err := m.GetChunk(grid.Point{X: 5, Y: 0}, chunks); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}

	// An empty in-bounds slot is not an error.
	c, ok, err := m.GetChunk(grid.Point{X: 0, Y: 0}, chunks)
	if err != nil || ok || c != nil {
		t.Errorf("empty slot = (%v, %v, %v), want (nil, false, nil)", c, ok, err)
	}

	m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 0, Y: 0}, chunks)
	c, ok, err = m.GetChunk(grid.Point{X: 0, Y: 0}, chunks)
	if err != nil || !ok || c == nil {
		t.Errorf("occupied slot = (%v, %v, %v)", c, ok, err)
	}
}

func TestSetTileScenario(t *testing.T) {
	// Map of 2x2 chunks, chunk size 4x4 tiles. A chunk at chunk (1,0) has
	// index 1; tile (6,1) lands inside it at local (2,1) before the
	// vertical flip, local (2,2) after.
	m := testMap()
	chunks := asset.NewStore[Chunk]()
	h := m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 1, Y: 0}, chunks)

	if err := m.SetTile(grid.Point{X: 6, Y: 1}, tile.New(grid.Point{X: 6, Y: 1}, 3)); err != nil {
		t.Fatal(err)
	}

	m.Events().Update()
	var got []Event
	m.Events().Drain(m.Events().NewReader(), func(ev Event) { got = append(got, ev) })
	if len(got) != 2 {
		t.Fatalf("drained %d events, want Created+Modified", len(got))
	}
	mod, ok := got[1].(Modified)
	if !ok {
		t.Fatalf("second event = %T, want Modified", got[1])
	}
	if mod.Chunk != h {
		t.Errorf("Modified chunk = %v, want %v", mod.Chunk, h)
	}
	if mod.Setter.Len() != 1 {
		t.Fatalf("setter length = %d, want 1", mod.Setter.Len())
	}
	coord := mod.Setter.Entries()[0].Coord
	if coord.X != 2 || coord.Y != 2 {
		t.Errorf("local coord = (%d,%d), want (2,2)", coord.X, coord.Y)
	}
}

func TestSetTileMissingChunk(t *testing.T) {
	m := testMap()
	err := m.SetTile(grid.Point{X: 1, Y: 1}, tile.New(grid.Point{X: 1, Y: 1}, 0))
	if !errors.Is(err, ErrChunkNotFound) {
		t.Errorf("err = %v, want ErrChunkNotFound", err)
	}
}

func TestSetTileOutOfBounds(t *testing.T) {
	m := testMap()
	err := m.SetTile(grid.Point{X: 64, Y: 0}, tile.New(grid.Point{X: 64, Y: 0}, 0))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestSetTilesGroupsByChunk(t *testing.T) {
	m := testMap()
	chunks := asset.NewStore[Chunk]()
	h00 := m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 0, Y: 0}, chunks)
	h10 := m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 1, Y: 0}, chunks)
	h01 := m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 0, Y: 1}, chunks)

	// Entries span three chunks, interleaved.
	setter := tile.NewSetter(5)
	push := func(x, y, sprite int) {
		setter.Push(tile.Point3{X: x, Y: y}, tile.New(grid.Point{X: x, Y: y}, sprite))
	}
	push(0, 0, 1) // chunk (0,0)
	push(5, 0, 2) // chunk (1,0)
	push(1, 0, 3) // chunk (0,0) again
	push(0, 5, 4) // chunk (0,1)
	push(6, 1, 5) // chunk (1,0) again

	if err := m.SetTiles(setter); err != nil {
		t.Fatal(err)
	}

	m.Events().Update()
	var mods []Modified
	m.Events().Drain(m.Events().NewReader(), func(ev Event) {
		if mod, ok := ev.(Modified); ok {
			mods = append(mods, mod)
		}
	})
	if len(mods) != 3 {
		t.Fatalf("got %d Modified events, want 3 (one per touched chunk)", len(mods))
	}

	// Events come out in first-touched chunk order.
	wantChunks := []asset.Handle{h00, h10, h01}
	wantSprites := [][]int{{1, 3}, {2, 5}, {4}}
	for i, mod := range mods {
		if mod.Chunk != wantChunks[i] {
			t.Errorf("event %d chunk = %v, want %v", i, mod.Chunk, wantChunks[i])
		}
		entries := mod.Setter.Entries()
		if len(entries) != len(wantSprites[i]) {
			t.Fatalf("event %d has %d entries, want %d", i, len(entries), len(wantSprites[i]))
		}
		for j, want := range wantSprites[i] {
			if got := entries[j].Tile.SpriteIndex; got != want {
				t.Errorf("event %d entry %d sprite = %d, want %d", i, j, got, want)
			}
		}
	}
}

func TestSetDimensionsDestructive(t *testing.T) {
	m := testMap()
	chunks := asset.NewStore[Chunk]()
	m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 0, Y: 0}, chunks)
	m.InsertEntity(0, 7)

	m.SetDimensions(grid.Dimensions{Width: 3, Height: 3})
	if m.Dimensions().Area() != 9 {
		t.Errorf("Area = %d, want 9", m.Dimensions().Area())
	}
	if m.ChunkExists(grid.Point{X: 0, Y: 0}) {
		t.Error("chunk handle survived a resize")
	}
	if m.ContainsEntity(0) {
		t.Error("entity mapping survived a resize")
	}
}

func TestRemoveChunkHandle(t *testing.T) {
	m := testMap()
	chunks := asset.NewStore[Chunk]()
	m.AddChunk(NewDense(4, 4, 0), grid.Point{X: 0, Y: 0}, chunks)
	m.RemoveChunkHandle(0)
	if m.ChunkExists(grid.Point{X: 0, Y: 0}) {
		t.Error("handle still present after RemoveChunkHandle")
	}
	// The chunk itself is untouched in the store.
	if chunks.Len() != 1 {
		t.Errorf("chunk store length = %d, want 1", chunks.Len())
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	m := testMap()
	path := filepath.Join(t.TempDir(), "map.yaml")
	if err := m.SaveLayout(path); err != nil {
		t.Fatal(err)
	}
	d, err := LoadLayout(path)
	if err != nil {
		t.Fatal(err)
	}
	if d != m.Dimensions() {
		t.Errorf("loaded dimensions = %v, want %v", d, m.Dimensions())
	}
}
