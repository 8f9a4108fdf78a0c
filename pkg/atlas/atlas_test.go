package atlas

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/texture"
)

func TestGrid(t *testing.T) {
	a := Grid(1, 32, 16, 8, 8)
	if a.Len() != 8 {
		t.Fatalf("Len = %d, want 8 sprites in a 32x16 sheet of 8x8 tiles", a.Len())
	}
	r, ok := a.Rect(0)
	if !ok || r != texture.NewRect(0, 0, 8, 8) {
		t.Errorf("Rect(0) = %v, %v", r, ok)
	}
	// Index 5 is the second sprite of the second row.
	r, ok = a.Rect(5)
	if !ok || r != texture.NewRect(8, 8, 8, 8) {
		t.Errorf("Rect(5) = %v, %v", r, ok)
	}
}

func TestRectOutOfRange(t *testing.T) {
	a := Grid(1, 16, 16, 8, 8)
	if _, ok := a.Rect(-1); ok {
		t.Error("Rect(-1) reported a sprite")
	}
	if _, ok := a.Rect(4); ok {
		t.Error("Rect(4) reported a sprite past the sheet")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	sheetPath := filepath.Join(dir, "sheet.png")
	f, err := os.Create(sheetPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 16, 8))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	atlasPath := filepath.Join(dir, "atlas.yaml")
	spec := "sheet: " + sheetPath + "\ntile_width: 8\ntile_height: 8\n"
	if err := os.WriteFile(atlasPath, []byte(spec), 0o644); err != nil {
		t.Fatal(err)
	}

	textures := asset.NewStore[*texture.Texture]()
	a, err := LoadFile(atlasPath, textures)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
	sheet, ok := textures.Resolve(a.Texture)
	if !ok {
		t.Fatal("sheet not registered in texture store")
	}
	if sheet.Width != 16 || sheet.Height != 8 {
		t.Errorf("sheet size = %dx%d, want 16x8", sheet.Width, sheet.Height)
	}
}

func TestLoadFileMissingSheet(t *testing.T) {
	dir := t.TempDir()
	atlasPath := filepath.Join(dir, "atlas.yaml")
	if err := os.WriteFile(atlasPath, []byte("tile_width: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(atlasPath, asset.NewStore[*texture.Texture]()); err == nil {
		t.Error("expected error for atlas without a sheet path")
	}
}
