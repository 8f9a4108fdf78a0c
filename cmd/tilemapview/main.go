// Package main is the entry point for the tilemap viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tilemap/internal/config"
	"github.com/Faultbox/tilemap/internal/logger"
	"github.com/Faultbox/tilemap/internal/viewer"
	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/atlas"
	"github.com/Faultbox/tilemap/pkg/grid"
	"github.com/Faultbox/tilemap/pkg/texture"
	"github.com/Faultbox/tilemap/pkg/tile"
	"github.com/Faultbox/tilemap/pkg/tilemap"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.LogFile,
		Console: true,
	})
	defer logger.Sync()

	logger.Log.Info("=== Tilemap Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Log.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Log.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	textures := asset.NewStore[*texture.Texture]()

	sheet, err := loadAtlas(cfg, textures)
	if err != nil {
		return fmt.Errorf("failed to load atlas: %w", err)
	}
	logger.Log.Info("atlas loaded", zap.Int("sprites", sheet.Len()))

	m := tilemap.New(tilemap.Params{
		Dimensions:  grid.Dimensions{Width: cfg.Map.Width, Height: cfg.Map.Height},
		ChunkWidth:  cfg.Map.ChunkWidth,
		ChunkHeight: cfg.Map.ChunkHeight,
		TileWidth:   cfg.Atlas.TileWidth,
		TileHeight:  cfg.Atlas.TileHeight,
	})
	m.SetAtlas(sheet)

	chunks := asset.NewStore[tilemap.Chunk]()
	populate(cfg, m, chunks, textures, sheet)

	window, err := viewer.NewWindow(viewer.WindowConfig{
		Title:      "Tilemap Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Close()

	renderer, err := viewer.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer renderer.Close()

	scene := viewer.NewScene()
	sys := tilemap.NewSystem(m, chunks, textures, scene, logger.Log)

	for !window.PollQuit() {
		if err := sys.Step(); err != nil {
			return fmt.Errorf("tilemap update failed: %w", err)
		}

		w, h := window.Size()
		renderer.Resize(w, h)
		renderer.Draw(scene, textures, w, h)
		window.SwapBuffers()
	}

	return nil
}

// loadAtlas builds the sprite atlas either from a YAML atlas file or from
// a uniformly sliced sheet.
func loadAtlas(cfg *config.Config, textures *asset.Store[*texture.Texture]) (*atlas.Atlas, error) {
	if cfg.Atlas.Path != "" {
		return atlas.LoadFile(cfg.Atlas.Path, textures)
	}

	sheet, err := texture.LoadPNG(cfg.Atlas.Sheet)
	if err != nil {
		return nil, err
	}
	h := textures.Register(sheet)
	return atlas.Grid(h, sheet.Width, sheet.Height, cfg.Atlas.TileWidth, cfg.Atlas.TileHeight), nil
}

// populate creates one chunk per map slot and lays down a checkerboard of
// the first two atlas sprites.
func populate(cfg *config.Config, m *tilemap.Map, chunks *asset.Store[tilemap.Chunk],
	textures *asset.Store[*texture.Texture], sheet *atlas.Atlas) {

	chunkW, chunkH := m.ChunkSize()
	tileW, tileH := m.TileSize()
	dims := m.Dimensions()

	for cy := 0; cy < dims.Height; cy++ {
		for cx := 0; cx < dims.Width; cx++ {
			tex := textures.Register(texture.NewRGBA(chunkW*tileW, chunkH*tileH))

			var chunk tilemap.Chunk
			if cfg.Map.Sparse {
				chunk = tilemap.NewSparse(chunkW, chunkH, tex)
			} else {
				chunk = tilemap.NewDense(chunkW, chunkH, tex)
			}
			m.AddChunk(chunk, grid.Point{X: cx, Y: cy}, chunks)
		}
	}

	setter := tile.NewSetter(dims.Width * chunkW * dims.Height * chunkH)
	for ty := 0; ty < dims.Height*chunkH; ty++ {
		for tx := 0; tx < dims.Width*chunkW; tx++ {
			sprite := (tx + ty) % 2
			if sprite >= sheet.Len() {
				sprite = 0
			}
			at := grid.Point{X: tx, Y: ty}
			setter.Push(tile.Point3{X: tx, Y: ty}, tile.New(at, sprite))
		}
	}
	if err := m.SetTiles(setter); err != nil {
		logger.Log.Warn("failed to place initial tiles", zap.Error(err))
	}
}
