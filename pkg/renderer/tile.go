package renderer

import (
	"image"
	"math/rand"
)

// Tile is a band of full image rows rendered as one unit of work
type Tile struct {
	ID     int             // Position of the tile, top to bottom
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile whose generator is derived from the master seed
// and the tile ID, so the pixels it produces do not depend on which worker
// renders it
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// NewTileGrid splits a width x height image into row bands of at most
// tileHeight rows
func NewTileGrid(width, height, tileHeight int, seed int64) []*Tile {
	if tileHeight <= 0 {
		tileHeight = DefaultTileHeight
	}

	var tiles []*Tile
	tilesY := (height + tileHeight - 1) / tileHeight // Ceiling division
	for tileID := 0; tileID < tilesY; tileID++ {
		y0 := tileID * tileHeight
		y1 := min(y0+tileHeight, height) // Don't exceed image bounds
		tiles = append(tiles, NewTile(tileID, image.Rect(0, y0, width, y1), seed))
	}

	return tiles
}
