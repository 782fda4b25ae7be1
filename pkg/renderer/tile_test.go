package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		tileHeight int
		expected   []image.Rectangle
	}{
		{"exact", 4, 4, 2, []image.Rectangle{image.Rect(0, 0, 4, 2), image.Rect(0, 2, 4, 4)}},
		{"partial last band", 3, 5, 2, []image.Rectangle{image.Rect(0, 0, 3, 2), image.Rect(0, 2, 3, 4), image.Rect(0, 4, 3, 5)}},
		{"taller than image", 3, 2, 8, []image.Rectangle{image.Rect(0, 0, 3, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileHeight, 42)
			if len(tiles) != len(tt.expected) {
				t.Fatalf("Expected %d tiles, got %d", len(tt.expected), len(tiles))
			}
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Tile %d has ID %d", i, tile.ID)
				}
				if tile.Bounds != tt.expected[i] {
					t.Errorf("Tile %d: expected bounds %v, got %v", i, tt.expected[i], tile.Bounds)
				}
			}
		})
	}
}

func TestNewTileGrid_DefaultTileHeight(t *testing.T) {
	tiles := NewTileGrid(10, DefaultTileHeight*3, 0, 42)
	if len(tiles) != 3 {
		t.Errorf("Expected 3 tiles of default height, got %d", len(tiles))
	}
}

func TestNewTile_SeededPerTile(t *testing.T) {
	a := NewTileGrid(8, 32, 8, 1234)
	b := NewTileGrid(8, 32, 8, 1234)

	for i := range a {
		if x, y := a[i].Random.Int63(), b[i].Random.Int63(); x != y {
			t.Errorf("Tile %d: same seed gave different draws %d and %d", i, x, y)
		}
	}

	c := NewTileGrid(8, 32, 8, 1234)
	if c[0].Random.Int63() == c[1].Random.Int63() {
		t.Error("Expected neighboring tiles to have different streams")
	}
}
