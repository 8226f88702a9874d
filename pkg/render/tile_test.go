package render

import "testing"

func TestSpiralTiles_CoversEveryTileExactlyOnce(t *testing.T) {
	tiles := SpiralTiles(200, 150, 64)

	cols := (200 + 63) / 64
	rows := (150 + 63) / 64
	if len(tiles) != cols*rows {
		t.Fatalf("got %d tiles, want %d", len(tiles), cols*rows)
	}

	seen := make(map[[2]int]bool)
	for _, tl := range tiles {
		key := [2]int{tl.MinX, tl.MinY}
		if seen[key] {
			t.Fatalf("tile at %v visited twice", key)
		}
		seen[key] = true
		if tl.MaxX > 200 || tl.MaxY > 150 {
			t.Fatalf("tile %v exceeds image bounds", tl)
		}
	}
}

func TestSpiralTiles_FirstTileIsNearestTheCenter(t *testing.T) {
	tiles := SpiralTiles(256, 256, 64)
	if len(tiles) == 0 {
		t.Fatal("expected tiles")
	}
	first := tiles[0]
	// a 256x256 image tiled at 64 makes a 4x4 grid; center tile col/row is
	// (4-1)/2 = 1, i.e. pixel origin (64, 64).
	if first.MinX != 64 || first.MinY != 64 {
		t.Errorf("first tile = %+v, want origin (64,64)", first)
	}
}

func TestSpiralTiles_SingleTileImage(t *testing.T) {
	tiles := SpiralTiles(32, 32, 64)
	if len(tiles) != 1 {
		t.Fatalf("got %d tiles, want 1", len(tiles))
	}
	if tiles[0].Width() != 32 || tiles[0].Height() != 32 {
		t.Errorf("tile = %+v, want 32x32", tiles[0])
	}
}
