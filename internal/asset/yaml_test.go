package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/roomsim/internal/core"
)

const testAssets = `
sprites:
  - name: spr_coin
    width: 16
    height: 16
    origin: {x: 8, y: 8}
    frames: 4
  - name: spr_player
    width: 32
    height: 32
    origin: {x: 16, y: 32}
    hitbox: {left: 8, top: 4, width: 16, height: 28}
tilesets:
  - name: ts_cave
    tile_width: 16
    tile_height: 16
    columns: 8
`

func TestParseYAML(t *testing.T) {
	lib, err := ParseYAML([]byte(testAssets))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}

	coin, ok := lib.Sprite("spr_coin")
	if !ok {
		t.Fatal("spr_coin not found")
	}
	if coin.Hitbox != core.NewRect(0, 0, 16, 16) {
		t.Errorf("default hitbox = %+v, expected whole sprite", coin.Hitbox)
	}
	if coin.Frames != 4 {
		t.Errorf("Frames = %d, expected 4", coin.Frames)
	}

	player, ok := lib.Sprite("spr_player")
	if !ok {
		t.Fatal("spr_player not found")
	}
	if player.Hitbox != core.NewRect(8, 4, 16, 28) {
		t.Errorf("Hitbox = %+v, expected (8,4,16,28)", player.Hitbox)
	}
	if player.OriginY != 32 {
		t.Errorf("OriginY = %v, expected 32", player.OriginY)
	}
	if player.Frames != 1 {
		t.Errorf("Frames = %d, expected default 1", player.Frames)
	}

	ts, ok := lib.Tileset("ts_cave")
	if !ok || ts.Columns != 8 {
		t.Errorf("Tileset(ts_cave) = %+v, %v", ts, ok)
	}

	if names := lib.SpriteNames(); len(names) != 2 || names[0] != "spr_coin" {
		t.Errorf("SpriteNames() = %v, expected sorted pair", names)
	}
}

func TestParseYAMLMissingName(t *testing.T) {
	if _, err := ParseYAML([]byte("sprites:\n  - width: 3\n")); err == nil {
		t.Error("expected error for unnamed sprite")
	}
}

func TestNilLibrary(t *testing.T) {
	var lib *Library
	if _, ok := lib.Sprite("x"); ok {
		t.Error("nil library should not resolve sprites")
	}
	if lib.Len() != 0 {
		t.Error("nil library should be empty")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.yaml")
	if err := os.WriteFile(path, []byte(testAssets), 0o600); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if lib.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", lib.Len())
	}
}
