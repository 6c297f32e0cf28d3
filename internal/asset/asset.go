// Package asset holds the metadata of visual resources that the simulation
// needs for collision: sprite and mask dimensions, origins and hitboxes, and
// tileset geometry. Pixel data is owned by the rendering backend.
package asset

import (
	"sort"

	"github.com/vovakirdan/roomsim/internal/core"
)

// Sprite describes a sprite or collision mask resource.
type Sprite struct {
	Name    string
	Width   int
	Height  int
	OriginX float64
	OriginY float64
	// Hitbox is in unscaled local space, relative to the sprite's top-left corner.
	Hitbox core.Rect
	Frames int
}

// Tileset describes the tile geometry used by a tile layer.
type Tileset struct {
	Name       string
	TileWidth  int
	TileHeight int
	Columns    int
}

// Library is a named collection of sprites and tilesets.
// It is read-only once loading finishes and safe to share between rooms.
type Library struct {
	sprites  map[string]*Sprite
	tilesets map[string]*Tileset
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		sprites:  make(map[string]*Sprite),
		tilesets: make(map[string]*Tileset),
	}
}

// AddSprite registers a sprite, replacing any sprite with the same name.
func (l *Library) AddSprite(s *Sprite) {
	l.sprites[s.Name] = s
}

// AddTileset registers a tileset, replacing any tileset with the same name.
func (l *Library) AddTileset(ts *Tileset) {
	l.tilesets[ts.Name] = ts
}

// Sprite returns the sprite with the given name.
// A nil library behaves as an empty one.
func (l *Library) Sprite(name string) (*Sprite, bool) {
	if l == nil {
		return nil, false
	}
	s, ok := l.sprites[name]
	return s, ok
}

// Tileset returns the tileset with the given name.
func (l *Library) Tileset(name string) (*Tileset, bool) {
	if l == nil {
		return nil, false
	}
	ts, ok := l.tilesets[name]
	return ts, ok
}

// SpriteNames returns all sprite names in sorted order.
func (l *Library) SpriteNames() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.sprites))
	for name := range l.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of resources in the library.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.sprites) + len(l.tilesets)
}
