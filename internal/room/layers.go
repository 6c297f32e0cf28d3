package room

import (
	"github.com/vovakirdan/roomsim/internal/asset"
	"github.com/vovakirdan/roomsim/internal/tiles"
)

// LayerInfo is the header shared by every room layer.
type LayerInfo struct {
	Name    string
	Depth   int32
	Visible bool
}

// Background is a backdrop layer. Sprite is nil when the layer is a plain
// color or its sprite is not in the asset library.
type Background struct {
	LayerInfo
	TiledX, TiledY bool
	SpeedX, SpeedY float64
	X, Y           float64
	Color          [4]uint8 // RGBA
	SpriteName     string
	Sprite         *asset.Sprite
}

// Step scrolls the background by its speed.
func (b *Background) Step() {
	b.X += b.SpeedX
	b.Y += b.SpeedY
}

// TileLayer is a grid of packed tile cells drawn with one tileset.
type TileLayer struct {
	LayerInfo
	Grid        *tiles.Layer
	TilesetName string
	Tileset     *asset.Tileset
	// Truncated is set when the encoded stream ended before the grid filled.
	Truncated bool
}

// AddBackground appends a background, resolving its sprite by name.
func (r *Room) AddBackground(b Background) {
	if b.Sprite == nil && b.SpriteName != "" {
		b.Sprite, _ = r.assets.Sprite(b.SpriteName)
	}
	r.Backgrounds = append(r.Backgrounds, b)
}

// AddTileLayer appends a tile layer, resolving its tileset by name. A missing
// tileset leaves Tileset nil.
func (r *Room) AddTileLayer(l TileLayer) {
	if l.Tileset == nil && l.TilesetName != "" {
		ts, ok := r.assets.Tileset(l.TilesetName)
		l.Tileset = ts
		if !ok {
			r.logger.Debug("tileset not in library", "room", r.Name, "layer", l.Name, "tileset", l.TilesetName)
		}
	}
	r.TileLayers = append(r.TileLayers, l)
}

// TileLayer returns the tile layer with the given name.
func (r *Room) TileLayer(name string) (*TileLayer, bool) {
	for i := range r.TileLayers {
		if r.TileLayers[i].Name == name {
			return &r.TileLayers[i], true
		}
	}
	return nil, false
}

// ScrollBackgrounds advances every background by its speed.
func (r *Room) ScrollBackgrounds() {
	for i := range r.Backgrounds {
		r.Backgrounds[i].Step()
	}
}
