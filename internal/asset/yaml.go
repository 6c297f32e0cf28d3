package asset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/roomsim/internal/core"
)

// YAMLLibrary represents the YAML structure for an asset metadata file.
type YAMLLibrary struct {
	Sprites  []YAMLSprite  `yaml:"sprites"`
	Tilesets []YAMLTileset `yaml:"tilesets"`
}

// YAMLSprite represents a single sprite entry.
type YAMLSprite struct {
	Name   string      `yaml:"name"`
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Origin YAMLPoint   `yaml:"origin"`
	Hitbox *YAMLHitbox `yaml:"hitbox,omitempty"` // Whole sprite when omitted
	Frames int         `yaml:"frames,omitempty"`
}

// YAMLPoint represents a 2D point.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLHitbox represents a hitbox rectangle in sprite-local space.
type YAMLHitbox struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// YAMLTileset represents a single tileset entry.
type YAMLTileset struct {
	Name       string `yaml:"name"`
	TileWidth  int    `yaml:"tile_width"`
	TileHeight int    `yaml:"tile_height"`
	Columns    int    `yaml:"columns"`
}

// ParseYAML parses asset metadata into a new library.
func ParseYAML(data []byte) (*Library, error) {
	var yl YAMLLibrary
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("asset: yaml unmarshal: %w", err)
	}

	lib := NewLibrary()
	for _, ys := range yl.Sprites {
		if ys.Name == "" {
			return nil, fmt.Errorf("asset: sprite without name")
		}
		s := &Sprite{
			Name:    ys.Name,
			Width:   ys.Width,
			Height:  ys.Height,
			OriginX: ys.Origin.X,
			OriginY: ys.Origin.Y,
			Hitbox:  core.NewRect(0, 0, float64(ys.Width), float64(ys.Height)),
			Frames:  ys.Frames,
		}
		if ys.Hitbox != nil {
			s.Hitbox = core.NewRect(ys.Hitbox.Left, ys.Hitbox.Top, ys.Hitbox.Width, ys.Hitbox.Height)
		}
		if s.Frames <= 0 {
			s.Frames = 1
		}
		lib.AddSprite(s)
	}

	for _, yt := range yl.Tilesets {
		if yt.Name == "" {
			return nil, fmt.Errorf("asset: tileset without name")
		}
		lib.AddTileset(&Tileset{
			Name:       yt.Name,
			TileWidth:  yt.TileWidth,
			TileHeight: yt.TileHeight,
			Columns:    yt.Columns,
		})
	}

	return lib, nil
}

// LoadFile reads and parses an asset metadata file.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset: reading file %s: %w", path, err)
	}
	lib, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("asset: parsing file %s: %w", path, err)
	}
	return lib, nil
}
