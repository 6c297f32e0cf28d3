// Package roomfile reads and writes the binary room format.
//
// All values are little-endian. Strings are an int32 length followed by the
// bytes; bool is one byte; float is an IEEE-754 float32; size_t is a uint64.
//
//	int32 width, height
//	int32 layerCount
//	string roomName
//	layerCount x {
//	    string layerType   // "background" | "tiles" | "objects"
//	    string layerName
//	    int32  depth
//	    bool   visible
//	    payload
//	}
//
// Payloads:
//
//	background: bool tiledX, tiledY; float speedX, speedY, x, y; 4 x uint8 RGBA;
//	            bool hasSprite [string spriteName]
//	tiles:      bool compressed; int32 countX, countY; size_t n; n x int32;
//	            string tilesetName
//	objects:    int32 nameCount; nameCount x string; size_t instanceCount;
//	            instanceCount x {
//	                int32 nameIndex; float x, y
//	                bool advanced [float rotation, imageIndex, imageSpeed,
//	                               scaleX, scaleY; 4 x uint8 RGBA]
//	                int32 propCount; propCount x {string key; uint8 tag; value}
//	            }
//
// Property tags: 0 real (float32), 1 integer (int32), 2 boolean (bool),
// 3 string (string), resolved against the loader's environment.
package roomfile

import "errors"

var (
	// ErrTruncated means the stream ended before a declared value.
	ErrTruncated = errors.New("roomfile: truncated data")
	// ErrMalformed means a value could not be interpreted.
	ErrMalformed = errors.New("roomfile: malformed data")
	// ErrBadLayerType means a layer declared an unknown type. The payload
	// size is unknown, so no further layers can be read.
	ErrBadLayerType = errors.New("roomfile: unknown layer type")
)

// LayerType names a layer payload.
type LayerType string

const (
	LayerBackground LayerType = "background"
	LayerTiles      LayerType = "tiles"
	LayerObjects    LayerType = "objects"
)

// Property type tags.
const (
	tagReal   uint8 = 0
	tagInt    uint8 = 1
	tagBool   uint8 = 2
	tagString uint8 = 3
)

// minInstanceSize is the smallest encoded instance: index, x, y, the
// advanced flag and the property count.
const minInstanceSize = 4 + 4 + 4 + 1 + 4

// Advanced holds the optional per-instance transform block.
type Advanced struct {
	Rotation   float64
	ImageIndex float64
	ImageSpeed float64 // Multiplies the prototype's image speed
	ScaleX     float64
	ScaleY     float64
	Color      [4]uint8 // Stored in the file, not applied
}

// Property is one instance property override.
type Property struct {
	Key   string
	Value Value
}

// Value is an encoded property value. Exactly one of the typed fields is
// meaningful, selected by Tag.
type Value struct {
	Tag  uint8
	Real float64
	Int  int32
	Bool bool
	Str  string
}

// Real, Int, Bool and Symbol build encoded property values.
func Real(f float64) Value { return Value{Tag: tagReal, Real: f} }
func Int(i int32) Value { return Value{Tag: tagInt, Int: i} }
func Bool(b bool) Value { return Value{Tag: tagBool, Bool: b} }
func Symbol(s string) Value { return Value{Tag: tagString, Str: s} }

// Instance is one entry of an objects layer.
type Instance struct {
	Prototype string
	X, Y      float64
	Advanced  *Advanced
	Props     []Property
}

// LayerSummary describes a layer that was read.
type LayerSummary struct {
	Type    LayerType `json:"type"`
	Name    string    `json:"name"`
	Depth   int32     `json:"depth"`
	Visible bool      `json:"visible"`
	// Instances spawned for objects layers, filled cells for tile layers.
	Count int `json:"count"`
}
