package roomfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vovakirdan/roomsim/internal/tiles"
)

// encoder appends little-endian primitives to a buffer.
type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) u8(v uint8) { e.buf.WriteByte(v) }

func (e *encoder) boolean(v bool) {
	if v {
		e.u8(1)
		return
	}
	e.u8(0)
}

func (e *encoder) i32(v int32) {
	e.buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(v)))
}

func (e *encoder) u64(v uint64) {
	e.buf.Write(binary.LittleEndian.AppendUint64(nil, v))
}

func (e *encoder) f32(v float64) {
	e.buf.Write(binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(v))))
}

func (e *encoder) str(s string) {
	e.i32(int32(len(s)))
	e.buf.WriteString(s)
}

func (e *encoder) rgba(c [4]uint8) {
	e.buf.Write(c[:])
}

// LayerHeader is the part of a layer common to every type.
type LayerHeader struct {
	Name    string
	Depth   int32
	Visible bool
}

// BackgroundSpec is the payload of a background layer.
type BackgroundSpec struct {
	TiledX, TiledY bool
	SpeedX, SpeedY float64
	X, Y           float64
	Color          [4]uint8
	Sprite         string // Empty for no sprite
}

// Writer builds a room file in memory. Layers are written in the order they
// are added.
type Writer struct {
	width, height int32
	name          string
	layers        []*encoder
}

// NewWriter starts a room file with the given header.
func NewWriter(name string, width, height int32) *Writer {
	return &Writer{name: name, width: width, height: height}
}

func (w *Writer) layer(typ LayerType, h LayerHeader) *encoder {
	e := &encoder{}
	e.str(string(typ))
	e.str(h.Name)
	e.i32(h.Depth)
	e.boolean(h.Visible)
	w.layers = append(w.layers, e)
	return e
}

// Background adds a background layer.
func (w *Writer) Background(h LayerHeader, b BackgroundSpec) {
	e := w.layer(LayerBackground, h)
	e.boolean(b.TiledX)
	e.boolean(b.TiledY)
	e.f32(b.SpeedX)
	e.f32(b.SpeedY)
	e.f32(b.X)
	e.f32(b.Y)
	e.rgba(b.Color)
	e.boolean(b.Sprite != "")
	if b.Sprite != "" {
		e.str(b.Sprite)
	}
}

// Tiles adds a tile layer holding grid. With compressed set the cells are
// run-length encoded.
func (w *Writer) Tiles(h LayerHeader, grid *tiles.Layer, tileset string, compressed bool) error {
	values, err := cellValues(grid.Cells, compressed)
	if err != nil {
		return fmt.Errorf("roomfile: layer %q: %w", h.Name, err)
	}

	e := w.layer(LayerTiles, h)
	e.boolean(compressed)
	e.i32(int32(grid.Width))
	e.i32(int32(grid.Height))
	e.u64(uint64(len(values)))
	for _, v := range values {
		e.i32(v)
	}
	e.str(tileset)
	return nil
}

func cellValues(cells []tiles.Cell, compressed bool) ([]int32, error) {
	if compressed {
		return tiles.Encode(cells)
	}
	out := make([]int32, len(cells))
	for i, c := range cells {
		if !c.Valid() {
			return nil, fmt.Errorf("cell %d: %w", i, tiles.ErrCellRange)
		}
		out[i] = int32(c)
	}
	return out, nil
}

// Objects adds an objects layer. The prototype name table is built from the
// instances in order of first use.
func (w *Writer) Objects(h LayerHeader, instances []Instance) {
	var names []string
	index := make(map[string]int32)
	for _, in := range instances {
		if _, ok := index[in.Prototype]; !ok {
			index[in.Prototype] = int32(len(names))
			names = append(names, in.Prototype)
		}
	}

	e := w.layer(LayerObjects, h)
	e.i32(int32(len(names)))
	for _, n := range names {
		e.str(n)
	}
	e.u64(uint64(len(instances)))
	for _, in := range instances {
		writeInstance(e, index[in.Prototype], in)
	}
}

func writeInstance(e *encoder, nameIndex int32, in Instance) {
	e.i32(nameIndex)
	e.f32(in.X)
	e.f32(in.Y)
	e.boolean(in.Advanced != nil)
	if a := in.Advanced; a != nil {
		e.f32(a.Rotation)
		e.f32(a.ImageIndex)
		e.f32(a.ImageSpeed)
		e.f32(a.ScaleX)
		e.f32(a.ScaleY)
		e.rgba(a.Color)
	}
	e.i32(int32(len(in.Props)))
	for _, p := range in.Props {
		e.str(p.Key)
		e.u8(p.Value.Tag)
		switch p.Value.Tag {
		case tagReal:
			e.f32(p.Value.Real)
		case tagInt:
			e.i32(p.Value.Int)
		case tagBool:
			e.boolean(p.Value.Bool)
		default:
			e.str(p.Value.Str)
		}
	}
}

// Bytes returns the encoded room.
func (w *Writer) Bytes() []byte {
	var e encoder
	e.i32(w.width)
	e.i32(w.height)
	e.i32(int32(len(w.layers)))
	e.str(w.name)
	for _, l := range w.layers {
		e.buf.Write(l.buf.Bytes())
	}
	return e.buf.Bytes()
}
