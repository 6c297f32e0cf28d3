package roomfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roomsim/internal/asset"
	"github.com/vovakirdan/roomsim/internal/entity"
	"github.com/vovakirdan/roomsim/internal/room"
	"github.com/vovakirdan/roomsim/internal/tiles"
)

// Ext is the file extension LoadDir looks for.
const Ext = ".room"

// maxTileCells bounds the grid a tile layer may declare.
const maxTileCells = 1 << 24

// Environment resolves string property values to named resources. Values
// that do not resolve stay plain strings.
type Environment interface {
	Resolve(name string) (any, bool)
}

// EnvFunc adapts a function to an Environment.
type EnvFunc func(name string) (any, bool)

// Resolve implements Environment.
func (f EnvFunc) Resolve(name string) (any, bool) { return f(name) }

// Loader builds rooms from room files.
type Loader struct {
	logger   *log.Logger
	registry *entity.Registry
	assets   *asset.Library
	env      Environment
}

// NewLoader creates a loader that spawns instances from reg. String
// properties resolve against assets (sprites, then tilesets) and then reg's
// prototypes. logger and assets may be nil.
func NewLoader(logger *log.Logger, reg *entity.Registry, assets *asset.Library) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Loader{
		logger:   logger,
		registry: reg,
		assets:   assets,
	}
	l.env = EnvFunc(l.resolve)
	return l
}

// SetEnvironment replaces the symbol environment used for string properties.
func (l *Loader) SetEnvironment(env Environment) {
	if env == nil {
		env = EnvFunc(func(string) (any, bool) { return nil, false })
	}
	l.env = env
}

func (l *Loader) resolve(name string) (any, bool) {
	if s, ok := l.assets.Sprite(name); ok {
		return s, true
	}
	if ts, ok := l.assets.Tileset(name); ok {
		return ts, true
	}
	if p, ok := l.registry.Lookup(name); ok {
		return p, true
	}
	return nil, false
}

// Result is a loaded room and what was noticed while loading it.
type Result struct {
	Path   string
	Room   *room.Room
	Layers []LayerSummary
	// Spawned counts instances created, Skipped those whose prototype was
	// unknown or whose name index was out of range.
	Spawned int
	Skipped int
	// Warnings are data-quality issues that did not stop the load.
	Warnings []error
}

func (res *Result) warn(logger *log.Logger, err error) {
	res.Warnings = append(res.Warnings, err)
	logger.Warn("room data issue", "error", err)
}

// Load decodes a room. A truncated or malformed header is an error; problems
// inside layers are reported as warnings and stop reading further layers.
// The returned room has been committed.
func (l *Loader) Load(data []byte) (*Result, error) {
	r := newReader(data)
	width := r.i32("width")
	height := r.i32("height")
	count := r.i32("layer count")
	name := r.str("room name")
	if r.err != nil {
		return nil, fmt.Errorf("roomfile: header: %w", r.err)
	}
	if count < 0 {
		return nil, fmt.Errorf("roomfile: header: %w: layer count %d", ErrMalformed, count)
	}

	logger := l.logger.With("room", name)
	rm := room.New(l.registry,
		room.WithLogger(logger),
		room.WithAssets(l.assets),
		room.WithSize(name, int(width), int(height)),
	)
	res := &Result{Room: rm}

	for i := 0; i < int(count); i++ {
		if err := l.readLayer(r, res, logger, i); err != nil {
			res.warn(logger, err)
			break
		}
	}

	rm.Commit()
	logger.Debug("room loaded", "layers", len(res.Layers), "spawned", res.Spawned, "warnings", len(res.Warnings))
	return res, nil
}

// LoadFile reads and decodes the room file at path.
func (l *Loader) LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roomfile: %w", err)
	}
	res, err := l.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	res.Path = path
	return res, nil
}

// LoadDir loads every room file under dir in lexical order. Files that fail
// to load are skipped and their errors joined.
func (l *Loader) LoadDir(dir string) ([]*Result, error) {
	var results []*Result
	var errs []error
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != Ext {
			return nil
		}
		res, err := l.LoadFile(path)
		if err != nil {
			l.logger.Error("skipping room", "path", path, "error", err)
			errs = append(errs, err)
			return nil
		}
		results = append(results, res)
		return nil
	})
	if walkErr != nil {
		return results, fmt.Errorf("roomfile: walk %s: %w", dir, walkErr)
	}
	return results, errors.Join(errs...)
}

func (l *Loader) readLayer(r *reader, res *Result, logger *log.Logger, i int) error {
	typ := LayerType(r.str("layer type"))
	h := LayerHeader{
		Name:    r.str("layer name"),
		Depth:   r.i32("layer depth"),
		Visible: r.boolean("layer visible"),
	}
	if r.err != nil {
		return fmt.Errorf("layer %d: %w", i, r.err)
	}

	summary := LayerSummary{Type: typ, Name: h.Name, Depth: h.Depth, Visible: h.Visible}
	var err error
	switch typ {
	case LayerBackground:
		err = l.readBackground(r, res.Room, h)
	case LayerTiles:
		summary.Count, err = l.readTiles(r, res, logger, h)
	case LayerObjects:
		summary.Count, err = l.readObjects(r, res, logger, h)
	default:
		return fmt.Errorf("layer %d %q: %w %q", i, h.Name, ErrBadLayerType, typ)
	}
	if err != nil {
		return fmt.Errorf("layer %d %q: %w", i, h.Name, err)
	}
	res.Layers = append(res.Layers, summary)
	return nil
}

func info(h LayerHeader) room.LayerInfo {
	return room.LayerInfo{Name: h.Name, Depth: h.Depth, Visible: h.Visible}
}

func (l *Loader) readBackground(r *reader, rm *room.Room, h LayerHeader) error {
	b := room.Background{LayerInfo: info(h)}
	b.TiledX = r.boolean("tiled x")
	b.TiledY = r.boolean("tiled y")
	b.SpeedX = r.f32("speed x")
	b.SpeedY = r.f32("speed y")
	b.X = r.f32("x")
	b.Y = r.f32("y")
	copy(b.Color[:], r.take(4, "color"))
	if r.boolean("has sprite") {
		b.SpriteName = r.str("sprite name")
	}
	if r.err != nil {
		return r.err
	}
	rm.AddBackground(b)
	return nil
}

func (l *Loader) readTiles(r *reader, res *Result, logger *log.Logger, h LayerHeader) (int, error) {
	compressed := r.boolean("compressed")
	cx := r.i32("tile count x")
	cy := r.i32("tile count y")
	n := r.count(4, "tile data")
	stream := r.i32s(n, "tile data")
	tileset := r.str("tileset name")
	if r.err != nil {
		return 0, r.err
	}
	if cx < 0 || cy < 0 || int64(cx)*int64(cy) > maxTileCells {
		return 0, fmt.Errorf("%w: tile grid %dx%d", ErrMalformed, cx, cy)
	}

	grid := tiles.NewLayer(int(cx), int(cy))
	var cells []tiles.Cell
	truncated := false
	if compressed {
		cells, truncated = tiles.DecodeLimit(stream, len(grid.Cells))
	} else {
		cells = make([]tiles.Cell, len(stream))
		for i, v := range stream {
			cells[i] = tiles.Cell(uint32(v))
		}
	}
	filled := grid.Fill(cells)

	layer := room.TileLayer{LayerInfo: info(h), Grid: grid, TilesetName: tileset}
	if truncated || filled < len(grid.Cells) {
		layer.Truncated = true
		res.warn(logger, fmt.Errorf("layer %q: %w: tile stream filled %d of %d cells", h.Name, ErrTruncated, filled, len(grid.Cells)))
	}
	res.Room.AddTileLayer(layer)
	return grid.FilledCount(), nil
}

func (l *Loader) readObjects(r *reader, res *Result, logger *log.Logger, h LayerHeader) (int, error) {
	nameCount := r.i32("name count")
	if r.err != nil {
		return 0, r.err
	}
	if nameCount < 0 {
		return 0, fmt.Errorf("%w: name table of %d entries", ErrMalformed, nameCount)
	}
	if int(nameCount) > r.remaining()/4 {
		return 0, fmt.Errorf("%w: name table of %d entries, %d bytes left", ErrTruncated, nameCount, r.remaining())
	}

	protos := make([]*entity.Prototype, nameCount)
	for i := range protos {
		name := r.str("prototype name")
		if r.err != nil {
			return 0, r.err
		}
		p, ok := l.registry.Lookup(name)
		if !ok {
			res.warn(logger, fmt.Errorf("layer %q: %w %q", h.Name, entity.ErrUnknownPrototype, name))
			continue
		}
		protos[i] = p
	}

	n := r.count(minInstanceSize, "instances")
	spawned := 0
	for k := 0; k < n; k++ {
		idx, in := l.readInstance(r)
		if r.err != nil {
			return spawned, r.err
		}
		if idx < 0 || int(idx) >= len(protos) {
			res.Skipped++
			res.warn(logger, fmt.Errorf("layer %q: instance %d: %w: name index %d of %d", h.Name, k, ErrMalformed, idx, len(protos)))
			continue
		}
		p := protos[idx]
		if p == nil {
			res.Skipped++
			continue
		}
		res.Room.SpawnWith(in.X, in.Y, float64(h.Depth), p, func(e *entity.Entity) {
			l.apply(e, in, h.Visible)
		})
		spawned++
	}
	res.Spawned += spawned
	return spawned, r.err
}

func (l *Loader) readInstance(r *reader) (int32, Instance) {
	idx := r.i32("name index")
	in := Instance{X: r.f32("x"), Y: r.f32("y")}
	if r.boolean("advanced") {
		in.Advanced = &Advanced{
			Rotation:   r.f32("rotation"),
			ImageIndex: r.f32("image index"),
			ImageSpeed: r.f32("image speed"),
			ScaleX:     r.f32("scale x"),
			ScaleY:     r.f32("scale y"),
		}
		// The color is read to keep the stream aligned and then dropped.
		copy(in.Advanced.Color[:], r.take(4, "color"))
	}

	count := r.i32("property count")
	if r.err != nil {
		return idx, in
	}
	if count < 0 {
		r.err = fmt.Errorf("%w: %d properties", ErrMalformed, count)
		return idx, in
	}
	if int(count) > r.remaining()/6 {
		r.err = fmt.Errorf("%w: %d properties, %d bytes left", ErrTruncated, count, r.remaining())
		return idx, in
	}
	for i := int32(0); i < count && r.err == nil; i++ {
		p := Property{Key: r.str("property key")}
		p.Value.Tag = r.u8("property tag")
		switch p.Value.Tag {
		case tagReal:
			p.Value.Real = r.f32("real property")
		case tagInt:
			p.Value.Int = r.i32("integer property")
		case tagBool:
			p.Value.Bool = r.boolean("boolean property")
		case tagString:
			p.Value.Str = r.str("string property")
		default:
			if r.err == nil {
				r.err = fmt.Errorf("%w: property %q has type tag %d", ErrMalformed, p.Key, p.Value.Tag)
			}
		}
		in.Props = append(in.Props, p)
	}
	return idx, in
}

// apply copies an instance's overrides onto a freshly spawned entity.
func (l *Loader) apply(e *entity.Entity, in Instance, layerVisible bool) {
	if a := in.Advanced; a != nil {
		e.SetRotation(a.Rotation)
		e.SetImageIndex(a.ImageIndex)
		e.SetImageSpeed(e.ImageSpeed() * a.ImageSpeed)
		e.SetScale(a.ScaleX, a.ScaleY)
	}
	if !layerVisible {
		e.SetVisible(false)
	}
	for _, p := range in.Props {
		e.Set(p.Key, l.value(p.Value))
	}
}

func (l *Loader) value(v Value) entity.Value {
	switch v.Tag {
	case tagReal:
		return entity.Real(v.Real)
	case tagInt:
		return entity.Int(int64(v.Int))
	case tagBool:
		return entity.Bool(v.Bool)
	}
	if target, ok := l.env.Resolve(v.Str); ok {
		return entity.Ref(v.Str, target)
	}
	return entity.String(v.Str)
}
