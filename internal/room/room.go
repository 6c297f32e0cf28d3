// Package room implements the entity store for one scene.
//
// A Room owns its entities through an arena of slots: the live list is only
// mutated by Commit, which applies queued spawns and destroys. Spawn and
// Destroy may therefore be called from inside any behavior hook while a phase
// is iterating the live list.
//
// The order of the live list is unspecified. Removal swaps the last entity
// into the freed position, so callers that need an ordering (drawing) sort
// by depth explicitly.
package room

import (
	"fmt"
	"io"
	"sort"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roomsim/internal/asset"
	"github.com/vovakirdan/roomsim/internal/entity"
)

var storeSeq atomic.Uint32

// slot is the arena cell for one entity. pos is the entity's index in the
// live list, or -1 while it is waiting in the pending-add queue. destroying
// is set while the destroy hook runs; the entity still resolves until dead.
type slot struct {
	ent        *entity.Entity
	pos        int
	destroying bool
	dead       bool
}

// Room is the authoritative owner of one scene's entities.
type Room struct {
	Name          string
	Width, Height int

	// Layers populated by the loader.
	Backgrounds []Background
	TileLayers  []TileLayer

	store    entity.StoreID
	registry *entity.Registry
	assets   *asset.Library
	logger   *log.Logger

	live       []*slot
	index      map[entity.ID]*slot
	pendingAdd []*slot
	pendingDel []int
	lastID     entity.ID

	phase   entity.Event
	scratch []*slot
	frame   uint64
}

// Option configures a Room.
type Option func(*Room)

// WithLogger sets the room's logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Room) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAssets sets the library used to resolve tilesets and sprites.
func WithAssets(lib *asset.Library) Option {
	return func(r *Room) { r.assets = lib }
}

// WithSize sets the room's name and dimensions.
func WithSize(name string, width, height int) Option {
	return func(r *Room) {
		r.Name = name
		r.Width = width
		r.Height = height
	}
}

// New creates an empty room that clones entities from reg.
func New(reg *entity.Registry, opts ...Option) *Room {
	r := &Room{
		store:    entity.StoreID(storeSeq.Add(1)),
		registry: reg,
		logger:   log.New(io.Discard),
		index:    make(map[entity.ID]*slot),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the prototype registry the room spawns from.
func (r *Room) Registry() *entity.Registry { return r.registry }

// Assets returns the room's asset library. It may be nil.
func (r *Room) Assets() *asset.Library { return r.assets }

// StoreID returns the identifier stamped into every reference the room issues.
func (r *Room) StoreID() entity.StoreID { return r.store }

// Logger returns the room's logger.
func (r *Room) Logger() *log.Logger { return r.logger }

// Spawn creates an entity from proto at (x, y) with the given depth and runs
// its create hook before returning. The reference is valid immediately; the
// entity joins the live list at the next commit.
func (r *Room) Spawn(x, y, depth float64, proto *entity.Prototype) entity.Reference {
	return r.SpawnWith(x, y, depth, proto, nil)
}

// SpawnWith is Spawn with an initializer that runs before the create hook.
func (r *Room) SpawnWith(x, y, depth float64, proto *entity.Prototype, init func(*entity.Entity)) entity.Reference {
	if proto == nil {
		r.logger.Warn("spawn without prototype", "room", r.Name)
		return entity.Nowhere
	}

	e := proto.Instantiate()
	r.lastID++
	ref := entity.Reference{ID: r.lastID, Store: r.store}
	e.Attach(ref)
	e.SetPosition(x, y)
	e.LatchPrevious()
	e.SetDepth(depth)

	s := &slot{ent: e, pos: -1}
	r.index[ref.ID] = s
	r.pendingAdd = append(r.pendingAdd, s)

	if init != nil {
		init(e)
	}
	if h, ok := e.Hook(entity.EventCreate); ok {
		h(r, e)
	}
	return ref
}

// SpawnName looks up a prototype by name and spawns it.
func (r *Room) SpawnName(x, y, depth float64, name string) (entity.Reference, error) {
	p, ok := r.registry.Lookup(name)
	if !ok {
		return entity.Nowhere, fmt.Errorf("room: %w %q", entity.ErrUnknownPrototype, name)
	}
	return r.Spawn(x, y, depth, p), nil
}

// Destroy runs the entity's destroy hook, removes it from the index and
// queues its removal from the live list. The entity still resolves while its
// own destroy hook runs. Stale references and repeated destroys are no-ops.
func (r *Room) Destroy(ref entity.Reference) {
	s := r.resolve(ref)
	if s == nil || s.destroying {
		return
	}
	s.destroying = true
	if h, ok := s.ent.Hook(entity.EventDestroy); ok {
		h(r, s.ent)
	}
	s.dead = true
	delete(r.index, ref.ID)
	if s.pos >= 0 {
		r.pendingDel = append(r.pendingDel, s.pos)
	}
}

// DestroyWhere destroys every entity that extends proto.
func (r *Room) DestroyWhere(proto *entity.Prototype) {
	for _, ref := range r.AllWhere(proto) {
		r.Destroy(ref)
	}
}

// Exists reports whether ref names a live entity of this room.
func (r *Room) Exists(ref entity.Reference) bool {
	return r.resolve(ref) != nil
}

// Get resolves a reference to its entity.
func (r *Room) Get(ref entity.Reference) (*entity.Entity, bool) {
	s := r.resolve(ref)
	if s == nil {
		return nil, false
	}
	return s.ent, true
}

func (r *Room) resolve(ref entity.Reference) *slot {
	if ref.IsZero() || ref.Store != r.store {
		return nil
	}
	s, ok := r.index[ref.ID]
	if !ok || s.dead {
		return nil
	}
	return s
}

// Commit applies queued spawns and destroys to the live list. It must not be
// called while a phase is running; such calls are logged and ignored.
func (r *Room) Commit() {
	if r.phase != "" {
		r.logger.Error("commit during phase ignored", "room", r.Name, "phase", r.phase)
		return
	}

	for _, s := range r.pendingAdd {
		if s.dead {
			continue
		}
		s.pos = len(r.live)
		r.live = append(r.live, s)
	}
	clear(r.pendingAdd)
	r.pendingAdd = r.pendingAdd[:0]

	sort.Sort(sort.Reverse(sort.IntSlice(r.pendingDel)))
	for _, pos := range r.pendingDel {
		last := len(r.live) - 1
		if pos > last {
			continue
		}
		moved := r.live[last]
		r.live[pos] = moved
		moved.pos = pos
		r.live[last] = nil
		r.live = r.live[:last]
	}
	r.pendingDel = r.pendingDel[:0]
}

// Len returns the number of entities in the live list.
func (r *Room) Len() int { return len(r.live) }

// Pending returns the sizes of the add and delete queues.
func (r *Room) Pending() (adds, deletes int) {
	return len(r.pendingAdd), len(r.pendingDel)
}

// Frame returns the number of completed steps.
func (r *Room) Frame() uint64 { return r.frame }

// Entities returns the live entities in list order. The slice is a copy;
// the entities are not.
func (r *Room) Entities() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(r.live))
	for _, s := range r.live {
		if !s.dead {
			out = append(out, s.ent)
		}
	}
	return out
}

// Verify checks that every entity's recorded position matches its index in
// the live list and that the index agrees with the list. It returns the
// first inconsistency found.
func (r *Room) Verify() (entity.Reference, bool) {
	for i, s := range r.live {
		if s.pos != i {
			return s.ent.Ref(), false
		}
		if !s.dead && r.index[s.ent.ID()] != s {
			return s.ent.Ref(), false
		}
	}
	return entity.Nowhere, true
}

var _ entity.Host = (*Room)(nil)
