package room

import (
	"github.com/vovakirdan/roomsim/internal/core"
	"github.com/vovakirdan/roomsim/internal/entity"
)

// Bounds returns the room's area with its top-left corner at the origin.
func (r *Room) Bounds() core.Rect {
	return core.NewRect(0, 0, float64(r.Width), float64(r.Height))
}

// Queries visit the live list followed by entities spawned since the last
// commit, skipping destroyed ones. A nil prototype matches every entity.

func matches(e *entity.Entity, proto *entity.Prototype) bool {
	return proto == nil || e.Extends(proto)
}

// each calls fn for every entity until fn returns false.
func (r *Room) each(fn func(e *entity.Entity) bool) {
	for _, s := range r.live {
		if !s.dead && !fn(s.ent) {
			return
		}
	}
	for _, s := range r.pendingAdd {
		if !s.dead && !fn(s.ent) {
			return
		}
	}
}

// CountWhere returns the number of entities extending proto.
func (r *Room) CountWhere(proto *entity.Prototype) int {
	n := 0
	r.each(func(e *entity.Entity) bool {
		if matches(e, proto) {
			n++
		}
		return true
	})
	return n
}

// FirstWhere returns the first entity extending proto.
func (r *Room) FirstWhere(proto *entity.Prototype) (entity.Reference, bool) {
	found := entity.Nowhere
	r.each(func(e *entity.Entity) bool {
		if matches(e, proto) {
			found = e.Ref()
			return false
		}
		return true
	})
	return found, !found.IsZero()
}

// AllWhere returns every entity extending proto.
func (r *Room) AllWhere(proto *entity.Prototype) []entity.Reference {
	var out []entity.Reference
	r.each(func(e *entity.Entity) bool {
		if matches(e, proto) {
			out = append(out, e.Ref())
		}
		return true
	})
	return out
}

// QueryRect returns every active entity extending proto whose bounding box
// intersects rect. The exclude reference, if not Nowhere, is skipped.
func (r *Room) QueryRect(rect core.Rect, proto *entity.Prototype, exclude entity.Reference) []entity.Reference {
	var out []entity.Reference
	r.each(func(e *entity.Entity) bool {
		if !e.Active() || e.Ref() == exclude || !matches(e, proto) {
			return true
		}
		if e.BBox().Intersects(rect) {
			out = append(out, e.Ref())
		}
		return true
	})
	return out
}

// PlaceCheck translates mover's hitbox polygon by (dx, dy) and returns the
// first active entity extending proto whose polygon it intersects. The
// mover itself is never reported.
func (r *Room) PlaceCheck(mover entity.Reference, dx, dy float64, proto *entity.Prototype) (entity.Reference, bool) {
	m, ok := r.Get(mover)
	if !ok {
		return entity.Nowhere, false
	}
	poly, bounds, ok := moved(m, dx, dy)
	if !ok {
		return entity.Nowhere, false
	}

	found := entity.Nowhere
	r.each(func(e *entity.Entity) bool {
		if e == m || !e.Active() || !matches(e, proto) {
			return true
		}
		if hitPolygon(poly, bounds, e) {
			found = e.Ref()
			return false
		}
		return true
	})
	return found, !found.IsZero()
}

// PlaceCheckRef is PlaceCheck against one specific entity. It reports other
// when the moved polygon intersects it.
func (r *Room) PlaceCheckRef(mover entity.Reference, dx, dy float64, other entity.Reference) (entity.Reference, bool) {
	m, ok := r.Get(mover)
	if !ok {
		return entity.Nowhere, false
	}
	o, ok := r.Get(other)
	if !ok || o == m || !o.Active() {
		return entity.Nowhere, false
	}
	poly, bounds, ok := moved(m, dx, dy)
	if !ok || !hitPolygon(poly, bounds, o) {
		return entity.Nowhere, false
	}
	return other, true
}

// moved returns e's polygon translated by (dx, dy) and its bounds.
func moved(e *entity.Entity, dx, dy float64) (core.Polygon, core.Rect, bool) {
	poly := e.Polygon()
	if len(poly) == 0 {
		return nil, core.Rect{}, false
	}
	poly = poly.Translate(core.V(dx, dy))
	return poly, poly.Bounds(), true
}

// hitPolygon rejects on the axis-aligned bounds before running SAT.
func hitPolygon(poly core.Polygon, bounds core.Rect, e *entity.Entity) bool {
	other := e.Polygon()
	if len(other) == 0 {
		return false
	}
	if !bounds.Intersects(other.Bounds()) {
		return false
	}
	return core.Intersect(poly, other).Intersects
}
