package behavior

import (
	"math"

	"github.com/vovakirdan/roomsim/internal/entity"
)

func init() {
	Register("lifetime", "destroys the entity once its lifetime runs out",
		entity.Hooks{entity.EventBeginStep: stepLifetime})
	Register("spawner", "spawns the prototype in spawn every interval steps, up to limit",
		entity.Hooks{entity.EventCreate: createSpawner, entity.EventStep: stepSpawner})
	Register("wrap", "wraps the position around the room's edges",
		entity.Hooks{entity.EventEndStep: stepWrap})
	Register("cull", "destroys the entity when its bounding box leaves the room",
		entity.Hooks{entity.EventEndStep: stepCull})
	Register("collector", "destroys overlapping entities of the collects prototype and adds their value to score",
		entity.Hooks{entity.EventStep: stepCollector})
}

func stepLifetime(h entity.Host, self *entity.Entity) {
	left, ok := self.Get(PropLifetime)
	if !ok {
		return
	}
	n := left.Int() - 1
	self.Set(PropLifetime, entity.Int(n))
	if n <= 0 {
		h.Destroy(self.Ref())
	}
}

func createSpawner(_ entity.Host, self *entity.Entity) {
	if _, ok := self.Get(PropTimer); !ok {
		self.Set(PropTimer, entity.Int(intProp(self, PropInterval, 1)))
	}
}

func stepSpawner(h entity.Host, self *entity.Entity) {
	proto := prototypeProp(h, self, PropSpawn)
	if proto == nil {
		return
	}

	timer := intProp(self, PropTimer, 1) - 1
	if timer > 0 {
		self.Set(PropTimer, entity.Int(timer))
		return
	}
	self.Set(PropTimer, entity.Int(max(intProp(self, PropInterval, 1), 1)))

	if limit := intProp(self, PropLimit, 0); limit > 0 && int64(h.CountWhere(proto)) >= limit {
		return
	}
	ref := h.Spawn(self.X(), self.Y(), self.Depth(), proto)
	if child, ok := h.Get(ref); ok && child.HSpeed() == 0 && child.VSpeed() == 0 {
		child.SetVelocity(self.Velocity())
	}
}

func stepWrap(h entity.Host, self *entity.Entity) {
	b := h.Bounds()
	if b.W > 0 {
		self.SetX(wrap(self.X(), b.X, b.W))
	}
	if b.H > 0 {
		self.SetY(wrap(self.Y(), b.Y, b.H))
	}
}

func wrap(v, origin, size float64) float64 {
	v = math.Mod(v-origin, size)
	if v < 0 {
		v += size
	}
	return v + origin
}

func stepCull(h entity.Host, self *entity.Entity) {
	b := h.Bounds()
	if b.W <= 0 || b.H <= 0 {
		return
	}
	box := self.BBox()
	// Zero-size boxes are points: test containment instead of overlap.
	if box.W == 0 || box.H == 0 {
		if !b.Contains(box.X, box.Y) {
			h.Destroy(self.Ref())
		}
		return
	}
	if !box.Intersects(b) {
		h.Destroy(self.Ref())
	}
}

func stepCollector(h entity.Host, self *entity.Entity) {
	target := prototypeProp(h, self, PropCollects)
	if target == nil {
		return
	}

	score := intProp(self, PropScore, 0)
	for _, ref := range h.QueryRect(self.BBox(), target, self.Ref()) {
		other, ok := h.Get(ref)
		if !ok {
			continue
		}
		score += intProp(other, PropValue, 1)
		h.Destroy(ref)
	}
	self.Set(PropScore, entity.Int(score))
}
