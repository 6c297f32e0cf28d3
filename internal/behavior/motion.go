package behavior

import (
	"math"

	"github.com/vovakirdan/roomsim/internal/entity"
)

func init() {
	Register("motion", "moves by hspeed/vspeed with optional gravity, friction and blocking",
		entity.Hooks{entity.EventStep: stepMotion})
	Register("animate", "advances image_index by image_speed, wrapping at the sprite's frame count",
		entity.Hooks{entity.EventEndStep: stepAnimate})
}

func stepMotion(h entity.Host, self *entity.Entity) {
	hs, vs := self.Velocity()
	if g, ok := self.Get(PropGravity); ok {
		vs += g.Float()
	}
	if f, ok := self.Get(PropFriction); ok {
		hs = towardZero(hs, f.Float())
		vs = towardZero(vs, f.Float())
	}

	if solid := prototypeProp(h, self, PropBlockedBy); solid != nil {
		if _, hit := h.PlaceCheck(self.Ref(), hs, 0, solid); hit {
			hs = 0
		}
		if _, hit := h.PlaceCheck(self.Ref(), hs, vs, solid); hit {
			vs = 0
		}
	}

	self.SetVelocity(hs, vs)
	self.SetPosition(self.X()+hs, self.Y()+vs)
}

// towardZero shrinks v's magnitude by amount without changing its sign.
func towardZero(v, amount float64) float64 {
	if math.Abs(v) <= amount {
		return 0
	}
	if v > 0 {
		return v - amount
	}
	return v + amount
}

func stepAnimate(h entity.Host, self *entity.Entity) {
	spr := self.Sprite()
	if spr == nil || spr.Frames <= 1 {
		return
	}

	frames := float64(spr.Frames)
	next := self.ImageIndex() + self.ImageSpeed()
	wrapped := next >= frames || next < 0
	next = math.Mod(next, frames)
	if next < 0 {
		next += frames
	}
	self.SetImageIndex(next)

	if wrapped {
		if v, ok := self.Get(PropLoopOnce); ok && v.Bool() {
			h.Destroy(self.Ref())
		}
	}
}
