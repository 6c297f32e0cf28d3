package entity

import (
	"math"

	"github.com/vovakirdan/roomsim/internal/asset"
	"github.com/vovakirdan/roomsim/internal/core"
)

// CollisionSprite returns the mask if set, otherwise the sprite.
func (e *Entity) CollisionSprite() *asset.Sprite {
	if e.mask != nil {
		return e.mask
	}
	return e.sprite
}

// Hitbox returns the unscaled local hitbox of the collision sprite.
func (e *Entity) Hitbox() (core.Rect, bool) {
	spr := e.CollisionSprite()
	if spr == nil {
		return core.Rect{}, false
	}
	return spr.Hitbox, true
}

// BBox returns the entity's axis-aligned bounding box.
//
// For each axis the origin is mirrored to (size - origin) when the scale is
// negative, then:
//
//	left  = x + hitboxLeft*|scaleX| - originX*|scaleX|
//	right = left + hitboxWidth*|scaleX|
//
// and symmetrically for top and bottom. Rotation is not applied. Without a
// collision resource the box has zero size at the entity's position.
func (e *Entity) BBox() core.Rect {
	spr := e.CollisionSprite()
	if spr == nil {
		return core.NewRect(e.x, e.y, 0, 0)
	}

	ax, ay := math.Abs(e.scaleX), math.Abs(e.scaleY)
	ox, oy := spr.OriginX, spr.OriginY
	if e.scaleX < 0 {
		ox = float64(spr.Width) - ox
	}
	if e.scaleY < 0 {
		oy = float64(spr.Height) - oy
	}

	hb := spr.Hitbox
	left := e.x + hb.X*ax - ox*ax
	top := e.y + hb.Y*ay - oy*ay
	return core.NewRect(left, top, hb.W*ax, hb.H*ay)
}

// Polygon returns the entity's hitbox as a convex polygon: the bounding box
// rotated about the entity's position. It is nil without a collision resource.
func (e *Entity) Polygon() core.Polygon {
	if e.CollisionSprite() == nil {
		return nil
	}
	pos := core.V(e.x, e.y)
	poly := e.BBox().Corners()
	if e.rotation == 0 {
		return poly
	}
	for i, v := range poly {
		poly[i] = v.Sub(pos).Rotate(e.rotation).Add(pos)
	}
	return poly
}
