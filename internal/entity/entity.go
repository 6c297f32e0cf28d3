package entity

import (
	"fmt"

	"github.com/vovakirdan/roomsim/internal/asset"
)

// Entity is a live, mutable instance of a prototype. It is owned by exactly
// one store, which attaches its identity when spawning it.
type Entity struct {
	ref   Reference
	proto *Prototype
	props Props

	x, y         float64
	prevX, prevY float64
	hspeed       float64
	vspeed       float64
	scaleX       float64
	scaleY       float64
	rotation     float64 // Degrees, counter-clockwise on screen
	imageIndex   float64
	imageSpeed   float64
	sprite       *asset.Sprite
	mask         *asset.Sprite
	active       bool
	visible      bool
	depth        float64
}

// newEntity clones the prototype's defaults into a detached entity.
func newEntity(p *Prototype) *Entity {
	return &Entity{
		proto:      p,
		props:      p.defaults.Clone(),
		scaleX:     1,
		scaleY:     1,
		imageSpeed: 1,
		sprite:     p.sprite,
		mask:       p.mask,
		active:     true,
		visible:    p.visible,
		depth:      p.depth,
	}
}

// Attach binds the entity to its owning store. It can only be called once.
func (e *Entity) Attach(ref Reference) {
	if !e.ref.IsZero() {
		panic(fmt.Sprintf("entity: %s already attached as %s", e.proto.name, e.ref))
	}
	e.ref = ref
}

// Ref returns the entity's handle. It is Nowhere until the entity is attached.
func (e *Entity) Ref() Reference { return e.ref }

// ID returns the entity's store-unique identifier.
func (e *Entity) ID() ID { return e.ref.ID }

// Prototype returns the prototype the entity was spawned from.
func (e *Entity) Prototype() *Prototype { return e.proto }

// Extends reports whether the entity's prototype is proto or descends from it.
func (e *Entity) Extends(proto *Prototype) bool {
	return e.proto.IsA(proto)
}

// Position returns the current position.
func (e *Entity) Position() (x, y float64) { return e.x, e.y }

// SetPosition moves the entity without touching its previous position.
func (e *Entity) SetPosition(x, y float64) { e.x, e.y = x, y }

// X returns the x position.
func (e *Entity) X() float64 { return e.x }

// Y returns the y position.
func (e *Entity) Y() float64 { return e.y }

// SetX sets the x position.
func (e *Entity) SetX(x float64) { e.x = x }

// SetY sets the y position.
func (e *Entity) SetY(y float64) { e.y = y }

// PrevX returns the x position latched at the start of the last step.
func (e *Entity) PrevX() float64 { return e.prevX }

// PrevY returns the y position latched at the start of the last step.
func (e *Entity) PrevY() float64 { return e.prevY }

// LatchPrevious records the current position as the previous position.
func (e *Entity) LatchPrevious() { e.prevX, e.prevY = e.x, e.y }

// HSpeed returns the horizontal speed per step.
func (e *Entity) HSpeed() float64 { return e.hspeed }

// VSpeed returns the vertical speed per step.
func (e *Entity) VSpeed() float64 { return e.vspeed }

// SetHSpeed sets the horizontal speed per step.
func (e *Entity) SetHSpeed(v float64) { e.hspeed = v }

// SetVSpeed sets the vertical speed per step.
func (e *Entity) SetVSpeed(v float64) { e.vspeed = v }

// Velocity returns the per-step velocity.
func (e *Entity) Velocity() (hspeed, vspeed float64) { return e.hspeed, e.vspeed }

// SetVelocity sets the per-step velocity.
func (e *Entity) SetVelocity(hspeed, vspeed float64) { e.hspeed, e.vspeed = hspeed, vspeed }

// Scale returns the x and y scale factors. Negative values mirror.
func (e *Entity) Scale() (sx, sy float64) { return e.scaleX, e.scaleY }

// SetScale sets the x and y scale factors.
func (e *Entity) SetScale(sx, sy float64) { e.scaleX, e.scaleY = sx, sy }

// ScaleX returns the horizontal scale factor.
func (e *Entity) ScaleX() float64 { return e.scaleX }

// ScaleY returns the vertical scale factor.
func (e *Entity) ScaleY() float64 { return e.scaleY }

// Rotation returns the rotation in degrees.
func (e *Entity) Rotation() float64 { return e.rotation }

// SetRotation sets the rotation in degrees.
func (e *Entity) SetRotation(deg float64) { e.rotation = deg }

// ImageIndex returns the current animation frame, possibly fractional.
func (e *Entity) ImageIndex() float64 { return e.imageIndex }

// ImageSpeed returns the frames advanced per step.
func (e *Entity) ImageSpeed() float64 { return e.imageSpeed }

// SetImageIndex sets the current animation frame.
func (e *Entity) SetImageIndex(i float64) { e.imageIndex = i }

// SetImageSpeed sets the frames advanced per step.
func (e *Entity) SetImageSpeed(s float64) { e.imageSpeed = s }

// Sprite returns the visual sprite, possibly nil.
func (e *Entity) Sprite() *asset.Sprite { return e.sprite }

// SetSprite replaces the visual sprite.
func (e *Entity) SetSprite(s *asset.Sprite) { e.sprite = s }

// Mask returns the explicit collision mask, possibly nil.
func (e *Entity) Mask() *asset.Sprite { return e.mask }

// SetMask replaces the collision mask.
func (e *Entity) SetMask(m *asset.Sprite) { e.mask = m }

// Active reports whether the entity takes part in phases and collision queries.
func (e *Entity) Active() bool { return e.active }

// Visible reports whether the entity is drawn.
func (e *Entity) Visible() bool { return e.visible }

// SetActive enables or disables the entity.
func (e *Entity) SetActive(a bool) { e.active = a }

// SetVisible shows or hides the entity.
func (e *Entity) SetVisible(v bool) { e.visible = v }

// Depth returns the draw ordering key. Higher depths draw first.
func (e *Entity) Depth() float64 { return e.depth }

// SetDepth sets the draw ordering key.
func (e *Entity) SetDepth(d float64) { e.depth = d }

// Get returns the property stored under key.
func (e *Entity) Get(key string) (Value, bool) {
	v, ok := e.props[key]
	return v, ok
}

// Set stores a property under key.
func (e *Entity) Set(key string, v Value) {
	e.props[key] = v
}

// Delete removes a property.
func (e *Entity) Delete(key string) {
	delete(e.props, key)
}

// Props returns a copy of the property bag.
func (e *Entity) Props() Props {
	return e.props.Clone()
}

// Hook returns the entity's behavior for ev.
func (e *Entity) Hook(ev Event) (Hook, bool) {
	return e.proto.Hook(ev)
}

// String identifies the entity for logs.
func (e *Entity) String() string {
	return fmt.Sprintf("%s#%d", e.proto.name, e.ref.ID)
}
