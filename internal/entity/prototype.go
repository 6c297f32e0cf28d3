// Package entity defines the simulation's data model: prototypes with
// single-parent inheritance, the registry that owns them, live entities
// cloned from them, and the tagged property values both carry.
package entity

import "github.com/vovakirdan/roomsim/internal/asset"

// Prototype is a named, immutable entity template.
type Prototype struct {
	name     string
	parent   *Prototype
	own      Props // Defaults declared by this prototype
	defaults Props // Effective defaults, ancestors first then own
	hooks    Hooks
	sprite   *asset.Sprite
	mask     *asset.Sprite
	depth    float64
	visible  bool
	level    int // Number of ancestors
	limit    int // Bound on chain walks
}

// Name returns the prototype's registered name.
func (p *Prototype) Name() string { return p.name }

// Parent returns the parent prototype, or nil for a root.
func (p *Prototype) Parent() *Prototype { return p.parent }

// Defaults returns a copy of the effective default bag.
func (p *Prototype) Defaults() Props { return p.defaults.Clone() }

// OwnDefaults returns a copy of the defaults declared by this prototype alone.
func (p *Prototype) OwnDefaults() Props { return p.own.Clone() }

// Default returns one effective default value.
func (p *Prototype) Default(key string) (Value, bool) {
	v, ok := p.defaults[key]
	return v, ok
}

// Sprite returns the default visual sprite, possibly nil.
func (p *Prototype) Sprite() *asset.Sprite { return p.sprite }

// Mask returns the default collision mask, possibly nil.
func (p *Prototype) Mask() *asset.Sprite { return p.mask }

// Depth returns the default depth of instances.
func (p *Prototype) Depth() float64 { return p.depth }

// Visible returns whether instances start visible.
func (p *Prototype) Visible() bool { return p.visible }

// Level returns the number of ancestors above the prototype.
func (p *Prototype) Level() int { return p.level }

// IsA reports whether p equals target or has target as an ancestor.
// The walk is bounded so a corrupted chain cannot loop forever.
func (p *Prototype) IsA(target *Prototype) bool {
	if target == nil {
		return false
	}
	for cur, n := p, 0; cur != nil && n <= p.limit; cur, n = cur.parent, n+1 {
		if cur == target {
			return true
		}
	}
	return false
}

// Hook returns the callback for ev, searching from p toward the root so a
// child inherits every hook it does not override.
func (p *Prototype) Hook(ev Event) (Hook, bool) {
	for cur, n := p, 0; cur != nil && n <= p.limit; cur, n = cur.parent, n+1 {
		if h, ok := cur.hooks[ev]; ok && h != nil {
			return h, true
		}
	}
	return nil, false
}

// Inherited returns the hook for ev that p's own hook overrides, if any.
func (p *Prototype) Inherited(ev Event) (Hook, bool) {
	if p.parent == nil {
		return nil, false
	}
	return p.parent.Hook(ev)
}

// Chain returns the prototype followed by its ancestors, leaf first.
func (p *Prototype) Chain() []*Prototype {
	chain := make([]*Prototype, 0, p.level+1)
	for cur, n := p, 0; cur != nil && n <= p.limit; cur, n = cur.parent, n+1 {
		chain = append(chain, cur)
	}
	return chain
}

// Instantiate creates a detached entity whose property bag is a copy of p's
// effective defaults.
func (p *Prototype) Instantiate() *Entity {
	return newEntity(p)
}
