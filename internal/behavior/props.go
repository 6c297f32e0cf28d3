package behavior

import "github.com/vovakirdan/roomsim/internal/entity"

// Property keys read and written by the built-in behaviors.
const (
	PropGravity   = "gravity"    // real, added to vspeed every step
	PropFriction  = "friction"   // real, taken off each speed component every step
	PropBlockedBy = "blocked_by" // prototype the entity cannot move into
	PropLoopOnce  = "loop_once"  // bool, destroy when the animation wraps
	PropLifetime  = "lifetime"   // integer, steps left before destruction
	PropSpawn     = "spawn"      // prototype a spawner creates
	PropInterval  = "interval"   // integer, steps between spawns
	PropLimit     = "limit"      // integer, cap on live spawned entities
	PropTimer     = "timer"      // integer, steps until the next spawn
	PropCollects  = "collects"   // prototype a collector picks up
	PropScore     = "score"      // integer, sum of collected values
	PropValue     = "value"      // integer, worth of a collected entity
)

// prototypeProp resolves a property naming a prototype. Resolved references
// are used directly; plain strings are looked up in the host's registry.
func prototypeProp(h entity.Host, self *entity.Entity, key string) *entity.Prototype {
	v, ok := self.Get(key)
	if !ok {
		return nil
	}
	if sym, ok := v.Symbol(); ok {
		if p, ok := sym.Target.(*entity.Prototype); ok {
			return p
		}
	}
	if v.Str() == "" {
		return nil
	}
	p, _ := h.Registry().Lookup(v.Str())
	return p
}

// intProp returns the integer value of key, or def when it is unset.
func intProp(self *entity.Entity, key string, def int64) int64 {
	v, ok := self.Get(key)
	if !ok || v.IsNone() {
		return def
	}
	return v.Int()
}
