package entity

import "github.com/vovakirdan/roomsim/internal/core"

// Event names a behavior hook slot.
type Event string

const (
	EventCreate    Event = "create"
	EventDestroy   Event = "destroy"
	EventBeginStep Event = "begin_step"
	EventStep      Event = "step"
	EventEndStep   Event = "end_step"
	EventBeginDraw Event = "begin_draw"
	EventDraw      Event = "draw"
	EventDrawGUI   Event = "draw_gui"
)

// StepEvents are the mutating simulation phases in execution order.
var StepEvents = []Event{EventBeginStep, EventStep, EventEndStep}

// DrawEvents are the drawing phases in execution order.
var DrawEvents = []Event{EventBeginDraw, EventDraw, EventDrawGUI}

// Hook is a behavior callback. It receives the host owning the entity so it
// can spawn, destroy and query other entities.
type Hook func(h Host, self *Entity)

// Hooks maps events to callbacks.
type Hooks map[Event]Hook

// Chain returns a hook that runs hooks in order. Nil hooks are skipped.
// The chain stops once an attached entity no longer exists in its host, so
// hooks after one that destroyed self do not run.
func Chain(hooks ...Hook) Hook {
	var live []Hook
	for _, h := range hooks {
		if h != nil {
			live = append(live, h)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(h Host, self *Entity) {
		for i, fn := range live {
			if i > 0 && h != nil && !self.Ref().IsZero() && !h.Exists(self.Ref()) {
				return
			}
			fn(h, self)
		}
	}
}

// Host is the scripting surface a room exposes to behavior hooks.
// Spawns and destroys issued through it are deferred until the next commit,
// so calling them from inside any hook is safe.
type Host interface {
	Registry() *Registry
	Bounds() core.Rect

	Spawn(x, y, depth float64, proto *Prototype) Reference
	Destroy(ref Reference)
	DestroyWhere(proto *Prototype)
	Exists(ref Reference) bool
	Get(ref Reference) (*Entity, bool)

	CountWhere(proto *Prototype) int
	FirstWhere(proto *Prototype) (Reference, bool)
	AllWhere(proto *Prototype) []Reference
	QueryRect(r core.Rect, proto *Prototype, exclude Reference) []Reference
	PlaceCheck(mover Reference, dx, dy float64, proto *Prototype) (Reference, bool)
	PlaceCheckRef(mover Reference, dx, dy float64, other Reference) (Reference, bool)
}
