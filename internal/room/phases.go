package room

import (
	"sort"

	"github.com/vovakirdan/roomsim/internal/entity"
)

// DrawFunc draws an entity that has no draw hook of its own.
type DrawFunc func(e *entity.Entity)

// Step advances the room by one frame. Previous positions are latched, then
// begin_step, step and end_step run in order with a commit after each.
// Backgrounds scroll once the phases are done.
func (r *Room) Step() {
	r.Commit()
	for _, s := range r.live {
		s.ent.LatchPrevious()
	}
	for _, ev := range entity.StepEvents {
		r.runPhase(ev, r.snapshot(), false, nil)
		r.Commit()
	}
	r.ScrollBackgrounds()
	r.frame++
}

// Draw runs begin_draw, draw and draw_gui over visible entities ordered by
// depth, highest first. During draw, entities without a draw hook are passed
// to fn instead. fn may be nil.
func (r *Room) Draw(fn DrawFunc) {
	for _, ev := range entity.DrawEvents {
		snap := r.snapshot()
		sort.SliceStable(snap, func(i, j int) bool {
			a, b := snap[i].ent, snap[j].ent
			if a.Depth() != b.Depth() {
				return a.Depth() > b.Depth()
			}
			return a.ID() < b.ID()
		})
		var fallback DrawFunc
		if ev == entity.EventDraw {
			fallback = fn
		}
		r.runPhase(ev, snap, true, fallback)
		r.Commit()
	}
}

// Phase returns the event currently being dispatched, or "" between phases.
func (r *Room) Phase() entity.Event { return r.phase }

// snapshot copies the live list into the room's scratch buffer. Entities
// spawned during the phase are not in it.
func (r *Room) snapshot() []*slot {
	clear(r.scratch)
	r.scratch = append(r.scratch[:0], r.live...)
	return r.scratch
}

func (r *Room) runPhase(ev entity.Event, snap []*slot, draw bool, fallback DrawFunc) {
	r.phase = ev
	defer func() { r.phase = "" }()

	for _, s := range snap {
		// Destroyed earlier in this phase.
		if s.dead {
			continue
		}
		e := s.ent
		if !e.Active() || (draw && !e.Visible()) {
			continue
		}
		if h, ok := e.Hook(ev); ok {
			h(r, e)
		} else if fallback != nil {
			fallback(e)
		}
	}
}
