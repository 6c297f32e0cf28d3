package room_test

import (
	"testing"

	"github.com/vovakirdan/roomsim/internal/entity"
	"github.com/vovakirdan/roomsim/internal/room"
)

func TestStepDefersMutation(t *testing.T) {
	var stepped []string
	var rm *room.Room
	var victim entity.Reference
	lenDuringPhase := -1

	record := func(_ entity.Host, self *entity.Entity) {
		stepped = append(stepped, self.Prototype().Name())
	}

	reg := newRegistry(t,
		entity.Definition{Name: "Child", Hooks: entity.Hooks{entity.EventStep: record}},
		entity.Definition{Name: "Victim", Hooks: entity.Hooks{entity.EventStep: record}},
	)
	reg.RegisterDef(entity.Definition{
		Name: "Spawner",
		Hooks: entity.Hooks{
			entity.EventStep: func(h entity.Host, self *entity.Entity) {
				record(h, self)
				h.Spawn(0, 0, 0, h.Registry().MustLookup("Child"))
				h.Destroy(victim)
				lenDuringPhase = rm.Len()
				// Ignored: the live list is never mutated mid-phase.
				rm.Commit()
			},
		},
	})

	rm = room.New(reg)
	rm.Spawn(0, 0, 0, reg.MustLookup("Spawner"))
	victim = rm.Spawn(0, 0, 0, reg.MustLookup("Victim"))
	rm.Commit()

	rm.Step()

	if lenDuringPhase != 2 {
		t.Errorf("Len() during step = %d, expected 2", lenDuringPhase)
	}
	// Victim was destroyed before its turn; Child was spawned mid-phase.
	if len(stepped) != 1 || stepped[0] != "Spawner" {
		t.Errorf("stepped = %v, expected [Spawner]", stepped)
	}
	if rm.Len() != 2 {
		t.Errorf("Len() after step = %d, expected 2 (Spawner, Child)", rm.Len())
	}
	if rm.Exists(victim) {
		t.Error("victim still exists")
	}

	stepped = nil
	rm.Step()
	if len(stepped) != 2 {
		t.Errorf("second step visited %v, expected Spawner and Child", stepped)
	}
	if rm.Frame() != 2 {
		t.Errorf("Frame() = %d, expected 2", rm.Frame())
	}
}

func TestStepPhaseOrder(t *testing.T) {
	var order []entity.Event
	hook := func(ev entity.Event) entity.Hook {
		return func(entity.Host, *entity.Entity) { order = append(order, ev) }
	}
	reg := newRegistry(t, entity.Definition{
		Name: "Thing",
		Hooks: entity.Hooks{
			entity.EventEndStep:   hook(entity.EventEndStep),
			entity.EventBeginStep: hook(entity.EventBeginStep),
			entity.EventStep:      hook(entity.EventStep),
		},
	})
	rm := room.New(reg)
	rm.Spawn(0, 0, 0, reg.MustLookup("Thing"))
	rm.Step()

	expected := entity.StepEvents
	if len(order) != len(expected) {
		t.Fatalf("order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("order[%d] = %s, expected %s", i, order[i], expected[i])
		}
	}
	if rm.Phase() != "" {
		t.Errorf("Phase() = %q after step, expected empty", rm.Phase())
	}
}

func TestStepLatchesPreviousPosition(t *testing.T) {
	reg := newRegistry(t, entity.Definition{
		Name: "Mover",
		Hooks: entity.Hooks{
			entity.EventStep: func(_ entity.Host, self *entity.Entity) {
				self.SetX(self.X() + 3)
			},
		},
	})
	rm := room.New(reg)
	ref := rm.Spawn(10, 0, 0, reg.MustLookup("Mover"))

	rm.Step()
	rm.Step()

	e, _ := rm.Get(ref)
	if e.X() != 16 || e.PrevX() != 13 {
		t.Errorf("X, PrevX = %v, %v, expected 16, 13", e.X(), e.PrevX())
	}
}

func TestInactiveEntitiesAreSkipped(t *testing.T) {
	steps := 0
	reg := newRegistry(t, entity.Definition{
		Name: "Thing",
		Hooks: entity.Hooks{
			entity.EventStep: func(entity.Host, *entity.Entity) { steps++ },
		},
	})
	rm := room.New(reg)
	ref := rm.Spawn(0, 0, 0, reg.MustLookup("Thing"))
	e, _ := rm.Get(ref)
	e.SetActive(false)

	rm.Step()
	if steps != 0 {
		t.Errorf("inactive entity stepped %d times", steps)
	}
}

func TestDrawOrdersByDepth(t *testing.T) {
	reg := newRegistry(t, entity.Definition{Name: "Thing"})
	thing := reg.MustLookup("Thing")
	rm := room.New(reg)

	front := rm.Spawn(0, 0, -10, thing)
	back := rm.Spawn(0, 0, 100, thing)
	midA := rm.Spawn(0, 0, 0, thing)
	midB := rm.Spawn(0, 0, 0, thing)
	hidden := rm.Spawn(0, 0, 50, thing)
	if e, ok := rm.Get(hidden); ok {
		e.SetVisible(false)
	}
	rm.Commit()

	var drawn []entity.Reference
	rm.Draw(func(e *entity.Entity) { drawn = append(drawn, e.Ref()) })

	expected := []entity.Reference{back, midA, midB, front}
	if len(drawn) != len(expected) {
		t.Fatalf("drawn %d entities, expected %d", len(drawn), len(expected))
	}
	for i := range expected {
		if drawn[i] != expected[i] {
			t.Errorf("drawn[%d] = %s, expected %s", i, drawn[i], expected[i])
		}
	}
}

func TestDrawHookReplacesDefault(t *testing.T) {
	hooked := 0
	reg := newRegistry(t, entity.Definition{
		Name: "Custom",
		Hooks: entity.Hooks{
			entity.EventDraw: func(entity.Host, *entity.Entity) { hooked++ },
		},
	})
	rm := room.New(reg)
	rm.Spawn(0, 0, 0, reg.MustLookup("Custom"))
	rm.Commit()

	fallback := 0
	rm.Draw(func(*entity.Entity) { fallback++ })

	if hooked != 1 || fallback != 0 {
		t.Errorf("hooked, fallback = %d, %d, expected 1, 0", hooked, fallback)
	}
}

func TestStepScrollsBackgrounds(t *testing.T) {
	rm := room.New(entity.NewRegistry(0))
	rm.AddBackground(room.Background{SpeedX: 1.5, SpeedY: -1})

	rm.Step()
	rm.Step()

	if b := rm.Backgrounds[0]; b.X != 3 || b.Y != -2 {
		t.Errorf("background at (%v, %v), expected (3, -2)", b.X, b.Y)
	}
}
