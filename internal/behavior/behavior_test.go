package behavior_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/roomsim/internal/asset"
	"github.com/vovakirdan/roomsim/internal/behavior"
	"github.com/vovakirdan/roomsim/internal/core"
	"github.com/vovakirdan/roomsim/internal/entity"
	"github.com/vovakirdan/roomsim/internal/room"
)

var box = &asset.Sprite{Name: "box", Width: 8, Height: 8, Hitbox: core.NewRect(0, 0, 8, 8), Frames: 4}

func define(t *testing.T, reg *entity.Registry, name, parent string, defaults entity.Props, behaviors ...string) *entity.Prototype {
	t.Helper()
	hooks, err := behavior.Compose(behaviors...)
	if err != nil {
		t.Fatalf("Compose(%v) failed: %v", behaviors, err)
	}
	p, err := reg.RegisterDef(entity.Definition{
		Name:     name,
		Parent:   parent,
		Defaults: defaults,
		Hooks:    hooks,
		Sprite:   box,
	})
	if err != nil {
		t.Fatalf("RegisterDef(%s) failed: %v", name, err)
	}
	return p
}

func TestBuiltinsAreRegistered(t *testing.T) {
	for _, name := range []string{"motion", "animate", "lifetime", "spawner", "wrap", "cull", "collector"} {
		if !behavior.Exists(name) {
			t.Errorf("behavior %q not registered", name)
		}
	}

	list := behavior.List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("List() not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}
}

func TestComposeUnknown(t *testing.T) {
	if _, err := behavior.Compose("motion", "teleport"); !errors.Is(err, behavior.ErrUnknown) {
		t.Errorf("Compose() error = %v, expected ErrUnknown", err)
	}
}

func TestComposeMergesEvents(t *testing.T) {
	hooks, err := behavior.Compose("motion", "wrap")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := hooks[entity.EventStep]; !ok {
		t.Error("motion should contribute a step hook")
	}
	if _, ok := hooks[entity.EventEndStep]; !ok {
		t.Error("wrap should contribute an end_step hook")
	}
}

func TestMotion(t *testing.T) {
	reg := entity.NewRegistry(0)
	ball := define(t, reg, "Ball", "", entity.Props{
		behavior.PropGravity:  entity.Real(1),
		behavior.PropFriction: entity.Real(0.5),
	}, "motion")
	rm := room.New(reg)

	ref := rm.Spawn(0, 0, 0, ball)
	e, _ := rm.Get(ref)
	e.SetVelocity(4, 0)
	rm.Step()

	// hspeed 4 -> 3.5, vspeed 0 + 1 -> 0.5.
	if e.X() != 3.5 || e.Y() != 0.5 {
		t.Errorf("position = (%v, %v), expected (3.5, 0.5)", e.X(), e.Y())
	}
	if e.PrevX() != 0 {
		t.Errorf("PrevX() = %v, expected 0", e.PrevX())
	}
}

func TestMotionBlocked(t *testing.T) {
	reg := entity.NewRegistry(0)
	wall := define(t, reg, "Wall", "", nil)
	player := define(t, reg, "Player", "", entity.Props{
		behavior.PropBlockedBy: entity.String("Wall"),
	}, "motion")
	rm := room.New(reg)

	ref := rm.Spawn(0, 0, 0, player)
	rm.Spawn(10, 0, 0, wall)
	e, _ := rm.Get(ref)
	e.SetVelocity(4, 1)
	rm.Step()

	if e.X() != 0 || e.HSpeed() != 0 {
		t.Errorf("blocked x = %v, hspeed = %v, expected 0, 0", e.X(), e.HSpeed())
	}
	if e.Y() != 1 {
		t.Errorf("y = %v, expected free movement to 1", e.Y())
	}
}

func TestAnimate(t *testing.T) {
	reg := entity.NewRegistry(0)
	spark := define(t, reg, "Spark", "", entity.Props{behavior.PropLoopOnce: entity.Bool(true)}, "animate")
	rm := room.New(reg)

	ref := rm.Spawn(0, 0, 0, spark)
	e, _ := rm.Get(ref)
	e.SetImageSpeed(1.5)

	rm.Step()
	rm.Step()
	if e.ImageIndex() != 3 {
		t.Errorf("ImageIndex() = %v, expected 3", e.ImageIndex())
	}
	if !rm.Exists(ref) {
		t.Fatal("spark destroyed before its animation looped")
	}

	rm.Step()
	if e.ImageIndex() != 0.5 {
		t.Errorf("ImageIndex() = %v, expected 0.5 after wrapping", e.ImageIndex())
	}
	if rm.Exists(ref) {
		t.Error("loop_once entity should be destroyed when its animation wraps")
	}
}

func TestLifetime(t *testing.T) {
	reg := entity.NewRegistry(0)
	puff := define(t, reg, "Puff", "", entity.Props{behavior.PropLifetime: entity.Int(3)}, "lifetime")
	rm := room.New(reg)
	ref := rm.Spawn(0, 0, 0, puff)

	for i := 0; i < 2; i++ {
		rm.Step()
		if !rm.Exists(ref) {
			t.Fatalf("destroyed after %d steps, expected 3", i+1)
		}
	}
	rm.Step()
	if rm.Exists(ref) || rm.Len() != 0 {
		t.Error("entity should be gone after its lifetime")
	}
}

func TestSpawner(t *testing.T) {
	reg := entity.NewRegistry(0)
	bullet := define(t, reg, "Bullet", "", nil, "motion")
	gun := define(t, reg, "Gun", "", entity.Props{
		behavior.PropSpawn:    entity.Ref("Bullet", bullet),
		behavior.PropInterval: entity.Int(2),
		behavior.PropLimit:    entity.Int(2),
	}, "spawner")
	rm := room.New(reg)

	ref := rm.Spawn(5, 5, 0, gun)
	g, _ := rm.Get(ref)
	g.SetVelocity(1, 0)

	counts := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		rm.Step()
		counts = append(counts, rm.CountWhere(bullet))
	}

	expected := []int{0, 1, 1, 2, 2, 2}
	for i := range expected {
		if counts[i] != expected[i] {
			t.Errorf("after step %d: %d bullets, expected %d", i+1, counts[i], expected[i])
		}
	}

	first, _ := rm.FirstWhere(bullet)
	b, _ := rm.Get(first)
	if b.HSpeed() != 1 {
		t.Errorf("bullet hspeed = %v, expected the gun's 1", b.HSpeed())
	}
}

func TestWrapAndCull(t *testing.T) {
	reg := entity.NewRegistry(0)
	ship := define(t, reg, "Ship", "", nil, "motion", "wrap")
	rock := define(t, reg, "Rock", "", nil, "motion", "cull")
	rm := room.New(reg, room.WithSize("field", 100, 50))

	s := rm.Spawn(98, 10, 0, ship)
	r := rm.Spawn(90, 10, 0, rock)
	for _, ref := range []entity.Reference{s, r} {
		e, _ := rm.Get(ref)
		e.SetVelocity(5, -12)
	}

	rm.Step()
	e, _ := rm.Get(s)
	if e.X() != 3 || e.Y() != 48 {
		t.Errorf("wrapped ship at (%v, %v), expected (3, 48)", e.X(), e.Y())
	}
	// The rock's box still overlaps the room after one step.
	if !rm.Exists(r) {
		t.Fatal("rock culled too early")
	}

	rm.Step()
	if rm.Exists(r) {
		t.Error("rock outside the room should be culled")
	}
}

func TestCollector(t *testing.T) {
	reg := entity.NewRegistry(0)
	coin := define(t, reg, "Coin", "", entity.Props{behavior.PropValue: entity.Int(5)})
	define(t, reg, "BigCoin", "Coin", entity.Props{behavior.PropValue: entity.Int(50)})
	player := define(t, reg, "Player", "", entity.Props{behavior.PropCollects: entity.String("Coin")}, "collector")
	rm := room.New(reg)

	p := rm.Spawn(0, 0, 0, player)
	rm.Spawn(4, 4, 0, coin)
	rm.SpawnName(2, 0, 0, "BigCoin")
	far := rm.Spawn(40, 40, 0, coin)

	rm.Step()

	e, _ := rm.Get(p)
	if score, _ := e.Get(behavior.PropScore); score.Int() != 55 {
		t.Errorf("score = %v, expected 55", score)
	}
	if n := rm.CountWhere(coin); n != 1 || !rm.Exists(far) {
		t.Errorf("%d coins left, expected only the far one", n)
	}
}
