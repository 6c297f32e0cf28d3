package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/roomsim/internal/entity"
)

const sampleDoc = `
prototypes:
  - name: Actor
    sprite: box
    depth: 10
    behaviors: [motion]
    defaults:
      hp: 10
      speed: 1.5
      solid: true
      label: actor
      skin: $box
  - name: Enemy
    parent: Actor
    visible: false
    defaults:
      hp: 5
`

func TestParseYAML(t *testing.T) {
	defs, err := ParseYAML([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("len(defs) = %d, expected 2", len(defs))
	}

	actor := defs[0]
	if actor.Sprite != "box" || actor.Depth == nil || *actor.Depth != 10 {
		t.Errorf("actor = %+v, expected sprite box at depth 10", actor)
	}
	if len(actor.Behaviors) != 1 || actor.Behaviors[0] != "motion" {
		t.Errorf("Behaviors = %v, expected [motion]", actor.Behaviors)
	}

	tests := []struct {
		key  string
		kind entity.Kind
		text string
	}{
		{"hp", entity.KindInt, "10"},
		{"speed", entity.KindReal, "1.5"},
		{"solid", entity.KindBool, "true"},
		{"label", entity.KindString, "actor"},
		{"skin", entity.KindRef, "box"},
	}
	for _, tt := range tests {
		lit, ok := actor.Defaults[tt.key]
		if !ok {
			t.Errorf("default %q missing", tt.key)
			continue
		}
		if lit.Kind != tt.kind || lit.Text != tt.text {
			t.Errorf("default %q = %v %q, expected %v %q", tt.key, lit.Kind, lit.Text, tt.kind, tt.text)
		}
	}

	enemy := defs[1]
	if enemy.Parent != "Actor" || enemy.Visible == nil || *enemy.Visible {
		t.Errorf("enemy = %+v, expected invisible child of Actor", enemy)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", "prototypes:\n  - sprite: box\n"},
		{"duplicate", "prototypes:\n  - name: A\n  - name: A\n"},
		{"non-scalar default", "prototypes:\n  - name: A\n    defaults:\n      hp: [1, 2]\n"},
		{"bad syntax", "prototypes: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.doc)); err == nil {
				t.Error("ParseYAML() expected error")
			}
		})
	}

	_, err := ParseYAML([]byte("prototypes:\n  - name: A\n  - name: A\n"))
	if !errors.Is(err, entity.ErrDuplicatePrototype) {
		t.Errorf("duplicate error = %v, expected ErrDuplicatePrototype", err)
	}
}

func TestLiteralValue(t *testing.T) {
	tests := []struct {
		lit      Literal
		expected entity.Value
	}{
		{Literal{entity.KindInt, "0x10"}, entity.Int(16)},
		{Literal{entity.KindReal, "2.5"}, entity.Real(2.5)},
		{Literal{entity.KindReal, "-.inf"}, entity.Real(math.Inf(-1))},
		{Literal{entity.KindBool, "false"}, entity.Bool(false)},
		{Literal{entity.KindString, "hello"}, entity.String("hello")},
	}
	for _, tt := range tests {
		got, err := tt.lit.Value(nil)
		if err != nil {
			t.Errorf("Value(%v) failed: %v", tt.lit, err)
			continue
		}
		if !got.Equal(tt.expected) {
			t.Errorf("Value(%v) = %v, expected %v", tt.lit, got, tt.expected)
		}
	}

	if _, err := (Literal{entity.KindInt, "ten"}).Value(nil); err == nil {
		t.Error("Value() expected error for a malformed integer")
	}
}

func TestLiteralRef(t *testing.T) {
	target := &struct{}{}
	resolve := func(name string) (any, bool) {
		if name == "box" {
			return target, true
		}
		return nil, false
	}

	v, err := Literal{entity.KindRef, "box"}.Value(resolve)
	if err != nil {
		t.Fatal(err)
	}
	sym, ok := v.Symbol()
	if !ok || sym.Name != "box" || sym.Target != target {
		t.Errorf("Symbol() = %+v, expected box resolved", sym)
	}

	v, _ = Literal{entity.KindRef, "ghost"}.Value(resolve)
	if sym, _ := v.Symbol(); sym == nil || sym.Target != nil || v.Str() != "ghost" {
		t.Errorf("unresolved reference = %v, expected name only", v)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	defs, err := ParseYAML([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	data, err := Marshal(defs)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	again, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML(Marshal()) failed: %v\n%s", err, data)
	}

	// Kinds survive: "10" stays an int, "$box" stays a reference.
	for key, lit := range defs[0].Defaults {
		if again[0].Defaults[key] != lit {
			t.Errorf("default %q = %v, expected %v", key, again[0].Defaults[key], lit)
		}
	}
}
