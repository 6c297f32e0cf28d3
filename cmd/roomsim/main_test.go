package main

import (
	"testing"

	"github.com/vovakirdan/roomsim/internal/catalog"
)

func TestMergeDefs(t *testing.T) {
	base := []catalog.Def{{Name: "Actor"}, {Name: "Enemy", Parent: "Actor"}}
	extra := []catalog.Def{{Name: "Enemy", Sprite: "box"}, {Name: "Wall"}}

	got := mergeDefs(base, extra)

	expected := []struct {
		name, parent, sprite string
	}{
		{"Actor", "", ""},
		{"Enemy", "", "box"},
		{"Wall", "", ""},
	}
	if len(got) != len(expected) {
		t.Fatalf("mergeDefs() returned %d defs, expected %d", len(got), len(expected))
	}
	for i, e := range expected {
		d := got[i]
		if d.Name != e.name || d.Parent != e.parent || d.Sprite != e.sprite {
			t.Errorf("mergeDefs()[%d] = %+v, expected %+v", i, d, e)
		}
	}
}

func TestParseInts(t *testing.T) {
	tests := []struct {
		args    []string
		want    []int64
		wantErr bool
	}{
		{[]string{"0", "-4", "0x10"}, []int64{0, -4, 16}, false},
		{[]string{"7"}, []int64{7}, false},
		{[]string{"x"}, nil, true},
	}

	for _, tt := range tests {
		got, err := parseInts(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseInts(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseInts(%v) = %v, expected %v", tt.args, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseInts(%v) = %v, expected %v", tt.args, got, tt.want)
				break
			}
		}
	}
}

func TestJoinInts(t *testing.T) {
	if got := joinInts([]int32{-4, 0, 5}); got != "-4 0 5" {
		t.Errorf("joinInts() = %q, expected %q", got, "-4 0 5")
	}
	if got := joinInts(nil); got != "" {
		t.Errorf("joinInts(nil) = %q, expected empty", got)
	}
}
