package tiles

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		stream    []int32
		expected  []Cell
		truncated bool
	}{
		{"empty", nil, []Cell{}, false},
		{"literal run", []int32{1, 2, 3}, []Cell{1, 2, 3}, false},
		{"repeat block", []int32{-4, 7}, []Cell{7, 7, 7, 7}, false},
		{"literal then block", []int32{1, 2, -3, 9}, []Cell{1, 2, 9, 9, 9}, false},
		{"block then literal", []int32{-2, 0, 5, 6}, []Cell{0, 0, 5, 6}, false},
		{"back to back blocks", []int32{-2, 1, -2, 2}, []Cell{1, 1, 2, 2}, false},
		{"single repeat", []int32{-1, 8}, []Cell{8}, false},
		{"ends inside literal run", []int32{3, 4}, []Cell{3, 4}, false},
		{"ends before block value", []int32{1, -5}, []Cell{1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, truncated := Decode(tc.stream)
			if truncated != tc.truncated {
				t.Errorf("Decode() truncated = %v, expected %v", truncated, tc.truncated)
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("Decode() = %v, expected %v", got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Decode()[%d] = %d, expected %d", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	grids := [][]Cell{
		{},
		{0},
		{5, 5, 5, 5, 5, 5},
		{1, 2, 2, 3, 3, 3, 4, 4, 4, 4},
		{Pack(12, true, false, true), Pack(12, true, false, true), Pack(12, true, false, true), 0, 0},
	}
	for n := 0; n < 20; n++ {
		g := make([]Cell, rng.Intn(200))
		for i := range g {
			// Small alphabet so runs actually occur.
			g[i] = Pack(uint32(rng.Intn(4)), rng.Intn(2) == 0, rng.Intn(3) == 0, rng.Intn(5) == 0)
		}
		grids = append(grids, g)
	}

	for i, grid := range grids {
		stream, err := Encode(grid)
		if err != nil {
			t.Fatalf("grid %d: Encode() failed: %v", i, err)
		}
		got, truncated := Decode(stream)
		if truncated {
			t.Errorf("grid %d: Decode() reported truncation", i)
		}
		if len(got) != len(grid) {
			t.Fatalf("grid %d: decoded %d cells, expected %d", i, len(got), len(grid))
		}
		for j := range grid {
			if got[j] != grid[j] {
				t.Fatalf("grid %d: cell %d = %d, expected %d", i, j, got[j], grid[j])
			}
		}
	}
}

func TestEncodeCompressesRuns(t *testing.T) {
	grid := make([]Cell, 100)
	for i := range grid {
		grid[i] = 3
	}
	stream, err := Encode(grid)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if len(stream) != 2 {
		t.Errorf("Encode() produced %d values, expected 2", len(stream))
	}
}

func TestEncodeRejectsHighBit(t *testing.T) {
	_, err := Encode([]Cell{1, Cell(1 << 31)})
	if !errors.Is(err, ErrCellRange) {
		t.Errorf("Encode() error = %v, expected ErrCellRange", err)
	}
}

func TestDecodeLimit(t *testing.T) {
	// A repeat count far larger than the grid stops at the limit.
	cells, truncated := DecodeLimit([]int32{-2147483647, 7, 1, 2}, 4)
	if truncated {
		t.Error("DecodeLimit() reported truncation")
	}
	if len(cells) != 4 {
		t.Fatalf("DecodeLimit() returned %d cells, expected 4", len(cells))
	}
	for i, c := range cells {
		if c != 7 {
			t.Errorf("cells[%d] = %d, expected 7", i, c)
		}
	}

	cells, _ = DecodeLimit([]int32{1, 2, 3, 4, 5}, 3)
	if len(cells) != 3 || cells[2] != 3 {
		t.Errorf("DecodeLimit() on literals = %v, expected [1 2 3]", cells)
	}
}
