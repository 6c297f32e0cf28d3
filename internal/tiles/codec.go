package tiles

import (
	"errors"
	"fmt"
	"math"
)

// ErrCellRange is returned by Encode when a cell cannot be represented as a
// non-negative 32-bit value.
var ErrCellRange = errors.New("tiles: cell out of encodable range")

// minRun is the shortest repeat that is written as a run-length block.
// Shorter repeats are cheaper as literals.
const minRun = 3

// Decode expands a run-length stream into cells.
//
// Stream grammar:
//   - a non-negative value starts a literal run; every following non-negative
//     value is emitted until a negative value is seen
//   - a negative value -n is a repeat block: the next value is emitted n times
//
// A stream that ends inside a run or a block stops decoding there. The second
// return value reports whether the stream ended inside a repeat block whose
// value was missing.
func Decode(stream []int32) (cells []Cell, truncated bool) {
	return DecodeLimit(stream, math.MaxInt)
}

// DecodeLimit is Decode that stops once limit cells have been emitted, so a
// hostile repeat count cannot allocate past the grid it fills.
func DecodeLimit(stream []int32, limit int) (cells []Cell, truncated bool) {
	cells = make([]Cell, 0, min(len(stream), limit))
	i := 0
	for i < len(stream) && len(cells) < limit {
		v := stream[i]
		i++
		if v >= 0 {
			cells = append(cells, Cell(v))
			for i < len(stream) && stream[i] >= 0 && len(cells) < limit {
				cells = append(cells, Cell(stream[i]))
				i++
			}
			continue
		}

		if i >= len(stream) {
			return cells, true
		}
		r := Cell(stream[i])
		i++
		count := -int64(v)
		for n := int64(0); n < count && len(cells) < limit; n++ {
			cells = append(cells, r)
		}
	}
	return cells, false
}

// Encode compresses cells into a stream that Decode expands back to the same
// cells. Runs of minRun or more equal cells become repeat blocks; everything
// else is written as literals.
func Encode(cells []Cell) ([]int32, error) {
	out := make([]int32, 0, len(cells))
	for i := 0; i < len(cells); {
		c := cells[i]
		if uint32(c) > math.MaxInt32 {
			return nil, fmt.Errorf("%w: 0x%08x at %d", ErrCellRange, uint32(c), i)
		}

		j := i + 1
		for j < len(cells) && cells[j] == c && j-i < math.MaxInt32 {
			j++
		}

		if run := j - i; run >= minRun {
			out = append(out, int32(-run), int32(c))
		} else {
			for k := i; k < j; k++ {
				out = append(out, int32(c))
			}
		}
		i = j
	}
	return out, nil
}
