// Package tiles provides the packed tile cell format, the run-length codec used
// by room files, and a flat row-major tile grid.
package tiles

// Cell is a packed 32-bit tile cell.
//
// Layout:
//
//	bits 0-18  tile identifier
//	bit  28    mirror (horizontal)
//	bit  29    flip (vertical)
//	bit  30    rotate 90 degrees
//
// A zero cell (tile id 0, no flags) is empty.
type Cell uint32

const (
	IDBits = 19
	IDMask = 1<<IDBits - 1

	MirrorBit = 1 << 28
	FlipBit   = 1 << 29
	RotateBit = 1 << 30

	// flagMask covers every bit a well-formed cell may carry.
	flagMask = MirrorBit | FlipBit | RotateBit
)

// Pack builds a cell from a tile id and its flags. Ids wider than 19 bits are truncated.
func Pack(id uint32, mirror, flip, rotate bool) Cell {
	c := Cell(id & IDMask)
	if mirror {
		c |= MirrorBit
	}
	if flip {
		c |= FlipBit
	}
	if rotate {
		c |= RotateBit
	}
	return c
}

// Unpack splits a cell into its tile id and flags.
func (c Cell) Unpack() (id uint32, mirror, flip, rotate bool) {
	return c.ID(), c.Mirror(), c.Flip(), c.Rotate()
}

// ID returns the 19-bit tile identifier.
func (c Cell) ID() uint32 {
	return uint32(c) & IDMask
}

// Mirror reports whether the tile is mirrored horizontally.
func (c Cell) Mirror() bool {
	return c&MirrorBit != 0
}

// Flip reports whether the tile is flipped vertically.
func (c Cell) Flip() bool {
	return c&FlipBit != 0
}

// Rotate reports whether the tile is rotated by 90 degrees.
func (c Cell) Rotate() bool {
	return c&RotateBit != 0
}

// Empty reports whether the cell should be skipped when drawing.
func (c Cell) Empty() bool {
	return c.ID() == 0
}

// Valid reports whether the cell only uses bits defined by the layout.
func (c Cell) Valid() bool {
	return uint32(c)&^(IDMask|flagMask) == 0
}
