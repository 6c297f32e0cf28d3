package tiles

// Layer is a tile grid stored in row-major order: index = x + y*Width.
type Layer struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewLayer creates an empty layer with the given dimensions.
func NewLayer(width, height int) *Layer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Layer{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
}

// Fill copies cells into the layer starting at index 0 and returns how many
// were stored. Cells beyond the grid are ignored.
func (l *Layer) Fill(cells []Cell) int {
	return copy(l.Cells, cells)
}

// InBounds returns true if (x, y) addresses a cell of the layer.
func (l *Layer) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// Get returns the packed cell at (x, y), or an empty cell if out of bounds.
func (l *Layer) Get(x, y int) Cell {
	if !l.InBounds(x, y) {
		return 0
	}
	return l.Cells[x+y*l.Width]
}

// Set stores a packed cell at (x, y). Out of bounds writes are ignored.
func (l *Layer) Set(x, y int, c Cell) {
	if l.InBounds(x, y) {
		l.Cells[x+y*l.Width] = c
	}
}

// GetExt returns the cell at (x, y) split into tile id and flags.
func (l *Layer) GetExt(x, y int) (id uint32, mirror, flip, rotate bool) {
	return l.Get(x, y).Unpack()
}

// SetExt packs a tile id and flags into the cell at (x, y).
func (l *Layer) SetExt(x, y int, id uint32, mirror, flip, rotate bool) {
	l.Set(x, y, Pack(id, mirror, flip, rotate))
}

// Encode returns the run-length stream for the layer's cells.
func (l *Layer) Encode() ([]int32, error) {
	return Encode(l.Cells)
}

// FilledCount returns the number of non-empty cells.
func (l *Layer) FilledCount() int {
	count := 0
	for _, c := range l.Cells {
		if !c.Empty() {
			count++
		}
	}
	return count
}

// Equal returns true if two layers have the same dimensions and contents.
func (l *Layer) Equal(other *Layer) bool {
	if l.Width != other.Width || l.Height != other.Height {
		return false
	}
	for i, c := range l.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}
