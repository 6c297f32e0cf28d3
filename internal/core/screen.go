package core

import (
	"math"
	"strings"
)

// Cell is one character of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a 2D character buffer. The inspector draws room contents into it
// and the terminal layer turns it into styled text.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	copyW := min(s.width, width)
	copyH := min(s.height, height)

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	s.Fill(' ')
}

// Fill fills the entire screen with the given rune.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: r}
		}
	}
}

// Set places an uncolored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetCell places a cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes colored text starting at (x, y).
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, Color: c})
		i++
	}
}

// FillCells fills the cell span [x0, x1) x [y0, y1).
func (s *Screen) FillCells(x0, y0, x1, y1 int, c Cell) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.width), min(y1, s.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.cells[y][x] = c
		}
	}
}

// DrawBox draws a box outline using box-drawing characters around the cell
// span [x0, x1) x [y0, y1).
func (s *Screen) DrawBox(x0, y0, x1, y1 int) {
	right, bottom := x1-1, y1-1
	s.Set(x0, y0, '┌')
	s.Set(right, y0, '┐')
	s.Set(x0, bottom, '└')
	s.Set(right, bottom, '┘')

	for x := x0 + 1; x < right; x++ {
		s.Set(x, y0, '─')
		s.Set(x, bottom, '─')
	}
	for y := y0 + 1; y < bottom; y++ {
		s.Set(x0, y, '│')
		s.Set(right, y, '│')
	}
}

// String converts the screen buffer to plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Viewport maps room coordinates onto screen cells. Origin is the room
// position shown in the top-left cell; each cell covers CellW x CellH room
// units.
type Viewport struct {
	Origin Vec
	CellW  float64
	CellH  float64
}

// FitViewport returns a viewport that shows the whole area in a w x h cell
// grid, keeping at least one room unit per cell.
func FitViewport(area Rect, w, h int) Viewport {
	vp := Viewport{Origin: Vec{X: area.X, Y: area.Y}, CellW: 1, CellH: 1}
	if w > 0 && area.W > 0 {
		vp.CellW = math.Max(area.W/float64(w), 1)
	}
	if h > 0 && area.H > 0 {
		vp.CellH = math.Max(area.H/float64(h), 1)
	}
	return vp
}

// Cell returns the cell containing the room point p.
func (vp Viewport) Cell(p Vec) (x, y int) {
	return int(math.Floor((p.X - vp.Origin.X) / vp.CellW)),
		int(math.Floor((p.Y - vp.Origin.Y) / vp.CellH))
}

// Span returns the cells covered by r as [x0, x1) x [y0, y1). A non-empty
// rectangle always covers at least the cell containing its corner.
func (vp Viewport) Span(r Rect) (x0, y0, x1, y1 int) {
	x0, y0 = vp.Cell(Vec{X: r.X, Y: r.Y})
	x1 = int(math.Ceil((r.Right() - vp.Origin.X) / vp.CellW))
	y1 = int(math.Ceil((r.Bottom() - vp.Origin.Y) / vp.CellH))
	return x0, y0, max(x1, x0+1), max(y1, y0+1)
}

// Pan moves the viewport by whole cells.
func (vp Viewport) Pan(dx, dy int) Viewport {
	vp.Origin.X += float64(dx) * vp.CellW
	vp.Origin.Y += float64(dy) * vp.CellH
	return vp
}
