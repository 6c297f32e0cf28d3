package tui

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roomsim/internal/core"
	"github.com/vovakirdan/roomsim/internal/entity"
	"github.com/vovakirdan/roomsim/internal/room"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Glyphs used when drawing a room.
const (
	tileGlyph    = '░'
	unnamedGlyph = '?'
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// DrawRoom clears s and draws the room's visible tile layers and entities
// through vp. Tile layers are drawn deepest first; entities are drawn by the
// room's draw phase, so their draw hooks run and higher depths end up below
// lower ones.
func DrawRoom(s *core.Screen, r *room.Room, vp core.Viewport) {
	s.Clear()
	drawTiles(s, r, vp)
	r.Draw(func(e *entity.Entity) {
		name := ""
		if p := e.Prototype(); p != nil {
			name = p.Name()
		}
		x0, y0, x1, y1 := vp.Span(e.BBox())
		s.FillCells(x0, y0, x1, y1, core.Cell{Rune: glyph(name), Color: core.ColorFor(name)})
	})
}

func drawTiles(s *core.Screen, r *room.Room, vp core.Viewport) {
	layers := make([]*room.TileLayer, 0, len(r.TileLayers))
	for i := range r.TileLayers {
		l := &r.TileLayers[i]
		// Without a tileset the tile size is unknown.
		if !l.Visible || l.Grid == nil || l.Tileset == nil {
			continue
		}
		layers = append(layers, l)
	}
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Depth > layers[j].Depth })

	fill := core.Cell{Rune: tileGlyph, Color: core.ColorGray}
	for _, l := range layers {
		tw, th := float64(l.Tileset.TileWidth), float64(l.Tileset.TileHeight)
		if tw <= 0 || th <= 0 {
			continue
		}
		for y := 0; y < l.Grid.Height; y++ {
			for x := 0; x < l.Grid.Width; x++ {
				if l.Grid.Get(x, y).Empty() {
					continue
				}
				x0, y0, x1, y1 := vp.Span(core.NewRect(float64(x)*tw, float64(y)*th, tw, th))
				s.FillCells(x0, y0, x1, y1, fill)
			}
		}
	}
}

// glyph returns the character an entity of the named prototype is drawn with.
func glyph(name string) rune {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || !unicode.IsPrint(r) {
		return unnamedGlyph
	}
	return r
}
