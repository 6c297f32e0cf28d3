package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/roomsim/internal/asset"
	"github.com/vovakirdan/roomsim/internal/core"
	"github.com/vovakirdan/roomsim/internal/entity"
	"github.com/vovakirdan/roomsim/internal/room"
	"github.com/vovakirdan/roomsim/internal/tiles"
)

var block = &asset.Sprite{Name: "block", Width: 8, Height: 8, Hitbox: core.NewRect(0, 0, 8, 8)}

// testFactory builds an 80x24 room with a moving Ball and a static Wall.
func testFactory(t *testing.T) RoomFactory {
	t.Helper()
	reg := entity.NewRegistry(0)
	move := entity.Hooks{entity.EventStep: func(_ entity.Host, e *entity.Entity) {
		e.SetX(e.X() + e.HSpeed())
	}}
	ball, err := reg.RegisterDef(entity.Definition{Name: "Ball", Hooks: move, Sprite: block})
	if err != nil {
		t.Fatal(err)
	}
	wall, err := reg.RegisterDef(entity.Definition{Name: "Wall", Sprite: block})
	if err != nil {
		t.Fatal(err)
	}

	return func() (*room.Room, error) {
		r := room.New(reg, room.WithSize("test", 80, 24))
		b := r.Spawn(0, 0, 0, ball)
		e, _ := r.Get(b)
		e.SetHSpeed(8)
		r.Spawn(40, 16, 0, wall)
		r.Commit()
		return r, nil
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(testFactory(t), Options{Width: 60, Height: 26})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	if m.Screen().Width() != 60 || m.Screen().Height() != 24 {
		t.Errorf("canvas = %dx%d, expected 60x24 below the HUD", m.Screen().Width(), m.Screen().Height())
	}
	if m.title != "test" {
		t.Errorf("title = %q, expected the room name", m.title)
	}

	// The 80x24 room fits a 60x24 canvas at 80/60 units per column.
	if got := m.Screen().Get(0, 0); got != 'B' {
		t.Errorf("cell (0, 0) = %q, expected the ball", got)
	}
	x, y := m.viewport.Cell(core.V(40, 16))
	if got := m.Screen().Get(x, y); got != 'W' {
		t.Errorf("cell (%d, %d) = %q, expected the wall", x, y, got)
	}
}

func TestNewModelFactoryError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewModel(func() (*room.Room, error) { return nil, boom }, Options{})
	if !errors.Is(err, boom) {
		t.Errorf("NewModel() error = %v, expected boom", err)
	}
}

func TestTickSteps(t *testing.T) {
	m, _ := NewModel(testFactory(t), Options{Width: 60, Height: 26})

	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	if m.Room().Frame() != 2 {
		t.Errorf("Frame() = %d, expected 2", m.Room().Frame())
	}

	m = update(t, m, keyMsg("p"))
	if !m.Paused() {
		t.Fatal("p should pause")
	}
	m = update(t, m, TickMsg(time.Now()))
	if m.Room().Frame() != 2 {
		t.Errorf("Frame() = %d, expected no stepping while paused", m.Room().Frame())
	}

	m = update(t, m, keyMsg("n"))
	if m.Room().Frame() != 3 {
		t.Errorf("Frame() = %d, expected a single step", m.Room().Frame())
	}
}

func TestReload(t *testing.T) {
	m, _ := NewModel(testFactory(t), Options{Width: 60, Height: 26})
	first := m.Room()
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, keyMsg("r"))
	if m.Room() == first || m.Room().Frame() != 0 {
		t.Error("r should replace the room with a fresh one")
	}
	if m.Room().StoreID() == first.StoreID() {
		t.Error("a reloaded room should have its own store")
	}
}

func TestSpeedKeys(t *testing.T) {
	m, _ := NewModel(testFactory(t), Options{Width: 60, Height: 26, TickInterval: 40 * time.Millisecond})

	m = update(t, m, keyMsg("+"))
	if m.interval != 20*time.Millisecond {
		t.Errorf("interval = %v, expected 20ms", m.interval)
	}
	for i := 0; i < 10; i++ {
		m = update(t, m, keyMsg("-"))
	}
	if m.interval != maxTickInterval {
		t.Errorf("interval = %v, expected clamped to %v", m.interval, maxTickInterval)
	}
}

func TestResizeShowsTable(t *testing.T) {
	m, _ := NewModel(testFactory(t), Options{Width: 60, Height: 26})
	if m.wide {
		t.Fatal("narrow terminal should hide the entity list")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 124, Height: 30})
	if !m.wide || m.Screen().Width() != 124-tableWidth {
		t.Errorf("wide = %v, canvas width = %d, expected list shown", m.wide, m.Screen().Width())
	}
	if rows := m.table.Rows(); len(rows) != 2 || rows[0][1] != "Ball" {
		t.Errorf("table rows = %v, expected Ball and Wall", rows)
	}

	view := m.View()
	if !strings.Contains(view, "entities 2") || !strings.Contains(view, "Wall") {
		t.Errorf("View() missing HUD or list:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	m, _ := NewModel(testFactory(t), Options{})
	next, cmd := m.Update(keyMsg("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestDrawRoomTiles(t *testing.T) {
	reg := entity.NewRegistry(0)
	r := room.New(reg, room.WithSize("tiles", 32, 32))
	grid := tiles.NewLayer(2, 2)
	grid.Set(1, 0, tiles.Pack(3, false, false, false))
	r.AddTileLayer(room.TileLayer{
		LayerInfo: room.LayerInfo{Name: "ground", Visible: true},
		Grid:      grid,
		Tileset:   &asset.Tileset{Name: "ts", TileWidth: 16, TileHeight: 16},
	})

	s := core.NewScreen(4, 4)
	DrawRoom(s, r, core.Viewport{CellW: 8, CellH: 8})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			expected := ' '
			if x >= 2 && y < 2 {
				expected = tileGlyph
			}
			if got := s.Get(x, y); got != expected {
				t.Errorf("cell (%d, %d) = %q, expected %q", x, y, got, expected)
			}
		}
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name     string
		expected rune
	}{
		{"Player", 'P'},
		{"éclair", 'é'},
		{"", unnamedGlyph},
		{"\x00x", unnamedGlyph},
	}
	for _, tt := range tests {
		if got := glyph(tt.name); got != tt.expected {
			t.Errorf("glyph(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestMonochromeView(t *testing.T) {
	theme := MonochromeTheme()
	if !theme.Monochrome {
		t.Fatal("MonochromeTheme().Monochrome = false, expected true")
	}
	m, err := NewModel(testFactory(t), Options{Width: 60, Height: 26, Theme: &theme})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	if !strings.Contains(m.View(), m.Screen().Row(0)) {
		t.Errorf("View() does not contain the first canvas row %q", m.Screen().Row(0))
	}
}
