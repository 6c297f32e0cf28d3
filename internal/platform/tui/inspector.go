package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roomsim/internal/core"
	"github.com/vovakirdan/roomsim/internal/room"
)

// Inspector layout constants
const (
	minWidthForTable = 80 // Minimum width to show the entity list
	tableWidth       = 44 // Width of the entity list panel, borders included
	chromeHeight     = 2  // HUD line and help line

	minTickInterval = time.Millisecond
	maxTickInterval = time.Second
)

// RoomFactory builds a fresh room. The inspector calls it on start and on
// every reload, so each call must return an independent room.
type RoomFactory func() (*room.Room, error)

// Options configures an inspector.
type Options struct {
	Title        string
	Width        int
	Height       int
	TickInterval time.Duration
	Paused       bool
	Theme        *Theme
}

// Model is the Bubble Tea model of the room inspector. It steps a room on
// every tick and draws it into a character screen.
type Model struct {
	factory  RoomFactory
	room     *room.Room
	err      error
	title    string
	screen   *core.Screen
	viewport core.Viewport
	table    table.Model
	help     help.Model
	keys     KeyMap
	theme    Theme
	interval time.Duration
	paused   bool
	wide     bool
	width    int
	height   int
	quitting bool
}

// NewModel creates an inspector over the room built by factory.
func NewModel(factory RoomFactory, opts Options) (Model, error) {
	r, err := factory()
	if err != nil {
		return Model{}, err
	}

	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / 30
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	m := Model{
		factory:  factory,
		room:     r,
		title:    opts.Title,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		theme:    theme,
		interval: opts.TickInterval,
		paused:   opts.Paused,
		screen:   core.NewScreen(0, 0),
	}
	if m.title == "" {
		m.title = r.Name
	}
	m.resize(opts.Width, opts.Height)
	m.viewport = core.FitViewport(r.Bounds(), m.screen.Width(), m.screen.Height())
	m.redraw()
	return m, nil
}

// resize lays out the canvas and the entity list for a w x h terminal.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.wide = w >= minWidthForTable
	canvasW := w
	if m.wide {
		canvasW -= tableWidth
	}
	canvasH := max(h-chromeHeight, 1)
	m.screen.Resize(max(canvasW, 1), canvasH)
	m.help.Width = w
	m.table = m.createTable(canvasH - 2)
}

// createTable creates the entity list with the given height.
func (m *Model) createTable(height int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Prototype", Width: 12},
		{Title: "X", Width: 7},
		{Title: "Y", Width: 7},
		{Title: "Depth", Width: 5},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-1, 1)),
	)
	t.SetStyles(m.theme.tableStyles())
	return t
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.viewport = core.FitViewport(m.room.Bounds(), m.screen.Width(), m.screen.Height())
		m.redraw()
		return m, nil

	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.step()
		}

	case key.Matches(msg, m.keys.Faster):
		m.interval = max(m.interval/2, minTickInterval)

	case key.Matches(msg, m.keys.Slower):
		m.interval = min(m.interval*2, maxTickInterval)

	case key.Matches(msg, m.keys.PanUp):
		m.pan(0, -1)
	case key.Matches(msg, m.keys.PanDown):
		m.pan(0, 1)
	case key.Matches(msg, m.keys.PanLeft):
		m.pan(-1, 0)
	case key.Matches(msg, m.keys.PanRight):
		m.pan(1, 0)

	case key.Matches(msg, m.keys.Fit):
		m.viewport = core.FitViewport(m.room.Bounds(), m.screen.Width(), m.screen.Height())
		m.redraw()

	case key.Matches(msg, m.keys.Reset):
		m.reload()

	case key.Matches(msg, m.keys.Table):
		m.wide = !m.wide
		canvasW := m.width
		if m.wide {
			canvasW -= tableWidth
		}
		m.screen.Resize(max(canvasW, 1), m.screen.Height())
		m.redraw()

	case key.Matches(msg, m.keys.TableUp), key.Matches(msg, m.keys.TableDown):
		m.table, cmd = m.table.Update(tea.KeyMsg{Type: tableKey(msg, m.keys)})

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, cmd
}

// tableKey translates the list bindings to the arrow keys the table expects,
// since the arrows themselves pan the canvas.
func tableKey(msg tea.KeyMsg, keys KeyMap) tea.KeyType {
	if key.Matches(msg, keys.TableUp) {
		return tea.KeyUp
	}
	return tea.KeyDown
}

func (m *Model) step() {
	m.room.Step()
	m.redraw()
}

func (m *Model) pan(dx, dy int) {
	m.viewport = m.viewport.Pan(dx, dy)
	m.redraw()
}

// reload replaces the room with a fresh one from the factory. On failure
// the old room stays and the error is shown.
func (m *Model) reload() {
	r, err := m.factory()
	m.err = err
	if err != nil {
		return
	}
	m.room = r
	m.viewport = core.FitViewport(r.Bounds(), m.screen.Width(), m.screen.Height())
	m.redraw()
}

func (m *Model) redraw() {
	DrawRoom(m.screen, m.room, m.viewport)
	m.updateTableRows()
}

// updateTableRows lists the live entities by ID.
func (m *Model) updateTableRows() {
	ents := m.room.Entities()
	sort.Slice(ents, func(i, j int) bool { return ents[i].ID() < ents[j].ID() })

	rows := make([]table.Row, len(ents))
	for i, e := range ents {
		name := ""
		if p := e.Prototype(); p != nil {
			name = p.Name()
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.ID()),
			name,
			fmt.Sprintf("%.1f", e.X()),
			fmt.Sprintf("%.1f", e.Y()),
			fmt.Sprintf("%g", e.Depth()),
		}
	}
	m.table.SetRows(rows)
}

// View renders the inspector.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.hud())
	b.WriteString("\n")

	body := m.screen.String()
	if !m.theme.Monochrome {
		body = RenderScreen(m.screen)
	}
	canvas := m.theme.Canvas.Render(body)
	if m.wide {
		panel := m.theme.Panel.Width(tableWidth - 2).Render(m.table.View())
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel)
	}
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// hud renders the status line.
func (m Model) hud() string {
	sep := m.theme.HUDSeparator.Render(" │ ")
	adds, dels := m.room.Pending()
	parts := []string{
		m.theme.HUDTitle.Render(m.title),
		m.theme.HUDValue.Render(fmt.Sprintf("frame %d", m.room.Frame())),
		m.theme.HUDValue.Render(fmt.Sprintf("entities %d", m.room.Len())),
		m.theme.HUDValue.Render(fmt.Sprintf("pending +%d/-%d", adds, dels)),
		m.theme.HUDValue.Render(fmt.Sprintf("tick %s", m.interval)),
	}
	if m.paused {
		parts = append(parts, m.theme.HUDPaused.Render("PAUSED"))
	}
	if m.err != nil {
		parts = append(parts, m.theme.Error.Render(m.err.Error()))
	}
	return strings.Join(parts, sep)
}

// Room returns the room being inspected.
func (m Model) Room() *room.Room {
	return m.room
}

// Paused reports whether stepping is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Screen returns the canvas the room is drawn into.
func (m Model) Screen() *core.Screen {
	return m.screen
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the inspector in the current terminal.
func Run(factory RoomFactory, opts Options) error {
	model, err := NewModel(factory, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
