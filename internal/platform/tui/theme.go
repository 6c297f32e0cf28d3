package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the inspector's visual styles.
type Theme struct {
	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDPaused    lipgloss.Style

	// Panels
	Canvas lipgloss.Style
	Panel  lipgloss.Style
	Help   lipgloss.Style
	Error  lipgloss.Style

	// Entity table
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style

	// Monochrome drops entity and tile colors from the canvas.
	Monochrome bool
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDPaused:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),

		Canvas: lipgloss.NewStyle(),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true),
		TableSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.HUDTitle = lipgloss.NewStyle().Bold(true)
	theme.HUDPaused = lipgloss.NewStyle().Reverse(true)
	theme.TableSelected = lipgloss.NewStyle().Reverse(true)
	theme.Monochrome = true
	return theme
}

// tableStyles derives the bubbles table styles from the theme.
func (t Theme) tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = t.TableHeader.Padding(0, 1)
	s.Selected = t.TableSelected
	return s
}
