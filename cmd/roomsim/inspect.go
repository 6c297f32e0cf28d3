package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/roomsim/internal/platform/tui"
)

var (
	flagPaused bool
	flagMono   bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspect a room in the terminal",
	Long: `Open the interactive inspector on a room. The room is stepped at the
configured tick rate and drawn with one letter per entity.

Controls:
  Space/P    - Pause
  N          - Step once while paused
  +/-        - Faster / slower
  Arrows     - Pan
  F          - Fit the room to the screen
  R          - Reload the room file
  T          - Toggle the entity list
  Q/Ctrl+C   - Quit

Examples:
  roomsim inspect level1.room
  roomsim inspect level1.room --paused
  roomsim inspect level1.room --mono`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagPaused, "paused", false, "Start paused")
	inspectCmd.Flags().BoolVar(&flagMono, "mono", false, "Draw without colors")
}

func runInspect(_ *cobra.Command, args []string) error {
	w, err := openWorld()
	if err != nil {
		return err
	}

	// Get terminal size, falling back to the configured viewport
	width, height := cfg.Inspector.Width, cfg.Inspector.Height
	if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = tw, th
	}

	opts := tui.Options{
		Width:        width,
		Height:       height,
		TickInterval: cfg.Simulation.TickInterval(),
		Paused:       flagPaused,
	}
	if flagMono {
		theme := tui.MonochromeTheme()
		opts.Theme = &theme
	}
	return tui.Run(w.factory(args[0]), opts)
}
