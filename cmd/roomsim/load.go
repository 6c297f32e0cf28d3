package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomsim/internal/room"
	"github.com/vovakirdan/roomsim/internal/roomfile"
)

var flagJSON bool

var loadCmd = &cobra.Command{
	Use:   "load <file|dir>...",
	Short: "Load rooms and print a summary",
	Long: `Load one or more room files and print their layers, the number of
instances per prototype and any data-quality warnings.

Directories are walked for *.room files.

Examples:
  roomsim load level1.room
  roomsim load rooms/ --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&flagJSON, "json", false, "Print summaries as JSON")
}

// roomSummary is the printed description of a loaded room.
type roomSummary struct {
	Path       string                  `json:"path"`
	Name       string                  `json:"name"`
	Width      int                     `json:"width"`
	Height     int                     `json:"height"`
	Layers     []roomfile.LayerSummary `json:"layers"`
	Spawned    int                     `json:"spawned"`
	Skipped    int                     `json:"skipped"`
	Prototypes map[string]int          `json:"prototypes"`
	Warnings   []string                `json:"warnings,omitempty"`
}

func summarize(res *roomfile.Result) roomSummary {
	s := roomSummary{
		Path:       res.Path,
		Name:       res.Room.Name,
		Width:      res.Room.Width,
		Height:     res.Room.Height,
		Layers:     res.Layers,
		Spawned:    res.Spawned,
		Skipped:    res.Skipped,
		Prototypes: countPrototypes(res.Room),
	}
	for _, w := range res.Warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	return s
}

// countPrototypes counts live entities by their prototype's name.
func countPrototypes(r *room.Room) map[string]int {
	counts := make(map[string]int)
	for _, e := range r.Entities() {
		name := "<none>"
		if p := e.Prototype(); p != nil {
			name = p.Name()
		}
		counts[name]++
	}
	return counts
}

func runLoad(_ *cobra.Command, args []string) error {
	w, err := openWorld()
	if err != nil {
		return err
	}

	var results []*roomfile.Result
	var failed bool
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			rs, err := w.loader.LoadDir(arg)
			if err != nil {
				// Already logged per file.
				failed = true
			}
			results = append(results, rs...)
			continue
		}
		res, err := w.loader.LoadFile(arg)
		if err != nil {
			logger.Error("cannot load room", "path", arg, "error", err)
			failed = true
			continue
		}
		results = append(results, res)
	}

	summaries := make([]roomSummary, len(results))
	for i, res := range results {
		summaries[i] = summarize(res)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			return err
		}
	} else {
		for _, s := range summaries {
			printSummary(s)
		}
	}

	if failed {
		return fmt.Errorf("some rooms failed to load")
	}
	return nil
}

func printSummary(s roomSummary) {
	fmt.Printf("Room %q (%dx%d) from %s\n", s.Name, s.Width, s.Height, s.Path)
	fmt.Println()

	fmt.Printf("  %-10s  %-16s  %6s  %7s  %s\n", "Type", "Layer", "Depth", "Visible", "Count")
	fmt.Printf("  %-10s  %-16s  %6s  %7s  %s\n", "----", "-----", "-----", "-------", "-----")
	for _, l := range s.Layers {
		fmt.Printf("  %-10s  %-16s  %6d  %7t  %d\n", l.Type, l.Name, l.Depth, l.Visible, l.Count)
	}
	fmt.Println()

	printCounts(s.Prototypes)
	fmt.Printf("  spawned %d, skipped %d\n", s.Spawned, s.Skipped)

	if len(s.Warnings) > 0 {
		fmt.Println()
		fmt.Printf("Warnings (%d):\n", len(s.Warnings))
		for _, w := range s.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	fmt.Println()
}

// printCounts prints prototype counts sorted by name.
func printCounts(counts map[string]int) {
	names := make([]string, 0, len(counts))
	maxLen := len("Prototype")
	for name := range counts {
		names = append(names, name)
		maxLen = max(maxLen, len(name))
	}
	sort.Strings(names)

	fmt.Printf("  %-*s  %s\n", maxLen, "Prototype", "Count")
	fmt.Printf("  %-*s  %s\n", maxLen, "---------", "-----")
	for _, name := range names {
		fmt.Printf("  %-*s  %d\n", maxLen, name, counts[name])
	}
}
