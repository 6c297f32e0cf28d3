package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomsim/internal/tiles"
)

var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Encode and decode tile streams",
	Long: `Convert between tile cell values and the run-length stream stored in
compressed tile layers.

Examples:
  roomsim tiles encode 0 0 0 0 5 6 7
  roomsim tiles decode -- -4 0 5 6 7`,
}

var tilesEncodeCmd = &cobra.Command{
	Use:   "encode <cell>...",
	Short: "Run-length encode cell values",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTilesEncode,
}

var tilesDecodeCmd = &cobra.Command{
	Use:   "decode <value>...",
	Short: "Decode a run-length stream",
	Long: `Decode a run-length stream into cells. Each cell is printed with its
tile id and transform flags. Pass "--" before the stream so negative
values are not read as flags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTilesDecode,
}

func init() {
	tilesCmd.AddCommand(tilesEncodeCmd)
	tilesCmd.AddCommand(tilesDecodeCmd)
}

func parseInts(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func runTilesEncode(_ *cobra.Command, args []string) error {
	values, err := parseInts(args)
	if err != nil {
		return err
	}
	cells := make([]tiles.Cell, len(values))
	for i, v := range values {
		if v < 0 || v > 0xFFFFFFFF {
			return fmt.Errorf("cell %d out of range: %d", i, v)
		}
		cells[i] = tiles.Cell(v)
	}

	stream, err := tiles.Encode(cells)
	if err != nil {
		return err
	}
	fmt.Println(joinInts(stream))
	return nil
}

func runTilesDecode(_ *cobra.Command, args []string) error {
	values, err := parseInts(args)
	if err != nil {
		return err
	}
	stream := make([]int32, len(values))
	for i, v := range values {
		stream[i] = int32(v)
	}

	cells, truncated := tiles.Decode(stream)
	if truncated {
		logger.Warn("stream ends inside a repeat block")
	}

	fmt.Printf("%5s  %10s  %6s  %4s  %6s\n", "Index", "Tile", "Mirror", "Flip", "Rotate")
	for i, c := range cells {
		if c.Empty() {
			fmt.Printf("%5d  %10s\n", i, "empty")
			continue
		}
		id, mirror, flip, rotate := c.Unpack()
		fmt.Printf("%5d  %10d  %6t  %4t  %6t\n", i, id, mirror, flip, rotate)
	}
	fmt.Printf("%d cells\n", len(cells))
	return nil
}

func joinInts(vs []int32) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, " ")
}
