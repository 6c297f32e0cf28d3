// roomsim loads, steps and inspects rooms of entities.
//
// Usage:
//
//	roomsim load <file|dir>...    - Load rooms and print a summary
//	roomsim run <file>            - Step a room and print entity counts
//	roomsim inspect <file>        - Inspect a room in the terminal
//	roomsim serve <file>          - Serve the inspector over SSH
//	roomsim catalog ...           - Manage the prototype catalog
//	roomsim tiles ...             - Encode and decode tile streams
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.roomsim/configs, ./configs)
//	--log-level <level> - debug, info, warn or error
//	--assets <path>     - Sprite and tileset library YAML
//	--defs <path>       - Prototype definition YAML, repeatable
//	--db <path>         - Prototype catalog database
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomsim/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagAssets   string
	flagDefs     []string
	flagDBPath   string

	// Set by the root command before any subcommand runs.
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roomsim",
	Short: "roomsim - load, step and inspect rooms of entities",
	Long: `roomsim loads binary room files into an entity store, runs the
step and draw phases over them, and shows the result.

Prototypes come from definition YAML files (--defs) and from the SQLite
catalog (--db), which 'roomsim catalog import' fills.

Available commands:
  load     - Load rooms and print a summary
  run      - Step a room and print entity counts
  inspect  - Interactive room inspector
  serve    - Inspector over SSH
  catalog  - Manage the prototype catalog
  tiles    - Encode and decode tile streams

Examples:
  roomsim load level1.room --defs prototypes.yaml
  roomsim run level1.room --steps 600 --profile cpu
  roomsim inspect level1.room
  roomsim serve level1.room --ssh :2222
  roomsim catalog import prototypes.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Path to asset library YAML (overrides config)")
	rootCmd.PersistentFlags().StringArrayVar(&flagDefs, "defs", nil, "Path to prototype definition YAML (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to prototype catalog database (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(tilesCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagAssets != "" {
		cfg.Assets.Path = flagAssets
	}
	if flagDBPath != "" {
		cfg.Catalog.Path = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Logging.ParseLevel()
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: cfg.Logging.Timestamps,
		Prefix:          cfg.Logging.Prefix,
		Level:           level,
	})
	return nil
}
