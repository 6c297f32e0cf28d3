package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomsim/internal/behavior"
	"github.com/vovakirdan/roomsim/internal/catalog"
	"github.com/vovakirdan/roomsim/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the prototype catalog",
	Long: `The catalog is a SQLite database of prototype definitions. Rooms loaded
by the other commands install every catalog prototype before reading
their files.

Examples:
  roomsim catalog import prototypes.yaml
  roomsim catalog list
  roomsim catalog export > prototypes.yaml
  roomsim catalog delete Enemy
  roomsim catalog behaviors`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <yaml>...",
	Short: "Import definitions from YAML files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogImport,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored definitions",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print stored definitions as YAML",
	Args:  cobra.NoArgs,
	RunE:  runCatalogExport,
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <name>...",
	Short: "Delete definitions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogDelete,
}

var catalogBehaviorsCmd = &cobra.Command{
	Use:   "behaviors",
	Short: "List behaviors definitions can attach",
	Args:  cobra.NoArgs,
	Run:   runCatalogBehaviors,
}

func init() {
	catalogCmd.AddCommand(catalogBehaviorsCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)
}

func openCatalog() (*catalog.Store, error) {
	path := config.ExpandHome(cfg.Catalog.Path)
	if path == "" {
		return nil, fmt.Errorf("no catalog path configured (use --db)")
	}
	return catalog.Open(path)
}

func runCatalogImport(_ *cobra.Command, args []string) error {
	var defs []catalog.Def
	for _, path := range args {
		fileDefs, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}
		defs = mergeDefs(defs, fileDefs)
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveAll(defs); err != nil {
		return err
	}
	logger.Info("catalog updated", "imported", len(defs), "path", cfg.Catalog.Path)
	fmt.Printf("Imported %d prototypes\n", len(defs))
	return nil
}

func runCatalogList(_ *cobra.Command, _ []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	fmt.Printf("%-20s  %-20s  %-12s  %8s  %s\n", "Name", "Parent", "Sprite", "Defaults", "Updated")
	fmt.Printf("%-20s  %-20s  %-12s  %8s  %s\n", "----", "------", "------", "--------", "-------")
	for _, e := range entries {
		parent := e.Parent
		if parent == "" {
			parent = "-"
		}
		sprite := e.Sprite
		if sprite == "" {
			sprite = "-"
		}
		fmt.Printf("%-20s  %-20s  %-12s  %8d  %s\n",
			e.Name, parent, sprite, len(e.Defaults), e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runCatalogExport(_ *cobra.Command, _ []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	defs, err := store.Defs()
	if err != nil {
		return err
	}
	data, err := catalog.Marshal(defs)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runCatalogDelete(_ *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, name := range args {
		entry, err := store.Get(name)
		if err != nil {
			return err
		}
		if entry == nil {
			logger.Warn("no such prototype", "name", name)
			continue
		}
		if err := store.Delete(name); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", name)
	}
	return nil
}

func runCatalogBehaviors(_ *cobra.Command, _ []string) {
	infos := behavior.List()

	maxLen := len("Behavior")
	for _, info := range infos {
		maxLen = max(maxLen, len(info.Name))
	}

	fmt.Println("Behaviors:")
	fmt.Println()
	for _, info := range infos {
		events := make([]string, len(info.Events))
		for i, ev := range info.Events {
			events[i] = string(ev)
		}
		fmt.Printf("  %-*s  %s\n", maxLen, info.Name, info.Summary)
		fmt.Printf("  %-*s  on: %s\n", maxLen, "", strings.Join(events, ", "))
	}
	fmt.Println()
}
