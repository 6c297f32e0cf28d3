package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/roomsim/internal/asset"
	"github.com/vovakirdan/roomsim/internal/catalog"
	"github.com/vovakirdan/roomsim/internal/config"
	"github.com/vovakirdan/roomsim/internal/entity"
	"github.com/vovakirdan/roomsim/internal/platform/tui"
	"github.com/vovakirdan/roomsim/internal/room"
	"github.com/vovakirdan/roomsim/internal/roomfile"
)

// world is the shared, read-only state rooms are built from.
type world struct {
	assets   *asset.Library
	registry *entity.Registry
	loader   *roomfile.Loader
}

// openWorld loads the asset library and installs prototypes from the
// catalog database and the --defs files. Definitions from files replace
// catalog entries with the same name.
func openWorld() (*world, error) {
	assets := asset.NewLibrary()
	if cfg.Assets.Path != "" {
		lib, err := asset.LoadFile(config.ExpandHome(cfg.Assets.Path))
		if err != nil {
			return nil, err
		}
		assets = lib
	}

	defs, err := catalogDefs()
	if err != nil {
		return nil, err
	}
	for _, path := range flagDefs {
		fileDefs, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		defs = mergeDefs(defs, fileDefs)
	}

	reg := entity.NewRegistry(cfg.Simulation.MaxChainDepth)
	installed, err := catalog.Install(logger, reg, assets, defs)
	if err != nil {
		// Rooms still load; instances of missing prototypes are skipped.
		logger.Warn("some prototypes were not installed", "error", err)
	}
	logger.Debug("world ready", "sprites", assets.Len(), "prototypes", len(installed))

	return &world{
		assets:   assets,
		registry: reg,
		loader:   roomfile.NewLoader(logger, reg, assets),
	}, nil
}

// catalogDefs reads the catalog database if it exists. A missing database
// is not an error: the catalog is optional.
func catalogDefs() ([]catalog.Def, error) {
	path := config.ExpandHome(cfg.Catalog.Path)
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	store, err := catalog.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Defs()
}

// mergeDefs appends extra to base, replacing base entries of the same name.
func mergeDefs(base, extra []catalog.Def) []catalog.Def {
	index := make(map[string]int, len(base))
	for i, d := range base {
		index[d.Name] = i
	}
	for _, d := range extra {
		if i, ok := index[d.Name]; ok {
			base[i] = d
			continue
		}
		index[d.Name] = len(base)
		base = append(base, d)
	}
	return base
}

// factory returns a room factory that reloads path on every call, so each
// caller gets an independent room.
func (w *world) factory(path string) tui.RoomFactory {
	return func() (*room.Room, error) {
		res, err := w.loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return res.Room, nil
	}
}

// requireRoom checks up front that path loads, reporting warnings.
func (w *world) requireRoom(path string) (*roomfile.Result, error) {
	res, err := w.loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load room: %w", err)
	}
	return res, nil
}
