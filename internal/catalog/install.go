package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roomsim/internal/asset"
	"github.com/vovakirdan/roomsim/internal/behavior"
	"github.com/vovakirdan/roomsim/internal/entity"
)

// Installer registers definitions into a registry.
type Installer struct {
	logger   *log.Logger
	registry *entity.Registry
	assets   *asset.Library
}

// NewInstaller creates an installer. logger and assets may be nil.
func NewInstaller(logger *log.Logger, reg *entity.Registry, assets *asset.Library) *Installer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Installer{logger: logger, registry: reg, assets: assets}
}

// Install registers defs, parents before children regardless of their order
// in defs. A parent may also be a prototype already in the registry. A
// definition that fails does not stop the others; its descendants fail with
// it. Only the first of several definitions sharing a name is installed;
// the others fail with entity.ErrDuplicatePrototype. The returned error
// joins every failure.
func (in *Installer) Install(defs []Def) ([]*entity.Prototype, error) {
	var errs []error
	pending := make(map[string]*Def, len(defs))
	dup := make(map[int]bool)
	for i := range defs {
		name := defs[i].Name
		if _, ok := pending[name]; ok {
			err := fmt.Errorf("catalog: %w %q", entity.ErrDuplicatePrototype, name)
			in.logger.Warn("prototype not installed", "prototype", name, "error", err)
			errs = append(errs, err)
			dup[i] = true
			continue
		}
		pending[name] = &defs[i]
	}

	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(defs))
	failed := make(map[string]error)
	var installed []*entity.Prototype

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return failed[name]
		case visiting:
			cycle := append(path, name)
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycle, " -> "))
		}
		def := pending[name]
		state[name] = visiting

		var err error
		if p := def.Parent; p != "" {
			if _, ok := pending[p]; ok {
				if perr := visit(p, append(path, name)); perr != nil {
					err = fmt.Errorf("catalog: parent of %q: %w", name, perr)
				}
			}
		}
		if err == nil {
			var proto *entity.Prototype
			proto, err = in.installOne(def)
			if err == nil {
				installed = append(installed, proto)
			}
		}

		state[name] = done
		if err != nil {
			failed[name] = err
		}
		return err
	}

	for i := range defs {
		name := defs[i].Name
		if dup[i] || state[name] == done {
			continue
		}
		if err := visit(name, nil); err != nil {
			in.logger.Warn("prototype not installed", "prototype", name, "error", err)
			errs = append(errs, err)
		}
	}
	return installed, errors.Join(errs...)
}

func (in *Installer) installOne(d *Def) (*entity.Prototype, error) {
	hooks, err := behavior.Compose(d.Behaviors...)
	if err != nil {
		return nil, fmt.Errorf("catalog: %q: %w", d.Name, err)
	}

	defaults := make(entity.Props, len(d.Defaults))
	for key, lit := range d.Defaults {
		v, err := lit.Value(in.resolve)
		if err != nil {
			return nil, fmt.Errorf("catalog: %q default %q: %w", d.Name, key, err)
		}
		defaults[key] = v
	}

	p, err := in.registry.RegisterDef(entity.Definition{
		Name:     d.Name,
		Parent:   d.Parent,
		Defaults: defaults,
		Hooks:    hooks,
		Sprite:   in.sprite(d.Name, d.Sprite),
		Mask:     in.sprite(d.Name, d.Mask),
		Depth:    d.Depth,
		Visible:  d.Visible,
	})
	if err != nil {
		return nil, err
	}
	in.logger.Debug("prototype installed", "prototype", d.Name, "parent", d.Parent, "behaviors", len(d.Behaviors))
	return p, nil
}

// sprite looks up a named sprite. Missing sprites degrade to none.
func (in *Installer) sprite(proto, name string) *asset.Sprite {
	if name == "" {
		return nil
	}
	s, ok := in.assets.Sprite(name)
	if !ok {
		in.logger.Warn("sprite not in library", "prototype", proto, "sprite", name)
	}
	return s
}

func (in *Installer) resolve(name string) (any, bool) {
	if s, ok := in.assets.Sprite(name); ok {
		return s, true
	}
	if p, ok := in.registry.Lookup(name); ok {
		return p, true
	}
	return nil, false
}

// Install is a shorthand for NewInstaller(logger, reg, assets).Install(defs).
func Install(logger *log.Logger, reg *entity.Registry, assets *asset.Library, defs []Def) ([]*entity.Prototype, error) {
	return NewInstaller(logger, reg, assets).Install(defs)
}
