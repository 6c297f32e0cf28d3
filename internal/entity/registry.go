package entity

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/roomsim/internal/asset"
)

var (
	// ErrDuplicatePrototype is returned when a name is registered twice.
	ErrDuplicatePrototype = errors.New("duplicate prototype")

	// ErrUnknownPrototype is returned when a name is not registered.
	ErrUnknownPrototype = errors.New("unknown prototype")
)

// DefaultMaxChainDepth bounds prototype chain walks.
const DefaultMaxChainDepth = 64

// Definition describes a prototype to register.
type Definition struct {
	Name     string
	Parent   string // Empty for a root prototype
	Defaults Props
	Hooks    Hooks

	// Optional fields inherit from the parent when unset.
	Sprite  *asset.Sprite
	Mask    *asset.Sprite
	Depth   *float64
	Visible *bool
}

// Registry holds named prototypes. Registration happens at load time; after
// that the registry is read-only and may be shared by any number of rooms.
type Registry struct {
	mu       sync.RWMutex
	protos   map[string]*Prototype
	maxChain int
}

// NewRegistry creates an empty registry. maxChain bounds chain walks;
// values <= 0 select DefaultMaxChainDepth.
func NewRegistry(maxChain int) *Registry {
	if maxChain <= 0 {
		maxChain = DefaultMaxChainDepth
	}
	return &Registry{
		protos:   make(map[string]*Prototype),
		maxChain: maxChain,
	}
}

// Register adds a prototype. The parent, if named, must already be
// registered; the new prototype's effective defaults are the parent's
// effective defaults with defaults applied on top.
func (r *Registry) Register(name, parent string, defaults Props, hooks Hooks) (*Prototype, error) {
	return r.RegisterDef(Definition{
		Name:     name,
		Parent:   parent,
		Defaults: defaults,
		Hooks:    hooks,
	})
}

// RegisterDef adds a prototype from a full definition.
func (r *Registry) RegisterDef(def Definition) (*Prototype, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.protos[def.Name]; exists {
		return nil, fmt.Errorf("registry: %w %q", ErrDuplicatePrototype, def.Name)
	}

	p := &Prototype{
		name:    def.Name,
		own:     def.Defaults.Clone(),
		hooks:   make(Hooks, len(def.Hooks)),
		sprite:  def.Sprite,
		mask:    def.Mask,
		visible: true,
		limit:   r.maxChain,
	}
	for ev, h := range def.Hooks {
		p.hooks[ev] = h
	}

	if def.Parent != "" {
		parent, ok := r.protos[def.Parent]
		if !ok {
			return nil, fmt.Errorf("registry: parent of %q: %w %q", def.Name, ErrUnknownPrototype, def.Parent)
		}
		if parent.level+1 > r.maxChain {
			return nil, fmt.Errorf("registry: chain of %q exceeds %d levels", def.Name, r.maxChain)
		}
		p.parent = parent
		p.level = parent.level + 1
		p.defaults = parent.defaults.Overlay(p.own)
		if p.sprite == nil {
			p.sprite = parent.sprite
		}
		if p.mask == nil {
			p.mask = parent.mask
		}
		p.depth = parent.depth
		p.visible = parent.visible
	} else {
		p.defaults = p.own.Clone()
	}

	if def.Depth != nil {
		p.depth = *def.Depth
	}
	if def.Visible != nil {
		p.visible = *def.Visible
	}

	r.protos[def.Name] = p
	return p, nil
}

// Lookup returns the prototype registered under name.
func (r *Registry) Lookup(name string) (*Prototype, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.protos[name]
	return p, ok
}

// MustLookup returns the named prototype or panics. Intended for hooks and
// tests that register their own prototypes.
func (r *Registry) MustLookup(name string) *Prototype {
	p, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("registry: %v %q", ErrUnknownPrototype, name))
	}
	return p
}

// Exists checks if a prototype with the given name is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.protos))
	for name := range r.protos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered prototypes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.protos)
}

// Instantiate creates a detached entity from the named prototype.
func (r *Registry) Instantiate(name string) (*Entity, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownPrototype, name)
	}
	return newEntity(p), nil
}

// Extends reports whether e was spawned from proto or one of its descendants.
func (r *Registry) Extends(e *Entity, proto *Prototype) bool {
	return e.Extends(proto)
}
