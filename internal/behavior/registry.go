// Package behavior provides the built-in hook sets that prototype
// definitions refer to by name. Behaviors register themselves in init()
// functions, so a catalog can attach them without hardcoded dependencies.
package behavior

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/roomsim/internal/entity"
)

// ErrUnknown is returned by Compose for a name that was never registered.
var ErrUnknown = errors.New("behavior: unknown behavior")

// Info describes a registered behavior.
type Info struct {
	Name    string
	Summary string
	Events  []entity.Event
}

var (
	sets      = make(map[string]entity.Hooks)
	summaries = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a named hook set.
// Typically called from an init() function.
// Panics if a behavior with the same name is already registered.
func Register(name, summary string, hooks entity.Hooks) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := sets[name]; exists {
		panic(fmt.Sprintf("behavior: %q already registered", name))
	}

	sets[name] = hooks
	summaries[name] = summary
}

// List returns information about all registered behaviors, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(sets))
	for name, hooks := range sets {
		events := make([]entity.Event, 0, len(hooks))
		for ev := range hooks {
			events = append(events, ev)
		}
		sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
		result = append(result, Info{
			Name:    name,
			Summary: summaries[name],
			Events:  events,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Exists checks if a behavior with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := sets[name]
	return ok
}

// Compose merges the named behaviors into one hook table. When several
// behaviors handle the same event their hooks run in the order named.
func Compose(names ...string) (entity.Hooks, error) {
	mu.RLock()
	defer mu.RUnlock()

	byEvent := make(map[entity.Event][]entity.Hook)
	for _, name := range names {
		hooks, ok := sets[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknown, name)
		}
		for ev, h := range hooks {
			byEvent[ev] = append(byEvent[ev], h)
		}
	}

	out := make(entity.Hooks, len(byEvent))
	for ev, hooks := range byEvent {
		out[ev] = entity.Chain(hooks...)
	}
	return out, nil
}
