// Package registry owns the name tables for convars and concommands and
// populates them from tagged container structs.
package registry

import (
	"sort"
	"sync"

	"devconsole/internal/descriptor"
)

// Registry maps names to convar and concommand descriptors.
// The first registration of a name wins; later ones are ignored.
type Registry struct {
	mu       sync.RWMutex
	values   map[string]*descriptor.Value
	commands map[string]*descriptor.Command
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		values:   make(map[string]*descriptor.Value),
		commands: make(map[string]*descriptor.Command),
	}
}

// RegisterValue adds v under v.Name(). It reports false, leaving the existing
// entry untouched, if the name is taken.
func (r *Registry) RegisterValue(v *descriptor.Value) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.values[v.Name()]; exists {
		return false
	}
	r.values[v.Name()] = v
	return true
}

// RegisterCommand adds c under c.Name() with the same first-wins rule.
func (r *Registry) RegisterCommand(c *descriptor.Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[c.Name()]; exists {
		return false
	}
	r.commands[c.Name()] = c
	return true
}

// Value looks up a convar by name.
func (r *Registry) Value(name string) (*descriptor.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[name]
	return v, ok
}

// Command looks up a concommand by name.
func (r *Registry) Command(name string) (*descriptor.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[name]
	return c, ok
}

// ValueNames returns all convar names in lexicographic order.
func (r *Registry) ValueNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.values)
}

// CommandNames returns all concommand names in lexicographic order.
func (r *Registry) CommandNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.commands)
}

// Len returns the number of convars and concommands.
func (r *Registry) Len() (values, commands int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values), len(r.commands)
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
