// Package registry resolves plugins and reducers by name, so that definitions
// described as data (see package manifest) can refer to Go code.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/plugins"
)

// ErrNotFound is returned when no entry is registered under a name.
var ErrNotFound = errors.New("not registered")

// Registry manages the available plugins and reducers.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	plugins  map[string]dsl.Plugin
	reducers map[string]dsl.Reducer
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins:  make(map[string]dsl.Plugin),
		reducers: make(map[string]dsl.Reducer),
	}
}

// Builtin creates a registry holding the bundled plugins under their reducer
// names: "list", "setValue", "replace" and "object".
func Builtin(opts ...plugins.Option) *Registry {
	r := NewRegistry()
	r.Register("list", plugins.List(opts...))
	r.Register("setValue", plugins.SetValue())
	r.Register("replace", plugins.Replace())
	r.Register("object", plugins.Object(opts...))
	return r
}

// Register adds a plugin to the registry.
// If a plugin with the same name exists, it is overwritten.
func (r *Registry) Register(name string, p dsl.Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[name] = p
}

// RegisterReducer adds a reducer to the registry.
// If a reducer with the same name exists, it is overwritten.
func (r *Registry) RegisterReducer(name string, fn dsl.Reducer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reducers[name] = fn
}

// Plugin looks up a plugin by name.
func (r *Registry) Plugin(name string) (dsl.Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[name]
	if !ok {
		return nil, fmt.Errorf("plugin %q %w", name, ErrNotFound)
	}
	return p, nil
}

// Reducer looks up a reducer by name.
func (r *Registry) Reducer(name string) (dsl.Reducer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.reducers[name]
	if !ok {
		return nil, fmt.Errorf("reducer %q %w", name, ErrNotFound)
	}
	return fn, nil
}

// Plugins returns the names of the registered plugins, sorted.
func (r *Registry) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.plugins)
}

// Reducers returns the names of the registered reducers, sorted.
func (r *Registry) Reducers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.reducers)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
