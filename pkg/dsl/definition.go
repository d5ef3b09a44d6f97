package dsl

import (
	"maps"
	"slices"
	"sort"

	"github.com/aretw0/compact/pkg/domain"
)

// Reducer computes the next value of a slice from its current value and the action arguments.
// It must be pure and must return its input unchanged when it has nothing to do.
type Reducer func(state any, args ...any) any

// ActionFunc is a custom action creator. It receives the creator node it is
// registered on, so it can delegate to that node's reducers, and returns the
// action to dispatch.
type ActionFunc func(c domain.Creator, args ...any) (domain.Action, error)

// Plugin extends a definition, typically with a bundle of reducers.
type Plugin func(Definition) Definition

// Kind tells how the value of a slice is shaped.
type Kind int

const (
	KindScalar     Kind = iota // Any value; no children.
	KindComposite              // An Object with one key per combined field.
	KindCollection             // A List of item values addressed by key.
)

func (k Kind) String() string {
	switch k {
	case KindComposite:
		return "composite"
	case KindCollection:
		return "collection"
	default:
		return "scalar"
	}
}

// Field is a named child slice of a composite definition.
type Field struct {
	Name string
	Def  Definition
}

// Named pairs a name with a definition for Combine and CombineWith.
func Named(name string, def Definition) Field {
	return Field{Name: name, Def: def}
}

// Definition describes one slice of state. The zero value is a scalar
// definition with no default and no reducers.
type Definition struct {
	def        any
	hasDefault bool
	reducers   map[string]Reducer
	actions    map[string]ActionFunc
	fields     []Field
	list       *ListSpec
}

// New creates a scalar definition without a default value.
// Its value is always supplied by a parent or by a reducer.
func New() Definition {
	return Definition{}
}

// Value creates a scalar definition with the given default value.
func Value(v any) Definition {
	return Definition{def: v, hasDefault: true}
}

// Combine creates a composite definition whose default is an Object holding
// the default of every field.
func Combine(fields ...Field) Definition {
	return Value(map[string]any{}).CombineWith(fields...)
}

// Default returns a copy of d with v as its default value.
func (d Definition) Default(v any) Definition {
	d.def = v
	d.hasDefault = true
	return d
}

// Reducer returns a copy of d with fn registered under name.
// A reducer already registered under name is replaced.
func (d Definition) Reducer(name string, fn Reducer) Definition {
	return d.Reducers(map[string]Reducer{name: fn})
}

// Reducers returns a copy of d with all reducers of rs layered on top of the existing ones.
func (d Definition) Reducers(rs map[string]Reducer) Definition {
	next := make(map[string]Reducer, len(d.reducers)+len(rs))
	maps.Copy(next, d.reducers)
	maps.Copy(next, rs)
	d.reducers = next
	return d
}

// ActionCreator returns a copy of d with fn registered as a custom action creator.
func (d Definition) ActionCreator(name string, fn ActionFunc) Definition {
	return d.ActionCreators(map[string]ActionFunc{name: fn})
}

// ActionCreators returns a copy of d with all action creators of as layered on top of the existing ones.
func (d Definition) ActionCreators(as map[string]ActionFunc) Definition {
	next := make(map[string]ActionFunc, len(d.actions)+len(as))
	maps.Copy(next, d.actions)
	maps.Copy(next, as)
	d.actions = next
	return d
}

// Slice returns a copy of d with child combined under name.
func (d Definition) Slice(name string, child Definition) Definition {
	return d.CombineWith(Named(name, child))
}

// CombineWith returns a copy of d with the given fields combined into it.
// A field redefining an existing name keeps the original position.
func (d Definition) CombineWith(fields ...Field) Definition {
	next := slices.Clone(d.fields)
	for _, f := range fields {
		if i := slices.IndexFunc(next, func(g Field) bool { return g.Name == f.Name }); i >= 0 {
			next[i] = f
			continue
		}
		next = append(next, f)
	}
	d.fields = next
	return d
}

// Use applies the plugins to d in order and returns the result.
func (d Definition) Use(plugins ...Plugin) Definition {
	for _, p := range plugins {
		d = p(d)
	}
	return d
}

// Kind reports how the value of d is shaped.
func (d Definition) Kind() Kind {
	switch {
	case d.list != nil:
		return KindCollection
	case len(d.fields) > 0:
		return KindComposite
	default:
		return KindScalar
	}
}

// DefaultValue returns the default value of d and whether one was set.
func (d Definition) DefaultValue() (any, bool) {
	return d.def, d.hasDefault
}

// LookupReducer returns the reducer registered under name.
func (d Definition) LookupReducer(name string) (Reducer, bool) {
	fn, ok := d.reducers[name]
	return fn, ok
}

// LookupActionCreator returns the custom action creator registered under name.
func (d Definition) LookupActionCreator(name string) (ActionFunc, bool) {
	fn, ok := d.actions[name]
	return fn, ok
}

// ReducerNames returns the reducer names of d, sorted.
func (d Definition) ReducerNames() []string {
	return sortedKeys(d.reducers)
}

// ActionCreatorNames returns the custom action creator names of d, sorted.
func (d Definition) ActionCreatorNames() []string {
	return sortedKeys(d.actions)
}

// Fields returns the combined children of d in declaration order.
func (d Definition) Fields() []Field {
	return slices.Clone(d.fields)
}

// Field returns the combined child called name.
func (d Definition) Field(name string) (Definition, bool) {
	for _, f := range d.fields {
		if f.Name == name {
			return f.Def, true
		}
	}
	return Definition{}, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
