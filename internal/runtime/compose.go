package runtime

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/value"
)

const (
	// typePrefix starts every dispatch key.
	typePrefix = "actions"
	// typeDelimiter separates the path segments of a dispatch key.
	typeDelimiter = "/"
)

// call carries one action through the nested steps.
type call struct {
	action string
	args   []any
	ctx    domain.Context
}

// step rewrites the slice it is given for the action in c.
type step func(c *call, state any) any

// lens wraps a step operating on a child slice into one operating on its parent.
type lens func(inner step) step

func identity(inner step) step { return inner }

func (l lens) then(next lens) lens {
	return func(inner step) step { return l(next(inner)) }
}

// node is the compiled template of one definition. It is built once and
// shared by every Actions value pointing at it.
type node struct {
	def      dsl.Definition
	path     []string
	types    map[string]string
	children map[string]*node
	item     *node
	spec     dsl.ListSpec
	slot     string
}

func (n *node) where() string {
	if len(n.path) == 0 {
		return "<root>"
	}
	return strings.Join(n.path, ".")
}

// compile registers the reducers of d, reachable through focus, and recurses
// into its fields and list items. depth counts the enclosing lists.
func (e *Engine) compile(d dsl.Definition, path []string, focus lens, depth int) *node {
	n := &node{
		def:      d,
		path:     path,
		types:    make(map[string]string),
		children: make(map[string]*node),
	}

	for _, name := range d.ReducerNames() {
		reducer, _ := d.LookupReducer(name)
		typ := actionType(path, name)
		n.types[name] = typ
		e.dispatch[typ] = focus(func(c *call, state any) any {
			return reducer(state, c.args...)
		})
	}

	for _, f := range d.Fields() {
		childPath := append(slices.Clip(path), f.Name)
		n.children[f.Name] = e.compile(f.Def, childPath, focus.then(e.field(f.Name, n.where())), depth)
	}

	if spec, ok := d.Collection(); ok {
		n.spec = spec
		n.slot = spec.ContextName
		if n.slot == "" {
			n.slot = dsl.ItemAccessor + strconv.Itoa(depth)
		}
		itemPath := append(slices.Clip(path), dsl.ItemAccessor)
		n.item = e.compile(spec.Of, itemPath, focus.then(e.item(spec, n.slot, n.where())), depth+1)
	}

	return n
}

func actionType(path []string, name string) string {
	segments := make([]string, 0, len(path)+2)
	segments = append(segments, typePrefix)
	segments = append(segments, path...)
	segments = append(segments, name)
	return strings.Join(segments, typeDelimiter)
}

// materialize computes the default state of d: its own default with the
// defaults of its fields layered onto a copy when the default is an Object.
func materialize(d dsl.Definition) any {
	def, ok := d.DefaultValue()
	fields := d.Fields()
	if !ok || value.IsAbsent(def) || len(fields) == 0 {
		return def
	}
	obj, ok := def.(value.Object)
	if !ok {
		return def
	}

	out := maps.Clone(obj)
	for _, f := range fields {
		if _, has := f.Def.DefaultValue(); !has {
			continue
		}
		out[f.Name] = materialize(f.Def)
	}
	return out
}
