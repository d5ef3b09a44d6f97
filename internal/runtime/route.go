package runtime

import (
	"fmt"

	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/value"
)

// field focuses on the child called name of an Object slice located at parent.
// An absent parent makes the action a no-op.
func (e *Engine) field(name, parent string) lens {
	return func(inner step) step {
		return func(c *call, state any) any {
			if value.IsAbsent(state) {
				e.warn(c, parent, fmt.Sprintf("slice is nil, cannot update %q; the action will be ignored", name))
				return state
			}
			obj, ok := state.(value.Object)
			if !ok {
				e.warn(c, parent, fmt.Sprintf("slice is not an object, cannot update %q; the action will be ignored", name),
					"type", fmt.Sprintf("%T", state))
				return state
			}

			child := obj[name]
			updated := inner(c, child)
			if value.Same(child, updated) {
				return state
			}
			return value.With(obj, name, updated)
		}
	}
}

// item focuses on the list item whose key is recorded under slot in the
// routing context. The first matching item wins.
func (e *Engine) item(spec dsl.ListSpec, slot, list string) lens {
	return func(inner step) step {
		return func(c *call, state any) any {
			if value.IsAbsent(state) {
				e.warn(c, list, "collection is nil; the action will be ignored")
				return state
			}
			items, ok := value.AsList(state)
			if !ok {
				e.warn(c, list, "collection is not a list; the action will be ignored",
					"type", fmt.Sprintf("%T", state))
				return state
			}
			key, ok := c.ctx[slot]
			if !ok {
				e.warn(c, list, fmt.Sprintf("no item selected in context slot %q; the action will be ignored", slot))
				return state
			}

			i := indexOf(spec, items, key)
			if i < 0 {
				e.warn(c, list, fmt.Sprintf("collection does not contain item %q; the action will be ignored", key))
				return state
			}

			updated := inner(c, items[i])
			if value.Same(items[i], updated) {
				return state
			}
			return value.Replace(items, i, updated)
		}
	}
}

// indexOf scans items in order for the first one with the given key.
func indexOf(spec dsl.ListSpec, items value.List, key string) int {
	for i, it := range items {
		if spec.Key(it) == key {
			return i
		}
	}
	return -1
}
