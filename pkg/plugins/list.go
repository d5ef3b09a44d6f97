package plugins

import (
	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/value"
)

// List registers the collection reducers on a list definition:
//
//   - push(item) appends item;
//   - remove(itemOrKey) drops the first item with a matching key;
//   - replace(items) swaps the whole collection;
//   - pushOrReplace(item) replaces the item with the same key, or appends it.
//
// Applying it to a definition that is not a list leaves it untouched.
func List(opts ...Option) dsl.Plugin {
	cfg := newConfig(opts)
	return func(d dsl.Definition) dsl.Definition {
		spec, ok := d.Collection()
		if !ok {
			cfg.logger.Warn("list plugin applied to a definition that is not a list")
			return d
		}
		indexOf := func(items value.List, selector any) int {
			key := spec.KeyOf(selector)
			if key == "" {
				return -1
			}
			for i, item := range items {
				if spec.Key(item) == key {
					return i
				}
			}
			return -1
		}
		collection := func(op string, state any) (value.List, bool) {
			if value.IsAbsent(state) {
				cfg.warn("list", op, "collection is nil, the action will be ignored")
				return nil, false
			}
			items, ok := value.AsList(state)
			if !ok {
				cfg.warn("list", op, "collection is not a list, the action will be ignored", "type", typeName(state))
				return nil, false
			}
			return items, true
		}

		return d.Reducers(map[string]dsl.Reducer{
			"push": func(state any, args ...any) any {
				items, ok := collection("push", state)
				if !ok {
					return state
				}
				return value.Append(items, arg(args, 0))
			},
			"remove": func(state any, args ...any) any {
				items, ok := collection("remove", state)
				if !ok {
					return state
				}
				i := indexOf(items, arg(args, 0))
				if i < 0 {
					cfg.warn("list", "remove", "collection does not contain the element, the action will be ignored",
						"key", spec.KeyOf(arg(args, 0)))
					return state
				}
				return value.Remove(items, i)
			},
			"replace": func(state any, args ...any) any {
				items, ok := value.AsList(arg(args, 0))
				if !ok {
					return arg(args, 0)
				}
				return value.Append(nil, items...)
			},
			"pushOrReplace": func(state any, args ...any) any {
				items, ok := collection("pushOrReplace", state)
				if !ok {
					return state
				}
				item := arg(args, 0)
				if i := indexOf(items, item); i >= 0 {
					return value.Replace(items, i, item)
				}
				return value.Append(items, item)
			},
		})
	}
}
