package plugins

import (
	"fmt"

	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/value"
)

// SetValue registers setValue(v), which replaces the slice with v.
func SetValue() dsl.Plugin {
	return func(d dsl.Definition) dsl.Definition {
		return d.Reducer("setValue", func(_ any, args ...any) any {
			return arg(args, 0)
		})
	}
}

// Replace registers replace(v), which replaces the slice with v.
func Replace() dsl.Plugin {
	return func(d dsl.Definition) dsl.Definition {
		return d.Reducer("replace", func(_ any, args ...any) any {
			return arg(args, 0)
		})
	}
}

// Object registers update(partial), a shallow merge of partial into an Object slice.
// partial may be an Object or a struct, which is encoded through its json tags.
func Object(opts ...Option) dsl.Plugin {
	cfg := newConfig(opts)
	return func(d dsl.Definition) dsl.Definition {
		return d.Reducer("update", func(state any, args ...any) any {
			if value.IsAbsent(state) {
				cfg.warn("object", "update", "object is nil, the action will be ignored")
				return state
			}
			obj, ok := state.(value.Object)
			if !ok {
				cfg.warn("object", "update", "object is not a map, the action will be ignored", "type", typeName(state))
				return state
			}
			patch, ok := arg(args, 0).(value.Object)
			if !ok {
				var err error
				if patch, err = value.Encode(arg(args, 0)); err != nil {
					cfg.warn("object", "update", "invalid update, the action will be ignored", "error", err)
					return state
				}
			}
			if len(patch) == 0 {
				return state
			}
			return value.Merge(obj, patch)
		})
	}
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
