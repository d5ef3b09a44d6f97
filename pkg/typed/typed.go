// Package typed adapts strongly typed Go functions to the dynamic reducer and
// key signatures of package dsl.
//
// A slice stored as an Object can be handled by a reducer over a struct: the
// value is decoded with mapstructure (json tags), the function runs, and the
// result is encoded back on top of the original Object so that keys the
// struct does not know about (such as combined child slices) survive.
//
// Decoding failures are programming errors and panic, like a failed type
// assertion in a hand-written reducer would.
package typed

import (
	"fmt"
	"maps"

	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/value"
)

// Reducer adapts fn, which takes no arguments.
func Reducer[S any](fn func(S) S) dsl.Reducer {
	return func(state any, _ ...any) any {
		return restore(state, fn(mustDecode[S](state, "state")))
	}
}

// Reducer1 adapts fn, which takes the first action argument as an A.
// A missing argument is passed as the zero value of A.
func Reducer1[S, A any](fn func(S, A) S) dsl.Reducer {
	return func(state any, args ...any) any {
		var a any
		if len(args) > 0 {
			a = args[0]
		}
		return restore(state, fn(mustDecode[S](state, "state"), mustDecode[A](a, "argument")))
	}
}

// Key adapts a key function over items of type S.
func Key[S any](fn func(S) string) dsl.KeyFunc {
	return func(item any) string {
		return fn(mustDecode[S](item, "item"))
	}
}

func mustDecode[T any](v any, what string) T {
	out, err := value.Decode[T](v)
	if err != nil {
		panic(fmt.Errorf("typed: invalid %s: %w", what, err))
	}
	return out
}

// restore shapes next like the original state: when the slice was stored as
// an Object, the result is encoded and layered over a copy of it. An
// unchanged result returns the original state itself.
func restore[S any](orig any, next S) any {
	obj, ok := orig.(value.Object)
	if !ok || obj == nil {
		return next
	}
	if _, same := any(next).(value.Object); same {
		return next
	}
	encoded, err := value.Encode(next)
	if err != nil {
		panic(fmt.Errorf("typed: invalid result: %w", err))
	}
	changed := false
	for k, v := range encoded {
		if old, has := obj[k]; !has || !value.Same(old, v) {
			changed = true
			break
		}
	}
	if !changed {
		return orig
	}
	out := maps.Clone(obj)
	maps.Copy(out, encoded)
	return out
}
