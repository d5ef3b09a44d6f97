/*
Package compact builds composable reducers from declarative definitions.

A definition describes one slice of state: its default value, the reducers
that update it, custom action creators, and how it nests other slices
(combine) or collects them into keyed lists. Create compiles a definition
tree into an Engine holding two things derived from the same walk:

  - a pure transition function, Reduce(state, action) -> state;
  - a tree of action creators that produce correctly routed actions.

Actions are plain values. Their Type is a dispatch key built from the path
of the reducer ("actions/todos/$item/setCompleted"), and their Context names
the list items traversed on the way ({"$item0": "42"}). The engine never
holds state itself, so any host container can store the result.

# Concept

The state tree is made of dynamic values: composite slices are
map[string]any, collections are []any, and everything else is a scalar.
Updates are copy-on-write. A reducer that returns its input unchanged
short-circuits every enclosing slice, so the whole state is returned as is.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/compact"
		"github.com/aretw0/compact/pkg/dsl"
		"github.com/aretw0/compact/pkg/plugins"
	)

	func main() {
		todo := dsl.New().Use(plugins.Object())
		todos := dsl.List(dsl.ListSpec{Of: todo, Key: dsl.KeyField("id")}).
			Use(plugins.List())

		engine := compact.Create(dsl.Combine(dsl.Named("todos", todos)))
		acts := engine.Actions().Slice("todos")

		push, err := acts.Do("push", map[string]any{"id": "1", "text": "write docs"})
		if err != nil {
			log.Fatal(err)
		}
		state := engine.Reduce(nil, push)

		done, err := acts.Item("1").Do("update", map[string]any{"done": true})
		if err != nil {
			log.Fatal(err)
		}
		state = engine.Reduce(state, done)
		fmt.Println(state)
	}

Warnings about actions that cannot be routed (for example an item action on
a list that is nil) are written to the logger passed with WithLogger and
reported through WithHooks; the state is returned unchanged in that case.
*/
package compact
