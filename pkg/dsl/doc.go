/*
Package dsl provides the fluent builder for definitions: immutable descriptions
of a state slice, its reducers, its custom action creators and how it nests
into composites (combine) or keyed collections (list).

Every builder method returns a new Definition and never touches the receiver,
so a base definition can be shared and extended by several plugins at once.

Example usage:

	package main

	import (
		"github.com/aretw0/compact/pkg/dsl"
		"github.com/aretw0/compact/pkg/plugins"
	)

	func main() {
		counter := dsl.Value(0).
			Reducer("incrementBy", func(s any, args ...any) any { return s.(int) + args[0].(int) }).
			Reducer("reset", func(any, ...any) any { return 0 })

		todos := dsl.List(dsl.ListSpec{
			Of:  dsl.New().Use(plugins.Object()),
			Key: dsl.KeyField("id"),
		}).Use(plugins.List())

		app := dsl.Combine(
			dsl.Named("counter", counter),
			dsl.Named("todos", todos),
		)
		// ... pass app to compact.Create(...)
	}
*/
package dsl
