// Package plugins provides reusable reducer bundles for definitions.
//
// Every constructor returns a dsl.Plugin, so bundles compose with Use:
//
//	todos := dsl.List(spec).Use(plugins.List(plugins.WithLogger(logger)))
//
// Reducers log a warning and return their input unchanged when asked to
// operate on an absent value or on an item that is not there.
package plugins
