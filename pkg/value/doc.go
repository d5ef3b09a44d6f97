/*
Package value provides the helpers the engine and its plugins use to treat
dynamic state trees as immutable values.

State slices are plain Go values: composites are Object (map[string]any),
collections are List ([]any) and everything else is a scalar. Identity, not
deep equality, decides whether a slice changed (see Same), which lets the
engine and its hosts detect no-op updates with a pointer comparison.

Decode and Encode bridge dynamic slices and typed Go structs using
mapstructure, honoring `json` struct tags.
*/
package value
