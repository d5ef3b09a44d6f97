package ports

import "github.com/aretw0/compact/pkg/domain"

// Reducer is a compiled definition tree.
// Implementations hold no state: the same state and action always yield the
// same result, so a Reducer can be shared by any number of hosts.
type Reducer interface {
	// Reduce applies action to state. A nil state starts from Default.
	Reduce(state any, action domain.Action) any

	// Actions returns the root of the action-creator tree.
	Actions() domain.Creator

	// Default returns the default state of the whole tree.
	Default() any

	// Types lists every dispatch key the reducer handles.
	Types() []string
}
