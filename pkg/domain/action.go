package domain

// Action is the value routed by the transition function.
// Type is the dispatch key synthesized from the definition path, Args are the
// arguments passed to the action creator and Context selects list items along
// the way.
type Action struct {
	Type    string  `json:"type" yaml:"type" mapstructure:"type"`
	Args    []any   `json:"args" yaml:"args" mapstructure:"args"`
	Context Context `json:"context" yaml:"context" mapstructure:"context"`
}

// Arg returns the i-th argument, or nil when the action carries fewer arguments.
func (a Action) Arg(i int) any {
	if i < 0 || i >= len(a.Args) {
		return nil
	}
	return a.Args[i]
}

// Creator is one node of the action-creator tree.
// Its shape mirrors the definition it was compiled from: reducers become Do
// targets, custom action creators become Call targets, combined slices are
// reached through Slice and list items through Item.
//
// Navigation never fails eagerly; an invalid step is remembered and reported by
// the terminal Do or Call.
type Creator interface {
	// Do builds the action for the named reducer of this node.
	Do(name string, args ...any) (Action, error)
	// Call runs the named custom action creator with this node as receiver.
	Call(name string, args ...any) (Action, error)
	// Slice returns the creator of a combined child. The context is inherited.
	Slice(name string) Creator
	// Item returns the creator of a list item, selected by key or by item value.
	Item(selector any) Creator
	// Context returns the routing context bound to this node.
	Context() Context
	// Type returns the dispatch key of the named reducer of this node.
	Type(name string) string
	// Err reports the first navigation error, if any.
	Err() error
}
