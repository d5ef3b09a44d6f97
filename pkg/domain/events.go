package domain

// EventType defines the category of the event.
type EventType string

const (
	EventDispatch EventType = "dispatch"
	EventWarning  EventType = "warning"
)

// Outcome describes what a dispatch did to the state.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"   // A reducer ran and produced a new state.
	OutcomeUnchanged Outcome = "unchanged" // A reducer ran and returned its input.
	OutcomeIgnored   Outcome = "ignored"   // The action type is not known to the engine.
)

// DispatchEvent is emitted once per call to the transition function.
type DispatchEvent struct {
	Type    EventType `json:"type"`
	Action  string    `json:"action"`
	Outcome Outcome   `json:"outcome"`
}

// WarningEvent is emitted when an action could not be routed to its slice,
// or when a plugin reducer was given a slice it cannot handle.
// The returned state is unchanged in that case.
type WarningEvent struct {
	Type   EventType `json:"type"`
	Action string    `json:"action"`
	// Path is the slice the engine could not reach. Plugin reducers do not
	// know where they run, so it is empty for their warnings.
	Path string `json:"path"`
	// Source is WarningSourceEngine or the name of the plugin.
	Source  string `json:"source"`
	Message string `json:"message"`
}

// WarningSourceEngine marks routing warnings raised by the engine itself.
const WarningSourceEngine = "engine"

// Hooks defines callbacks for engine observability.
// Hooks must not influence the returned state.
type Hooks struct {
	OnDispatch func(*DispatchEvent)
	OnWarning  func(*WarningEvent)
}

// Merge returns hooks calling h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnDispatch: chain(h.OnDispatch, other.OnDispatch),
		OnWarning:  chain(h.OnWarning, other.OnWarning),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
