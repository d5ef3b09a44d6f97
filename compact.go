package compact

import (
	"log/slog"

	"github.com/aretw0/compact/internal/logging"
	"github.com/aretw0/compact/internal/runtime"
	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/dsl"
)

// Engine is the high-level entry point for the library.
// It wraps the compiled runtime and exposes the transition function together
// with the action-creator tree it was compiled alongside.
type Engine struct {
	runtime *runtime.Engine
	hooks   domain.Hooks
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic sink for routing warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks. Calling it more than once chains
// the hooks in registration order.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithName labels the engine. The name is attached to every log record.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// Create compiles def into an Engine.
// The definition tree is walked once; the returned Engine is immutable and
// safe for concurrent use.
func Create(def dsl.Definition, opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("definition", eng.Name)
	}

	eng.runtime = runtime.Compile(def,
		runtime.WithLogger(eng.logger),
		runtime.WithHooks(eng.hooks),
	)
	return eng
}

// Reduce applies action to state and returns the next state.
// A nil state starts from the default state. Unknown actions return state
// unchanged, and an action that does not change anything returns state itself.
func (e *Engine) Reduce(state any, action domain.Action) any {
	return e.runtime.Reduce(state, action)
}

// Actions returns the root of the action-creator tree.
func (e *Engine) Actions() domain.Creator {
	return e.runtime.Actions()
}

// Default returns the default state of the whole tree.
func (e *Engine) Default() any {
	return e.runtime.Default()
}

// Types lists every dispatch key the engine handles, sorted.
func (e *Engine) Types() []string {
	return e.runtime.Types()
}

// Handles reports whether actionType is routed to a reducer.
func (e *Engine) Handles(actionType string) bool {
	return e.runtime.Handles(actionType)
}

// Definition returns the definition the engine was created from.
func (e *Engine) Definition() dsl.Definition {
	return e.runtime.Definition()
}
