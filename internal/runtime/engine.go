// Package runtime compiles definitions into a dispatch table and an
// action-creator tree, and runs the resulting transition function.
package runtime

import (
	"log/slog"
	"sort"

	"github.com/aretw0/compact/internal/logging"
	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/value"
)

// Engine is a compiled definition tree. It holds no state between calls:
// every field is written once by Compile and only read afterwards, so an
// Engine may be shared freely across goroutines.
type Engine struct {
	def      dsl.Definition
	root     *node
	dispatch map[string]step
	defaults any
	logger   *slog.Logger
	hooks    domain.Hooks
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLogger sets the diagnostic sink for routing warnings.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// Compile walks def once and builds the dispatch table, the action-creator
// templates and the materialized default state.
func Compile(def dsl.Definition, opts ...EngineOption) *Engine {
	e := &Engine{
		def:      def,
		dispatch: make(map[string]step),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.root = e.compile(def, nil, identity, 0)
	e.defaults = materialize(def)
	return e
}

// Reduce is the transition function. A nil state is replaced by the default
// state. Unknown action types return the state unchanged.
func (e *Engine) Reduce(state any, action domain.Action) any {
	if state == nil {
		state = e.defaults
	}

	run, ok := e.dispatch[action.Type]
	if !ok {
		e.logger.Debug("ignoring unknown action", "action", action.Type)
		e.emitDispatch(action.Type, domain.OutcomeIgnored)
		return state
	}

	next := run(&call{action: action.Type, args: action.Args, ctx: action.Context}, state)
	if value.Same(state, next) {
		e.emitDispatch(action.Type, domain.OutcomeUnchanged)
		return state
	}
	e.emitDispatch(action.Type, domain.OutcomeApplied)
	return next
}

// Actions returns the root of the action-creator tree, bound to an empty context.
func (e *Engine) Actions() *Actions {
	return &Actions{node: e.root, ctx: domain.Context{}}
}

// Default returns the materialized default state.
func (e *Engine) Default() any {
	return e.defaults
}

// Definition returns the definition the engine was compiled from.
func (e *Engine) Definition() dsl.Definition {
	return e.def
}

// Types returns every dispatch key, sorted.
func (e *Engine) Types() []string {
	types := make([]string, 0, len(e.dispatch))
	for t := range e.dispatch {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Handles reports whether the engine has a reducer for the action type.
func (e *Engine) Handles(actionType string) bool {
	_, ok := e.dispatch[actionType]
	return ok
}

func (e *Engine) emitDispatch(actionType string, outcome domain.Outcome) {
	if e.hooks.OnDispatch == nil {
		return
	}
	e.hooks.OnDispatch(&domain.DispatchEvent{
		Type:    domain.EventDispatch,
		Action:  actionType,
		Outcome: outcome,
	})
}

func (e *Engine) warn(c *call, path, msg string, attrs ...any) {
	e.logger.Warn(msg, append([]any{"action", c.action, "path", path, "context", c.ctx.String()}, attrs...)...)
	if e.hooks.OnWarning == nil {
		return
	}
	e.hooks.OnWarning(&domain.WarningEvent{
		Type:    domain.EventWarning,
		Action:  c.action,
		Path:    path,
		Source:  domain.WarningSourceEngine,
		Message: msg,
	})
}
