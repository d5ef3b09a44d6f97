package compact

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/compact/pkg/manifest"
	"github.com/aretw0/compact/pkg/value"
)

// Runner replays an action script against an Engine.
// Unless Headless is set, every step is traced to Output together with the
// paths it changed.
type Runner struct {
	Output   io.Writer
	Headless bool
}

// NewRunner creates a Runner tracing to output.
func NewRunner(output io.Writer) *Runner {
	return &Runner{Output: output}
}

// Run applies steps in order, starting from state (nil for the default
// state), and returns the final state. It stops at the first step that
// cannot be turned into an action.
func (r *Runner) Run(engine *Engine, state any, steps []manifest.Step) (any, error) {
	if state == nil {
		state = engine.Default()
	}
	for i, step := range steps {
		action, err := step.Action(engine.Actions())
		if err != nil {
			return state, fmt.Errorf("step %d: %w", i+1, err)
		}

		next := engine.Reduce(state, action)
		if !r.Headless && r.Output != nil {
			changes := "no change"
			if !engine.Handles(action.Type) {
				changes = "unknown action"
			} else if paths := value.Changes(state, next); len(paths) > 0 {
				changes = strings.Join(paths, ", ")
				if changes == "" {
					changes = "<root>"
				}
			}
			fmt.Fprintf(r.Output, "%d. %s %s: %s\n", i+1, action.Type, action.Context, changes)
		}
		state = next
	}
	return state, nil
}
