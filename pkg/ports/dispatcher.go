package ports

import (
	"context"

	"github.com/aretw0/compact/pkg/domain"
)

// Dispatcher owns the state of a session and applies actions to it.
// Dispatch returns the state after the action was applied.
type Dispatcher interface {
	Dispatch(ctx context.Context, sessionID string, action domain.Action) (any, error)
	State(ctx context.Context, sessionID string) (any, error)
}
