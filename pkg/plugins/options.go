package plugins

import (
	"log/slog"

	"github.com/aretw0/compact/internal/logging"
	"github.com/aretw0/compact/pkg/domain"
)

type config struct {
	logger *slog.Logger
	hooks  domain.Hooks
}

// Option configures a plugin.
type Option func(*config)

// WithLogger sets the sink for the plugin's warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks reports the plugin's warnings to hooks.OnWarning as well.
// The event carries the reducer name as Action and the plugin name as Source.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *config) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

func newConfig(opts []Option) *config {
	c := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// warn logs msg for the reducer of plugin and forwards it to the hooks.
func (c *config) warn(plugin, reducer, msg string, attrs ...any) {
	c.logger.Warn(msg, append([]any{"reducer", reducer}, attrs...)...)
	if c.hooks.OnWarning == nil {
		return
	}
	c.hooks.OnWarning(&domain.WarningEvent{
		Type:    domain.EventWarning,
		Action:  reducer,
		Source:  plugin,
		Message: msg,
	})
}
