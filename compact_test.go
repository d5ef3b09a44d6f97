package compact_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/compact"
	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/plugins"
	"github.com/aretw0/compact/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player() dsl.Definition {
	profile := dsl.Combine(
		dsl.Named("name", dsl.Value("anonymous").Use(plugins.SetValue())),
		dsl.Named("score", dsl.Value(0).Use(plugins.SetValue())),
	)
	return dsl.Combine(
		dsl.Named("round", dsl.Value(1).Use(plugins.SetValue())),
		dsl.Named("player", profile.Default(nil)),
	)
}

func TestCreate_Facade(t *testing.T) {
	engine := compact.Create(player())

	assert.Equal(t, value.Object{"round": 1, "player": nil}, engine.Default())
	assert.Equal(t, []string{
		"actions/player/name/setValue",
		"actions/player/score/setValue",
		"actions/round/setValue",
	}, engine.Types())
	assert.True(t, engine.Handles("actions/round/setValue"))
	assert.False(t, engine.Handles("actions/round/reset"))
	assert.Equal(t, dsl.KindComposite, engine.Definition().Kind())

	next, err := engine.Actions().Slice("round").Do("setValue", 2)
	require.NoError(t, err)
	assert.Equal(t, value.Object{"round": 2, "player": nil}, engine.Reduce(nil, next))
}

func TestCreate_AbsentSliceWarns(t *testing.T) {
	var buf bytes.Buffer
	var warnings []*domain.WarningEvent
	engine := compact.Create(player(),
		compact.WithName("game"),
		compact.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		compact.WithHooks(domain.Hooks{
			OnWarning: func(e *domain.WarningEvent) { warnings = append(warnings, e) },
		}),
	)

	rename, err := engine.Actions().Slice("player").Slice("name").Do("setValue", "ada")
	require.NoError(t, err)

	state := engine.Default()
	next := engine.Reduce(state, rename)

	assert.True(t, value.Same(state, next))
	require.Len(t, warnings, 1)
	assert.Equal(t, "player", warnings[0].Path)
	assert.Equal(t, rename.Type, warnings[0].Action)
	assert.Contains(t, buf.String(), "definition=game")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestCreate_HooksChain(t *testing.T) {
	var order []string
	engine := compact.Create(dsl.Value(0).Use(plugins.SetValue()),
		compact.WithHooks(domain.Hooks{
			OnDispatch: func(e *domain.DispatchEvent) { order = append(order, "first:"+string(e.Outcome)) },
		}),
		compact.WithHooks(domain.Hooks{
			OnDispatch: func(e *domain.DispatchEvent) { order = append(order, "second:"+string(e.Outcome)) },
		}),
	)

	set, err := engine.Actions().Do("setValue", 0)
	require.NoError(t, err)
	engine.Reduce(0, set)
	engine.Reduce(0, domain.Action{Type: "actions/unknown"})

	assert.Equal(t, []string{
		"first:unchanged", "second:unchanged",
		"first:ignored", "second:ignored",
	}, order)
}

func TestCreate_ActionCreatorDelegates(t *testing.T) {
	engine := compact.Create(dsl.Value(0).
		Reducer("incrementBy", func(s any, args ...any) any { return s.(int) + args[0].(int) }).
		ActionCreator("increment", func(c domain.Creator, _ ...any) (domain.Action, error) {
			return c.Do("incrementBy", 1)
		}))

	inc, err := engine.Actions().Call("increment")
	require.NoError(t, err)
	assert.Equal(t, "actions/incrementBy", inc.Type)
	assert.Equal(t, []any{1}, inc.Args)
	assert.Equal(t, 42, engine.Reduce(41, inc))

	_, err = engine.Actions().Call("decrement")
	assert.ErrorIs(t, err, domain.ErrUnknownActionCreator)
}
