package runtime_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/compact/internal/runtime"
	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/plugins"
	"github.com/aretw0/compact/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActions_CustomActionCreatorDelegates(t *testing.T) {
	d := dsl.Value(0).Use(plugins.SetValue()).
		ActionCreator("reset", func(c domain.Creator, _ ...any) (domain.Action, error) {
			return c.Do("setValue", 0)
		})
	e := runtime.Compile(d)
	acts := e.Actions()

	state := e.Reduce(nil, must(acts.Do("setValue", 7)))
	assert.Equal(t, 7, state)

	reset, err := acts.Call("reset")
	require.NoError(t, err)
	assert.Equal(t, "actions/setValue", reset.Type)
	assert.Equal(t, 0, e.Reduce(state, reset))
}

func TestActions_FetchFromDataSource(t *testing.T) {
	e := runtime.Compile(todoApp())
	todos := e.Actions().Slice("todos")

	state := e.Reduce(nil, must(todos.Do("push", task("4", "Test things"))))
	state = e.Reduce(state, must(todos.Do("push", task("5", "Test more"))))

	source := func(todoID string) value.List {
		for _, it := range state.(value.Object)["todos"].(value.List) {
			if it.(value.Object)["id"] == todoID {
				text := it.(value.Object)["text"].(string)
				return value.List{value.Object{"id": todoID + "_1", "message": "I like to " + strings.ToLower(text)}}
			}
		}
		return nil
	}

	for _, id := range []string{"4", "5"} {
		action, err := todos.Item(id).Slice("comments").Call("fetch", source)
		require.NoError(t, err)
		state = e.Reduce(state, action)
	}

	assert.Equal(t, value.List{value.Object{"id": "4_1", "message": "I like to test things"}},
		at(state, "todos", 0).(value.Object)["comments"])
	assert.Equal(t, value.List{value.Object{"id": "5_1", "message": "I like to test more"}},
		at(state, "todos", 1).(value.Object)["comments"])
}

func TestActions_CustomActionCreatorErrorsPassThrough(t *testing.T) {
	errBackend := errors.New("backend unavailable")
	d := dsl.Value(0).ActionCreator("load", func(domain.Creator, ...any) (domain.Action, error) {
		return domain.Action{}, errBackend
	})

	_, err := runtime.Compile(d).Actions().Call("load")
	assert.Same(t, errBackend, err)
}

func TestActions_ContextIsCopiedAtEachStep(t *testing.T) {
	e := runtime.Compile(todoApp())
	todos := e.Actions().Slice("todos")

	four := todos.Item("4")
	five := todos.Item("5")
	nested := four.Slice("comments").Item("6")

	assert.Empty(t, todos.Context())
	assert.Equal(t, domain.Context{"$item0": "4"}, four.Context())
	assert.Equal(t, domain.Context{"$item0": "5"}, five.Context())
	assert.Equal(t, domain.Context{"$item0": "4", "$item1": "6"}, nested.Context())

	ctx := four.Context()
	ctx["$item0"] = "mutated"
	assert.Equal(t, domain.Context{"$item0": "4"}, four.Context())
}

func TestActions_Type(t *testing.T) {
	acts := runtime.Compile(todoApp()).Actions()
	assert.Equal(t, "actions/todos/$item/setCompleted", acts.Slice("todos").Item("1").Type("setCompleted"))
	assert.Equal(t, "", acts.Type("setCompleted"))
}

func TestActions_NavigationErrors(t *testing.T) {
	acts := runtime.Compile(todoApp()).Actions()

	tests := []struct {
		name    string
		build   func() (domain.Action, error)
		wantErr error
	}{
		{
			name:    "Unknown Slice",
			build:   func() (domain.Action, error) { return acts.Slice("nope").Do("replace") },
			wantErr: domain.ErrUnknownSlice,
		},
		{
			name:    "Item On Non List",
			build:   func() (domain.Action, error) { return acts.Slice("visibilityFilter").Item("1").Do("replace") },
			wantErr: domain.ErrNotAList,
		},
		{
			name:    "Item Without Key",
			build:   func() (domain.Action, error) { return acts.Slice("todos").Item(value.Object{"text": "no id"}).Do("update") },
			wantErr: domain.ErrNoItemKey,
		},
		{
			name:    "Unknown Reducer",
			build:   func() (domain.Action, error) { return acts.Slice("todos").Do("shuffle") },
			wantErr: domain.ErrUnknownReducer,
		},
		{
			name:    "Unknown Action Creator",
			build:   func() (domain.Action, error) { return acts.Slice("todos").Call("fetch") },
			wantErr: domain.ErrUnknownActionCreator,
		},
		{
			name: "First Error Is Sticky",
			build: func() (domain.Action, error) {
				return acts.Slice("nope").Item("1").Slice("other").Call("anything")
			},
			wantErr: domain.ErrUnknownSlice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.ErrorIs(t, acts.Slice("nope").Err(), domain.ErrUnknownSlice)
	assert.NoError(t, acts.Slice("todos").Err())
}
