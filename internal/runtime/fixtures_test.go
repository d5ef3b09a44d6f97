package runtime_test

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/plugins"
	"github.com/aretw0/compact/pkg/value"
)

func counter() dsl.Definition {
	return dsl.Value(0).Reducers(map[string]dsl.Reducer{
		"incrementBy": func(s any, args ...any) any { return s.(int) + args[0].(int) },
		"decrementBy": func(s any, args ...any) any { return s.(int) - args[0].(int) },
		"reset":       func(any, ...any) any { return 0 },
	})
}

// todoApp mirrors a typical application: a token, a filter and todos that
// each carry a nested list of comments.
func todoApp() dsl.Definition {
	comment := dsl.New().Use(plugins.Object())
	comments := dsl.List(dsl.ListSpec{Of: comment, Key: dsl.KeyField("id")}).
		Use(plugins.List()).
		ActionCreator("fetch", func(c domain.Creator, args ...any) (domain.Action, error) {
			source := args[0].(func(todoID string) value.List)
			return c.Do("replace", source(c.Context()["$item0"]))
		})

	todo := dsl.New().
		Slice("comments", comments).
		Reducer("setCompleted", func(s any, args ...any) any {
			return value.With(s.(value.Object), "completed", args[0])
		})

	todos := dsl.List(dsl.ListSpec{Of: todo, Key: dsl.KeyField("id")}).
		Use(plugins.List())

	return dsl.Combine(
		dsl.Named("accessToken", dsl.New().Use(plugins.SetValue())),
		dsl.Named("visibilityFilter", dsl.Value("SHOW_ALL").Use(plugins.Replace())),
		dsl.Named("todos", todos),
	)
}

func task(id, text string) value.Object {
	return value.Object{"id": id, "text": text, "completed": false}
}

// capture returns a logger writing into buf.
func capture(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// at returns the n-th element of the list under key in an Object state.
func at(state any, key string, n int) any {
	return state.(value.Object)[key].(value.List)[n]
}

func must(a domain.Action, err error) domain.Action {
	if err != nil {
		panic(fmt.Sprintf("unexpected error: %v", err))
	}
	return a
}
