package value_test

import (
	"testing"

	"github.com/aretw0/compact/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y int }

type tagged struct {
	Name string
	Tags []string
}

type handler struct{ fn func(*testing.T) }

func TestSame(t *testing.T) {
	obj := value.Object{"a": 1}
	list := value.List{1, 2}
	p := &point{1, 2}
	tags := []string{"x"}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil and nil", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"same map", obj, obj, true},
		{"equal but distinct maps", value.Object{"a": 1}, value.Object{"a": 1}, false},
		{"same slice", list, list, true},
		{"resliced", list, list[:1], false},
		{"copied slice", list, value.List{1, 2}, false},
		{"same pointer", p, p, true},
		{"distinct pointers", p, &point{1, 2}, false},
		{"equal ints", 3, 3, true},
		{"different types", 3, int64(3), false},
		{"equal structs", point{1, 2}, point{1, 2}, true},
		{"equal strings", "a", "a", true},
		{"struct sharing a slice", tagged{"a", tags}, tagged{"a", tags}, true},
		{"struct with a copied slice", tagged{"a", tags}, tagged{"a", []string{"x"}}, false},
		{"struct with another scalar", tagged{"a", tags}, tagged{"b", tags}, false},
		{"struct with nil slices", tagged{}, tagged{}, true},
		{"same func field", handler{fn: TestSame}, handler{fn: TestSame}, true},
		{"array of slices", [1][]string{tags}, [1][]string{tags}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, value.Same(tt.a, tt.b))
		})
	}
}

func TestIsAbsent(t *testing.T) {
	var nilMap value.Object
	var nilList value.List
	var nilPtr *point

	assert.True(t, value.IsAbsent(nil))
	assert.True(t, value.IsAbsent(nilMap))
	assert.True(t, value.IsAbsent(nilList))
	assert.True(t, value.IsAbsent(nilPtr))
	assert.False(t, value.IsAbsent(0))
	assert.False(t, value.IsAbsent(""))
	assert.False(t, value.IsAbsent(value.List{}))
	assert.False(t, value.IsAbsent(value.Object{}))
}

func TestCopyOnWriteHelpers(t *testing.T) {
	t.Run("With leaves the input untouched", func(t *testing.T) {
		obj := value.Object{"a": 1}
		next := value.With(obj, "b", 2)
		assert.Equal(t, value.Object{"a": 1}, obj)
		assert.Equal(t, value.Object{"a": 1, "b": 2}, next)
	})

	t.Run("Merge", func(t *testing.T) {
		obj := value.Object{"a": 1, "b": 1}
		next := value.Merge(obj, value.Object{"b": 2})
		assert.Equal(t, value.Object{"a": 1, "b": 2}, next)
		assert.Equal(t, 1, obj["b"])
	})

	t.Run("Replace shares other elements", func(t *testing.T) {
		first := value.Object{"id": "1"}
		list := value.List{first, value.Object{"id": "2"}}
		next := value.Replace(list, 1, "x")
		assert.True(t, value.Same(list[0], next[0]))
		assert.Equal(t, "x", next[1])
		assert.NotEqual(t, "x", list[1])
	})

	t.Run("Append does not write to spare capacity", func(t *testing.T) {
		list := make(value.List, 1, 4)
		a := value.Append(list, "a")
		b := value.Append(list, "b")
		assert.Equal(t, "a", a[1])
		assert.Equal(t, "b", b[1])
	})

	t.Run("Remove", func(t *testing.T) {
		list := value.List{"a", "b", "c"}
		assert.Equal(t, value.List{"a", "c"}, value.Remove(list, 1))
		assert.Equal(t, value.List{"a", "b", "c"}, list)
	})

	t.Run("AsList", func(t *testing.T) {
		l, ok := value.AsList([]string{"x", "y"})
		require.True(t, ok)
		assert.Equal(t, value.List{"x", "y"}, l)

		_, ok = value.AsList("nope")
		assert.False(t, ok)
	})
}

type todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func TestDecodeEncode(t *testing.T) {
	t.Run("passthrough", func(t *testing.T) {
		in := todo{ID: "1"}
		out, err := value.Decode[todo](in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("object to struct", func(t *testing.T) {
		out, err := value.Decode[todo](value.Object{"id": "1", "text": "hi", "completed": true})
		require.NoError(t, err)
		assert.Equal(t, todo{ID: "1", Text: "hi", Completed: true}, out)
	})

	t.Run("nil decodes to zero value", func(t *testing.T) {
		out, err := value.Decode[todo](nil)
		require.NoError(t, err)
		assert.Equal(t, todo{}, out)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := value.Decode[todo](value.Object{"completed": "yes"})
		assert.Error(t, err)
	})

	t.Run("struct to object", func(t *testing.T) {
		obj, err := value.Encode(todo{ID: "1", Text: "hi"})
		require.NoError(t, err)
		assert.Equal(t, value.Object{"id": "1", "text": "hi", "completed": false}, obj)
	})
}

func TestChanges(t *testing.T) {
	comment := value.Object{"id": "6", "message": "Hello"}
	todo4 := value.Object{"id": "4", "comments": value.List{comment}}
	todo5 := value.Object{"id": "5"}
	old := value.Object{"token": "a", "todos": value.List{todo4, todo5}}

	tests := []struct {
		name string
		next any
		want []string
	}{
		{
			name: "No Changes",
			next: old,
			want: nil,
		},
		{
			name: "Top Level Key",
			next: value.With(old, "token", "b"),
			want: []string{"token"},
		},
		{
			name: "Nested List Item",
			next: value.With(old, "todos", value.List{
				value.With(todo4, "comments", value.List{value.With(comment, "message", "Hi")}),
				todo5,
			}),
			want: []string{"todos[0].comments[0].message"},
		},
		{
			name: "List Grew",
			next: value.With(old, "todos", value.Append(old["todos"].(value.List), value.Object{"id": "6"})),
			want: []string{"todos"},
		},
		{
			name: "Deleted Key",
			next: value.Object{"todos": old["todos"]},
			want: []string{"token"},
		},
		{
			name: "Root Replaced",
			next: 7,
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, value.Changes(old, tt.next))
		})
	}
}
