package dsl

import (
	"fmt"
	"reflect"

	"github.com/aretw0/compact/pkg/value"
)

// ItemAccessor is the reserved name under which a list exposes its items.
const ItemAccessor = "$item"

// KeyFunc extracts the stable identity of a list item.
type KeyFunc func(item any) string

// ListSpec describes a keyed collection.
type ListSpec struct {
	// Of is the definition of every item.
	Of Definition
	// Key extracts the identity of an item.
	Key KeyFunc
	// ContextName is the routing context slot recording the selected item.
	// When empty, a slot name derived from the nesting depth is used.
	ContextName string
}

// KeyOf normalizes a selector to a key: a string is taken as the key itself,
// anything else is treated as an item and passed to Key.
func (s ListSpec) KeyOf(selector any) string {
	if key, ok := selector.(string); ok {
		return key
	}
	return s.Key(selector)
}

// List creates a collection definition defaulting to an empty List.
func List(spec ListSpec) Definition {
	return listOf(spec, value.List{})
}

// NullableList creates a collection definition defaulting to nil.
func NullableList(spec ListSpec) Definition {
	return listOf(spec, nil)
}

func listOf(spec ListSpec, def any) Definition {
	return Definition{
		def:        def,
		hasDefault: true,
		list:       &spec,
	}
}

// Collection returns the list descriptor of d.
func (d Definition) Collection() (ListSpec, bool) {
	if d.list == nil {
		return ListSpec{}, false
	}
	return *d.list, true
}

// KeyOf normalizes a selector against the list descriptor of d.
// ok is false when d is not a collection.
func (d Definition) KeyOf(selector any) (key string, ok bool) {
	if d.list == nil {
		return "", false
	}
	return d.list.KeyOf(selector), true
}

// KeyField returns a KeyFunc reading the named entry of Object items.
// Structs and maps are decoded into an Object first. Any other non-nil item,
// such as a number, is its own key rendered with fmt.Sprint, so Item(5)
// selects the item whose field is 5.
func KeyField(name string) KeyFunc {
	return func(item any) string {
		if value.IsAbsent(item) {
			return ""
		}
		obj, ok := item.(value.Object)
		if !ok {
			if !isRecord(item) {
				return fmt.Sprint(item)
			}
			var err error
			if obj, err = value.Encode(item); err != nil {
				return ""
			}
		}
		switch k := obj[name].(type) {
		case nil:
			return ""
		case string:
			return k
		default:
			return fmt.Sprint(k)
		}
	}
}

// isRecord reports whether v has fields: a struct or map, or a pointer to one.
func isRecord(v any) bool {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct || t.Kind() == reflect.Map
}
