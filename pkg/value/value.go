package value

import (
	"maps"
	"reflect"
)

// Object is the value of a composite slice.
type Object = map[string]any

// List is the value of a collection slice.
type List = []any

// IsAbsent reports whether v holds no value: a nil interface or a nil
// map, slice, pointer, interface, channel or function.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// Same reports whether a and b are the same value by identity.
// Maps, pointers, channels and functions are the same when they point to the
// same object, slices when they share backing array and length. Structs and
// arrays are the same when all their fields are, so a struct holding a slice
// stays the same across copies. Other values are the same when they are ==.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	return same(va, vb)
}

func same(va, vb reflect.Value) bool {
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		ea, eb := va.Elem(), vb.Elem()
		return ea.Type() == eb.Type() && same(ea, eb)
	case reflect.Struct:
		for i := 0; i < va.NumField(); i++ {
			if !same(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < va.Len(); i++ {
			if !same(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	}
	return va.Equal(vb)
}

// With returns a shallow copy of obj with key set to v.
// A nil obj yields a new single-key Object.
func With(obj Object, key string, v any) Object {
	next := make(Object, len(obj)+1)
	maps.Copy(next, obj)
	next[key] = v
	return next
}

// Merge returns a shallow copy of obj with every key of patch layered on top.
func Merge(obj, patch Object) Object {
	next := make(Object, len(obj)+len(patch))
	maps.Copy(next, obj)
	maps.Copy(next, patch)
	return next
}

// Replace returns a copy of list with the element at i set to v.
// The other elements are shared with list.
func Replace(list List, i int, v any) List {
	next := make(List, len(list))
	copy(next, list)
	next[i] = v
	return next
}

// Append returns a new list holding the elements of list followed by items.
// It never writes to the backing array of list.
func Append(list List, items ...any) List {
	next := make(List, 0, len(list)+len(items))
	next = append(next, list...)
	return append(next, items...)
}

// Remove returns a copy of list without the element at i.
func Remove(list List, i int) List {
	next := make(List, 0, len(list)-1)
	next = append(next, list[:i]...)
	return append(next, list[i+1:]...)
}

// AsList converts any slice to a List, sharing nothing with the input
// unless it already is a List. ok is false when v is not a slice.
func AsList(v any) (List, bool) {
	if l, ok := v.(List); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make(List, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
