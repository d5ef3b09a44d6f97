package domain

import (
	"maps"
	"sort"
	"strings"
)

// Context maps a context slot name to the key of the selected list item.
// A Context is never mutated in place: With returns an extended copy.
type Context map[string]string

// With returns a copy of c with slot set to key.
func (c Context) With(slot, key string) Context {
	next := make(Context, len(c)+1)
	maps.Copy(next, c)
	next[slot] = key
	return next
}

// Get returns the key selected for slot.
func (c Context) Get(slot string) (string, bool) {
	key, ok := c[slot]
	return key, ok
}

// Clone returns an independent copy of c. A nil Context clones to an empty one.
func (c Context) Clone() Context {
	next := make(Context, len(c))
	maps.Copy(next, c)
	return next
}

// String renders the context with sorted slots, e.g. "{$item0=4, comment=6}".
func (c Context) String() string {
	slots := make([]string, 0, len(c))
	for slot := range c {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	var sb strings.Builder
	sb.WriteString("{")
	for i, slot := range slots {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(slot)
		sb.WriteString("=")
		sb.WriteString(c[slot])
	}
	sb.WriteString("}")
	return sb.String()
}
