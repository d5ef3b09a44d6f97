package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/compact/pkg/value"
)

// ValidationError describes one construction problem found by Validate.
type ValidationError struct {
	Path   string // Location of the offending definition, e.g. "todos.$item.comments"
	Reason string // Human-readable reason for failure
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("definition: %s", e.Reason)
	}
	return fmt.Sprintf("definition %q: %s", e.Path, e.Reason)
}

// Validate reports construction mistakes that the engine deliberately does
// not check at runtime:
//
//   - a name used by more than one of reducers, action creators, fields and the item accessor;
//   - a definition that is both a list and a composite;
//   - a list without a key function;
//   - a list default holding two items with the same key.
//
// It returns nil or the joined *ValidationError values.
func Validate(d Definition) error {
	var errs []error
	validate(d, nil, &errs)
	return errors.Join(errs...)
}

func validate(d Definition, path []string, errs *[]error) {
	fail := func(format string, args ...any) {
		*errs = append(*errs, &ValidationError{
			Path:   strings.Join(path, "."),
			Reason: fmt.Sprintf(format, args...),
		})
	}

	owners := make(map[string]string)
	claim := func(name, owner string) {
		if prev, ok := owners[name]; ok {
			fail("name %q is used by both %s and %s", name, prev, owner)
			return
		}
		owners[name] = owner
	}
	if d.list != nil {
		claim(ItemAccessor, "the item accessor")
	}
	for _, name := range d.ReducerNames() {
		claim(name, "a reducer")
	}
	for _, name := range d.ActionCreatorNames() {
		claim(name, "an action creator")
	}
	for _, f := range d.fields {
		claim(f.Name, "a field")
	}

	if d.list != nil && len(d.fields) > 0 {
		fail("a list cannot also combine fields")
	}

	for _, f := range d.fields {
		validate(f.Def, append(path, f.Name), errs)
	}

	if d.list == nil {
		return
	}
	if d.list.Key == nil {
		fail("list has no key function")
	} else if items, ok := value.AsList(d.def); ok {
		seen := make(map[string]bool, len(items))
		for _, item := range items {
			key := d.list.Key(item)
			if seen[key] {
				fail("duplicate key %q in default items", key)
			}
			seen[key] = true
		}
	}
	validate(d.list.Of, append(path, ItemAccessor), errs)
}
