package manifest

import "fmt"

// Error represents a single problem in a manifest or script.
type Error struct {
	Path   string // Location in the document, e.g. "root.fields[1].list"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed, if any
	Err    error  // Underlying cause, if any
}

func (e *Error) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %T)", e.Path, e.Reason, e.Value)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AggregateError represents multiple failures found in one document.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d manifest errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Errors returns all problems if err is an AggregateError, or nil otherwise.
func Errors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

func aggregate(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}
