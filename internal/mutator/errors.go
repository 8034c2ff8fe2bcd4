package mutator

import (
	"fmt"
	"strings"
)

// RecreateError reports a failed delete-and-recreate unit change.
type RecreateError struct {
	Name       string
	OldUnit    string
	Expression string
	Err        error
}

func (e *RecreateError) Error() string {
	old := e.OldUnit
	if old == "" {
		old = "(no units)"
	}
	return fmt.Sprintf("failed to update parameter %q (current unit type: %s, attempted expression: %q): %v",
		e.Name, old, e.Expression, e.Err)
}

func (e *RecreateError) Unwrap() error {
	return e.Err
}

// FieldError is the failure of a single edit field.
type FieldError struct {
	Name string
	Err  error
}

// FieldErrors collects the failures of a batch field update.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	var b strings.Builder
	b.WriteString("invalid expressions found:")
	for _, f := range fe {
		fmt.Fprintf(&b, "\n%s: %v", f.Name, f.Err)
	}
	return b.String()
}

// Unwrap exposes the individual errors to errors.Is / errors.As.
func (fe FieldErrors) Unwrap() []error {
	errs := make([]error, len(fe))
	for i, f := range fe {
		errs[i] = f.Err
	}
	return errs
}

// orNil returns nil for an empty collection so callers can return it as an
// error directly.
func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
