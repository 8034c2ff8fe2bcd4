package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/paramedit/internal/param"
)

// AssertionError is a failed assertion with expected and actual values.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assertion failed: %s\n  Expected: %s\n  Actual: %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion against the final document and
// returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var msgs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertParameter:
			err = assertParameter(result.State, a)
		case AssertAbsent:
			err = assertAbsent(result.State, a)
		case AssertCount:
			err = assertCount(result.State, a)
		case AssertHistory:
			err = assertHistory(result.History, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return msgs
}

func findParameter(state []param.Parameter, name string) (param.Parameter, bool) {
	for _, p := range state {
		if p.Name == name {
			return p, true
		}
	}
	return param.Parameter{}, false
}

func assertParameter(state []param.Parameter, a Assertion) error {
	p, ok := findParameter(state, a.Name)
	if !ok {
		return &AssertionError{Type: a.Type, Expected: "parameter " + a.Name, Actual: "not found"}
	}

	var diffs []string
	if a.Expression != nil && p.Expression != *a.Expression {
		diffs = append(diffs, fmt.Sprintf("expression %q != %q", p.Expression, *a.Expression))
	}
	if a.Unit != nil && p.Unit != *a.Unit {
		diffs = append(diffs, fmt.Sprintf("unit %q != %q", p.Unit, *a.Unit))
	}
	if a.Comment != nil && p.Comment != *a.Comment {
		diffs = append(diffs, fmt.Sprintf("comment %q != %q", p.Comment, *a.Comment))
	}
	if len(diffs) > 0 {
		return &AssertionError{
			Type:     a.Type,
			Expected: describeParameter(a),
			Actual:   strings.Join(diffs, "; "),
		}
	}
	return nil
}

func describeParameter(a Assertion) string {
	parts := []string{a.Name}
	if a.Expression != nil {
		parts = append(parts, fmt.Sprintf("expression=%q", *a.Expression))
	}
	if a.Unit != nil {
		parts = append(parts, fmt.Sprintf("unit=%q", *a.Unit))
	}
	if a.Comment != nil {
		parts = append(parts, fmt.Sprintf("comment=%q", *a.Comment))
	}
	return strings.Join(parts, " ")
}

func assertAbsent(state []param.Parameter, a Assertion) error {
	if p, ok := findParameter(state, a.Name); ok {
		return &AssertionError{Type: a.Type, Expected: a.Name + " absent", Actual: "found with expression " + p.Expression}
	}
	return nil
}

func assertCount(state []param.Parameter, a Assertion) error {
	if len(state) != *a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d parameters", *a.Count),
			Actual:   fmt.Sprintf("%d parameters", len(state)),
		}
	}
	return nil
}

func assertHistory(history []param.Change, a Assertion) error {
	var ops []string
	for _, c := range history {
		if a.Name == "" || c.Name == a.Name {
			ops = append(ops, string(c.Op))
		}
	}

	if a.Count != nil && len(ops) != *a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d changes", *a.Count),
			Actual:   fmt.Sprintf("%d changes %v", len(ops), ops),
		}
	}
	if len(a.Ops) > 0 && strings.Join(ops, ",") != strings.Join(a.Ops, ",") {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("ops %v", a.Ops), Actual: fmt.Sprintf("ops %v", ops)}
	}
	return nil
}
