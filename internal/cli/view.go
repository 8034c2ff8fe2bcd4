package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/paramedit/internal/mutator"
	"github.com/roach88/paramedit/internal/param"
	"github.com/roach88/paramedit/internal/units"
)

// ParameterView is the CLI representation of a parameter.
type ParameterView struct {
	Name       string  `json:"name"`
	Expression string  `json:"expression"`
	Unit       string  `json:"unit,omitempty"`
	Category   string  `json:"category"`
	Value      float64 `json:"value"`
	Comment    string  `json:"comment,omitempty"`
}

func newParameterView(p param.Parameter, tax *units.Taxonomy) ParameterView {
	return ParameterView{
		Name:       p.Name,
		Expression: p.Expression,
		Unit:       p.Unit,
		Category:   tax.CategoryOf(p.Unit),
		Value:      p.Value,
		Comment:    p.Comment,
	}
}

func (v ParameterView) String() string {
	return fmt.Sprintf("%s = %s", v.Name, v.Expression)
}

// MutationResult is the outcome of one command.
type MutationResult struct {
	Command   string         `json:"command"`
	Outcome   string         `json:"outcome"`
	Parameter *ParameterView `json:"parameter,omitempty"`
	Error     *CLIError      `json:"error,omitempty"`
}

func (r MutationResult) String() string {
	switch {
	case r.Error != nil:
		return fmt.Sprintf("Error [%s]: %s", r.Error.Code, r.Error.Message)
	case r.Parameter != nil:
		return fmt.Sprintf("%s %s", r.Outcome, r.Parameter)
	default:
		return r.Outcome
	}
}

// errorFor converts a command error to its CLI form.
func errorFor(err error) *CLIError {
	if errors.Is(err, mutator.ErrReload) {
		return &CLIError{Code: ErrCodeReload, Message: "reload is only available in the edit dialog"}
	}
	code := string(param.Code(err))
	if code == "" {
		code = ErrCodeGeneric
	}
	return &CLIError{Code: code, Message: err.Error()}
}
