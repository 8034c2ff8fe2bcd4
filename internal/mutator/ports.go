package mutator

import (
	"context"

	"github.com/roach88/paramedit/internal/param"
)

// ParameterStore is the host's user-parameter collection.
type ParameterStore interface {
	// ItemByName looks a parameter up. ok is false if it does not exist.
	ItemByName(ctx context.Context, name string) (p param.Parameter, ok bool, err error)

	// Add creates a parameter from an expression.
	Add(ctx context.Context, name, expression, unit, comment string) (param.Parameter, error)

	// SetExpression replaces the expression of an existing parameter
	// without changing its unit.
	SetExpression(ctx context.Context, name, expression string) (param.Parameter, error)

	// Delete removes a parameter. Callers must not trust a nil error alone.
	Delete(ctx context.Context, name string) error

	// List returns all parameters ordered by name.
	List(ctx context.Context) ([]param.Parameter, error)
}

// UnitsManager validates and formats expressions.
type UnitsManager interface {
	// IsValidExpression reports whether expression can be assigned to a
	// parameter stored in unit.
	IsValidExpression(expression, unit string) bool

	// FormatValue renders value in unit with the given number of decimals.
	FormatValue(value float64, unit string, precision int) string
}
