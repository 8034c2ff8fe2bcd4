// Package design is the local design document: the user-parameter
// collection and units manager that the editor drives.
//
// Document stores parameters in internal/store and validates expressions
// against a unit taxonomy. It only understands literal expressions
// (`<number>[ <unit>]`); there is no arithmetic and no unit conversion.
package design

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/paramedit/internal/param"
	"github.com/roach88/paramedit/internal/store"
	"github.com/roach88/paramedit/internal/units"
)

// Document is a design document backed by a parameter store.
type Document struct {
	store  *store.Store
	units  *units.Taxonomy
	parser *param.Parser
}

// New creates a document over st. A nil taxonomy selects units.Default().
func New(st *store.Store, tax *units.Taxonomy) *Document {
	if tax == nil {
		tax = units.Default()
	}
	return &Document{
		store:  st,
		units:  tax,
		parser: param.NewParser(tax),
	}
}

// Store returns the underlying parameter store.
func (d *Document) Store() *store.Store {
	return d.store
}

// Units returns the taxonomy the document validates against.
func (d *Document) Units() *units.Taxonomy {
	return d.units
}

// Parser returns a parser bound to the document's taxonomy.
func (d *Document) Parser() *param.Parser {
	return d.parser
}

// ItemByName looks a parameter up by name.
func (d *Document) ItemByName(ctx context.Context, name string) (param.Parameter, bool, error) {
	p, err := d.store.Get(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return param.Parameter{}, false, nil
	}
	if err != nil {
		return param.Parameter{}, false, err
	}
	return p, true, nil
}

// Add creates a parameter. The expression's unit must equal unit.
func (d *Document) Add(ctx context.Context, name, expression, unit, comment string) (param.Parameter, error) {
	if !param.ValidName(name) {
		return param.Parameter{}, fmt.Errorf("add parameter: invalid name %q", name)
	}
	if unit != "" && !d.units.IsValid(unit) {
		return param.Parameter{}, fmt.Errorf("add parameter %q: unknown unit %q", name, unit)
	}

	value, err := d.evaluate(expression, unit)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("add parameter %q: %w", name, err)
	}

	return d.store.Insert(ctx, param.Parameter{
		Name:       name,
		Expression: expression,
		Unit:       unit,
		Value:      value,
		Comment:    comment,
	})
}

// SetExpression updates the expression of an existing parameter.
func (d *Document) SetExpression(ctx context.Context, name, expression string) (param.Parameter, error) {
	p, err := d.store.Get(ctx, name)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("set expression of %q: %w", name, err)
	}

	value, err := d.evaluate(expression, p.Unit)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("set expression of %q: %w", name, err)
	}

	return d.store.UpdateExpression(ctx, name, expression, value)
}

// Delete removes a parameter.
func (d *Document) Delete(ctx context.Context, name string) error {
	return d.store.Delete(ctx, name)
}

// List returns every parameter ordered by name.
func (d *Document) List(ctx context.Context) ([]param.Parameter, error) {
	return d.store.List(ctx)
}

// History returns the change log, optionally filtered by name.
func (d *Document) History(ctx context.Context, name string) ([]param.Change, error) {
	return d.store.History(ctx, name)
}

// IsValidExpression reports whether expression can be assigned to a
// parameter stored in unit. A unitless target accepts bare numbers only; a
// unit target accepts any unit of the same category.
func (d *Document) IsValidExpression(expression, unit string) bool {
	_, exprUnit, err := d.parser.ParseExpression(expression)
	if err != nil {
		return false
	}
	if unit != "" && !d.units.IsValid(unit) {
		return false
	}
	return d.units.Compatible(exprUnit, unit)
}

// FormatValue renders value with precision decimals followed by the unit.
func (d *Document) FormatValue(value float64, unit string, precision int) string {
	if precision < 0 {
		precision = 0
	}
	s := strconv.FormatFloat(value, 'f', precision, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// evaluate parses expression and checks it is stored in exactly unit.
func (d *Document) evaluate(expression, unit string) (float64, error) {
	value, exprUnit, err := d.parser.ParseExpression(expression)
	if err != nil {
		return 0, err
	}
	if exprUnit != unit {
		return 0, fmt.Errorf("expression %q is in %q but the parameter is stored in %q; unit conversion is not supported",
			expression, exprUnit, unit)
	}
	return value, nil
}
