package mutator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/paramedit/internal/param"
)

// Outcome describes what Apply did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCreated
	OutcomeUpdated
	OutcomeRecreated
	OutcomeDeleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeRecreated:
		return "recreated"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "none"
	}
}

// Mutator applies records to a ParameterStore.
type Mutator struct {
	store  ParameterStore
	units  UnitsManager
	parser *param.Parser
	logger *slog.Logger
}

// Option configures a Mutator.
type Option func(*Mutator)

// WithParser sets the parser used for field updates.
func WithParser(p *param.Parser) Option {
	return func(m *Mutator) {
		m.parser = p
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Mutator) {
		m.logger = l
	}
}

// New creates a mutator over a store and units manager.
func New(store ParameterStore, units UnitsManager, opts ...Option) *Mutator {
	m := &Mutator{
		store:  store,
		units:  units,
		parser: param.NewParser(nil),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Parser returns the parser the mutator validates field text with.
func (m *Mutator) Parser() *param.Parser {
	return m.parser
}

// Apply creates or updates the parameter named by rec.
func (m *Mutator) Apply(ctx context.Context, rec param.Record) (Outcome, error) {
	existing, ok, err := m.store.ItemByName(ctx, rec.Name)
	if err != nil {
		return OutcomeNone, fmt.Errorf("lookup parameter %q: %w", rec.Name, err)
	}

	expr := rec.Expression()

	if !ok {
		if _, err := m.store.Add(ctx, rec.Name, expr, rec.Unit, rec.Comment); err != nil {
			return OutcomeNone, fmt.Errorf("failed to create parameter %q: %w", rec.Name, err)
		}
		m.logger.Info("parameter created", "name", rec.Name, "expression", expr)
		return OutcomeCreated, nil
	}

	if !existing.Unitless() && rec.Unitless() {
		return OutcomeNone, &param.InvalidConversionError{Name: rec.Name, From: existing.Unit, To: ""}
	}

	if existing.Unit == rec.Unit {
		if _, err := m.store.SetExpression(ctx, rec.Name, expr); err != nil {
			return OutcomeNone, fmt.Errorf("failed to update parameter %q: %w", rec.Name, err)
		}
		m.logger.Info("parameter updated", "name", rec.Name, "expression", expr)
		return OutcomeUpdated, nil
	}

	// The host cannot change a parameter's unit type in place.
	if err := m.recreate(ctx, existing, rec); err != nil {
		return OutcomeNone, err
	}
	m.logger.Info("parameter recreated",
		"name", rec.Name,
		"old_unit", existing.Unit,
		"new_unit", rec.Unit,
		"expression", expr,
	)
	return OutcomeRecreated, nil
}

func (m *Mutator) recreate(ctx context.Context, existing param.Parameter, rec param.Record) error {
	expr := rec.Expression()
	comment := rec.Comment
	if comment == "" {
		comment = existing.Comment
	}
	fail := func(err error) error {
		return &RecreateError{Name: rec.Name, OldUnit: existing.Unit, Expression: expr, Err: err}
	}

	if err := m.Delete(ctx, existing.Name); err != nil {
		return fail(err)
	}

	if _, err := m.store.Add(ctx, rec.Name, expr, rec.Unit, comment); err != nil {
		if _, restoreErr := m.store.Add(ctx, existing.Name, existing.Expression, existing.Unit, existing.Comment); restoreErr != nil {
			m.logger.Error("failed to restore parameter after recreate error",
				"name", existing.Name,
				"expression", existing.Expression,
				"error", restoreErr,
			)
		}
		return fail(err)
	}
	return nil
}

// Delete removes a parameter and verifies it is gone.
func (m *Mutator) Delete(ctx context.Context, name string) error {
	_, ok, err := m.store.ItemByName(ctx, name)
	if err != nil {
		return fmt.Errorf("lookup parameter %q: %w", name, err)
	}
	if !ok {
		return &param.NotFoundError{Name: name}
	}

	delErr := m.store.Delete(ctx, name)

	_, still, err := m.store.ItemByName(ctx, name)
	if err != nil {
		return fmt.Errorf("verify delete of %q: %w", name, err)
	}
	if still {
		m.logger.Warn("parameter still present after delete", "name", name, "error", delErr)
		return &param.DeleteRefusedError{Name: name, Err: delErr}
	}
	if delErr != nil {
		m.logger.Warn("delete reported an error but parameter is gone", "name", name, "error", delErr)
	}

	m.logger.Info("parameter deleted", "name", name)
	return nil
}

// Check validates rec against the current document without mutating it.
func (m *Mutator) Check(ctx context.Context, rec param.Record) error {
	existing, ok, err := m.store.ItemByName(ctx, rec.Name)
	if err != nil {
		return fmt.Errorf("lookup parameter %q: %w", rec.Name, err)
	}
	if ok && !existing.Unitless() && rec.Unitless() {
		return &param.InvalidConversionError{Name: rec.Name, From: existing.Unit, To: ""}
	}

	expr := rec.Expression()
	if !m.units.IsValidExpression(expr, rec.Unit) {
		return &param.FormatError{Input: expr, Reason: "expression is not valid for unit " + unitLabel(rec.Unit)}
	}
	return nil
}

// ValidField reports whether text is an acceptable edit for p.
func (m *Mutator) ValidField(p param.Parameter, text string) bool {
	return m.units.IsValidExpression(text, p.Unit)
}

// UpdateFields applies direct edits keyed by parameter name. Fields that
// parse to the current value and unit are skipped, so "10mm" over a stored
// "10 mm" writes nothing. Every field is attempted;
// failures are returned together as FieldErrors. The number of parameters
// changed is returned alongside.
func (m *Mutator) UpdateFields(ctx context.Context, fields map[string]string) (int, error) {
	params, err := m.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list parameters: %w", err)
	}

	var (
		applied int
		errs    FieldErrors
	)
	for _, p := range params {
		text, ok := fields[p.Name]
		if !ok {
			continue
		}
		text = strings.TrimSpace(text)
		if text == p.Expression {
			continue
		}

		rec, err := m.parser.Parse(p.Name + "=" + text)
		if err != nil {
			errs = append(errs, FieldError{Name: p.Name, Err: err})
			continue
		}
		if unchanged(m.parser, p, rec) {
			continue
		}
		rec.Comment = p.Comment

		if _, err := m.Apply(ctx, rec); err != nil {
			errs = append(errs, FieldError{Name: p.Name, Err: err})
			continue
		}
		applied++
	}

	if len(errs) > 0 {
		m.logger.Warn("field update rejected", "invalid", len(errs), "applied", applied)
	}
	return applied, errs.orNil()
}

// unchanged reports whether rec holds the value and unit p already has.
func unchanged(parser *param.Parser, p param.Parameter, rec param.Record) bool {
	value, unit, err := parser.ParseExpression(p.Expression)
	return err == nil && value == rec.Value && unit == rec.Unit
}

func unitLabel(unit string) string {
	if unit == "" {
		return "(no units)"
	}
	return unit
}
