package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/paramedit/internal/mutator"
	"github.com/roach88/paramedit/internal/param"
	"github.com/roach88/paramedit/internal/units"
)

// Input identifiers.
const (
	CommandGroupID   = "command_input_container"
	CommandFieldID   = "command_input_field"
	ParameterGroupID = "parameter_fields_container"
)

// DefaultPrecision is the number of decimals in tooltip values.
const DefaultPrecision = 6

// ParamEdit is the user-parameter dialog.
type ParamEdit struct {
	Mutator   *mutator.Mutator
	Store     mutator.ParameterStore
	Units     mutator.UnitsManager
	Taxonomy  *units.Taxonomy
	Messenger Messenger
	// Reloader is optional; without it reload commands report an error.
	Reloader  Reloader
	Logger    *slog.Logger
	Precision int
}

var _ Command = ParamEdit{}

func (p ParamEdit) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p ParamEdit) taxonomy() *units.Taxonomy {
	if p.Taxonomy == nil {
		return units.Default()
	}
	return p.Taxonomy
}

func (p ParamEdit) message(msg string) {
	p.logger().Debug("message box", "message", msg)
	if p.Messenger != nil {
		p.Messenger.MessageBox(msg)
	}
}

// OnCreate builds the command field and one field per parameter, sorted by
// name.
func (p ParamEdit) OnCreate(ctx context.Context, in *Inputs) error {
	params, err := p.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("list parameters: %w", err)
	}

	cmdGroup := in.AddGroup(CommandGroupID, "Command Input [tab to focus]")
	cmdField := cmdGroup.AddStringField(CommandFieldID, "Parameter Command", "")
	cmdField.Tooltip = "Hover for usage examples"
	cmdField.TooltipDescription = param.HelpText

	paramGroup := in.AddGroup(ParameterGroupID, "User Parameters")
	for _, prm := range params {
		f := paramGroup.AddStringField(prm.Name, prm.Name, prm.Expression)
		f.Tooltip = p.Tooltip(prm)
	}
	return nil
}

// Tooltip describes a parameter's category, storage unit, expression and
// computed value.
func (p ParamEdit) Tooltip(prm param.Parameter) string {
	stored := prm.Unit
	var computed string
	if prm.Unitless() {
		stored = "(no units)"
		computed = fmt.Sprintf("%.6g", prm.Value)
	} else {
		precision := p.Precision
		if precision == 0 {
			precision = DefaultPrecision
		}
		computed = p.Units.FormatValue(prm.Value, prm.Unit, precision)
	}

	return fmt.Sprintf("Parameter Type: %s\nStored As: %s\nCurrent Expression: %s\nComputed Value: %s",
		p.taxonomy().CategoryOf(prm.Unit), stored, prm.Expression, computed)
}

// OnPreview validates the command field first, then every parameter field.
func (p ParamEdit) OnPreview(ctx context.Context, in *Inputs) bool {
	if !p.validateCommand(ctx, in.Group(CommandGroupID).Field(CommandFieldID)) {
		return false
	}
	return p.validateParameterFields(ctx, in.Group(ParameterGroupID))
}

func (p ParamEdit) validateCommand(ctx context.Context, f *Field) bool {
	if f == nil || f.Value == "" {
		return true
	}

	cmd := param.Classify(f.Value)
	switch cmd.Kind {
	case param.KindEmpty, param.KindReload, param.KindDelete:
		f.ValueError = false
		return true
	case param.KindSet:
		rec, err := p.Mutator.Parser().Parse(cmd.Raw)
		if err == nil {
			err = p.Mutator.Check(ctx, rec)
		}
		if err != nil {
			p.logger().Debug("command validation failed", "input", f.Value, "error", err)
			f.ValueError = true
			return false
		}
		f.ValueError = false
		return true
	default:
		f.ValueError = true
		return false
	}
}

func (p ParamEdit) validateParameterFields(ctx context.Context, g *Group) bool {
	if g == nil {
		return true
	}

	params, err := p.Store.List(ctx)
	if err != nil {
		p.logger().Error("parameter validation failed", "error", err)
		return false
	}

	valid := true
	for _, prm := range params {
		f := g.Field(prm.Name)
		if f == nil {
			continue
		}
		ok := p.Mutator.ValidField(prm, f.Value)
		f.ValueError = !ok
		if !ok {
			p.logger().Debug("invalid parameter field", "name", prm.Name, "value", f.Value)
			valid = false
		}
	}
	return valid
}

// OnExecute runs the command field, then the field edits unless the command
// was a set command.
func (p ParamEdit) OnExecute(ctx context.Context, in *Inputs) bool {
	f := in.Group(CommandGroupID).Field(CommandFieldID)
	if f == nil || strings.TrimSpace(f.Value) == "" {
		return p.processFieldUpdates(ctx, in)
	}

	cmd := param.Classify(f.Value)
	p.logger().Debug("processing command input", "input", cmd.Raw, "kind", cmd.Kind.String())

	if cmd.Kind == param.KindReload {
		return p.reload(ctx)
	}

	ok := p.processCommand(ctx, cmd)
	if cmd.Kind != param.KindSet {
		ok = p.processFieldUpdates(ctx, in) && ok
	}
	return ok
}

func (p ParamEdit) processCommand(ctx context.Context, cmd param.Command) bool {
	switch cmd.Kind {
	case param.KindSet:
		rec, err := p.Mutator.Parser().Parse(cmd.Raw)
		if err == nil {
			_, err = p.Mutator.Apply(ctx, rec)
		}
		if err != nil {
			p.message(fmt.Sprintf("Parameter validation error for input: %s - %v", cmd.Raw, err))
			return false
		}
		return true

	case param.KindDelete:
		err := p.Mutator.Delete(ctx, cmd.Target)
		switch {
		case err == nil:
			return true
		case param.IsNotFoundError(err):
			p.message("Parameter not found: " + cmd.Target)
		default:
			p.message(fmt.Sprintf("Unable to delete parameter: %v", err))
		}
		return false

	default:
		p.message("Unable to evaluate expression: " + cmd.Raw)
		return false
	}
}

func (p ParamEdit) processFieldUpdates(ctx context.Context, in *Inputs) bool {
	g := in.Group(ParameterGroupID)
	if g == nil {
		return true
	}

	fields := make(map[string]string, len(g.Children))
	for _, f := range g.Children {
		fields[f.ID] = f.Value
	}

	_, err := p.Mutator.UpdateFields(ctx, fields)
	if err == nil {
		return true
	}

	var fe mutator.FieldErrors
	if errors.As(err, &fe) {
		p.message(fe.Error())
	} else {
		p.logger().Error("error updating parameters", "error", err)
		p.message(fmt.Sprintf("Unable to update parameters: %v", err))
	}
	return false
}

func (p ParamEdit) reload(ctx context.Context) bool {
	p.logger().Info("*** Restarting ParamEdit ***")
	if p.Reloader == nil {
		p.message("Failed to reload add-in: add-in not found")
		return false
	}
	if err := p.Reloader.Reload(ctx); err != nil {
		p.message(fmt.Sprintf("Failed to reload add-in: %v", err))
		return false
	}
	return true
}

// OnDestroy reopens the dialog after a normal completion.
func (p ParamEdit) OnDestroy(_ context.Context, reason TerminationReason) bool {
	if reason == ReasonCompleted {
		p.logger().Debug("command completed normally, re-opening dialog")
		return true
	}
	p.logger().Debug("command terminated, not restarting", "reason", reason.String())
	return false
}
