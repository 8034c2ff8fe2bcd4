package mutator

import (
	"context"
	"errors"

	"github.com/roach88/paramedit/internal/param"
)

// ErrReload is returned by Exec for reload commands, which only a dialog
// host can carry out.
var ErrReload = errors.New("reload requested")

// Exec classifies one command line and runs it. Empty input does nothing.
func (m *Mutator) Exec(ctx context.Context, input string) (Outcome, error) {
	cmd := param.Classify(input)
	switch cmd.Kind {
	case param.KindEmpty:
		return OutcomeNone, nil
	case param.KindReload:
		return OutcomeNone, ErrReload
	case param.KindDelete:
		if err := m.Delete(ctx, cmd.Target); err != nil {
			return OutcomeNone, err
		}
		return OutcomeDeleted, nil
	case param.KindSet:
		rec, err := m.parser.Parse(cmd.Raw)
		if err != nil {
			return OutcomeNone, err
		}
		return m.Apply(ctx, rec)
	default:
		return OutcomeNone, &param.FormatError{Input: cmd.Raw, Reason: "unable to evaluate expression"}
	}
}
