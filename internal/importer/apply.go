package importer

import (
	"context"
	"fmt"

	"github.com/roach88/paramedit/internal/mutator"
)

// Applied is the result of applying one entry.
type Applied struct {
	Entry   Entry
	Outcome mutator.Outcome
	Err     error
}

// Apply runs every entry through m in order. Entries that fail are reported
// and do not stop the import.
func Apply(ctx context.Context, m *mutator.Mutator, entries []Entry) []Applied {
	out := make([]Applied, 0, len(entries))
	for _, e := range entries {
		a := Applied{Entry: e}

		rec, err := m.Parser().Parse(e.Command())
		if err != nil {
			a.Err = err
			out = append(out, a)
			continue
		}
		rec.Comment = e.Comment

		a.Outcome, a.Err = m.Apply(ctx, rec)
		out = append(out, a)
	}
	return out
}

// Failed counts the entries that were not applied.
func Failed(results []Applied) int {
	n := 0
	for _, a := range results {
		if a.Err != nil {
			n++
		}
	}
	return n
}

// String summarises an applied entry for reports.
func (a Applied) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s: error: %v", a.Entry.Name, a.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", a.Entry.Name, a.Outcome, a.Entry.Value)
}
