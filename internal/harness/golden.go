package harness

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/paramedit/internal/units"
)

// Transcript renders a result as deterministic text: every step with its
// outcome, the final parameters and the change history.
func Transcript(name string, result *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)

	for _, sr := range result.Steps {
		label := "setup"
		if sr.Index > 0 {
			label = fmt.Sprintf("step %d", sr.Index)
		}
		fmt.Fprintf(&b, "%s: %s -> %s\n", label, describeInput(sr), describeResult(sr))
	}

	tax := units.Default()
	b.WriteString("state:\n")
	for _, p := range result.State {
		fmt.Fprintf(&b, "  %s = %s [%s]", p.Name, p.Expression, tax.CategoryOf(p.Unit))
		if p.Comment != "" {
			fmt.Fprintf(&b, " // %s", p.Comment)
		}
		b.WriteString("\n")
	}

	b.WriteString("history:\n")
	for _, c := range result.History {
		fmt.Fprintf(&b, "  %s %s\n", c.ID, c.String())
	}
	return []byte(b.String())
}

func describeInput(sr StepResult) string {
	if sr.Fields == nil {
		return sr.Command
	}
	names := make([]string, 0, len(sr.Fields))
	for name := range sr.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf(".%s %s", name, sr.Fields[name])
	}
	return strings.Join(parts, "; ")
}

func describeResult(sr StepResult) string {
	if sr.Fields != nil {
		s := fmt.Sprintf("applied %d", sr.Applied)
		if len(sr.FieldCodes) > 0 {
			s += "; " + formatCodes(sr.FieldCodes)
		}
		if sr.Code != "" {
			s += "; " + sr.Code
		}
		return s
	}
	if sr.Code != "" {
		return sr.Code
	}
	return sr.Outcome
}

// RunWithGolden executes a scenario and compares its transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's transcript against its golden
// file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Transcript(scenarioName, result))
}
