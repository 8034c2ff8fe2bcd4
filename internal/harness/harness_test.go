package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestRun_PassingScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/unit_transitions.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Steps, 11)
	assert.Equal(t, 0, result.Steps[0].Index)
	assert.Equal(t, 1, result.Steps[2].Index)
	assert.Equal(t, "created", result.Steps[0].Outcome)
	assert.Equal(t, CodeReload, result.Steps[10].Code)
}

func TestRun_FailedExpectations(t *testing.T) {
	s := &Scenario{
		Name:        "wrong_expectations",
		Description: "every expectation is off",
		Setup:       []string{"w = 10 mm"},
		Steps: []Step{
			{Command: "w = 11 mm", Expect: &Expect{Outcome: "created"}},
			{Command: "w = 1", Expect: &Expect{Error: "FORMAT"}},
			{Command: "del nope"},
			{Fields: map[string]string{"w": "3"}, Expect: &Expect{Applied: intPtr(1)}},
		},
		Assertions: []Assertion{
			{Type: AssertParameter, Name: "w", Expression: strPtr("99 mm")},
			{Type: AssertAbsent, Name: "w"},
			{Type: AssertCount, Count: intPtr(5)},
			{Type: AssertHistory, Name: "w", Count: intPtr(1)},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)

	require.Len(t, result.Errors, 9)
	assert.Contains(t, result.Errors[0], "steps[0]: expected outcome created, got updated")
	assert.Contains(t, result.Errors[1], `steps[1]: expected error FORMAT, got "INVALID_CONVERSION"`)
	assert.Contains(t, result.Errors[2], "steps[2]: unexpected error NOT_FOUND")
	assert.Contains(t, result.Errors[3], "steps[3]: unexpected field errors: w: INVALID_CONVERSION")
	assert.Contains(t, result.Errors[4], "steps[3]: expected 1 fields applied, got 0")
	assert.Contains(t, result.Errors[5], `expression "11 mm" != "99 mm"`)
	assert.Contains(t, result.Errors[6], "w absent")
	assert.Contains(t, result.Errors[7], "5 parameters")
	assert.Contains(t, result.Errors[8], "1 changes")
}

func TestRun_FailingSetup(t *testing.T) {
	s := &Scenario{
		Name:        "bad_setup",
		Description: "setup must succeed",
		Setup:       []string{"w = 1 zz"},
		Steps:       []Step{{Command: "w = 1"}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `setup[0] "w = 1 zz"`)
}

func TestRun_IsolatedRuns(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/field_edits.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, Transcript(s.Name, first), Transcript(s.Name, second))
}
