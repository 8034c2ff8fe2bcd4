package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Scenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			require.Equal(t, name, s.Name, "scenario name matches its file")

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestAssertGolden_ExistingResult(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/field_edits.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	AssertGolden(t, s.Name, result)
}

func TestTranscript_Comments(t *testing.T) {
	s := &Scenario{
		Name:        "comments",
		Description: "comments are shown in the state section",
		Steps:       []Step{{Command: "w = 1 mm"}},
	}
	result, err := Run(s)
	require.NoError(t, err)

	result.State[0].Comment = "overall width"
	out := string(Transcript(s.Name, result))
	assert.Contains(t, out, "  w = 1 mm [LENGTH] // overall width\n")
	assert.True(t, strings.HasPrefix(out, "scenario: comments\nstep 1: w = 1 mm -> created\n"))
}

func TestGoldenFilesHaveScenarios(t *testing.T) {
	goldens, err := filepath.Glob("testdata/golden/*.golden")
	require.NoError(t, err)

	for _, g := range goldens {
		name := strings.TrimSuffix(filepath.Base(g), ".golden")
		_, err := os.Stat(filepath.Join("testdata/scenarios", name+".yaml"))
		assert.NoError(t, err, "golden file %s has no scenario", g)
	}
}
