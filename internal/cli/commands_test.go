package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSetCommand(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, db, "", "set", "width", "120mm", "--comment", "overall")
	require.NoError(t, err)
	assert.Equal(t, "created width = 120 mm\n", out)

	out, err = runCLI(t, db, "", "set", "width", "130", "mm")
	require.NoError(t, err)
	assert.Equal(t, "updated width = 130 mm\n", out)

	out, err = runCLI(t, db, "", "show", "width")
	require.NoError(t, err)
	assert.Contains(t, out, "Comment: overall")
}

func TestSetCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unit to unitless", []string{"set", "width", "5"}, "INVALID_CONVERSION"},
		{"unknown unit", []string{"set", "depth", "10zz"}, "UNKNOWN_UNIT"},
		{"not a number", []string{"set", "depth", "xyz"}, "FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := tempDB(t)
			_, err := runCLI(t, db, "", "set", "width", "10mm")
			require.NoError(t, err)

			out, err := runCLI(t, db, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}

func TestSetCommand_JSON(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "", "--format", "json", "set", "angle", "30", "deg")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   MutationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "created", resp.Data.Outcome)
	require.NotNil(t, resp.Data.Parameter)
	assert.Equal(t, "30 deg", resp.Data.Parameter.Expression)
	assert.Equal(t, "ANGLE", resp.Data.Parameter.Category)
}

func TestDeleteCommand(t *testing.T) {
	db := tempDB(t)
	_, err := runCLI(t, db, "", "set", "w", "1mm")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "del", "w")
	require.NoError(t, err)
	assert.Equal(t, "deleted w\n", out)

	out, err = runCLI(t, db, "", "del", "w")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]")
}

func TestExecCommand_Stdin(t *testing.T) {
	db := tempDB(t)
	stdin := "a = 1 mm\n# comment\n\nb = 2\nbad\ndel a\n"

	out, err := runCLI(t, db, stdin, "exec")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "a = 1 mm: created a = 1 mm")
	assert.Contains(t, out, "b = 2: created b = 2")
	assert.Contains(t, out, "bad: Error [FORMAT]")
	assert.Contains(t, out, "del a: deleted a")

	out, err = runCLI(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "b")
	assert.NotContains(t, out, "1 mm")
}

func TestExecCommand_Arg(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "", "exec", "w = 10 mm")
	require.NoError(t, err)
	assert.Equal(t, "w = 10 mm: created w = 10 mm\n", out)
}

func TestExecCommand_Reload(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "", "exec", "reload")
	require.Error(t, err)
	assert.Contains(t, out, "Error ["+ErrCodeReload+"]")
}

func TestListCommand(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, db, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "No parameters.\n", out)

	_, err = runCLI(t, db, "", "exec", "width = 120 mm")
	require.NoError(t, err)
	_, err = runCLI(t, db, "", "exec", "count = 4")
	require.NoError(t, err)

	out, err = runCLI(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "120 mm")
	assert.Contains(t, out, "LENGTH")
	assert.Contains(t, out, "NO_UNITS")
	assert.Less(t, strings.Index(out, "count"), strings.Index(out, "width"))
}

func TestShowCommand_NotFound(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "", "show", "missing")
	require.Error(t, err)
	assert.Contains(t, out, "Error [NOT_FOUND]")
}

func TestUnitsCommand(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, db, "", "units")
	require.NoError(t, err)
	assert.Contains(t, out, "LENGTH")
	assert.Contains(t, out, "ANGLE")

	out, err = runCLI(t, db, "", "units", "length")
	require.NoError(t, err)
	assert.Contains(t, out, "mm")
	assert.NotContains(t, out, "ANGLE")

	out, err = runCLI(t, db, "", "units", "colour")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "unknown unit category")
}

func TestHistoryCommand(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, db, "", "history")
	require.NoError(t, err)
	assert.Equal(t, "No changes.\n", out)

	_, err = runCLI(t, db, "a = 1\na = 2 mm\nb = 3\n", "exec")
	require.NoError(t, err)

	out, err = runCLI(t, db, "", "history", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 create a = 1")
	assert.Contains(t, out, "#2 delete a (was 1)")
	assert.Contains(t, out, "#3 create a = 2 mm")
	assert.NotContains(t, out, "b = 3")
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "params.cue")
	writeFile(t, file, `parameters: {
	width: "120 mm"
	count: 4
	bad:   "3 zz"
}
comments: width: "overall width"
`)
	db := tempDB(t)

	out, err := runCLI(t, db, "", "import", file)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Imported 2 parameter(s) from 1 file(s), 1 failed")
	assert.Contains(t, out, "created width = 120 mm")
	assert.Contains(t, out, "Error [UNKNOWN_UNIT]")

	out, err = runCLI(t, db, "", "show", "width")
	require.NoError(t, err)
	assert.Contains(t, out, "Comment: overall width")
}

func TestImportCommand_Missing(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "", "import", filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeNotFound+"]")
}

func TestScenarioCommand(t *testing.T) {
	scenarios := filepath.Join("..", "harness", "testdata", "scenarios")
	golden := filepath.Join("..", "harness", "testdata", "golden")

	out, err := runCLI(t, tempDB(t), "", "scenario", scenarios, "--golden", golden)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ unit_transitions")
	assert.Contains(t, out, "✓ field_edits")
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
}

func TestScenarioCommand_FilterAndUpdate(t *testing.T) {
	scenarios := filepath.Join("..", "harness", "testdata", "scenarios")
	golden := t.TempDir()

	out, err := runCLI(t, tempDB(t), "", "scenario", scenarios, "--filter", "field_*", "--golden", golden, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
	assert.FileExists(t, filepath.Join(golden, "field_edits.golden"))
	assert.NoFileExists(t, filepath.Join(golden, "unit_transitions.golden"))
}

func TestScenarioCommand_Failure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), `name: broken
description: "expects an update where a create happens"
steps:
  - command: "w = 10 mm"
    expect:
      outcome: updated
`)

	out, err := runCLI(t, tempDB(t), "", "scenario", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ broken")
	assert.NotContains(t, out, "failed to load scenario")
}

func TestScenarioCommand_MissingPath(t *testing.T) {
	_, err := runCLI(t, tempDB(t), "", "scenario", filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEditCommand(t *testing.T) {
	db := tempDB(t)
	_, err := runCLI(t, db, "", "set", "w", "10mm")
	require.NoError(t, err)

	out, err := runCLI(t, db, "w = 12 mm\n.w 12\nh = 3 deg\nquit\n", "edit", "--workspace", "sketch")
	require.NoError(t, err)
	assert.Contains(t, out, "✗ invalid")

	out, err = runCLI(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "12 mm")
	assert.Contains(t, out, "3 deg")
}

func TestEditCommand_ContinuesAfterReload(t *testing.T) {
	db := tempDB(t)

	_, err := runCLI(t, db, "reload\nw = 4 mm\nquit\n", "edit")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "show", "w")
	require.NoError(t, err)
	assert.Contains(t, out, "4 mm")
}

func TestEditCommand_UnknownWorkspace(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "", "edit", "--workspace", "cam")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeWorkspace+"]")
}
