package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/paramedit/internal/importer"
)

// ImportResult is the outcome of importing a parameter file.
type ImportResult struct {
	Files   int              `json:"files"`
	Results []MutationResult `json:"results"`
	Failed  int              `json:"failed"`
}

func (r ImportResult) String() string {
	lines := []string{fmt.Sprintf("Imported %d parameter(s) from %d file(s), %d failed",
		len(r.Results)-r.Failed, r.Files, r.Failed)}
	for _, res := range r.Results {
		lines = append(lines, "  "+res.String())
	}
	return strings.Join(lines, "\n")
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.cue|dir>",
		Short: "Import parameters from CUE",
		Long: `Import parameters from a CUE file or directory.

The file declares a parameters struct with string or numeric values and an
optional comments struct:

  parameters: {
      width: "120 mm"
      count: 4
  }
  comments: width: "overall width"

Each parameter is applied like "name = value", with the same unit rules.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	loaded, err := importer.Load(path)
	if err != nil {
		code := ErrCodeImport
		var le *importer.LoadError
		if errors.As(err, &le) && le.Code == importer.ErrCodeNotFound {
			code = ErrCodeNotFound
		}
		if outErr := f.Error(code, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "import failed", err)
	}
	f.VerboseLog("Found %d CUE file(s), %d parameter(s) in %s", loaded.FileCount, len(loaded.Entries), path)

	s, err := openOrReport(opts, f)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	applied := importer.Apply(ctx, s.mutator, loaded.Entries)

	result := ImportResult{Files: loaded.FileCount, Results: make([]MutationResult, 0, len(applied))}
	for _, a := range applied {
		cmdText := a.Entry.Command()
		if a.Err != nil {
			result.Failed++
			result.Results = append(result.Results, MutationResult{Command: cmdText, Outcome: a.Outcome.String(), Error: errorFor(a.Err)})
			continue
		}
		res, err := describe(ctx, s, cmdText, a.Entry.Name, a.Outcome)
		if err != nil {
			return f.Fail("import failed", err)
		}
		result.Results = append(result.Results, res)
	}

	if err := f.Success(result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d parameters failed", result.Failed, len(result.Results)))
	}
	return nil
}
