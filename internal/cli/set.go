package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/paramedit/internal/mutator"
	"github.com/roach88/paramedit/internal/param"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Comment string
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Create or update a parameter",
		Long: `Create or update a user parameter.

The value is a number with an optional unit. A unitless parameter can gain
a unit; a parameter with a unit cannot become unitless. Changing to a
different unit deletes and re-creates the parameter.

Examples:
  paramedit set width 120mm
  paramedit set count 4
  paramedit set angle 30 deg --comment "draft angle"`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args[0], strings.Join(args[1:], " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Comment, "comment", "", "parameter comment")

	return cmd
}

func runSet(opts *SetOptions, name, value string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	s, err := openOrReport(opts.RootOptions, f)
	if err != nil {
		return err
	}
	defer s.Close()

	input := name + " = " + value
	rec, err := s.mutator.Parser().Parse(input)
	if err != nil {
		return f.Fail("set failed", err)
	}
	rec.Comment = opts.Comment

	ctx := cmd.Context()
	outcome, err := s.mutator.Apply(ctx, rec)
	if err != nil {
		return f.Fail("set failed", err)
	}

	result, err := describe(ctx, s, input, rec.Name, outcome)
	if err != nil {
		return f.Fail("set failed", err)
	}
	return f.Success(result)
}

// NewDeleteCommand creates the del command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "del <name>",
		Aliases: []string{"delete"},
		Short:   "Delete a parameter",
		Long: `Delete a user parameter.

The delete is refused if another parameter's expression refers to it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
}

func runDelete(opts *RootOptions, name string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	s, err := openOrReport(opts, f)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.mutator.Delete(cmd.Context(), name); err != nil {
		return f.Fail("delete failed", err)
	}
	return f.Success(MutationResult{Command: "del " + name, Outcome: mutator.OutcomeDeleted.String() + " " + name})
}

// ExecResult is the outcome of a batch of commands.
type ExecResult struct {
	Results []MutationResult `json:"results"`
	Failed  int              `json:"failed"`
}

func (r ExecResult) String() string {
	lines := make([]string, len(r.Results))
	for i, res := range r.Results {
		lines[i] = fmt.Sprintf("%s: %s", res.Command, res)
	}
	return strings.Join(lines, "\n")
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [command]",
		Short: "Run parameter commands",
		Long: `Run one parameter command, or one command per line from stdin.

Commands use the dialog syntax:
  name = value[unit]   create or update a parameter
  del name             delete a parameter

Blank lines and lines starting with # are skipped. Every line is attempted;
the exit code is 1 if any failed.

Examples:
  paramedit exec "width = 120 mm"
  paramedit exec < commands.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runExec(rootOpts, strings.NewReader(args[0]), cmd)
			}
			return runExec(rootOpts, cmd.InOrStdin(), cmd)
		},
	}
}

func runExec(opts *RootOptions, in io.Reader, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	s, err := openOrReport(opts, f)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	result := ExecResult{Results: []MutationResult{}}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res := execLine(ctx, s, line)
		if res.Error != nil {
			result.Failed++
		}
		result.Results = append(result.Results, res)
		f.VerboseLog("%s -> %s", line, res.Outcome)
	}
	if err := scanner.Err(); err != nil {
		return f.Fail("read commands", err)
	}

	if err := f.Success(result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d commands failed", result.Failed, len(result.Results)))
	}
	return nil
}

func execLine(ctx context.Context, s *session, line string) MutationResult {
	outcome, err := s.mutator.Exec(ctx, line)
	if err != nil {
		return MutationResult{Command: line, Outcome: outcome.String(), Error: errorFor(err)}
	}

	cmd := param.Classify(line)
	switch cmd.Kind {
	case param.KindSet:
		rec, err := s.mutator.Parser().Parse(cmd.Raw)
		if err != nil {
			return MutationResult{Command: line, Outcome: outcome.String(), Error: errorFor(err)}
		}
		res, err := describe(ctx, s, line, rec.Name, outcome)
		if err != nil {
			return MutationResult{Command: line, Outcome: outcome.String(), Error: errorFor(err)}
		}
		return res
	case param.KindDelete:
		return MutationResult{Command: line, Outcome: outcome.String() + " " + cmd.Target}
	default:
		return MutationResult{Command: line, Outcome: outcome.String()}
	}
}

// describe reads back a parameter after a successful mutation.
func describe(ctx context.Context, s *session, command, name string, outcome mutator.Outcome) (MutationResult, error) {
	p, ok, err := s.doc.ItemByName(ctx, name)
	if err != nil {
		return MutationResult{}, err
	}
	res := MutationResult{Command: command, Outcome: outcome.String()}
	if ok {
		view := newParameterView(p, s.doc.Units())
		res.Parameter = &view
	}
	return res, nil
}
