package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/roach88/paramedit/internal/dialog"
	"github.com/roach88/paramedit/internal/param"
	"github.com/roach88/paramedit/internal/units"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// ListResult holds every parameter in name order.
type ListResult struct {
	Parameters []ParameterView `json:"parameters"`
}

func (r ListResult) String() string {
	if len(r.Parameters) == 0 {
		return "No parameters."
	}
	t := newTable("NAME", "EXPRESSION", "TYPE", "COMMENT")
	for _, p := range r.Parameters {
		t.Row(p.Name, p.Expression, p.Category, p.Comment)
	}
	return t.String()
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List parameters",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			s, err := openOrReport(rootOpts, f)
			if err != nil {
				return err
			}
			defer s.Close()

			params, err := s.doc.List(cmd.Context())
			if err != nil {
				return f.Fail("list failed", err)
			}
			result := ListResult{Parameters: make([]ParameterView, 0, len(params))}
			for _, p := range params {
				result.Parameters = append(result.Parameters, newParameterView(p, s.doc.Units()))
			}
			return f.Success(result)
		},
	}
}

// ShowResult describes one parameter.
type ShowResult struct {
	Parameter ParameterView  `json:"parameter"`
	Tooltip   string         `json:"tooltip"`
	History   []param.Change `json:"history"`
}

func (r ShowResult) String() string {
	var b strings.Builder
	b.WriteString(r.Tooltip)
	if r.Parameter.Comment != "" {
		fmt.Fprintf(&b, "\nComment: %s", r.Parameter.Comment)
	}
	b.WriteString("\nHistory:")
	for _, c := range r.History {
		fmt.Fprintf(&b, "\n  %s", c)
	}
	return b.String()
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <name>",
		Short:         "Show a parameter with its history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			s, err := openOrReport(rootOpts, f)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			p, ok, err := s.doc.ItemByName(ctx, args[0])
			if err != nil {
				return f.Fail("show failed", err)
			}
			if !ok {
				return f.Fail("show failed", &param.NotFoundError{Name: args[0]})
			}

			history, err := s.doc.History(ctx, p.Name)
			if err != nil {
				return f.Fail("show failed", err)
			}

			tooltip := dialog.ParamEdit{
				Units:     s.doc,
				Taxonomy:  s.doc.Units(),
				Precision: s.cfg.Display.Precision,
			}.Tooltip(p)

			return f.Success(ShowResult{
				Parameter: newParameterView(p, s.doc.Units()),
				Tooltip:   tooltip,
				History:   history,
			})
		},
	}
}

// CategoryView is one unit category.
type CategoryView struct {
	Name  string   `json:"name"`
	Units []string `json:"units"`
}

// UnitsResult lists unit categories.
type UnitsResult struct {
	Categories []CategoryView `json:"categories"`
}

func (r UnitsResult) String() string {
	t := newTable("CATEGORY", "UNITS")
	for _, c := range r.Categories {
		t.Row(c.Name, strings.Join(c.Units, " "))
	}
	return t.String()
}

// NewUnitsCommand creates the units command.
func NewUnitsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "units [category]",
		Short: "List unit categories and symbols",
		Long: `List the unit taxonomy used to validate parameter values.

Examples:
  paramedit units
  paramedit units length`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			tax := units.Default()

			names := tax.Categories()
			if len(args) == 1 {
				want := strings.ToUpper(args[0])
				if len(tax.Units(want)) == 0 {
					if err := f.Error(ErrCodeNotFound, fmt.Sprintf("unknown unit category %q", args[0]), nil); err != nil {
						return err
					}
					return NewExitError(ExitFailure, fmt.Sprintf("unknown unit category %q", args[0]))
				}
				names = []string{want}
			}

			result := UnitsResult{Categories: make([]CategoryView, 0, len(names))}
			for _, name := range names {
				result.Categories = append(result.Categories, CategoryView{Name: name, Units: tax.Units(name)})
			}
			return f.Success(result)
		},
	}
}

// HistoryResult is a slice of the change history.
type HistoryResult struct {
	Changes []param.Change `json:"changes"`
}

func (r HistoryResult) String() string {
	if len(r.Changes) == 0 {
		return "No changes."
	}
	lines := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history [name]",
		Short:         "Show the change history",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			s, err := openOrReport(rootOpts, f)
			if err != nil {
				return err
			}
			defer s.Close()

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			changes, err := s.doc.History(cmd.Context(), name)
			if err != nil {
				return f.Fail("history failed", err)
			}
			if changes == nil {
				changes = []param.Change{}
			}
			return f.Success(HistoryResult{Changes: changes})
		},
	}
}
