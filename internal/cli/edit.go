package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/paramedit/internal/addin"
	"github.com/roach88/paramedit/internal/dialog"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Workspace string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the parameter dialog",
		Long: `Open the interactive parameter dialog on the console.

Each line is one dialog round: type a command ("w = 10 mm", "del w",
"reload") or edit a parameter field with ".name value". The dialog
re-opens after every successful round; "quit" closes it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Workspace, "workspace", "Solid", "workspace whose command is opened")

	return cmd
}

func runEdit(opts *EditOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	ws, ok := findWorkspace(opts.Workspace)
	if !ok {
		msg := fmt.Sprintf("unknown workspace %q", opts.Workspace)
		if err := f.Error(ErrCodeWorkspace, msg, nil); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, msg)
	}

	s, err := openOrReport(opts.RootOptions, f)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	console := dialog.NewConsole(cmd.InOrStdin(), out, nil)

	factory := func(def addin.Definition, r *addin.Registry) dialog.Command {
		return dialog.ParamEdit{
			Mutator:   s.mutator,
			Store:     s.doc,
			Units:     s.doc,
			Taxonomy:  s.doc.Units(),
			Messenger: console.Notices,
			Reloader:  r,
			Logger:    s.logger.With("command", def.ID),
			Precision: s.cfg.Display.Precision,
		}
	}

	registry := addin.NewRegistry(addin.BaseDefinition, addin.NewToolbar(), factory, addin.WithLogger(s.logger))
	if err := registry.Run(ctx); err != nil {
		return f.Fail("start commands", err)
	}
	defer registry.Stop(ctx)

	if _, ok := registry.ForPanel(ws.PanelID); !ok {
		return NewExitError(ExitCommandError, "no command on panel "+ws.PanelID)
	}

	// A reload replaces the panel's command; the console resolves it per round.
	console.Command = addin.PanelCommand{Registry: registry, PanelID: ws.PanelID}
	if err := console.Run(ctx); err != nil {
		return WrapExitError(ExitCommandError, "dialog failed", err)
	}
	return nil
}

func findWorkspace(name string) (addin.Workspace, bool) {
	for _, ws := range addin.DefaultWorkspaces {
		if strings.EqualFold(ws.Name, name) {
			return ws, true
		}
	}
	return addin.Workspace{}, false
}
