package addin

import (
	"context"
	"fmt"

	"github.com/roach88/paramedit/internal/dialog"
)

// PanelCommand runs the dialog lifecycle on whichever command is installed
// on a panel when each call is made. A dialog opened through it keeps
// working across Registry.Reload, which replaces every command.
type PanelCommand struct {
	Registry *Registry
	PanelID  string
}

var _ dialog.Command = PanelCommand{}

func (c PanelCommand) current() (dialog.Command, bool) {
	e, ok := c.Registry.ForPanel(c.PanelID)
	if !ok || e.Command == nil {
		return nil, false
	}
	return e.Command, true
}

func (c PanelCommand) OnCreate(ctx context.Context, in *dialog.Inputs) error {
	cmd, ok := c.current()
	if !ok {
		return fmt.Errorf("no command on panel %s", c.PanelID)
	}
	return cmd.OnCreate(ctx, in)
}

func (c PanelCommand) OnPreview(ctx context.Context, in *dialog.Inputs) bool {
	cmd, ok := c.current()
	return ok && cmd.OnPreview(ctx, in)
}

func (c PanelCommand) OnExecute(ctx context.Context, in *dialog.Inputs) bool {
	cmd, ok := c.current()
	return ok && cmd.OnExecute(ctx, in)
}

func (c PanelCommand) OnDestroy(ctx context.Context, reason dialog.TerminationReason) bool {
	cmd, ok := c.current()
	return ok && cmd.OnDestroy(ctx, reason)
}
