package addin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/paramedit/internal/dialog"
)

// genCommand records which build generation handled each execute.
type genCommand struct {
	stubCommand
	seen *[]int
}

func (c genCommand) OnExecute(context.Context, *dialog.Inputs) bool {
	*c.seen = append(*c.seen, c.gen)
	return true
}

func TestPanelCommand_FollowsReload(t *testing.T) {
	ctx := context.Background()
	var seen []int
	builds := 0
	factory := func(def Definition, _ *Registry) dialog.Command {
		builds++
		return genCommand{stubCommand: stubCommand{def: def, gen: builds}, seen: &seen}
	}
	r := NewRegistry(BaseDefinition, NewToolbar(), factory,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, r.Run(ctx))

	solid := DefaultWorkspaces[0]
	pc := PanelCommand{Registry: r, PanelID: solid.PanelID}

	require.True(t, pc.OnExecute(ctx, dialog.NewInputs()))
	require.NoError(t, r.Reload(ctx))
	require.True(t, pc.OnExecute(ctx, dialog.NewInputs()))

	require.Len(t, seen, 2)
	assert.Equal(t, 1, seen[0])
	assert.Equal(t, len(DefaultWorkspaces)+1, seen[1], "second call reaches the rebuilt command")
}

func TestPanelCommand_UnknownPanel(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t, NewToolbar())
	pc := PanelCommand{Registry: r, PanelID: "NoSuchPanel"}

	assert.Error(t, pc.OnCreate(ctx, dialog.NewInputs()))
	assert.False(t, pc.OnPreview(ctx, dialog.NewInputs()))
	assert.False(t, pc.OnExecute(ctx, dialog.NewInputs()))
	assert.False(t, pc.OnDestroy(ctx, dialog.ReasonCompleted))
}
