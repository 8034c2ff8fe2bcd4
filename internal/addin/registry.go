package addin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/paramedit/internal/dialog"
)

// Factory builds the dialog command for a definition. The registry is
// passed so commands can reload it.
type Factory func(def Definition, r *Registry) dialog.Command

// Entry is a registered definition and its command.
type Entry struct {
	Definition Definition
	Command    dialog.Command
}

// Registry owns the commands installed in a Host.
type Registry struct {
	host       Host
	factory    Factory
	base       Definition
	workspaces []Workspace
	defs       []Definition
	entries    []Entry
	running    bool
	logger     *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithWorkspaces replaces DefaultWorkspaces.
func WithWorkspaces(ws []Workspace) RegistryOption {
	return func(r *Registry) {
		r.workspaces = ws
	}
}

// NewRegistry clones base into every default workspace and builds the
// commands with factory.
func NewRegistry(base Definition, host Host, factory Factory, opts ...RegistryOption) *Registry {
	r := &Registry{
		host:       host,
		factory:    factory,
		base:       base,
		workspaces: DefaultWorkspaces,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.defs = cloneAll(r.base, r.workspaces)
	r.build()
	return r
}

func cloneAll(base Definition, workspaces []Workspace) []Definition {
	defs := make([]Definition, 0, len(workspaces))
	for _, ws := range workspaces {
		defs = append(defs, base.ForWorkspace(ws))
	}
	return defs
}

func (r *Registry) build() {
	r.entries = make([]Entry, 0, len(r.defs))
	for _, def := range r.defs {
		r.entries = append(r.entries, Entry{Definition: def, Command: r.factory(def, r)})
	}
}

// Run installs every command. All entries are attempted; failures are
// joined.
func (r *Registry) Run(ctx context.Context) error {
	if r.running {
		return nil
	}

	var errs []error
	for _, e := range r.entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := r.host.AddButton(e.Definition); err != nil {
			errs = append(errs, fmt.Errorf("run %s: %w", e.Definition.ID, err))
			continue
		}
		r.logger.Debug("command installed", "id", e.Definition.ID, "panel", e.Definition.PanelID)
	}
	r.running = true

	r.logger.Info("ParamEditPlus startup", "commands", len(r.entries))
	return errors.Join(errs...)
}

// Stop removes every command from the host.
func (r *Registry) Stop(ctx context.Context) error {
	if !r.running {
		return nil
	}

	var errs []error
	for _, e := range r.entries {
		if err := r.host.RemoveButton(e.Definition); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", e.Definition.ID, err))
			continue
		}
		r.logger.Debug("command removed", "id", e.Definition.ID)
	}
	r.running = false
	return errors.Join(errs...)
}

// Reload stops the registry, rebuilds the commands and runs it again.
func (r *Registry) Reload(ctx context.Context) error {
	if err := r.Stop(ctx); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	r.build()
	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	r.logger.Info("add-in reloaded")
	return nil
}

// Running reports whether the commands are installed.
func (r *Registry) Running() bool {
	return r.running
}

// Entries returns the registered entries in workspace order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the entry with the given definition ID.
func (r *Registry) Lookup(id string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Definition.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// ForPanel returns the entry installed on panelID.
func (r *Registry) ForPanel(panelID string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Definition.PanelID == panelID {
			return e, true
		}
	}
	return Entry{}, false
}

var _ dialog.Reloader = (*Registry)(nil)
