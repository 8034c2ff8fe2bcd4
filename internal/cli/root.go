package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/paramedit/internal/config"
	"github.com/roach88/paramedit/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DB         string // overrides config database
	ConfigPath string

	cfg     *config.Config
	logger  *slog.Logger
	cleanup func() error
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the paramedit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "paramedit",
		Short: "paramedit - user parameter editor",
		Long: `Create, modify and delete named design parameters with a one-line
command syntax ("name = value[unit]", "del name", "reload") or by editing
parameter fields directly in the console dialog.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "parameter database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")

	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewUnitsCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewScenarioCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))

	return cmd
}

// setup loads the configuration and installs the process logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := o.config()
	if err != nil {
		return WrapExitError(ExitCommandError, "load configuration", err)
	}

	logger, cleanup, err := logging.Setup(logging.Options{
		Level:      cfg.Log.Level,
		Verbose:    o.Verbose,
		Stderr:     cmd.ErrOrStderr(),
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "configure logging", err)
	}
	slog.SetDefault(logger)
	o.logger = logger
	o.cleanup = cleanup
	return nil
}

func (o *RootOptions) close() error {
	if o.cleanup == nil {
		return nil
	}
	err := o.cleanup()
	o.cleanup = nil
	return err
}

// config returns the resolved configuration, loading it on first use.
// Subcommands built without the root command load it here.
func (o *RootOptions) config() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.DB != "" {
		cfg.Database = o.DB
	}
	o.cfg = cfg
	return cfg, nil
}

// Logger returns the configured logger, or slog.Default() before setup.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
