package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vgrid/internal/config"
)

// Command annotations read by the root pre-run hook.
const (
	annotationTUI        = "vgrid/tui"
	annotationSkipConfig = "vgrid/skip-config"
)

// errNotTerminal is returned when a TUI command is run without a terminal.
var errNotTerminal = errors.New("stdout is not a terminal; the grid needs an interactive terminal")

// rootOptions carries persistent flags and the loaded config to subcommands.
type rootOptions struct {
	configPath string
	logFile    string
	debug      bool
	cfg        *config.Config
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root command of the vgrid CLI.
func NewRootCmd(ver string) *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "vgrid",
		Short:   "Virtualized terminal grid for large tables",
		Long:    "vgrid renders only the rows and columns of a large table that intersect the terminal.",
		Version: ver,
		Example: rootCmdExample,
		// Errors are printed by cobra; usage only for flag errors.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			config.CloseLogFile()
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default $VGRID_CONFIG or ~/.config/vgrid/config.yaml)")
	cmd.PersistentFlags().StringVar(&o.logFile, "log-file", "", "write logs to this file")

	cmd.AddCommand(newDemoCmd(o), newPgCmd(o), newWindowCmd(o), newConfigCmd(o))
	return cmd
}

// setup loads the config and configures logging. TUI commands never log to
// the console; their records go to the log file, if any.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil && !hasAnnotation(cmd, annotationSkipConfig) {
		return err
	}
	o.cfg = cfg

	opts := config.LogOptions{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: !hasAnnotation(cmd, annotationTUI),
	}
	if o.logFile != "" {
		opts.File = o.logFile
	}
	if o.debug {
		opts.Level = "debug"
	}
	if err := config.InitLogger(opts); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	log := config.GetLogger()
	log.Debug().
		Str("command", cmd.CommandPath()).
		Str("config", cfg.Path()).
		Msg("command started")
	return nil
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	_, ok := cmd.Annotations[key]
	return ok
}

// requireTerminal fails unless the command writes to an interactive terminal.
func requireTerminal(cmd *cobra.Command) error {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !isTerminal(f) {
		return errNotTerminal
	}
	return nil
}

const rootCmdExample = `  # Browse 50,000 generated employees
  vgrid demo

  # Browse a PostgreSQL table
  vgrid pg --uri postgres://localhost/app --table orders

  # Pick a saved connection and a table interactively
  vgrid pg

  # Print the window for a given scroll position
  vgrid window --rows 50000 --height 800 --scroll-top 4000 --output json

  # Write the default configuration
  vgrid config init`
