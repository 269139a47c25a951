package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vgrid/internal/config"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the vgrid configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(o), newConfigShowCmd(o), newConfigAddConnCmd(o), newConfigRemoveConnCmd(o))
	return cmd
}

func newConfigInitCmd(o *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with default values",
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := o.cfg.Path()
			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			cfg := config.Default()
			cfg.SetPath(path)
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shown := *o.cfg
			shown.Connections = make([]config.SavedConnection, len(o.cfg.Connections))
			for i, c := range o.cfg.Connections {
				if c.Password != "" {
					c.Password = "********"
				}
				shown.Connections[i] = c
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(&shown); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newConfigAddConnCmd(o *rootOptions) *cobra.Command {
	var conn config.SavedConnection

	cmd := &cobra.Command{
		Use:   "add-conn NAME",
		Short: "Save a PostgreSQL connection",
		Example: `  vgrid config add-conn local --uri postgres://me@localhost/app
  vgrid config add-conn prod --host db.internal --user reader --database app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn.Name = args[0]
			if conn.URI == "" && conn.Database == "" {
				return errors.New("either --uri or --database is required")
			}
			if conn.URI == "" {
				if conn.Host == "" {
					conn.Host = "localhost"
				}
				if conn.Port == "" {
					conn.Port = "5432"
				}
			}

			o.cfg.Add(conn)
			if err := o.cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			cmd.Printf("Saved connection %q to %s\n", conn.Name, o.cfg.Path())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&conn.URI, "uri", "", "connection URI")
	f.StringVar(&conn.Host, "host", "", "host (default localhost)")
	f.StringVar(&conn.Port, "port", "", "port (default 5432)")
	f.StringVar(&conn.User, "user", "", "user name")
	f.StringVar(&conn.Password, "password", "", "password")
	f.StringVar(&conn.Database, "database", "", "database name")
	return cmd
}

func newConfigRemoveConnCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-conn NAME",
		Short: "Delete a saved connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, c := range o.cfg.Connections {
				if c.Name == args[0] {
					o.cfg.Delete(i)
					if err := o.cfg.Save(); err != nil {
						return fmt.Errorf("failed to save config: %w", err)
					}
					cmd.Printf("Removed connection %q\n", args[0])
					return nil
				}
			}
			return fmt.Errorf("%w: %s", config.ErrUnknownConnection, args[0])
		},
	}
}
