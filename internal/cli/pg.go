package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"vgrid/internal/app"
	"vgrid/internal/config"
	"vgrid/internal/dataset"
	"vgrid/internal/db"
	"vgrid/internal/ui"
)

// errCancelled is returned when the user leaves a picker without choosing.
var errCancelled = errors.New("cancelled")

type pgOptions struct {
	uri   string
	conn  string
	table string
	query string
	limit int
}

func newPgCmd(o *rootOptions) *cobra.Command {
	var po pgOptions

	cmd := &cobra.Command{
		Use:   "pg",
		Short: "Browse a PostgreSQL table or query result",
		Long: `Loads a table, or the result of a read-only query, and browses it in the grid.
Without --uri or --conn a saved connection is picked interactively; without
--table or --query a table is picked from the public schema.`,
		Annotations: map[string]string{annotationTUI: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if po.uri != "" && po.conn != "" {
				return errors.New("--uri and --conn are mutually exclusive")
			}
			if po.table != "" && po.query != "" {
				return errors.New("--table and --query are mutually exclusive")
			}
			if err := requireTerminal(cmd); err != nil {
				return err
			}
			err := runPg(cmd, o, po)
			if errors.Is(err, errCancelled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&po.uri, "uri", "", "PostgreSQL connection URI")
	cmd.Flags().StringVar(&po.conn, "conn", "", "name of a saved connection")
	cmd.Flags().StringVar(&po.table, "table", "", "table to browse")
	cmd.Flags().StringVar(&po.query, "query", "", "read-only SQL query to browse")
	cmd.Flags().IntVar(&po.limit, "limit", 100000, "maximum rows to load from a table (0 = all)")
	return cmd
}

func runPg(cmd *cobra.Command, o *rootOptions, po pgOptions) error {
	ctx := cmd.Context()
	log := config.GetLogger().With().Str("component", "pg").Logger()

	conn, err := resolveConnection(cmd, o.cfg, po)
	if err != nil {
		return err
	}

	d, err := connect(ctx, conn)
	if err != nil {
		return err
	}
	defer d.Close()
	log.Info().Str("conn", d.ConnInfo()).Msg("connected")

	table := po.table
	if table == "" && po.query == "" {
		table, err = pickTable(cmd, d)
		if err != nil {
			return err
		}
	}

	m, err := app.NewModel(app.Options{
		Title:  d.ConnInfo(),
		Load:   pgLoader(d, table, po.query, po.limit),
		Grid:   o.cfg.Grid,
		Logger: config.GetLogger(),
	})
	if err != nil {
		return err
	}
	return runProgram(cmd, m)
}

// resolveConnection picks the connection from flags, or from the saved
// connections when no flag names one.
func resolveConnection(cmd *cobra.Command, cfg *config.Config, po pgOptions) (config.SavedConnection, error) {
	switch {
	case po.uri != "":
		return config.SavedConnection{Name: "uri", URI: po.uri}, nil
	case po.conn != "":
		return cfg.Find(po.conn)
	case len(cfg.Connections) == 0:
		return config.SavedConnection{}, errors.New("no saved connections; pass --uri or run 'vgrid config add-conn'")
	case len(cfg.Connections) == 1:
		return cfg.Connections[0], nil
	}

	items := make([]ui.PickerItem, len(cfg.Connections))
	for i, c := range cfg.Connections {
		items[i] = ui.PickerItem{Title: c.Name, Detail: describeConnection(c)}
	}
	i, err := pick(cmd, "vgrid - Saved Connections", items)
	if err != nil {
		return config.SavedConnection{}, err
	}
	return cfg.Connections[i], nil
}

func describeConnection(c config.SavedConnection) string {
	if c.URI != "" {
		return c.URI
	}
	return fmt.Sprintf("%s@%s:%s/%s", c.User, c.Host, c.Port, c.Database)
}

func connect(ctx context.Context, c config.SavedConnection) (*db.DB, error) {
	if c.URI != "" {
		return db.ConnectURI(ctx, c.URI)
	}
	return db.Connect(ctx, c.Host, c.Port, c.User, c.Password, c.Database)
}

func pickTable(cmd *cobra.Command, d *db.DB) (string, error) {
	tables, err := d.ListTables(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("failed to list tables: %w", err)
	}
	if len(tables) == 0 {
		return "", fmt.Errorf("no tables in %s", d.Database())
	}

	items := make([]ui.PickerItem, len(tables))
	for i, t := range tables {
		items[i] = ui.PickerItem{Title: t}
	}
	i, err := pick(cmd, "vgrid - Tables in "+d.Database(), items)
	if err != nil {
		return "", err
	}
	return tables[i], nil
}

// pick runs a picker program and returns the chosen index.
func pick(cmd *cobra.Command, title string, items []ui.PickerItem) (int, error) {
	p := tea.NewProgram(ui.NewPickerModel(title, items),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	result, err := p.Run()
	if err != nil {
		return 0, err
	}
	pm, ok := result.(ui.PickerModel)
	if !ok {
		return 0, errCancelled
	}
	i, ok := pm.Choice()
	if !ok {
		return 0, errCancelled
	}
	return i, nil
}

// pgLoader loads a table with its primary keys pinned, or a query result.
func pgLoader(d *db.DB, table, query string, limit int) app.LoadFunc {
	return func(ctx context.Context) (app.LoadResult, error) {
		if !d.IsConnected(ctx) {
			return app.LoadResult{}, fmt.Errorf("lost connection to %s", d.ConnInfo())
		}
		if query != "" {
			qr, err := d.ReadQuery(ctx, query)
			if err != nil {
				return app.LoadResult{}, err
			}
			return app.LoadResult{
				Source: dataset.FromQueryResult(qr, nil),
				Title:  d.ConnInfo(),
				Query:  query,
			}, nil
		}

		pks, err := d.GetPrimaryKeys(ctx, table)
		if err != nil {
			return app.LoadResult{}, fmt.Errorf("failed to read primary keys: %w", err)
		}
		qr, err := d.LoadTable(ctx, table, limit)
		if err != nil {
			return app.LoadResult{}, err
		}

		title := fmt.Sprintf("%s / %s", d.ConnInfo(), table)
		if limit > 0 && qr.RowCount == limit {
			if total, err := d.CountRows(ctx, table); err == nil && total > int64(limit) {
				title += fmt.Sprintf(" (first %d of %d rows)", limit, total)
			}
		}
		return app.LoadResult{
			Source: dataset.FromQueryResult(qr, pks),
			Title:  title,
		}, nil
	}
}
