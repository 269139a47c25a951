package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"vgrid/internal/app"
	"vgrid/internal/config"
	"vgrid/internal/dataset"
)

func newDemoCmd(o *rootOptions) *cobra.Command {
	var (
		rows int
		seed uint64
	)

	cmd := &cobra.Command{
		Use:         "demo",
		Short:       "Browse a generated employee dataset",
		Annotations: map[string]string{annotationTUI: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rows < 0 {
				return fmt.Errorf("--rows must be >= 0, got %d", rows)
			}
			if err := requireTerminal(cmd); err != nil {
				return err
			}

			m, err := app.NewModel(app.Options{
				Title:  fmt.Sprintf("demo: %d employees (seed %d)", rows, seed),
				Source: dataset.NewEmployees(rows, seed),
				Grid:   o.cfg.Grid,
				Logger: config.GetLogger(),
			})
			if err != nil {
				return err
			}
			return runProgram(cmd, m)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 50000, "number of rows to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for generated values")
	return cmd
}

// runProgram runs m full screen until the user quits.
func runProgram(cmd *cobra.Command, m tea.Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	_, err := p.Run()
	return err
}
