package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vgrid/internal/virtual"
)

// Output formats of the window command.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newWindowCmd(_ *rootOptions) *cobra.Command {
	var (
		p      = virtual.DefaultParams()
		widths []float64
		output string
	)
	p.RowHeight = 40

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Compute the render window for a scroll position",
		Long: `Computes which rows and columns a virtualized grid must render for the given
geometry and prints the ranges with their pixel offsets.`,
		Example: `  # Rows 95-125 of 50,000 at scrollTop 4000
  vgrid window --rows 50000 --height 800 --scroll-top 4000

  # Columns intersecting a 100px viewport at scrollLeft 250
  vgrid window --widths 80,200,150 --width 100 --scroll-left 250 --overscan-columns 0 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layout, err := virtual.NewColumnLayout(widths)
			if err != nil {
				return err
			}
			w, err := virtual.Compute(p, layout)
			if err != nil {
				return err
			}
			return writeWindow(cmd.OutOrStdout(), w, output)
		},
	}

	f := cmd.Flags()
	f.IntVar(&p.TotalRows, "rows", 0, "total number of rows")
	f.Float64Var(&p.RowHeight, "row-height", p.RowHeight, "height of every row")
	f.Float64Var(&p.ContainerHeight, "height", 0, "viewport height")
	f.Float64Var(&p.ContainerWidth, "width", 0, "viewport width")
	f.Float64Var(&p.ScrollTop, "scroll-top", 0, "vertical scroll offset")
	f.Float64Var(&p.ScrollLeft, "scroll-left", 0, "horizontal scroll offset")
	f.Float64SliceVar(&widths, "widths", nil, "comma separated column widths")
	f.IntVar(&p.OverscanRows, "overscan-rows", p.OverscanRows, "extra rows on each side")
	f.IntVar(&p.OverscanColumns, "overscan-columns", p.OverscanColumns, "extra columns on each side")
	f.StringVarP(&output, "output", "o", outputText, "output format: text, json or yaml")
	return cmd
}

func writeWindow(out io.Writer, w virtual.Window, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(w)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(w); err != nil {
			return err
		}
		return enc.Close()
	case outputText:
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "rows\t[%d, %d)\n", w.StartRow, w.EndRow)
		fmt.Fprintf(tw, "columns\t[%d, %d)\n", w.StartColumn, w.EndColumn)
		fmt.Fprintf(tw, "offsetY\t%s\n", num(w.OffsetY))
		fmt.Fprintf(tw, "offsetX\t%s\n", num(w.OffsetX))
		fmt.Fprintf(tw, "totalHeight\t%s\n", num(w.TotalHeight))
		fmt.Fprintf(tw, "totalWidth\t%s\n", num(w.TotalWidth))
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
