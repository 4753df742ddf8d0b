package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KaramelBytes/plotease-cli/internal/render"
	"github.com/KaramelBytes/plotease-cli/internal/utils"
	"github.com/KaramelBytes/plotease-cli/internal/workbench"
	"github.com/spf13/cobra"
)

var (
	diagFormat       string
	diagOutput       string
	diagMissingChart string
	diagOutlierChart string
	diagTarget       string
	diagTargetChart  string
	diagData         dataFlags
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <file>",
	Short: "Report missing values and correlations between numeric columns",
	Example: `  plotease diagnose survey.csv
  plotease diagnose survey.csv --missing-chart missing.png
  plotease diagnose survey.csv --outliers outliers.svg --target income --target-chart income.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if diagTargetChart != "" && diagTarget == "" {
			return fmt.Errorf("--target-chart needs --target <column>")
		}
		wb, err := openWorkbench(args[0], &diagData, "")
		if err != nil {
			return err
		}
		d, err := wb.Diagnostics()
		if err != nil {
			return err
		}
		if err := emit(cmd, d, diagFormat, diagOutput, "diagnostics"); err != nil {
			return err
		}
		charts := []struct {
			path, what string
			draw       func(io.Writer) error
		}{
			{diagMissingChart, "missing-values", wb.MissingChart},
			{diagOutlierChart, "outlier", wb.OutlierChart},
			{diagTargetChart, "target", func(w io.Writer) error { return wb.TargetChart(w, diagTarget) }},
		}
		for _, c := range charts {
			if c.path == "" {
				continue
			}
			if err := writeChart(cmd, wb, c.path, c.what, c.draw); err != nil {
				return err
			}
		}
		return nil
	},
}

// writeChart renders one diagnostic chart in the format implied by path.
func writeChart(cmd *cobra.Command, wb *workbench.Workbench, path, what string, draw func(io.Writer) error) error {
	if err := workbench.WithChartOptions(render.Options{
		Width:  settings().ChartWidth,
		Height: settings().ChartHeight,
		Bins:   settings().HistogramBins,
		Format: render.FormatFromPath(path),
	})(wb); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		return fmt.Errorf("%s chart: %w", what, err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s chart to %s\n", what, path)
	return nil
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	diagnoseCmd.Flags().StringVarP(&diagFormat, "format", "f", "", "output format: markdown|json|yaml (default from config)")
	diagnoseCmd.Flags().StringVarP(&diagOutput, "output", "o", "", "optional path to write the diagnostics")
	diagnoseCmd.Flags().StringVar(&diagMissingChart, "missing-chart", "", "also draw missing values per column to this image path")
	diagnoseCmd.Flags().StringVar(&diagOutlierChart, "outliers", "", "also draw boxplots of the first numeric columns to this image path")
	diagnoseCmd.Flags().StringVar(&diagTarget, "target", "", "target column for --target-chart")
	diagnoseCmd.Flags().StringVar(&diagTargetChart, "target-chart", "", "also draw the distribution of --target to this image path")
	diagData.bind(diagnoseCmd)
}
