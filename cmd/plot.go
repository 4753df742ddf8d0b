package cmd

import (
	"bytes"
	"fmt"

	"github.com/KaramelBytes/plotease-cli/internal/render"
	"github.com/KaramelBytes/plotease-cli/internal/utils"
	"github.com/KaramelBytes/plotease-cli/internal/workbench"
	"github.com/spf13/cobra"
)

var (
	plotKind   string
	plotOutput string
	plotTheme  string
	plotFormat string
	plotTitle  string
	plotBins   int
	plotWidth  int
	plotHeight int
	plotData   dataFlags
)

var plotCmd = &cobra.Command{
	Use:   "plot <file> <x> [y]",
	Short: "Draw a quick chart of one or two columns to PNG or SVG",
	Example: `  plotease plot mtcars.csv mpg -o mpg.png
  plotease plot mtcars.csv wt mpg --kind scatter --theme dark -o wt_mpg.svg
  plotease plot mtcars.csv mpg cyl -o mpg_by_cyl.png`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if plotOutput == "" {
			return fmt.Errorf("--output is required")
		}
		format := render.FormatFromPath(plotOutput)
		if plotFormat != "" {
			f, err := render.ParseFormat(plotFormat)
			if err != nil {
				return err
			}
			format = f
		}
		wb, err := openWorkbench(args[0], &plotData, plotTheme)
		if err != nil {
			return err
		}
		c := settings()
		opt := render.Options{Title: plotTitle, Width: c.ChartWidth, Height: c.ChartHeight, Bins: c.HistogramBins, Format: format}
		if plotBins > 0 {
			opt.Bins = plotBins
		}
		if plotWidth > 0 {
			opt.Width = plotWidth
		}
		if plotHeight > 0 {
			opt.Height = plotHeight
		}
		if err := workbench.WithChartOptions(opt)(wb); err != nil {
			return err
		}
		y := ""
		if len(args) == 3 {
			y = args[2]
		}
		var buf bytes.Buffer
		kind, err := wb.QuickPlot(&buf, args[1], y, plotKind)
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(plotOutput, buf.Bytes()); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s chart to %s\n", kind, plotOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVarP(&plotKind, "kind", "k", "auto", "chart kind: auto|histogram|bar|scatter|boxlike")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "image path (.png or .svg)")
	plotCmd.Flags().StringVar(&plotTheme, "theme", "", "theme: default|minimal|dark|colorful (default from config)")
	plotCmd.Flags().StringVar(&plotFormat, "format", "", "image format png|svg (from --output extension if omitted)")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "chart title")
	plotCmd.Flags().IntVar(&plotBins, "bins", 0, "histogram bins (default from config)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 0, "image width in pixels (default from config)")
	plotCmd.Flags().IntVar(&plotHeight, "height", 0, "image height in pixels (default from config)")
	plotData.bind(plotCmd)
}
