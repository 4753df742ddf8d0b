package cmd

import (
	"github.com/KaramelBytes/plotease-cli/internal/summary"
	"github.com/spf13/cobra"
)

var (
	sumStyle  string
	sumFormat string
	sumOutput string
	sumReport bool
	sumData   dataFlags
)

// resolveStyle returns flag, or the configured default style.
func resolveStyle(flag string) (summary.Style, error) {
	if flag == "" {
		flag = settings().DefaultStyle
	}
	if flag == "" {
		return summary.StyleFull, nil
	}
	return summary.ParseStyle(flag)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Per-column summary statistics of a CSV/TSV/JSON/XLSX dataset",
	Example: `  plotease summarize mtcars.csv
  plotease summarize mtcars.csv --style numeric --format json
  plotease summarize sales.csv --report -o sales.summary.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style, err := resolveStyle(sumStyle)
		if err != nil {
			return err
		}
		wb, err := openWorkbench(args[0], &sumData, "")
		if err != nil {
			return err
		}
		if sumReport {
			rep, err := wb.Report(args[0], style)
			if err != nil {
				return err
			}
			return emit(cmd, rep, sumFormat, sumOutput, "report")
		}
		tbl, err := wb.Summary(style)
		if err != nil {
			return err
		}
		return emit(cmd, tbl, sumFormat, sumOutput, "summary")
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&sumStyle, "style", "s", "", "summary style: full|numeric|categorical (default from config)")
	summarizeCmd.Flags().StringVarP(&sumFormat, "format", "f", "", "output format: markdown|json|yaml (default from config)")
	summarizeCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "optional path to write the summary")
	summarizeCmd.Flags().BoolVar(&sumReport, "report", false, "add diagnostics and a report ID")
	sumData.bind(summarizeCmd)
}
