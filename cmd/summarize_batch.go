package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/plotease-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sbStyle  string
	sbFormat string
	sbOutDir string
	sbQuiet  bool
	sbData   dataFlags
)

var summarizeBatchCmd = &cobra.Command{
	Use:   "summarize-batch <files...>",
	Short: "Write summary reports for several datasets with progress",
	Example: `  plotease summarize-batch 'data/*.csv' --out-dir reports
  plotease summarize-batch a.csv b.json --format json --out-dir reports --quiet`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := utils.ExpandGlobs(args)
		if err != nil {
			return err
		}
		style, err := resolveStyle(sbStyle)
		if err != nil {
			return err
		}
		format, err := resolveFormat(sbFormat)
		if err != nil {
			return err
		}
		if sbOutDir == "" {
			return fmt.Errorf("--out-dir is required")
		}
		if err := utils.EnsureDir(sbOutDir); err != nil {
			return err
		}
		ext := map[string]string{"markdown": ".summary.md", "json": ".summary.json", "yaml": ".summary.yaml"}[format]

		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !sbQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			wb, err := openWorkbench(path, &sbData, "")
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			rep, err := wb.Report(path, style)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			b, err := encode(rep, format)
			if err != nil {
				return err
			}
			outFile := utils.UniquePath(sbOutDir, utils.BaseName(path), ext)
			if !sbQuiet && filepath.Base(outFile) != utils.BaseName(path)+ext {
				fmt.Fprintf(out, "⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(outFile))
			}
			if err := utils.SafeWriteFile(outFile, b); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !sbQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", outFile)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeBatchCmd)
	summarizeBatchCmd.Flags().StringVarP(&sbStyle, "style", "s", "", "summary style: full|numeric|categorical (default from config)")
	summarizeBatchCmd.Flags().StringVarP(&sbFormat, "format", "f", "", "report format: markdown|json|yaml (default from config)")
	summarizeBatchCmd.Flags().StringVar(&sbOutDir, "out-dir", "", "directory for the per-file reports")
	summarizeBatchCmd.Flags().BoolVar(&sbQuiet, "quiet", false, "suppress progress and non-essential output")
	sbData.bind(summarizeBatchCmd)
}
