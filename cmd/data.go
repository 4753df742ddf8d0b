package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
	"github.com/KaramelBytes/plotease-cli/internal/logger"
	"github.com/KaramelBytes/plotease-cli/internal/plottype"
	"github.com/KaramelBytes/plotease-cli/internal/render"
	"github.com/KaramelBytes/plotease-cli/internal/workbench"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dataFlags are the dataset loading flags shared by every command that reads
// a table.
type dataFlags struct {
	delimiter string
	decimal   string
	thousands string
	maxRows   int
	kinds     []string
	sheet     string
	sheetIdx  int
}

func (d *dataFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (from extension if omitted)")
	cmd.Flags().StringVar(&d.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	cmd.Flags().StringVar(&d.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	cmd.Flags().IntVar(&d.maxRows, "max-rows", 0, "maximum rows to load (0 = config max_rows, unlimited by default)")
	cmd.Flags().StringVar(&d.sheet, "sheet", "", "XLSX: sheet name to read (defaults to the first sheet)")
	cmd.Flags().IntVar(&d.sheetIdx, "sheet-index", 0, "XLSX: 1-based sheet index (used when --sheet is empty)")
	cmd.Flags().StringSliceVar(&d.kinds, "kind", nil, "force a column kind as name=numeric|categorical|datetime (repeatable)")
}

func (d *dataFlags) options() (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	opt.MaxRows = settings().MaxRows
	if d.maxRows > 0 {
		opt.MaxRows = d.maxRows
	}
	opt.Sheet = strings.TrimSpace(d.sheet)
	opt.SheetIndex = d.sheetIdx
	switch d.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", d.delimiter)
	}
	// Locale separators
	switch strings.ToLower(strings.TrimSpace(d.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", d.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(d.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", d.thousands)
	}
	for _, kv := range d.kinds {
		name, kind, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return opt, fmt.Errorf("invalid --kind %q (use name=kind)", kv)
		}
		k, err := dataset.ParseKind(kind)
		if err != nil {
			return opt, err
		}
		if opt.Kinds == nil {
			opt.Kinds = map[string]dataset.Kind{}
		}
		opt.Kinds[name] = k
	}
	return opt, nil
}

// openWorkbench loads path with the data flags and applies the configured
// theme, thresholds and chart settings. theme overrides the config when set.
func openWorkbench(path string, d *dataFlags, theme string) (*workbench.Workbench, error) {
	opt, err := d.options()
	if err != nil {
		return nil, err
	}
	c := settings()
	if theme == "" {
		theme = c.Theme
	}
	if theme == "" {
		theme = "default"
	}
	wb, err := workbench.Open(path, opt,
		workbench.WithTheme(theme),
		workbench.WithThresholds(plottype.Thresholds{
			BarCardinality:   c.BarCardinality,
			BarMinRows:       c.BarMinRows,
			GroupCardinality: c.GroupCardinality,
		}),
		workbench.WithChartOptions(render.Options{
			Width:  c.ChartWidth,
			Height: c.ChartHeight,
			Bins:   c.HistogramBins,
		}),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded", zap.String("path", path), zap.Int("rows", wb.Len()), zap.Int("columns", wb.Data().Width()))
	return wb, nil
}
