// Package workbench bundles a dataset with the summary, chart-type and model
// comparison engines and the chart renderers behind one value.
package workbench

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
	"github.com/KaramelBytes/plotease-cli/internal/logger"
	"github.com/KaramelBytes/plotease-cli/internal/models"
	"github.com/KaramelBytes/plotease-cli/internal/plottype"
	"github.com/KaramelBytes/plotease-cli/internal/render"
	"github.com/KaramelBytes/plotease-cli/internal/summary"
)

// ErrNoTable is returned by New when no table is given.
var ErrNoTable = errors.New("workbench needs a table")

// Workbench is a dataset plus the theme and thresholds used to analyse and
// chart it.
type Workbench struct {
	table    *dataset.Table
	detector *plottype.Detector
	chart    render.Options
	log      *zap.Logger
}

// Option configures a Workbench.
type Option func(*Workbench) error

// WithTheme selects a chart theme by name.
func WithTheme(name string) Option {
	return func(w *Workbench) error { return w.SetTheme(name) }
}

// WithThresholds overrides the chart-type detection thresholds.
func WithThresholds(th plottype.Thresholds) Option {
	return func(w *Workbench) error {
		w.detector = plottype.New(th)
		return nil
	}
}

// WithChartOptions sets chart size, bins and format. The theme is kept.
func WithChartOptions(opt render.Options) Option {
	return func(w *Workbench) error {
		theme := w.chart.Theme
		w.chart = opt
		w.chart.Theme = theme
		return nil
	}
}

// New wraps t. The table is read-only, so the workbench shares it.
func New(t *dataset.Table, opts ...Option) (*Workbench, error) {
	if t == nil {
		return nil, ErrNoTable
	}
	w := &Workbench{
		table:    t,
		detector: plottype.New(plottype.DefaultThresholds()),
		chart:    render.DefaultOptions(),
		log:      logger.With(zap.String("component", "workbench")),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	w.log.Debug("workbench ready", zap.Int("rows", t.Rows()), zap.Int("columns", t.Width()), zap.String("theme", w.chart.Theme.Name))
	return w, nil
}

// Open loads a dataset file and wraps it.
func Open(path string, lopt dataset.Options, opts ...Option) (*Workbench, error) {
	t, err := dataset.LoadFile(path, lopt)
	if err != nil {
		return nil, err
	}
	return New(t, opts...)
}

// Len returns the number of rows.
func (w *Workbench) Len() int { return w.table.Rows() }

func (w *Workbench) String() string {
	return fmt.Sprintf("Workbench(rows=%d, cols=%d, theme='%s')", w.table.Rows(), w.table.Width(), w.chart.Theme.Name)
}

// Equal reports whether both workbenches hold equal data and the same theme.
func (w *Workbench) Equal(o *Workbench) bool {
	if w == nil || o == nil {
		return w == o
	}
	return w.chart.Theme.Name == o.chart.Theme.Name && w.table.Equal(o.table)
}

// Less orders workbenches by row count.
func (w *Workbench) Less(o *Workbench) bool { return w.Len() < o.Len() }

// Data returns the underlying table. Tables cannot be modified, so callers
// cannot change the workbench through it.
func (w *Workbench) Data() *dataset.Table { return w.table }

// Theme returns the current theme name.
func (w *Workbench) Theme() string { return w.chart.Theme.Name }

// SetTheme switches the chart theme; unknown names leave it unchanged.
func (w *Workbench) SetTheme(name string) error {
	th, err := render.LookupTheme(name)
	if err != nil {
		return err
	}
	w.chart.Theme = th
	return nil
}

// Summary runs the summary engine.
func (w *Workbench) Summary(style summary.Style) (*summary.Table, error) {
	return summary.Summarize(w.table, style)
}

// DetectPlotType picks a chart kind for x, or for (x, y) when y is set.
func (w *Workbench) DetectPlotType(x, y string) (plottype.ChartKind, error) {
	kind, err := w.detector.Detect(w.table, x, y)
	if err != nil {
		return "", err
	}
	w.log.Debug("chart kind detected", zap.String("x", x), zap.String("y", y), zap.Stringer("kind", kind))
	return kind, nil
}

// QuickPlot draws x (and y) to out. kind "auto" or "" lets the detector
// choose; the kind actually drawn is returned.
func (w *Workbench) QuickPlot(out io.Writer, x, y, kind string) (plottype.ChartKind, error) {
	var ck plottype.ChartKind
	var err error
	if k := strings.TrimSpace(strings.ToLower(kind)); k == "" || k == "auto" {
		ck, err = w.DetectPlotType(x, y)
	} else {
		ck, err = plottype.ParseChartKind(kind)
	}
	if err != nil {
		return "", err
	}
	r, err := render.Build(ck, w.table, x, y, w.chart)
	if err != nil {
		return "", err
	}
	if err := r.Render(out); err != nil {
		return "", err
	}
	w.log.Debug("chart rendered", zap.Stringer("kind", ck), zap.String("format", string(w.chart.Format)))
	return ck, nil
}

// Diagnostics reports missing values and correlations.
func (w *Workbench) Diagnostics() (*summary.Diagnostics, error) {
	return summary.Diagnose(w.table)
}

// MissingChart draws the per-column missing-value counts as bars. A table
// without gaps gets a flat chart of every column titled "No missing values".
func (w *Workbench) MissingChart(out io.Writer) error {
	var cats, all []render.Category
	for _, m := range summary.MissingByColumn(w.table) {
		all = append(all, render.Category{Label: m.Name})
		if m.Missing > 0 {
			cats = append(cats, render.Category{Label: m.Name, Value: float64(m.Missing)})
		}
	}
	opt := w.chart
	opt.Title = "Missing values"
	if len(cats) == 0 {
		cats = all
		opt.Title = "No missing values"
	}
	r, err := render.NewBars(cats, opt)
	if err != nil {
		return err
	}
	return r.Render(out)
}

// MaxOutlierColumns caps the boxes drawn by OutlierChart.
const MaxOutlierColumns = 4

// OutlierChart draws box-and-whisker glyphs for the first numeric columns.
func (w *Workbench) OutlierChart(out io.Writer) error {
	var cols []*dataset.Column
	for _, c := range w.table.Columns() {
		if c.Kind() == dataset.Numeric && len(cols) < MaxOutlierColumns {
			cols = append(cols, c)
		}
	}
	opt := w.chart
	opt.Title = "Outlier detection"
	r, err := render.NewColumnBoxes(cols, opt)
	if err != nil {
		return err
	}
	return r.Render(out)
}

// TargetChart draws the distribution of one column: a histogram for numeric
// and datetime columns, the top value counts otherwise.
func (w *Workbench) TargetChart(out io.Writer, target string) error {
	c, ok := w.table.Column(target)
	if !ok {
		return &plottype.ColumnError{Column: target}
	}
	opt := w.chart
	opt.Title = "Target distribution: " + target
	var (
		r   render.Renderer
		err error
	)
	if c.Kind() == dataset.Categorical {
		r, err = render.NewCounts(c, opt)
	} else {
		r, err = render.NewHistogram(c, opt)
	}
	if err != nil {
		return err
	}
	return r.Render(out)
}

// CompareModels builds a comparator for the given model metrics.
func (w *Workbench) CompareModels(results map[string]map[string]float64) *models.Comparator {
	c := models.New(results)
	w.log.Debug("models compared", zap.Int("models", c.Len()), zap.Strings("metrics", c.Metrics()))
	return c
}

// BestModel returns the model with the highest value for metric.
func (w *Workbench) BestModel(results map[string]map[string]float64, metric string) (string, error) {
	return w.CompareModels(results).BestModel(metric)
}

// Report is a self-describing export of a summary and diagnostics run.
type Report struct {
	ID          string               `json:"id" yaml:"id"`
	GeneratedAt time.Time            `json:"generated_at" yaml:"generated_at"`
	Source      string               `json:"source,omitempty" yaml:"source,omitempty"`
	Theme       string               `json:"theme" yaml:"theme"`
	Summary     *summary.Table       `json:"summary" yaml:"summary"`
	Diagnostics *summary.Diagnostics `json:"diagnostics" yaml:"diagnostics"`
}

// Report summarizes the data in the given style and attaches diagnostics.
func (w *Workbench) Report(source string, style summary.Style) (*Report, error) {
	s, err := w.Summary(style)
	if err != nil {
		return nil, err
	}
	d, err := w.Diagnostics()
	if err != nil {
		return nil, err
	}
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Theme:       w.chart.Theme.Name,
		Summary:     s,
		Diagnostics: d,
	}, nil
}

// Markdown renders the report header followed by both sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[REPORT]\n")
	b.WriteString("ID: " + r.ID + "\n")
	b.WriteString("Generated: " + r.GeneratedAt.Format(time.RFC3339) + "\n")
	if r.Source != "" {
		b.WriteString("Source: " + r.Source + "\n")
	}
	b.WriteString("\n")
	b.WriteString(r.Summary.Markdown())
	b.WriteString("\n")
	b.WriteString(r.Diagnostics.Markdown())
	return b.String()
}
