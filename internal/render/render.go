// Package render draws the chart kinds chosen by plottype with go-chart.
//
// Every chart is built from a dataset.Table up front (binning, grouping,
// aggregation) and only touches the writer in Render, so construction errors
// surface before any output file is created.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// Renderer writes one chart image.
type Renderer interface {
	Render(w io.Writer) error
}

var (
	// ErrNoData is returned when a chart would have nothing to draw.
	ErrNoData = errors.New("no data to plot")
	// ErrColumnKind is returned when a column kind cannot feed a chart.
	ErrColumnKind = errors.New("unsupported column kind")
)

// Format is the image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat maps user input to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png", "":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("unknown image format: %q (use png|svg)", s)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return SVG
	}
	return PNG
}

// Options controls chart size, look and aggregation.
type Options struct {
	Title  string
	Width  int
	Height int
	// Bins is the histogram bin count.
	Bins int
	// TopN caps value-count bar charts.
	TopN   int
	Theme  Theme
	Format Format
}

// DefaultOptions returns 1024x512 PNG charts, 30 bins, top 10 categories.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 512, Bins: 30, TopN: 10, Theme: DefaultTheme(), Format: PNG}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Bins <= 0 {
		o.Bins = def.Bins
	}
	if o.TopN <= 0 {
		o.TopN = def.TopN
	}
	if o.Theme.Name == "" {
		o.Theme = def.Theme
	}
	if o.Format == "" {
		o.Format = def.Format
	}
	return o
}

func (o Options) provider() chart.RendererProvider {
	if o.Format == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// axisValue maps a numeric or datetime cell onto a float axis.
func axisValue(c *dataset.Column, i int) (float64, bool) {
	switch c.Kind() {
	case dataset.Numeric:
		return c.Float(i)
	case dataset.Datetime:
		t, ok := c.Time(i)
		if !ok {
			return 0, false
		}
		return chart.TimeToFloat64(t), true
	default:
		return 0, false
	}
}

func axisLabel(kind dataset.Kind, v float64) string {
	if kind == dataset.Datetime {
		return time.Unix(0, int64(v)).UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("%.4g", v)
}

func requirePlottable(c *dataset.Column) error {
	if c.Kind() == dataset.Categorical {
		return fmt.Errorf("%w: column %q is categorical", ErrColumnKind, c.Name())
	}
	return nil
}

// padded widens [lo, hi] by 5% on both ends and never returns an empty range.
func padded(lo, hi float64) *chart.ContinuousRange {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(lo), 1)
	}
	return &chart.ContinuousRange{Min: lo - span*0.05, Max: hi + span*0.05}
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
