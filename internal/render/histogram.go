package render

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// Bin is one histogram bucket covering [Lo, Hi); the last bin also holds Hi.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram counts the non-missing values of a numeric or datetime column.
type Histogram struct {
	opt  Options
	kind dataset.Kind
	bins []Bin
}

// NewHistogram bins col into opt.Bins equal-width buckets. Missing values are
// dropped; a constant column yields a single bin.
func NewHistogram(col *dataset.Column, opt Options) (*Histogram, error) {
	opt = opt.normalized()
	if err := requirePlottable(col); err != nil {
		return nil, err
	}
	vals := make([]float64, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if v, ok := axisValue(col, i); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: column %q has no values", ErrNoData, col.Name())
	}
	if opt.Title == "" {
		opt.Title = "Distribution of " + col.Name()
	}
	return &Histogram{opt: opt, kind: col.Kind(), bins: binValues(vals, opt.Bins)}, nil
}

func binValues(vals []float64, n int) []Bin {
	lo, hi := minMax(vals)
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(vals)}}
	}
	width := (hi - lo) / float64(n)
	if math.IsInf(width, 0) {
		width = hi/float64(n) - lo/float64(n)
	}
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi
	for _, v := range vals {
		pos := (v - lo) / width
		if math.IsInf(pos, 0) || math.IsNaN(pos) {
			pos = v/width - lo/width
		}
		i := int(math.Floor(pos))
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}
	return bins
}

// Bins returns a copy of the buckets.
func (h *Histogram) Bins() []Bin { return append([]Bin(nil), h.bins...) }

func (h *Histogram) Render(w io.Writer) error {
	step := (len(h.bins) + 9) / 10
	bars := make([]chart.Value, len(h.bins))
	peak := 0.0
	for i, b := range h.bins {
		label := ""
		if i%step == 0 {
			label = axisLabel(h.kind, b.Lo)
		}
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: label,
			Style: chart.Style{FillColor: h.opt.Theme.color(0), StrokeColor: h.opt.Theme.color(0)},
		}
		peak = math.Max(peak, float64(b.Count))
	}
	return renderBars(w, h.opt, bars, 0, peak)
}
