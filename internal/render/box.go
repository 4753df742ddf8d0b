package render

import (
	"fmt"
	"io"
	"math"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// FiveNumber is the per-group summary drawn by Box. Quartiles use linear
// interpolation between order statistics.
type FiveNumber struct {
	Label                    string
	N                        int
	Min, Q1, Median, Q3, Max float64
}

// Box draws one box-and-whisker glyph per group.
type Box struct {
	opt          Options
	value, group string
	groups       []FiveNumber
}

// NewBox summarizes the numeric column values within each group of group.
func NewBox(values, group *dataset.Column, opt Options) (*Box, error) {
	opt = opt.normalized()
	if values.Kind() != dataset.Numeric {
		return nil, fmt.Errorf("%w: column %q is not numeric", ErrColumnKind, values.Name())
	}
	byGroup := map[string][]float64{}
	for i := 0; i < values.Len(); i++ {
		v, ok := values.Float(i)
		k, okk := group.Text(i)
		if ok && okk {
			byGroup[k] = append(byGroup[k], v)
		}
	}
	if len(byGroup) == 0 {
		return nil, fmt.Errorf("%w: no rows with both %q and %q", ErrNoData, values.Name(), group.Name())
	}
	labels := make([]string, 0, len(byGroup))
	for k := range byGroup {
		labels = append(labels, k)
	}
	sortLabels(labels, group.Kind() == dataset.Numeric)
	b := &Box{opt: opt, value: values.Name(), group: group.Name()}
	for _, k := range labels {
		b.groups = append(b.groups, fiveNumber(k, byGroup[k]))
	}
	if b.opt.Title == "" {
		b.opt.Title = fmt.Sprintf("%s by %s", values.Name(), group.Name())
	}
	return b, nil
}

// NewColumnBoxes draws one box per numeric column, in the given order.
// Columns without values are skipped.
func NewColumnBoxes(cols []*dataset.Column, opt Options) (*Box, error) {
	opt = opt.normalized()
	b := &Box{opt: opt, value: "value", group: "column"}
	for _, c := range cols {
		if c.Kind() != dataset.Numeric {
			return nil, fmt.Errorf("%w: column %q is not numeric", ErrColumnKind, c.Name())
		}
		if vals := c.Floats(); len(vals) > 0 {
			b.groups = append(b.groups, fiveNumber(c.Name(), vals))
		}
	}
	if len(b.groups) == 0 {
		return nil, fmt.Errorf("%w: no numeric values to summarize", ErrNoData)
	}
	if b.opt.Title == "" {
		b.opt.Title = "Outlier detection"
	}
	return b, nil
}

func fiveNumber(label string, vals []float64) FiveNumber {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	return FiveNumber{
		Label:  label,
		N:      len(s),
		Min:    s[0],
		Q1:     quantile(s, 0.25),
		Median: quantile(s, 0.5),
		Q3:     quantile(s, 0.75),
		Max:    s[len(s)-1],
	}
}

// quantile expects sorted, non-empty input.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Groups returns a copy of the per-group summaries.
func (b *Box) Groups() []FiveNumber { return append([]FiveNumber(nil), b.groups...) }

func (b *Box) Render(w io.Writer) error {
	th := b.opt.Theme
	const half = 0.25
	var series []chart.Series
	ticks := make([]chart.Tick, 0, len(b.groups))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, g := range b.groups {
		x := float64(i)
		col := th.color(i)
		line := chart.Style{StrokeColor: col, StrokeWidth: 2}
		series = append(series,
			chart.ContinuousSeries{
				Name:    g.Label,
				XValues: []float64{x - half, x + half, x + half, x - half, x - half},
				YValues: []float64{g.Q1, g.Q1, g.Q3, g.Q3, g.Q1},
				Style:   chart.Style{StrokeColor: col, StrokeWidth: 2, FillColor: col.WithAlpha(64)},
			},
			chart.ContinuousSeries{XValues: []float64{x - half, x + half}, YValues: []float64{g.Median, g.Median}, Style: line},
			chart.ContinuousSeries{XValues: []float64{x, x}, YValues: []float64{g.Min, g.Q1}, Style: line},
			chart.ContinuousSeries{XValues: []float64{x, x}, YValues: []float64{g.Q3, g.Max}, Style: line},
		)
		ticks = append(ticks, chart.Tick{Value: x, Label: g.Label})
		lo = math.Min(lo, g.Min)
		hi = math.Max(hi, g.Max)
	}
	ch := chart.Chart{
		Title:      b.opt.Title,
		TitleStyle: th.title(),
		Width:      b.opt.Width,
		Height:     b.opt.Height,
		Background: th.background(),
		Canvas:     th.canvas(),
		XAxis: chart.XAxis{
			Name:      b.group,
			NameStyle: th.title(),
			Style:     th.axis(),
			Ticks:     ticks,
			Range:     &chart.ContinuousRange{Min: -0.5, Max: float64(len(b.groups)) - 0.5},
		},
		YAxis:  chart.YAxis{Name: b.value, NameStyle: th.title(), Style: th.axis(), Range: padded(lo, hi)},
		Series: series,
	}
	if err := ch.Render(b.opt.provider(), w); err != nil {
		return fmt.Errorf("render box chart: %w", err)
	}
	return nil
}
