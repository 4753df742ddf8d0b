package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// Category is one labelled bar.
type Category struct {
	Label string
	Value float64
}

// Bar draws one bar per category.
type Bar struct {
	opt  Options
	cats []Category
}

// NewBars draws the given categories as-is.
func NewBars(cats []Category, opt Options) (*Bar, error) {
	opt = opt.normalized()
	if len(cats) == 0 {
		return nil, ErrNoData
	}
	return &Bar{opt: opt, cats: append([]Category(nil), cats...)}, nil
}

// NewCounts draws the opt.TopN most frequent values of col. Equal counts keep
// first-seen order.
func NewCounts(col *dataset.Column, opt Options) (*Bar, error) {
	opt = opt.normalized()
	counts := map[string]int{}
	var order []string
	for i := 0; i < col.Len(); i++ {
		s, ok := col.Text(i)
		if !ok {
			continue
		}
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: column %q has no values", ErrNoData, col.Name())
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > opt.TopN {
		order = order[:opt.TopN]
	}
	cats := make([]Category, len(order))
	for i, s := range order {
		cats[i] = Category{Label: s, Value: float64(counts[s])}
	}
	if opt.Title == "" {
		opt.Title = "Counts of " + col.Name()
	}
	return &Bar{opt: opt, cats: cats}, nil
}

// NewMeans draws the mean of numeric y for each value of x. Rows missing
// either value are skipped. Groups are sorted by value for numeric x and by
// label otherwise.
func NewMeans(x, y *dataset.Column, opt Options) (*Bar, error) {
	opt = opt.normalized()
	if y.Kind() != dataset.Numeric {
		return nil, fmt.Errorf("%w: column %q is not numeric", ErrColumnKind, y.Name())
	}
	type acc struct {
		sum float64
		n   int
	}
	groups := map[string]*acc{}
	for i := 0; i < x.Len(); i++ {
		k, ok := x.Text(i)
		v, okv := y.Float(i)
		if !ok || !okv {
			continue
		}
		g := groups[k]
		if g == nil {
			g = &acc{}
			groups[k] = g
		}
		g.sum += v
		g.n++
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no rows with both %q and %q", ErrNoData, x.Name(), y.Name())
	}
	labels := make([]string, 0, len(groups))
	for k := range groups {
		labels = append(labels, k)
	}
	sortLabels(labels, x.Kind() == dataset.Numeric)
	cats := make([]Category, len(labels))
	for i, k := range labels {
		cats[i] = Category{Label: k, Value: groups[k].sum / float64(groups[k].n)}
	}
	if opt.Title == "" {
		opt.Title = fmt.Sprintf("Mean %s by %s", y.Name(), x.Name())
	}
	return &Bar{opt: opt, cats: cats}, nil
}

// sortLabels orders group labels numerically when they came from a numeric
// column, lexically otherwise.
func sortLabels(labels []string, numeric bool) {
	sort.Slice(labels, func(i, j int) bool {
		if numeric {
			a, errA := strconv.ParseFloat(labels[i], 64)
			b, errB := strconv.ParseFloat(labels[j], 64)
			if errA == nil && errB == nil {
				return a < b
			}
		}
		return labels[i] < labels[j]
	})
}

// Categories returns a copy of the bars.
func (b *Bar) Categories() []Category { return append([]Category(nil), b.cats...) }

func (b *Bar) Render(w io.Writer) error {
	bars := make([]chart.Value, len(b.cats))
	lo, hi := 0.0, 0.0
	for i, c := range b.cats {
		col := b.opt.Theme.color(i)
		bars[i] = chart.Value{Value: c.Value, Label: c.Label, Style: chart.Style{FillColor: col, StrokeColor: col}}
		lo = math.Min(lo, c.Value)
		hi = math.Max(hi, c.Value)
	}
	return renderBars(w, b.opt, bars, lo, hi)
}

// renderBars draws bars on a y range covering [lo, hi] and zero.
func renderBars(w io.Writer, opt Options, bars []chart.Value, lo, hi float64) error {
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if lo == hi {
		hi = 1
	}
	slot := (opt.Width - 120) / len(bars)
	if slot < 3 {
		slot = 3
	}
	bc := chart.BarChart{
		Title:      opt.Title,
		TitleStyle: opt.Theme.title(),
		Width:      opt.Width,
		Height:     opt.Height,
		Background: opt.Theme.background(),
		Canvas:     opt.Theme.canvas(),
		BarWidth:   slot * 3 / 4,
		BarSpacing: slot - slot*3/4,
		XAxis:      opt.Theme.axis(),
		YAxis: chart.YAxis{
			Style: opt.Theme.axis(),
			Range: &chart.ContinuousRange{Min: lo, Max: hi * 1.05},
		},
		Bars: bars,
	}
	if err := bc.Render(opt.provider(), w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}
