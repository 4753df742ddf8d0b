package render

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// Scatter plots y against x as unconnected points.
type Scatter struct {
	opt          Options
	xName, yName string
	xKind, yKind dataset.Kind
	xs, ys       []float64
}

// NewScatter pairs the rows where both x and y hold a value.
func NewScatter(x, y *dataset.Column, opt Options) (*Scatter, error) {
	opt = opt.normalized()
	for _, c := range []*dataset.Column{x, y} {
		if err := requirePlottable(c); err != nil {
			return nil, err
		}
	}
	s := &Scatter{opt: opt, xName: x.Name(), yName: y.Name(), xKind: x.Kind(), yKind: y.Kind()}
	for i := 0; i < x.Len(); i++ {
		xv, okx := axisValue(x, i)
		yv, oky := axisValue(y, i)
		if okx && oky {
			s.xs = append(s.xs, xv)
			s.ys = append(s.ys, yv)
		}
	}
	if len(s.xs) == 0 {
		return nil, fmt.Errorf("%w: no rows with both %q and %q", ErrNoData, x.Name(), y.Name())
	}
	if s.opt.Title == "" {
		s.opt.Title = fmt.Sprintf("%s vs %s", y.Name(), x.Name())
	}
	return s, nil
}

// Points returns the number of plotted points.
func (s *Scatter) Points() int { return len(s.xs) }

func (s *Scatter) Render(w io.Writer) error {
	th := s.opt.Theme
	xlo, xhi := minMax(s.xs)
	ylo, yhi := minMax(s.ys)
	ch := chart.Chart{
		Title:      s.opt.Title,
		TitleStyle: th.title(),
		Width:      s.opt.Width,
		Height:     s.opt.Height,
		Background: th.background(),
		Canvas:     th.canvas(),
		XAxis:      chart.XAxis{Name: s.xName, NameStyle: th.title(), Style: th.axis(), Range: padded(xlo, xhi), ValueFormatter: formatter(s.xKind)},
		YAxis:      chart.YAxis{Name: s.yName, NameStyle: th.title(), Style: th.axis(), Range: padded(ylo, yhi), ValueFormatter: formatter(s.yKind)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    s.yName,
				XValues: s.xs,
				YValues: s.ys,
				Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3, DotColor: th.color(0)},
			},
		},
	}
	if err := ch.Render(s.opt.provider(), w); err != nil {
		return fmt.Errorf("render scatter chart: %w", err)
	}
	return nil
}

func formatter(kind dataset.Kind) chart.ValueFormatter {
	if kind == dataset.Datetime {
		return chart.TimeValueFormatter
	}
	return chart.FloatValueFormatter
}
