package render

import (
	"fmt"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
	"github.com/KaramelBytes/plotease-cli/internal/plottype"
)

// Build turns a chart kind and column selection into a Renderer.
//
//   - histogram: distribution of x
//   - bar: counts of x, or the mean of numeric y per x group
//   - scatter: y against x
//   - boxlike: x summarized per group of y
func Build(kind plottype.ChartKind, t *dataset.Table, x, y string, opt Options) (Renderer, error) {
	xc, ok := t.Column(x)
	if !ok {
		return nil, &plottype.ColumnError{Column: x}
	}
	var yc *dataset.Column
	if y != "" {
		if yc, ok = t.Column(y); !ok {
			return nil, &plottype.ColumnError{Column: y}
		}
	}
	switch kind {
	case plottype.Histogram:
		return NewHistogram(xc, opt)
	case plottype.Bar:
		if yc != nil && yc.Kind() == dataset.Numeric {
			return NewMeans(xc, yc, opt)
		}
		return NewCounts(xc, opt)
	case plottype.Scatter:
		if yc == nil {
			return nil, fmt.Errorf("scatter needs two columns")
		}
		return NewScatter(xc, yc, opt)
	case plottype.BoxLike:
		if yc == nil {
			return nil, fmt.Errorf("boxlike needs a grouping column")
		}
		return NewBox(xc, yc, opt)
	default:
		return nil, fmt.Errorf("unknown chart kind: %q", kind)
	}
}
