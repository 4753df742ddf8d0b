// Package plottype picks a chart kind for one column or a pair of columns.
//
// The decision combines the declared kind of each column with its
// cardinality, so a numeric column holding a handful of codes (a cylinder
// count, a 0/1 flag) is treated as a grouping variable instead of a
// continuous measure.
package plottype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// ChartKind is the inferred visualization category.
type ChartKind string

const (
	Histogram ChartKind = "histogram"
	Bar       ChartKind = "bar"
	Scatter   ChartKind = "scatter"
	BoxLike   ChartKind = "boxlike"
)

// Kinds lists every chart kind.
var Kinds = []ChartKind{Histogram, Bar, Scatter, BoxLike}

func (k ChartKind) String() string { return string(k) }

// ParseChartKind maps user input to a ChartKind. "hist" and "box"/"boxplot"
// are accepted as aliases.
func ParseChartKind(s string) (ChartKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "histogram", "hist":
		return Histogram, nil
	case "bar":
		return Bar, nil
	case "scatter":
		return Scatter, nil
	case "boxlike", "box", "boxplot":
		return BoxLike, nil
	default:
		return "", fmt.Errorf("unknown chart kind: %q (use histogram|bar|scatter|boxlike)", s)
	}
}

// ErrUnknownColumn is returned when a requested column is not in the table.
var ErrUnknownColumn = errors.New("unknown column")

// ColumnError carries the missing column name.
type ColumnError struct{ Column string }

func (e *ColumnError) Error() string { return fmt.Sprintf("%v: %q", ErrUnknownColumn, e.Column) }

func (e *ColumnError) Unwrap() error { return ErrUnknownColumn }

// Thresholds are the cardinality cut-offs used by Detect.
type Thresholds struct {
	// BarCardinality: a numeric column with fewer distinct values is plotted
	// as bars when the table is large enough.
	BarCardinality int
	// BarMinRows: the table must have more rows than this for BarCardinality to apply.
	BarMinRows int
	// GroupCardinality: a second column with fewer distinct values is a grouping variable.
	GroupCardinality int
}

// DefaultThresholds returns the standard cut-offs (20 distinct, 100 rows, 10 distinct).
func DefaultThresholds() Thresholds {
	return Thresholds{BarCardinality: 20, BarMinRows: 100, GroupCardinality: 10}
}

// Detector classifies columns into chart kinds. The zero value uses
// DefaultThresholds.
type Detector struct {
	Thresholds Thresholds
}

// New returns a Detector with the given thresholds; zero fields fall back to defaults.
func New(th Thresholds) *Detector {
	def := DefaultThresholds()
	if th.BarCardinality <= 0 {
		th.BarCardinality = def.BarCardinality
	}
	if th.BarMinRows <= 0 {
		th.BarMinRows = def.BarMinRows
	}
	if th.GroupCardinality <= 0 {
		th.GroupCardinality = def.GroupCardinality
	}
	return &Detector{Thresholds: th}
}

// Detect returns the chart kind for column x, or for the pair (x, y) when y
// is non-empty. Rules, first match wins:
//
//  1. univariate: x categorical, or numeric with fewer than BarCardinality
//     distinct values in a table of more than BarMinRows rows → bar; else histogram
//  2. x and y numeric, y with at least GroupCardinality distinct values → scatter
//  3. x numeric and y categorical or with fewer than GroupCardinality distinct values → boxlike
//  4. anything else → bar
func (d *Detector) Detect(t *dataset.Table, x, y string) (ChartKind, error) {
	th := d.thresholds()
	xc, ok := t.Column(x)
	if !ok {
		return "", &ColumnError{Column: x}
	}
	if y == "" {
		if xc.Kind() == dataset.Categorical ||
			(xc.Kind() == dataset.Numeric && xc.Distinct() < th.BarCardinality && t.Rows() > th.BarMinRows) {
			return Bar, nil
		}
		return Histogram, nil
	}
	yc, ok := t.Column(y)
	if !ok {
		return "", &ColumnError{Column: y}
	}
	yGrouping := yc.Kind() == dataset.Categorical || yc.Distinct() < th.GroupCardinality
	switch {
	case xc.Kind() == dataset.Numeric && yc.Kind() == dataset.Numeric && !yGrouping:
		return Scatter, nil
	case xc.Kind() == dataset.Numeric && yGrouping:
		return BoxLike, nil
	default:
		return Bar, nil
	}
}

func (d *Detector) thresholds() Thresholds {
	if d == nil {
		return DefaultThresholds()
	}
	return New(d.Thresholds).Thresholds
}

// Detect classifies with the default thresholds.
func Detect(t *dataset.Table, x, y string) (ChartKind, error) {
	return (*Detector)(nil).Detect(t, x, y)
}
