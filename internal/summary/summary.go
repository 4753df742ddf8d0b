// Package summary computes per-column descriptive statistics for a table.
//
// Numeric columns get moment statistics, categorical columns get frequency
// statistics, and the full style merges both into one table aligned on the
// source column order. Values that are undefined for a column's shape (the
// standard deviation of a single value, the mode of an all-missing column)
// are reported as not applicable rather than as errors or zeros.
package summary

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// Style selects which columns a summary covers.
type Style string

const (
	StyleFull        Style = "full"
	StyleNumeric     Style = "numeric"
	StyleCategorical Style = "categorical"
)

var (
	// ErrInvalidStyle is returned for a style other than full, numeric or categorical.
	ErrInvalidStyle = errors.New("invalid summary style")
	// ErrEmptySource is returned when the table has no rows.
	ErrEmptySource = errors.New("empty source: table has no rows")
)

// StyleError carries the rejected style.
type StyleError struct{ Style string }

func (e *StyleError) Error() string {
	return fmt.Sprintf("%v: %q (use full|numeric|categorical)", ErrInvalidStyle, e.Style)
}

func (e *StyleError) Unwrap() error { return ErrInvalidStyle }

// ParseStyle maps user input to a Style.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleFull, StyleNumeric, StyleCategorical:
		return st, nil
	default:
		return "", &StyleError{Style: s}
	}
}

// Metric is a statistic that may be undefined for a column.
type Metric struct {
	Value float64
	Valid bool
}

// NA is the not-applicable marker.
var NA = Metric{}

// defined wraps v, or returns NA when v overflowed to a non-finite value.
func defined(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	return Metric{Value: v, Valid: true}
}

func (m Metric) String() string {
	if !m.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(m.Value, 'g', 4, 64)
}

// MarshalJSON encodes undefined metrics as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid || math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(m.Value, 'g', -1, 64)), nil
}

// MarshalYAML encodes undefined metrics as null.
func (m Metric) MarshalYAML() (any, error) {
	if !m.Valid {
		return nil, nil
	}
	return m.Value, nil
}

// NumericStats describes one numeric column.
type NumericStats struct {
	Count          int     `json:"count" yaml:"count"`
	Missing        int     `json:"missing" yaml:"missing"`
	PercentMissing float64 `json:"percent_missing" yaml:"percent_missing"`
	Mean           Metric  `json:"mean" yaml:"mean"`
	Std            Metric  `json:"std" yaml:"std"`
	Min            Metric  `json:"min" yaml:"min"`
	Max            Metric  `json:"max" yaml:"max"`
	Skew           Metric  `json:"skew" yaml:"skew"`
	Kurtosis       Metric  `json:"kurtosis" yaml:"kurtosis"`
}

// CategoricalStats describes one categorical column.
type CategoricalStats struct {
	Kind           dataset.Kind `json:"kind" yaml:"kind"`
	Count          int          `json:"count" yaml:"count"`
	Missing        int          `json:"missing" yaml:"missing"`
	PercentMissing float64      `json:"percent_missing" yaml:"percent_missing"`
	Unique         int          `json:"unique" yaml:"unique"`
	Top            *string      `json:"top" yaml:"top"`
	TopFrequency   int          `json:"top_frequency" yaml:"top_frequency"`
}

// Row is one column of a summary. At most one of Numeric and Categorical is
// set; datetime columns in a full summary have neither.
type Row struct {
	Name        string            `json:"name" yaml:"name"`
	Kind        dataset.Kind      `json:"kind" yaml:"kind"`
	Numeric     *NumericStats     `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty" yaml:"categorical,omitempty"`
}

// Table is an ordered set of summary rows.
type Table struct {
	Style      Style `json:"style" yaml:"style"`
	SourceRows int   `json:"source_rows" yaml:"source_rows"`
	Rows       []Row `json:"rows" yaml:"rows"`
}

// Len returns the number of summary rows.
func (t *Table) Len() int { return len(t.Rows) }

// Row looks a summary row up by column name.
func (t *Table) Row(name string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Name == name {
			return r, true
		}
	}
	return Row{}, false
}

// Names returns the summarized column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Name
	}
	return out
}

// Summarize computes the summary of src in the requested style. style must
// be one of the Style constants exactly; use ParseStyle for user input. The
// input table is not modified.
func Summarize(src *dataset.Table, style Style) (*Table, error) {
	switch style {
	case StyleFull, StyleNumeric, StyleCategorical:
	default:
		return nil, &StyleError{Style: string(style)}
	}
	if src == nil || src.Rows() == 0 {
		return nil, ErrEmptySource
	}
	out := &Table{Style: style, SourceRows: src.Rows()}
	for _, c := range src.Columns() {
		row := Row{Name: c.Name(), Kind: c.Kind()}
		switch c.Kind() {
		case dataset.Numeric:
			if style == StyleCategorical {
				continue
			}
			row.Numeric = numericStats(c, src.Rows())
		case dataset.Categorical:
			if style == StyleNumeric {
				continue
			}
			row.Categorical = categoricalStats(c, src.Rows())
		default:
			if style != StyleFull {
				continue
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func numericStats(c *dataset.Column, rows int) *NumericStats {
	var m moments
	for _, x := range c.Floats() {
		m.add(x)
	}
	missing := c.Missing()
	s := &NumericStats{
		Count:          m.n,
		Missing:        missing,
		PercentMissing: percent(missing, rows),
		Mean:           NA,
		Std:            NA,
		Min:            NA,
		Max:            NA,
		Skew:           NA,
		Kurtosis:       NA,
	}
	if m.n == 0 {
		return s
	}
	s.Mean = defined(m.mean)
	s.Min = defined(m.min)
	s.Max = defined(m.max)
	if m.n > 1 {
		s.Std = defined(math.Sqrt(m.m2 / float64(m.n-1)))
	}
	if m.m2 > 0 {
		n := float64(m.n)
		s.Skew = defined(math.Sqrt(n) * m.m3 / math.Pow(m.m2, 1.5))
		s.Kurtosis = defined(n*m.m4/(m.m2*m.m2) - 3)
	}
	return s
}

// moments accumulates central moments in one pass (Welford, extended to the
// third and fourth moment).
type moments struct {
	n          int
	mean       float64
	m2, m3, m4 float64
	min, max   float64
}

func (m *moments) add(x float64) {
	if m.n == 0 {
		m.min, m.max = x, x
	}
	if x < m.min {
		m.min = x
	}
	if x > m.max {
		m.max = x
	}
	n1 := float64(m.n)
	m.n++
	n := float64(m.n)
	delta := x - m.mean
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1
	m.mean += deltaN
	m.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*m.m2 - 4*deltaN*m.m3
	m.m3 += term1*deltaN*(n-2) - 3*deltaN*m.m2
	m.m2 += term1
}

func categoricalStats(c *dataset.Column, rows int) *CategoricalStats {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Text(i)
		if !ok {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	missing := c.Missing()
	s := &CategoricalStats{
		Kind:           c.Kind(),
		Count:          c.Len() - missing,
		Missing:        missing,
		PercentMissing: percent(missing, rows),
		Unique:         len(counts),
	}
	for _, v := range order {
		if counts[v] > s.TopFrequency {
			top := v
			s.Top = &top
			s.TopFrequency = counts[v]
		}
	}
	return s
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
