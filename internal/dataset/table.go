package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the declared semantic type of a column.
type Kind string

const (
	Numeric     Kind = "numeric"
	Categorical Kind = "categorical"
	Datetime    Kind = "datetime"
)

// ParseKind maps user input to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "number", "num":
		return Numeric, nil
	case "categorical", "category", "cat", "text", "string":
		return Categorical, nil
	case "datetime", "date", "time":
		return Datetime, nil
	default:
		return "", fmt.Errorf("unknown column kind: %q (use numeric|categorical|datetime)", s)
	}
}

// Column is a named, typed, nullable sequence of values. Columns are
// immutable once built; constructors copy their inputs.
type Column struct {
	name  string
	kind  Kind
	nums  []float64
	strs  []string
	times []time.Time
	valid []bool
}

// NewNumeric builds a numeric column. NaN and ±Inf mark a missing value.
func NewNumeric(name string, vals []float64) *Column {
	c := &Column{name: name, kind: Numeric, nums: make([]float64, len(vals)), valid: make([]bool, len(vals))}
	for i, v := range vals {
		c.nums[i] = v
		c.valid[i] = !math.IsNaN(v) && !math.IsInf(v, 0)
	}
	return c
}

// NewCategorical builds a categorical column. A nil valid mask means every
// value is present; otherwise valid[i]==false marks vals[i] missing.
func NewCategorical(name string, vals []string, valid []bool) *Column {
	c := &Column{name: name, kind: Categorical, strs: append([]string(nil), vals...)}
	c.valid = maskFor(len(vals), valid)
	return c
}

// NewDatetime builds a datetime column; the valid mask follows NewCategorical.
func NewDatetime(name string, vals []time.Time, valid []bool) *Column {
	c := &Column{name: name, kind: Datetime, times: append([]time.Time(nil), vals...)}
	c.valid = maskFor(len(vals), valid)
	return c
}

func maskFor(n int, valid []bool) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = valid == nil || (i < len(valid) && valid[i])
	}
	return m
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.valid) }

// IsMissing reports whether row i holds no value.
func (c *Column) IsMissing(i int) bool { return !c.valid[i] }

// Missing counts missing values.
func (c *Column) Missing() int {
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Float returns the numeric value at row i. ok is false for missing values
// and for non-numeric columns.
func (c *Column) Float(i int) (v float64, ok bool) {
	if c.kind != Numeric || !c.valid[i] {
		return 0, false
	}
	return c.nums[i], true
}

// Time returns the datetime value at row i.
func (c *Column) Time(i int) (t time.Time, ok bool) {
	if c.kind != Datetime || !c.valid[i] {
		return time.Time{}, false
	}
	return c.times[i], true
}

// Text returns the value at row i as text, whatever the column kind.
func (c *Column) Text(i int) (s string, ok bool) {
	if !c.valid[i] {
		return "", false
	}
	switch c.kind {
	case Numeric:
		return strconv.FormatFloat(c.nums[i], 'g', -1, 64), true
	case Datetime:
		return c.times[i].Format(time.RFC3339), true
	default:
		return c.strs[i], true
	}
}

// Floats returns the non-missing numeric values in row order.
func (c *Column) Floats() []float64 {
	if c.kind != Numeric {
		return nil
	}
	out := make([]float64, 0, len(c.nums))
	for i, v := range c.nums {
		if c.valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// Distinct returns the cardinality: the number of distinct non-missing values.
func (c *Column) Distinct() int {
	seen := make(map[string]struct{})
	for i := range c.valid {
		if k, ok := c.key(i); ok {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// key is a comparable identity for the value at row i.
func (c *Column) key(i int) (string, bool) {
	if !c.valid[i] {
		return "", false
	}
	switch c.kind {
	case Numeric:
		v := c.nums[i]
		if v == 0 {
			v = 0 // fold -0 into 0
		}
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case Datetime:
		return strconv.FormatInt(c.times[i].UnixNano(), 10), true
	default:
		return c.strs[i], true
	}
}

// Equal reports whether two columns have the same name, kind and values.
func (c *Column) Equal(o *Column) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.name != o.name || c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	for i := range c.valid {
		if c.valid[i] != o.valid[i] {
			return false
		}
		a, _ := c.key(i)
		b, _ := o.key(i)
		if a != b {
			return false
		}
	}
	return true
}

// Table is an ordered set of columns sharing one row count.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

var (
	// ErrLengthMismatch reports columns of differing lengths.
	ErrLengthMismatch = errors.New("columns have different lengths")
	// ErrDuplicateColumn reports a repeated column name.
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// New assembles a table. All columns must have the same length and unique,
// non-empty names. Zero columns is allowed and yields a zero-row table.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if strings.TrimSpace(c.name) == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrLengthMismatch, c.name, c.Len(), t.rows)
		}
		t.index[c.name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// Rows returns the shared row count.
func (t *Table) Rows() int { return t.rows }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.cols) }

// Columns returns the columns in source order.
func (t *Table) Columns() []*Column { return append([]*Column(nil), t.cols...) }

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Names returns column names in source order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.name
	}
	return out
}

// Equal reports whether both tables hold the same columns in the same order.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.rows != o.rows || len(t.cols) != len(o.cols) {
		return false
	}
	for i := range t.cols {
		if !t.cols[i].Equal(o.cols[i]) {
			return false
		}
	}
	return true
}
