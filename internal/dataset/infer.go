package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Options controls how raw text cells are turned into typed columns.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
	// Sheet selects an XLSX worksheet by name (case-insensitive). When empty,
	// SheetIndex (1-based, default 1) is used.
	Sheet      string
	SheetIndex int
	// Kinds forces the declared kind of named columns, skipping inference.
	Kinds map[string]Kind
}

// DefaultOptions returns reasonable defaults for loading datasets.
func DefaultOptions() Options {
	return Options{}
}

// FromRecords builds a table from a header and raw text rows. Empty cells are
// missing. A column is numeric when every non-missing cell parses as a number,
// datetime when every non-missing cell parses as a timestamp, and categorical
// otherwise. Short rows are padded with missing cells.
func FromRecords(header []string, rows [][]string, opt Options) (*Table, error) {
	cols := make([]*Column, 0, len(header))
	for j, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		cells := make([]string, len(rows))
		for i, r := range rows {
			if j < len(r) {
				cells[i] = strings.TrimSpace(r[j])
			}
		}
		kind, forced := opt.Kinds[name]
		if !forced {
			kind = inferKind(cells, opt)
		}
		col, err := buildColumn(name, kind, cells, opt)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

func inferKind(cells []string, opt Options) Kind {
	var present, numCnt, dtCnt int
	for _, v := range cells {
		if v == "" {
			continue
		}
		present++
		if _, ok := parseNumeric(v, opt); ok {
			numCnt++
			continue
		}
		if _, ok := parseTimeMaybe(v); ok {
			dtCnt++
		}
	}
	switch {
	case present == 0:
		return Categorical
	case numCnt == present:
		return Numeric
	case dtCnt == present:
		return Datetime
	default:
		return Categorical
	}
}

func buildColumn(name string, kind Kind, cells []string, opt Options) (*Column, error) {
	valid := make([]bool, len(cells))
	switch kind {
	case Numeric:
		vals := make([]float64, len(cells))
		for i, v := range cells {
			if v == "" {
				continue
			}
			x, ok := parseNumeric(v, opt)
			if !ok {
				return nil, fmt.Errorf("column %q row %d: %q is not numeric", name, i+1, v)
			}
			vals[i], valid[i] = x, true
		}
		return nullableNumeric(name, vals, valid), nil
	case Datetime:
		vals := make([]time.Time, len(cells))
		for i, v := range cells {
			if v == "" {
				continue
			}
			t, ok := parseTimeMaybe(v)
			if !ok {
				return nil, fmt.Errorf("column %q row %d: %q is not a datetime", name, i+1, v)
			}
			vals[i], valid[i] = t, true
		}
		return NewDatetime(name, vals, valid), nil
	case Categorical:
		for i, v := range cells {
			valid[i] = v != ""
		}
		return NewCategorical(name, cells, valid), nil
	default:
		return nil, fmt.Errorf("column %q: unknown kind %q", name, kind)
	}
}

func nullableNumeric(name string, vals []float64, valid []bool) *Column {
	c := &Column{name: name, kind: Numeric, nums: append([]float64(nil), vals...)}
	c.valid = maskFor(len(vals), valid)
	return c
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0:
			if cpos > dpos {
				dec, thou = ',', '.'
			} else {
				dec, thou = '.', ','
			}
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
