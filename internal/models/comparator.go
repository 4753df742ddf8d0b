// Package models compares named sets of model metrics.
package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownMetric is returned when no model defines the requested metric.
var ErrUnknownMetric = errors.New("unknown metric")

// MetricError carries the requested metric name.
type MetricError struct{ Metric string }

func (e *MetricError) Error() string { return fmt.Sprintf("%v: %q", ErrUnknownMetric, e.Metric) }

func (e *MetricError) Unwrap() error { return ErrUnknownMetric }

// ErrDuplicateModel is returned when two records share a name.
var ErrDuplicateModel = errors.New("duplicate model name")

// Record is one model and its metric values. Metric sets may differ between
// records.
type Record struct {
	Name    string             `json:"name" yaml:"name"`
	Metrics map[string]float64 `json:"metrics" yaml:"metrics"`
}

// Ordering is the result of Compare.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Comparator holds an ordered, read-only collection of model records.
type Comparator struct {
	records []Record
	index   map[string]int
}

// New builds a Comparator from a name → metrics mapping. Records are ordered
// by model name. An empty mapping yields a comparator with zero models.
func New(m map[string]map[string]float64) *Comparator {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	recs := make([]Record, len(names))
	for i, name := range names {
		recs[i] = Record{Name: name, Metrics: m[name]}
	}
	c, _ := FromRecords(recs) // names from a map are unique
	return c
}

// FromRecords builds a Comparator that keeps the given record order.
func FromRecords(recs []Record) (*Comparator, error) {
	c := &Comparator{records: make([]Record, 0, len(recs)), index: make(map[string]int, len(recs))}
	for _, r := range recs {
		if _, dup := c.index[r.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateModel, r.Name)
		}
		metrics := make(map[string]float64, len(r.Metrics))
		for k, v := range r.Metrics {
			metrics[k] = v
		}
		c.index[r.Name] = len(c.records)
		c.records = append(c.records, Record{Name: r.Name, Metrics: metrics})
	}
	return c, nil
}

// Len returns the number of models.
func (c *Comparator) Len() int { return len(c.records) }

// Names returns model names in order.
func (c *Comparator) Names() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Name
	}
	return out
}

// Record returns a copy of the named model's record.
func (c *Comparator) Record(name string) (Record, bool) {
	i, ok := c.index[name]
	if !ok {
		return Record{}, false
	}
	r := c.records[i]
	metrics := make(map[string]float64, len(r.Metrics))
	for k, v := range r.Metrics {
		metrics[k] = v
	}
	return Record{Name: r.Name, Metrics: metrics}, true
}

// Metrics returns the sorted union of metric names across all models.
func (c *Comparator) Metrics() []string {
	seen := map[string]struct{}{}
	for _, r := range c.records {
		for k := range r.Metrics {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BestModel returns the model with the highest value for metric. Ties go to
// the earliest model; NaN values are skipped. Higher is always treated as
// better: for error metrics such as MAE the caller must pick a different
// metric or invert the values first.
func (c *Comparator) BestModel(metric string) (string, error) {
	best, bestVal, found := "", math.Inf(-1), false
	for _, r := range c.records {
		v, ok := r.Metrics[metric]
		if !ok || math.IsNaN(v) {
			continue
		}
		if !found || v > bestVal {
			best, bestVal, found = r.Name, v, true
		}
	}
	if !found {
		return "", &MetricError{Metric: metric}
	}
	return best, nil
}

// Ranked is one entry of a ranking.
type Ranked struct {
	Name  string
	Value float64
}

// Rank lists the models defining metric, highest value first. Ties keep
// model order.
func (c *Comparator) Rank(metric string) ([]Ranked, error) {
	var out []Ranked
	for _, r := range c.records {
		if v, ok := r.Metrics[metric]; ok && !math.IsNaN(v) {
			out = append(out, Ranked{Name: r.Name, Value: v})
		}
	}
	if len(out) == 0 {
		return nil, &MetricError{Metric: metric}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, nil
}

// Score is the arithmetic mean of every metric value of every model.
//
// Caveat: the mean ignores metric identity, scale and polarity. An R² of 0.9
// and a cost of 20 are averaged as plain numbers, so a model with a larger
// cost scores higher. Use it only across comparators whose metrics share a
// scale and a higher-is-better direction. ok is false when there is nothing
// to average (no values, or values whose mean is NaN such as +Inf and -Inf).
func (c *Comparator) Score() (score float64, ok bool) {
	if c == nil {
		return 0, false
	}
	var sum float64
	var n int
	for _, r := range c.records {
		// sorted keys keep the float sum identical across calls
		keys := make([]string, 0, len(r.Metrics))
		for k := range r.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := r.Metrics[k]
			if math.IsNaN(v) {
				continue
			}
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	score = sum / float64(n)
	if math.IsNaN(score) {
		return 0, false
	}
	return score, true
}

// Compare orders a and b by Score. A comparator without a score ranks below
// any scored one; two unscored comparators are Equal.
func Compare(a, b *Comparator) Ordering {
	sa, oka := a.Score()
	sb, okb := b.Score()
	switch {
	case !oka && !okb:
		return Equal
	case !oka:
		return Less
	case !okb:
		return Greater
	case sa < sb:
		return Less
	case sa > sb:
		return Greater
	default:
		return Equal
	}
}

// Equals reports whether a and b hold the same model names with the same
// metric values, regardless of order.
func Equals(a, b *Comparator) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.records) != len(b.records) {
		return false
	}
	for _, ra := range a.records {
		i, ok := b.index[ra.Name]
		if !ok {
			return false
		}
		rb := b.records[i]
		if len(ra.Metrics) != len(rb.Metrics) {
			return false
		}
		for k, va := range ra.Metrics {
			vb, ok := rb.Metrics[k]
			if !ok || !sameValue(va, vb) {
				return false
			}
		}
	}
	return true
}

// sameValue is exact equality that also treats NaN as equal to NaN.
func sameValue(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

// Markdown renders the models as a metric table with the best model per
// metric marked with '*'.
func (c *Comparator) Markdown() string {
	var b strings.Builder
	b.WriteString("[MODELS]\n")
	b.WriteString(fmt.Sprintf("Models: %d\n", c.Len()))
	if score, ok := c.Score(); ok {
		b.WriteString(fmt.Sprintf("Score: %.4g (mean of all metric values)\n", score))
	}
	metrics := c.Metrics()
	if len(metrics) == 0 {
		return b.String()
	}
	b.WriteString("\n| model | " + strings.Join(metrics, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(metrics)+1) + "\n")
	best := make(map[string]string, len(metrics))
	for _, m := range metrics {
		best[m], _ = c.BestModel(m)
	}
	for _, r := range c.records {
		cells := make([]string, 0, len(metrics)+1)
		cells = append(cells, r.Name)
		for _, m := range metrics {
			v, ok := r.Metrics[m]
			switch {
			case !ok:
				cells = append(cells, "n/a")
			case best[m] == r.Name:
				cells = append(cells, fmt.Sprintf("%.4g*", v))
			default:
				cells = append(cells, fmt.Sprintf("%.4g", v))
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}
