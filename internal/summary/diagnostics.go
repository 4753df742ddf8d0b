package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// MissingCount is the number of missing values in one column.
type MissingCount struct {
	Name    string  `json:"name" yaml:"name"`
	Missing int     `json:"missing" yaml:"missing"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Values  [][]float64 `json:"values" yaml:"values"` // row-major, Values[i][j]
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// Diagnostics bundles the data-quality checks run before plotting.
type Diagnostics struct {
	Rows    int            `json:"rows" yaml:"rows"`
	Columns int            `json:"columns" yaml:"columns"`
	Missing []MissingCount `json:"missing" yaml:"missing"`
	Corr    *CorrMatrix    `json:"correlations,omitempty" yaml:"correlations,omitempty"`
}

// Diagnose runs the missing-value ranking and the correlation matrix.
func Diagnose(src *dataset.Table) (*Diagnostics, error) {
	if src == nil || src.Rows() == 0 {
		return nil, ErrEmptySource
	}
	return &Diagnostics{
		Rows:    src.Rows(),
		Columns: src.Width(),
		Missing: MissingByColumn(src),
		Corr:    Correlations(src),
	}, nil
}

// MissingByColumn lists columns that have missing values, most missing first.
// Ties keep source order.
func MissingByColumn(src *dataset.Table) []MissingCount {
	var out []MissingCount
	for _, c := range src.Columns() {
		if m := c.Missing(); m > 0 {
			out = append(out, MissingCount{Name: c.Name(), Missing: m, Percent: percent(m, src.Rows())})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Missing > out[j].Missing })
	return out
}

type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (pa *pairAcc) r() float64 {
	if pa.n < 2 {
		return 0
	}
	denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
	if denom == 0 {
		return 0
	}
	r := (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Correlations computes Pearson correlations between every pair of numeric
// columns using pairwise-complete rows. It returns nil when fewer than two
// numeric columns exist.
func Correlations(src *dataset.Table) *CorrMatrix {
	var num []*dataset.Column
	for _, c := range src.Columns() {
		if c.Kind() == dataset.Numeric {
			num = append(num, c)
		}
	}
	if len(num) < 2 {
		return nil
	}
	n := len(num)
	m := &CorrMatrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for i, c := range num {
		m.Columns[i] = c.Name()
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			var pa pairAcc
			for row := 0; row < src.Rows(); row++ {
				x, okx := num[a].Float(row)
				y, oky := num[b].Float(row)
				if !okx || !oky {
					continue
				}
				pa.n++
				pa.sumX += x
				pa.sumY += y
				pa.sumXX += x * x
				pa.sumYY += y * y
				pa.sumXY += x * y
			}
			r := pa.r()
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

// TopPairs lists the strongest pairs by |r|, at most limit of them.
func (m *CorrMatrix) TopPairs(limit int) []PairCorr {
	if m == nil {
		return nil
	}
	var pairs []PairCorr
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

// Markdown renders the diagnostics report.
func (d *Diagnostics) Markdown() string {
	var b strings.Builder
	b.WriteString("[DIAGNOSTICS]\n")
	b.WriteString(fmt.Sprintf("Rows: %d\n", d.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", d.Columns))

	b.WriteString("\n[MISSING VALUES]\n")
	if len(d.Missing) == 0 {
		b.WriteString("- none\n")
	}
	for _, m := range d.Missing {
		b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", safeName(m.Name), m.Missing, m.Percent))
	}
	if d.Corr != nil {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range d.Corr.TopPairs(10) {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	return b.String()
}
