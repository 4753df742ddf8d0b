package summary_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
	"github.com/KaramelBytes/plotease-cli/internal/summary"
	"github.com/KaramelBytes/plotease-cli/internal/testutil"
)

func TestSummarizeFullHasOneRowPerColumn(t *testing.T) {
	for name, tbl := range map[string]*dataset.Table{
		"mtcars": testutil.MTCars(t),
		"mixed":  testutil.Mixed(t),
	} {
		t.Run(name, func(t *testing.T) {
			out, err := summary.Summarize(tbl, summary.StyleFull)
			require.NoError(t, err)
			assert.Equal(t, tbl.Width(), out.Len())
			assert.Equal(t, tbl.Names(), out.Names())

			seen := map[string]bool{}
			for _, r := range out.Rows {
				assert.False(t, seen[r.Name], "duplicate row %q", r.Name)
				seen[r.Name] = true
				assert.False(t, r.Numeric != nil && r.Categorical != nil, "row %q has both shapes", r.Name)
			}
		})
	}
}

func TestNumericStatsMatchIndependentComputation(t *testing.T) {
	out, err := summary.Summarize(testutil.MTCars(t), summary.StyleNumeric)
	require.NoError(t, err)
	require.Equal(t, 5, out.Len())

	row, ok := out.Row("mpg")
	require.True(t, ok)
	n := row.Numeric
	require.NotNil(t, n)
	assert.Nil(t, row.Categorical)

	assert.Equal(t, 32, n.Count)
	assert.Equal(t, 0, n.Missing)
	assert.InDelta(t, mean(testutil.MPG), n.Mean.Value, 1e-9)
	assert.InDelta(t, 20.090625, n.Mean.Value, 1e-9)
	assert.InDelta(t, sampleStd(testutil.MPG), n.Std.Value, 1e-9)
	assert.Equal(t, 10.4, n.Min.Value)
	assert.Equal(t, 33.9, n.Max.Value)
	assert.Less(t, n.Min.Value, n.Mean.Value)
	assert.Less(t, n.Mean.Value, n.Max.Value)

	skew, kurt := popShape(testutil.MPG)
	assert.InDelta(t, skew, n.Skew.Value, 1e-9)
	assert.InDelta(t, kurt, n.Kurtosis.Value, 1e-9)
}

func TestMixedTableFullSummary(t *testing.T) {
	out, err := summary.Summarize(testutil.Mixed(t), summary.StyleFull)
	require.NoError(t, err)
	require.Equal(t, []string{"age", "dept", "hired", "note"}, out.Names())

	age, _ := out.Row("age")
	require.NotNil(t, age.Numeric)
	assert.Nil(t, age.Categorical)
	assert.Equal(t, 5, age.Numeric.Count)
	assert.Equal(t, 1, age.Numeric.Missing)
	assert.InDelta(t, 100.0/6.0, age.Numeric.PercentMissing, 1e-9)

	dept, _ := out.Row("dept")
	require.NotNil(t, dept.Categorical)
	assert.Nil(t, dept.Numeric)
	assert.Equal(t, dataset.Categorical, dept.Categorical.Kind)
	assert.Equal(t, 5, dept.Categorical.Count)
	assert.Equal(t, 2, dept.Categorical.Unique)
	require.NotNil(t, dept.Categorical.Top)
	assert.Equal(t, "eng", *dept.Categorical.Top)
	assert.Equal(t, 3, dept.Categorical.TopFrequency)

	hired, _ := out.Row("hired")
	assert.Equal(t, dataset.Datetime, hired.Kind)
	assert.Nil(t, hired.Numeric)
	assert.Nil(t, hired.Categorical)

	note, _ := out.Row("note")
	require.NotNil(t, note.Categorical)
	assert.Nil(t, note.Categorical.Top)
	assert.Equal(t, 0, note.Categorical.TopFrequency)
	assert.Equal(t, 0, note.Categorical.Unique)
	assert.InDelta(t, 100.0, note.Categorical.PercentMissing, 1e-9)
}

func TestFilteredStyles(t *testing.T) {
	tbl := testutil.Mixed(t)

	num, err := summary.Summarize(tbl, summary.StyleNumeric)
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, num.Names())

	cat, err := summary.Summarize(tbl, summary.StyleCategorical)
	require.NoError(t, err)
	assert.Equal(t, []string{"dept", "note"}, cat.Names())
}

func TestModeTieKeepsFirstEncountered(t *testing.T) {
	tbl, err := dataset.New(dataset.NewCategorical("c", []string{"b", "a", "a", "b", "c"}, nil))
	require.NoError(t, err)
	out, err := summary.Summarize(tbl, summary.StyleCategorical)
	require.NoError(t, err)
	row, _ := out.Row("c")
	require.NotNil(t, row.Categorical.Top)
	assert.Equal(t, "b", *row.Categorical.Top)
	assert.Equal(t, 2, row.Categorical.TopFrequency)
}

func TestUndefinedStatisticsAreNotApplicable(t *testing.T) {
	tbl, err := dataset.New(
		dataset.NewNumeric("one", []float64{7, math.NaN(), math.NaN()}),
		dataset.NewNumeric("flat", []float64{3, 3, 3}),
		dataset.NewNumeric("none", []float64{math.NaN(), math.NaN(), math.NaN()}),
	)
	require.NoError(t, err)
	out, err := summary.Summarize(tbl, summary.StyleNumeric)
	require.NoError(t, err)

	one, _ := out.Row("one")
	assert.True(t, one.Numeric.Mean.Valid)
	assert.False(t, one.Numeric.Std.Valid)
	assert.False(t, one.Numeric.Skew.Valid)
	assert.Equal(t, "n/a", one.Numeric.Std.String())

	flat, _ := out.Row("flat")
	assert.True(t, flat.Numeric.Std.Valid)
	assert.Equal(t, 0.0, flat.Numeric.Std.Value)
	assert.False(t, flat.Numeric.Kurtosis.Valid)

	none, _ := out.Row("none")
	assert.Equal(t, 0, none.Numeric.Count)
	assert.False(t, none.Numeric.Mean.Valid)
	assert.False(t, none.Numeric.Min.Valid)
	assert.False(t, none.Numeric.Max.Valid)
}

func TestOverflowingStatisticsAreNotApplicable(t *testing.T) {
	tbl, err := dataset.New(dataset.NewNumeric("big", []float64{-1.7e308, 1.7e308, math.Inf(1)}))
	require.NoError(t, err)
	out, err := summary.Summarize(tbl, summary.StyleNumeric)
	require.NoError(t, err)
	row, _ := out.Row("big")
	n := row.Numeric
	assert.Equal(t, 2, n.Count)
	assert.Equal(t, 1, n.Missing)
	assert.Equal(t, -1.7e308, n.Min.Value)
	assert.Equal(t, 1.7e308, n.Max.Value)
	for _, m := range []summary.Metric{n.Mean, n.Std, n.Skew, n.Kurtosis} {
		if m.Valid {
			assert.False(t, math.IsInf(m.Value, 0) || math.IsNaN(m.Value), "non-finite %v", m.Value)
		}
	}
}

func TestSummarizeErrors(t *testing.T) {
	_, err := summary.Summarize(testutil.MTCars(t), summary.Style("wide"))
	require.ErrorIs(t, err, summary.ErrInvalidStyle)
	var se *summary.StyleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "wide", se.Style)

	for _, st := range []string{"FULL", " numeric", "Categorical", ""} {
		_, err = summary.Summarize(testutil.MTCars(t), summary.Style(st))
		assert.ErrorIs(t, err, summary.ErrInvalidStyle, "style %q", st)
	}

	empty, err := dataset.New(dataset.NewNumeric("x", nil))
	require.NoError(t, err)
	_, err = summary.Summarize(empty, summary.StyleFull)
	require.ErrorIs(t, err, summary.ErrEmptySource)

	noCols, err := dataset.New()
	require.NoError(t, err)
	_, err = summary.Summarize(noCols, summary.StyleNumeric)
	require.ErrorIs(t, err, summary.ErrEmptySource)
}

func TestParseStyle(t *testing.T) {
	st, err := summary.ParseStyle(" Numeric ")
	require.NoError(t, err)
	assert.Equal(t, summary.StyleNumeric, st)
	_, err = summary.ParseStyle("")
	assert.ErrorIs(t, err, summary.ErrInvalidStyle)
}

func TestMarkdownMarksNotApplicable(t *testing.T) {
	out, err := summary.Summarize(testutil.Mixed(t), summary.StyleFull)
	require.NoError(t, err)
	md := out.Markdown()
	assert.Contains(t, md, "[SUMMARY]")
	assert.Contains(t, md, "Columns: 4")
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "| hired |") {
			assert.Equal(t, 12, strings.Count(line, "n/a"), line)
			return
		}
	}
	t.Fatalf("hired row missing from markdown:\n%s", md)
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func sampleStd(vals []float64) float64 {
	m := mean(vals)
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

func popShape(vals []float64) (skew, kurt float64) {
	m := mean(vals)
	n := float64(len(vals))
	var m2, m3, m4 float64
	for _, v := range vals {
		d := v - m
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m3 /= n
	m4 /= n
	return m3 / math.Pow(m2, 1.5), m4/(m2*m2) - 3
}
