package plottype_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
	"github.com/KaramelBytes/plotease-cli/internal/plottype"
	"github.com/KaramelBytes/plotease-cli/internal/testutil"
)

// wide builds a table with n rows: a continuous column, a second continuous
// column, a 3-valued numeric code, a categorical label and a datetime stamp.
func wide(t *testing.T, n int) *dataset.Table {
	t.Helper()
	cont := make([]float64, n)
	cont2 := make([]float64, n)
	code := make([]float64, n)
	label := make([]string, n)
	stamp := make([]time.Time, n)
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		cont[i] = float64(i) * 1.5
		cont2[i] = float64(i*i) / 7
		code[i] = float64(4 + 2*(i%3))
		label[i] = fmt.Sprintf("g%d", i%4)
		stamp[i] = base.Add(time.Duration(i) * time.Hour)
	}
	tbl, err := dataset.New(
		dataset.NewNumeric("cont", cont),
		dataset.NewNumeric("cont2", cont2),
		dataset.NewNumeric("code", code),
		dataset.NewCategorical("label", label, nil),
		dataset.NewDatetime("stamp", stamp, nil),
	)
	require.NoError(t, err)
	return tbl
}

func TestDetectUnivariate(t *testing.T) {
	big := wide(t, 150)
	small := wide(t, 50)
	tests := []struct {
		name string
		tbl  *dataset.Table
		x    string
		want plottype.ChartKind
	}{
		{"continuous numeric", big, "cont", plottype.Histogram},
		{"categorical", big, "label", plottype.Bar},
		{"categorical small table", small, "label", plottype.Bar},
		{"low cardinality numeric in large table", big, "code", plottype.Bar},
		{"low cardinality numeric in small table", small, "code", plottype.Histogram},
		{"datetime", big, "stamp", plottype.Histogram},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := plottype.Detect(tt.tbl, tt.x, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectBivariate(t *testing.T) {
	tbl := wide(t, 150)
	tests := []struct {
		x, y string
		want plottype.ChartKind
	}{
		{"cont", "cont2", plottype.Scatter},
		{"cont", "label", plottype.BoxLike},
		{"cont", "code", plottype.BoxLike},
		{"label", "cont", plottype.Bar},
		{"label", "label", plottype.Bar},
		{"code", "cont", plottype.Scatter},
		{"stamp", "cont", plottype.Bar},
		{"cont", "stamp", plottype.Bar},
	}
	for _, tt := range tests {
		t.Run(tt.x+"/"+tt.y, func(t *testing.T) {
			got, err := plottype.Detect(tbl, tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectMTCars(t *testing.T) {
	tbl := testutil.MTCars(t)
	got, err := plottype.Detect(tbl, "mpg", "")
	require.NoError(t, err)
	assert.Equal(t, plottype.Histogram, got)

	got, err = plottype.Detect(tbl, "mpg", "hp")
	require.NoError(t, err)
	assert.Equal(t, plottype.Scatter, got)

	// cyl holds three codes: a grouping variable, not a continuous axis
	got, err = plottype.Detect(tbl, "mpg", "cyl")
	require.NoError(t, err)
	assert.Equal(t, plottype.BoxLike, got)
}

func TestDetectUnknownColumn(t *testing.T) {
	tbl := testutil.MTCars(t)
	_, err := plottype.Detect(tbl, "nope", "")
	require.ErrorIs(t, err, plottype.ErrUnknownColumn)

	_, err = plottype.Detect(tbl, "mpg", "nope")
	require.ErrorIs(t, err, plottype.ErrUnknownColumn)
	var ce *plottype.ColumnError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "nope", ce.Column)
}

func TestCustomThresholds(t *testing.T) {
	tbl := testutil.MTCars(t)
	d := plottype.New(plottype.Thresholds{BarCardinality: 5, BarMinRows: 10})
	got, err := d.Detect(tbl, "cyl", "")
	require.NoError(t, err)
	assert.Equal(t, plottype.Bar, got)
	assert.Equal(t, 10, d.Thresholds.GroupCardinality)
}

func TestDetectIsDeterministic(t *testing.T) {
	tbl := wide(t, 120)
	first, err := plottype.Detect(tbl, "cont", "label")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := plottype.Detect(tbl, "cont", "label")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestParseChartKind(t *testing.T) {
	for in, want := range map[string]plottype.ChartKind{
		"hist": plottype.Histogram, "Box": plottype.BoxLike, "boxplot": plottype.BoxLike, " scatter ": plottype.Scatter,
	} {
		got, err := plottype.ParseChartKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := plottype.ParseChartKind("pie")
	assert.Error(t, err)
}
