// Package testutil holds table fixtures shared by package tests.
package testutil

import (
	"math"
	"testing"
	"time"

	"github.com/KaramelBytes/plotease-cli/internal/dataset"
)

// MTCars columns, first 32 rows of the classic motor-trend dataset.
var (
	MPG = []float64{21.0, 21.0, 22.8, 21.4, 18.7, 18.1, 14.3, 24.4, 22.8, 19.2,
		17.8, 16.4, 17.3, 15.2, 10.4, 10.4, 14.7, 32.4, 30.4, 33.9,
		21.5, 15.5, 15.2, 13.3, 19.2, 27.3, 26.0, 30.4, 15.8, 19.7, 15.0, 21.4}
	Cyl = []float64{6, 6, 4, 6, 8, 6, 8, 4, 4, 6,
		6, 8, 8, 8, 8, 8, 8, 4, 4, 4,
		4, 8, 8, 8, 8, 4, 4, 4, 8, 6, 8, 4}
	HP = []float64{110, 110, 93, 110, 175, 105, 245, 62, 95, 123,
		123, 180, 180, 180, 205, 215, 230, 66, 52, 65,
		97, 150, 150, 245, 175, 66, 91, 113, 264, 175, 335, 109}
	WT = []float64{2.620, 2.875, 2.320, 3.215, 3.440, 3.460, 3.570, 3.190, 3.150, 3.440,
		3.440, 4.070, 3.730, 3.780, 5.250, 5.424, 5.345, 2.200, 1.615, 1.835,
		2.465, 3.520, 3.435, 3.840, 3.845, 1.935, 2.140, 1.513, 3.170, 2.770, 3.570, 2.780}
	AM = []float64{1, 1, 1, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 1, 1, 1,
		0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1}
)

// MTCars returns the numeric mtcars subset: mpg, cyl, hp, wt, am.
func MTCars(t testing.TB) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(
		dataset.NewNumeric("mpg", MPG),
		dataset.NewNumeric("cyl", Cyl),
		dataset.NewNumeric("hp", HP),
		dataset.NewNumeric("wt", WT),
		dataset.NewNumeric("am", AM),
	)
	if err != nil {
		t.Fatalf("build mtcars: %v", err)
	}
	return tbl
}

// Mixed returns a small table with numeric, categorical and datetime columns
// and missing values in each.
func Mixed(t testing.TB) *dataset.Table {
	t.Helper()
	day := func(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }
	tbl, err := dataset.New(
		dataset.NewNumeric("age", []float64{34, 41, math.NaN(), 29, 52, 41}),
		dataset.NewCategorical("dept", []string{"sales", "eng", "eng", "", "sales", "eng"}, []bool{true, true, true, false, true, true}),
		dataset.NewDatetime("hired", []time.Time{day(1), day(2), {}, day(4), day(5), day(6)}, []bool{true, true, false, true, true, true}),
		dataset.NewCategorical("note", make([]string, 6), make([]bool, 6)),
	)
	if err != nil {
		t.Fatalf("build mixed: %v", err)
	}
	return tbl
}
