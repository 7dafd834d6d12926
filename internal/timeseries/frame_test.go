package timeseries

import (
	"math"
	"testing"
	"time"

	"MacroDash/internal/domain/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func series(name string, points ...models.Point) models.Series {
	return models.Series{Name: name, Points: points}
}

func pt(d int, v float64) models.Point {
	return models.Point{Date: day(d), Value: v}
}

func TestFromSeriesUnionIndex(t *testing.T) {
	f := FromSeries(
		series("a", pt(1, 1), pt(3, 3)),
		series("b", pt(2, 2), pt(3, 30)),
	)

	if f.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", f.Len())
	}
	if !math.IsNaN(f.Value("a", 1)) {
		t.Fatalf("expected NaN for a on day 2, got %v", f.Value("a", 1))
	}
	if f.Value("b", 2) != 30 {
		t.Fatalf("expected 30, got %v", f.Value("b", 2))
	}
}

func TestConcatOuterJoin(t *testing.T) {
	left := FromSeries(series("a", pt(1, 1), pt(2, 2)))
	right := FromSeries(series("b", pt(2, 20), pt(4, 40)))

	f, err := left.Concat(right)
	if err != nil {
		t.Fatalf("concat: %v", err)
	}
	if f.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", f.Len())
	}
	if f.Value("a", 1) != 2 || f.Value("b", 1) != 20 {
		t.Fatalf("shared date misaligned: a=%v b=%v", f.Value("a", 1), f.Value("b", 1))
	}
	if !math.IsNaN(f.Value("a", 2)) {
		t.Fatalf("expected NaN for a on day 4")
	}
}

func TestConcatRejectsDuplicateColumns(t *testing.T) {
	left := FromSeries(series("a", pt(1, 1)))
	right := FromSeries(series("a", pt(2, 2)))
	if _, err := left.Concat(right); err == nil {
		t.Fatalf("expected duplicate column error")
	}
}

func TestResampleDailyFillsCalendar(t *testing.T) {
	// Observations on days 1 and 4 only; resampling must produce rows for
	// days 2 and 3 as NaN.
	f := FromSeries(series("a", pt(1, 1), pt(4, 4))).ResampleDaily()

	if f.Len() != 4 {
		t.Fatalf("expected 4 calendar rows, got %d", f.Len())
	}
	if !math.IsNaN(f.Value("a", 1)) || !math.IsNaN(f.Value("a", 2)) {
		t.Fatalf("expected NaN on unobserved days")
	}
}

func TestResampleDailyMeansIntraday(t *testing.T) {
	morning := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	f := FromSeries(models.Series{Name: "a", Points: []models.Point{
		{Date: morning, Value: 10},
		{Date: noon, Value: 20},
	}}).ResampleDaily()

	if f.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", f.Len())
	}
	if got := f.Value("a", 0); got != 15 {
		t.Fatalf("expected mean 15, got %v", got)
	}
}

func TestForwardFill(t *testing.T) {
	f := FromSeries(
		series("a", pt(1, 1), pt(4, 4)),
		series("b", pt(1, 10), pt(2, 20), pt(3, 30), pt(4, 40)),
	).ResampleDaily().ForwardFill()

	if got := f.Value("a", 1); got != 1 {
		t.Fatalf("expected filled 1, got %v", got)
	}
	if got := f.Value("a", 2); got != 1 {
		t.Fatalf("expected filled 1, got %v", got)
	}
	if got := f.Value("a", 3); got != 4 {
		t.Fatalf("expected 4, got %v", got)
	}
}

func TestDropLeadingIncomplete(t *testing.T) {
	f := FromSeries(
		series("a", pt(3, 3), pt(4, 4)),
		series("b", pt(1, 10), pt(2, 20), pt(3, 30), pt(4, 40)),
	).ResampleDaily().ForwardFill().DropLeadingIncomplete()

	if f.Len() != 2 {
		t.Fatalf("expected 2 rows after truncation, got %d", f.Len())
	}
	for _, c := range f.Columns() {
		if f.NaNCount(c) != 0 {
			t.Fatalf("column %s still has gaps", c)
		}
	}
	if !f.Date(0).Equal(day(3)) {
		t.Fatalf("expected first retained date 2024-01-03, got %v", f.Date(0))
	}
}

func TestRollingMeanWarmup(t *testing.T) {
	f := FromSeries(series("a", pt(1, 1), pt(2, 2), pt(3, 3), pt(4, 4)))
	ma, err := f.RollingMean("a", 3)
	if err != nil {
		t.Fatalf("rolling mean: %v", err)
	}
	if !math.IsNaN(ma[0]) || !math.IsNaN(ma[1]) {
		t.Fatalf("expected NaN during warmup")
	}
	if ma[2] != 2 || ma[3] != 3 {
		t.Fatalf("unexpected means: %v", ma)
	}
}

func TestRollingMeanLongerThanFrame(t *testing.T) {
	f := FromSeries(series("a", pt(1, 1), pt(2, 2)))
	ma, err := f.RollingMean("a", 20)
	if err != nil {
		t.Fatalf("rolling mean: %v", err)
	}
	for i, v := range ma {
		if !math.IsNaN(v) {
			t.Fatalf("expected all NaN, got %v at %d", v, i)
		}
	}
}

func TestAddColumnLengthMismatch(t *testing.T) {
	f := FromSeries(series("a", pt(1, 1), pt(2, 2)))
	if err := f.AddColumn("x", []float64{1}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestSince(t *testing.T) {
	f := FromSeries(series("a", pt(1, 1), pt(2, 2), pt(3, 3)))
	got := f.Since(day(2))
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	if got.Value("a", 0) != 2 {
		t.Fatalf("expected first value 2, got %v", got.Value("a", 0))
	}
}

func TestImmutability(t *testing.T) {
	base := FromSeries(series("a", pt(1, 1), pt(3, 3)))
	_ = base.ResampleDaily().ForwardFill()
	if base.Len() != 2 {
		t.Fatalf("receiver mutated: %d rows", base.Len())
	}
	if base.Value("a", 1) != 3 {
		t.Fatalf("receiver values changed: %v", base.Value("a", 1))
	}
}
