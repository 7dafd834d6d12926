package timeseries

import (
	"fmt"
	"math"
	"sort"
	"time"

	"MacroDash/internal/domain/models"
	"MacroDash/pkg/util"
)

// Frame is a date-indexed table of float64 columns. The index is strictly
// ascending with unique timestamps; missing cells are NaN. All mutating
// operations return a new Frame, the receiver is never changed.
type Frame struct {
	dates []time.Time
	cols  []string
	data  map[string][]float64
}

// FromSeries builds a frame from named series. The index is the sorted
// union of all observation timestamps; a series contributes NaN on dates
// it was not observed. Duplicate timestamps within one series are averaged.
func FromSeries(series ...models.Series) *Frame {
	dateSet := make(map[int64]time.Time)
	for _, s := range series {
		for _, p := range s.Points {
			dateSet[p.Date.UnixNano()] = p.Date
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for _, d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	idx := make(map[int64]int, len(dates))
	for i, d := range dates {
		idx[d.UnixNano()] = i
	}

	f := &Frame{
		dates: dates,
		data:  make(map[string][]float64, len(series)),
	}
	for _, s := range series {
		col := nanSlice(len(dates))
		counts := make(map[int]int)
		for _, p := range s.Points {
			i := idx[p.Date.UnixNano()]
			if math.IsNaN(p.Value) {
				continue
			}
			if counts[i] == 0 {
				col[i] = p.Value
			} else {
				col[i] = (col[i]*float64(counts[i]) + p.Value) / float64(counts[i]+1)
			}
			counts[i]++
		}
		f.cols = append(f.cols, s.Name)
		f.data[s.Name] = col
	}
	return f
}

// Concat outer-joins two frames column-wise on the union of their indexes.
// Column names must not collide.
func (f *Frame) Concat(other *Frame) (*Frame, error) {
	for _, c := range other.cols {
		if _, ok := f.data[c]; ok {
			return nil, fmt.Errorf("concat: duplicate column %q", c)
		}
	}

	dateSet := make(map[int64]time.Time, len(f.dates)+len(other.dates))
	for _, d := range f.dates {
		dateSet[d.UnixNano()] = d
	}
	for _, d := range other.dates {
		dateSet[d.UnixNano()] = d
	}

	dates := make([]time.Time, 0, len(dateSet))
	for _, d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	idx := make(map[int64]int, len(dates))
	for i, d := range dates {
		idx[d.UnixNano()] = i
	}

	out := &Frame{
		dates: dates,
		cols:  make([]string, 0, len(f.cols)+len(other.cols)),
		data:  make(map[string][]float64, len(f.cols)+len(other.cols)),
	}
	for _, src := range []*Frame{f, other} {
		for _, c := range src.cols {
			col := nanSlice(len(dates))
			for i, d := range src.dates {
				col[idx[d.UnixNano()]] = src.data[c][i]
			}
			out.cols = append(out.cols, c)
			out.data[c] = col
		}
	}
	return out, nil
}

// ResampleDaily aggregates the frame onto a continuous daily calendar from
// the first to the last observed day. Cells are the mean of non-NaN values
// falling on that day; days with no observation stay NaN. A no-op for
// already-daily data apart from index normalization to UTC midnight.
func (f *Frame) ResampleDaily() *Frame {
	if len(f.dates) == 0 {
		return f.emptyCopy()
	}

	first := util.DayFloor(f.dates[0])
	last := util.DayFloor(f.dates[len(f.dates)-1])
	n := util.DaysBetween(first, last) + 1

	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = first.AddDate(0, 0, i)
	}

	out := &Frame{
		dates: dates,
		cols:  append([]string(nil), f.cols...),
		data:  make(map[string][]float64, len(f.cols)),
	}
	for _, c := range f.cols {
		col := nanSlice(n)
		counts := make([]int, n)
		for i, d := range f.dates {
			v := f.data[c][i]
			if math.IsNaN(v) {
				continue
			}
			di := util.DaysBetween(first, d)
			if counts[di] == 0 {
				col[di] = v
			} else {
				col[di] = (col[di]*float64(counts[di]) + v) / float64(counts[di]+1)
			}
			counts[di]++
		}
		out.data[c] = col
	}
	return out
}

// ForwardFill replaces each NaN cell with the most recent prior non-NaN
// value in the same column. Leading NaNs stay NaN.
func (f *Frame) ForwardFill() *Frame {
	out := f.copyData()
	for _, c := range out.cols {
		col := out.data[c]
		last := math.NaN()
		for i, v := range col {
			if math.IsNaN(v) {
				col[i] = last
			} else {
				last = v
			}
		}
	}
	return out
}

// DropLeadingIncomplete drops every leading row containing any NaN, i.e.
// rows before the first date where all columns have been observed at least
// once. After ForwardFill this leaves a gap-free table.
func (f *Frame) DropLeadingIncomplete() *Frame {
	start := len(f.dates)
	for i := range f.dates {
		if f.rowComplete(i) {
			start = i
			break
		}
	}
	return f.slice(start, len(f.dates))
}

// Since returns the rows on or after t.
func (f *Frame) Since(t time.Time) *Frame {
	start := sort.Search(len(f.dates), func(i int) bool {
		return !f.dates[i].Before(t)
	})
	return f.slice(start, len(f.dates))
}

// AddColumn appends a derived column. The values length must match the
// index length.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != len(f.dates) {
		return fmt.Errorf("add column %q: %d values for %d rows", name, len(values), len(f.dates))
	}
	if _, ok := f.data[name]; ok {
		return fmt.Errorf("add column %q: already exists", name)
	}
	f.cols = append(f.cols, name)
	f.data[name] = values
	return nil
}

// RollingMean computes the trailing mean over window observations of a
// column. Positions with an incomplete window are NaN.
func (f *Frame) RollingMean(name string, window int) ([]float64, error) {
	col, ok := f.data[name]
	if !ok {
		return nil, fmt.Errorf("rolling mean: no column %q", name)
	}
	if window <= 0 {
		return nil, fmt.Errorf("rolling mean: window must be positive, got %d", window)
	}

	out := nanSlice(len(col))
	var sum float64
	for i, v := range col {
		sum += v
		if i >= window {
			sum -= col[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out, nil
}

// Column returns the values of a column.
func (f *Frame) Column(name string) ([]float64, bool) {
	col, ok := f.data[name]
	return col, ok
}

// Value returns the cell at (name, i). Missing column or out-of-range index
// returns NaN.
func (f *Frame) Value(name string, i int) float64 {
	col, ok := f.data[name]
	if !ok || i < 0 || i >= len(col) {
		return math.NaN()
	}
	return col[i]
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.dates) }

// Dates returns the index.
func (f *Frame) Dates() []time.Time { return f.dates }

// Date returns the index entry at i.
func (f *Frame) Date(i int) time.Time { return f.dates[i] }

// Columns returns column names in insertion order.
func (f *Frame) Columns() []string { return f.cols }

// NaNCount counts missing cells in a column. Unknown columns count zero.
func (f *Frame) NaNCount(name string) int {
	n := 0
	for _, v := range f.data[name] {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

func (f *Frame) rowComplete(i int) bool {
	for _, c := range f.cols {
		if math.IsNaN(f.data[c][i]) {
			return false
		}
	}
	return true
}

func (f *Frame) slice(start, end int) *Frame {
	out := &Frame{
		dates: append([]time.Time(nil), f.dates[start:end]...),
		cols:  append([]string(nil), f.cols...),
		data:  make(map[string][]float64, len(f.cols)),
	}
	for _, c := range f.cols {
		out.data[c] = append([]float64(nil), f.data[c][start:end]...)
	}
	return out
}

func (f *Frame) copyData() *Frame {
	return f.slice(0, len(f.dates))
}

func (f *Frame) emptyCopy() *Frame {
	out := &Frame{
		cols: append([]string(nil), f.cols...),
		data: make(map[string][]float64, len(f.cols)),
	}
	for _, c := range f.cols {
		out.data[c] = nil
	}
	return out
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
