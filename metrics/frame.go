// Package metrics fetches node utilization time series from Prometheus
// and carries them through the run as lightweight columnar frames.
package metrics

import (
	"time"
)

// Frame is a minimal columnar table holding one fetched time series.
// A frame may carry its timestamps as an index or as a named datetime
// column, numeric sample columns by name, and string label columns by
// name (one entry per row, empty string when the label is absent).
type Frame struct {
	Index  []time.Time
	Values map[string][]float64
	Times  map[string][]time.Time
	Labels map[string][]string
}

// NewFrame returns an empty frame with all column maps initialized.
func NewFrame() *Frame {
	return &Frame{
		Values: make(map[string][]float64),
		Times:  make(map[string][]time.Time),
		Labels: make(map[string][]string),
	}
}

// Len returns the number of rows in the frame.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	if len(f.Index) > 0 {
		return len(f.Index)
	}
	for _, col := range f.Times {
		if len(col) > 0 {
			return len(col)
		}
	}
	for _, col := range f.Values {
		if len(col) > 0 {
			return len(col)
		}
	}
	return 0
}

// Empty reports whether the frame has no rows.
func (f *Frame) Empty() bool {
	return f.Len() == 0
}

// HasValues reports whether a numeric column with the given name exists.
func (f *Frame) HasValues(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.Values[name]
	return ok
}

// HasLabel reports whether a label column with the given name exists.
func (f *Frame) HasLabel(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.Labels[name]
	return ok
}

// LabelValues returns the distinct non-empty values of a label column,
// in first-seen order.
func (f *Frame) LabelValues(name string) []string {
	if f == nil {
		return nil
	}
	col, ok := f.Labels[name]
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(col))
	var out []string
	for _, v := range col {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// FilterLabel returns a new frame containing only the rows whose label
// column matches the given value. Column structure is preserved.
func (f *Frame) FilterLabel(name, value string) *Frame {
	out := NewFrame()
	if f == nil {
		return out
	}
	col, ok := f.Labels[name]
	if !ok {
		return out
	}
	for i, v := range col {
		if v != value {
			continue
		}
		if i < len(f.Index) {
			out.Index = append(out.Index, f.Index[i])
		}
		for col, c := range f.Values {
			if i < len(c) {
				out.Values[col] = append(out.Values[col], c[i])
			}
		}
		for col, c := range f.Times {
			if i < len(c) {
				out.Times[col] = append(out.Times[col], c[i])
			}
		}
		for col, c := range f.Labels {
			if i < len(c) {
				out.Labels[col] = append(out.Labels[col], c[i])
			}
		}
	}
	return out
}

// ValueColumn returns the numeric column holding the samples: "value"
// when present, "y" as the alternate name. The second return reports
// whether any value-like column exists.
func (f *Frame) ValueColumn() ([]float64, bool) {
	if f == nil {
		return nil, false
	}
	if col, ok := f.Values["value"]; ok {
		return col, true
	}
	if col, ok := f.Values["y"]; ok {
		return col, true
	}
	return nil, false
}
