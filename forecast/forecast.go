// Package forecast turns a fetched utilization series into a
// (max, mean) prediction over a configurable horizon. Modeling is
// delegated to a pluggable trend model; when the model is absent or
// the data is too sparse the package degrades to descriptive
// statistics of the historical window instead of failing.
package forecast

import (
	"math"

	"nodecast/metrics"
)

// Minimum observation counts for the forecast tiers.
const (
	minPoints      = 5  // below this, no statistic is worth reporting
	minModelPoints = 20 // below this, skip model fitting entirely
)

// DefaultHorizonMinutes is the forecast horizon used when none is set.
const DefaultHorizonMinutes = 30

// Forecaster produces (max, mean) predictions for node utilization
// series. The model capability is resolved once at construction: a nil
// model means every series falls back to historical statistics.
type Forecaster struct {
	model   Model
	horizon int
}

// NewForecaster creates a forecaster. A nil model disables trend
// fitting; a non-positive horizon falls back to the default.
func NewForecaster(model Model, horizonMinutes int) *Forecaster {
	if horizonMinutes <= 0 {
		horizonMinutes = DefaultHorizonMinutes
	}
	return &Forecaster{model: model, horizon: horizonMinutes}
}

// Forecast returns the (max, mean) prediction for one node's series.
//
// Tiers, from least to most signal:
//  1. fewer than 5 rows: (0, 0), not enough to report anything;
//  2. no model, or fewer than 20 rows: max/mean of the raw history;
//  3. fewer than 20 usable rows after reshaping (missing values
//     dropped), or a model that fails to fit: max/mean of the
//     reshaped history;
//  4. otherwise: fit the trend model and return max/mean over the
//     predicted horizon, history excluded.
//
// No tier ever returns an error; sparse or malformed input always
// degrades to a simpler computation.
func (f *Forecaster) Forecast(frame *metrics.Frame) (float64, float64) {
	if frame.Len() < minPoints {
		return 0, 0
	}

	values, ok := frame.ValueColumn()
	if !ok {
		return 0, 0
	}

	if f.model == nil || frame.Len() < minModelPoints {
		return summarize(values)
	}

	obs := Reshape(frame)
	if len(obs) < minModelPoints {
		return summarize(ys(obs))
	}

	if err := f.model.Fit(obs); err != nil {
		return summarize(ys(obs))
	}

	return summarize(f.model.Predict(f.horizon))
}

// ys extracts the value column from reshaped observations.
func ys(obs []Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Y
	}
	return out
}

// summarize returns the max and mean of the values, skipping NaN
// entries. No values yields (0, 0).
func summarize(values []float64) (float64, float64) {
	var (
		max   = math.Inf(-1)
		sum   float64
		count int
	)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v > max {
			max = v
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return max, sum / float64(count)
}
