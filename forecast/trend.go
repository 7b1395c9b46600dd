package forecast

import (
	"errors"
	"sort"
)

// Model is the interface trend models implement. A model is fit once
// on a reshaped history and then asked for a fixed number of future
// one-minute steps, history excluded.
type Model interface {
	// Fit trains the model on historical observations
	Fit(obs []Observation) error

	// Predict returns predicted values for the next n one-minute steps
	Predict(n int) []float64

	// Name returns the model name
	Name() string
}

// TrendModel implements an additive trend via double exponential
// smoothing (Holt's linear method), with no seasonal component. It
// plays the role of the heavyweight forecasting library: level and
// trend are smoothed across the history and extrapolated linearly
// over the horizon.
type TrendModel struct {
	alpha  float64 // level smoothing factor
	beta   float64 // trend smoothing factor
	level  float64
	trend  float64
	fitted bool
}

// NewTrendModel creates a trend model with default smoothing factors.
func NewTrendModel() *TrendModel {
	return &TrendModel{
		alpha: 0.5,
		beta:  0.1,
	}
}

// Fit estimates level and trend from the observations. At least two
// observations are required. Observations are processed in timestamp
// order regardless of input order.
func (m *TrendModel) Fit(obs []Observation) error {
	if len(obs) < 2 {
		return errors.New("insufficient observations to fit a trend")
	}

	ordered := make([]Observation, len(obs))
	copy(ordered, obs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].DS.Before(ordered[j].DS)
	})

	m.level = ordered[0].Y
	m.trend = ordered[1].Y - ordered[0].Y

	for _, o := range ordered[1:] {
		prevLevel := m.level
		m.level = m.alpha*o.Y + (1-m.alpha)*(m.level+m.trend)
		m.trend = m.beta*(m.level-prevLevel) + (1-m.beta)*m.trend
	}

	m.fitted = true
	return nil
}

// Predict extrapolates the fitted level and trend over the next n
// steps. An unfitted model predicts nothing.
func (m *TrendModel) Predict(n int) []float64 {
	if !m.fitted || n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = m.level + float64(i+1)*m.trend
	}
	return out
}

// Name returns the model name.
func (m *TrendModel) Name() string {
	return "additive_trend"
}
