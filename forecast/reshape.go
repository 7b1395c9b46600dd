package forecast

import (
	"math"
	"time"

	"nodecast/metrics"
)

// Observation is a single (ds, y) row ready for model fitting.
type Observation struct {
	DS time.Time
	Y  float64
}

// Reshape normalizes a fetched frame into the (ds, y) form the trend
// model expects. The value column may be named "value" or "y"; the
// timestamp comes from a "ds" datetime column when present, otherwise
// from the frame's time index. Rows with a missing value are dropped
// and timestamps are coerced to UTC. A frame with no recognizable value
// column reshapes to nothing, signaling that it cannot be forecast.
func Reshape(frame *metrics.Frame) []Observation {
	values, ok := frame.ValueColumn()
	if !ok {
		return nil
	}

	times := frame.Index
	if ds, ok := frame.Times["ds"]; ok {
		times = ds
	}
	if len(times) == 0 {
		return nil
	}

	n := len(values)
	if len(times) < n {
		n = len(times)
	}

	out := make([]Observation, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		out = append(out, Observation{DS: times[i].UTC(), Y: values[i]})
	}
	return out
}
