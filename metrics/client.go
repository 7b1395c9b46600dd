package metrics

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// step is the fixed resolution of every range query.
const step = 60 * time.Second

// Client issues range queries against a Prometheus-compatible backend.
type Client struct {
	api      v1.API
	lookback time.Duration
}

// NewClient creates a client for the given Prometheus base URL. The
// lookback window controls how far back every range query reaches.
func NewClient(url string, lookback time.Duration) (*Client, error) {
	if lookback <= 0 {
		lookback = 120 * time.Minute
	}
	c, err := api.NewClient(api.Config{Address: url})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus client for %s: %w", url, err)
	}
	return &Client{api: v1.NewAPI(c), lookback: lookback}, nil
}

// NewClientWithAPI wires an existing API handle, used by tests.
func NewClientWithAPI(papi v1.API, lookback time.Duration) *Client {
	if lookback <= 0 {
		lookback = 120 * time.Minute
	}
	return &Client{api: papi, lookback: lookback}
}

// FetchRange queries the last lookback window at 60s resolution and
// returns the samples as a frame. An empty query result yields an
// empty frame and no error; only transport and API failures error.
func (c *Client) FetchRange(ctx context.Context, query string) (*Frame, error) {
	end := time.Now().UTC()
	r := v1.Range{
		Start: end.Add(-c.lookback),
		End:   end,
		Step:  step,
	}

	value, warnings, err := c.api.QueryRange(ctx, query, r)
	if err != nil {
		return nil, fmt.Errorf("range query %q failed: %w", query, err)
	}
	if len(warnings) > 0 {
		log.Printf("[Metrics] Query %q returned warnings: %v", query, warnings)
	}

	matrix, ok := value.(model.Matrix)
	if !ok || matrix.Len() == 0 {
		return NewFrame(), nil
	}
	return FrameFromMatrix(matrix), nil
}

// FrameFromMatrix flattens a range-query matrix into row form: one row
// per sample, a time index, a "value" column, and one label column per
// label name seen across the matrix.
func FrameFromMatrix(matrix model.Matrix) *Frame {
	frame := NewFrame()

	// Collect the union of label names so every row has every column.
	nameSet := make(map[string]bool)
	for _, stream := range matrix {
		for name := range stream.Metric {
			nameSet[string(name)] = true
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, stream := range matrix {
		for _, sample := range stream.Values {
			frame.Index = append(frame.Index, sample.Timestamp.Time().UTC())
			frame.Values["value"] = append(frame.Values["value"], float64(sample.Value))
			for _, name := range names {
				frame.Labels[name] = append(frame.Labels[name], string(stream.Metric[model.LabelName(name)]))
			}
		}
	}
	return frame
}
