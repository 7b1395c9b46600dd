package forecast

import (
	"math"
	"testing"
	"time"

	"nodecast/metrics"
)

func TestReshapeTimeIndexed(t *testing.T) {
	f := metrics.NewFrame()
	loc := time.FixedZone("UTC+2", 2*3600)
	f.Index = []time.Time{
		time.Date(2024, 6, 1, 12, 0, 0, 0, loc),
		time.Date(2024, 6, 1, 12, 1, 0, 0, loc),
	}
	f.Values["value"] = []float64{1.0, 2.0}

	obs := Reshape(f)
	if len(obs) != 2 {
		t.Fatalf("Reshape returned %d observations, want 2", len(obs))
	}
	if obs[0].Y != 1.0 || obs[1].Y != 2.0 {
		t.Errorf("y values = [%v %v], want [1 2]", obs[0].Y, obs[1].Y)
	}
	for i, o := range obs {
		if o.DS.Location() != time.UTC {
			t.Errorf("observation %d timestamp not UTC: %v", i, o.DS)
		}
	}
	if !obs[1].DS.After(obs[0].DS) {
		t.Errorf("timestamps out of order: %v then %v", obs[0].DS, obs[1].DS)
	}
}

func TestReshapeDSColumn(t *testing.T) {
	// A frame that already carries a "ds" column uses it over the
	// index.
	f := metrics.NewFrame()
	ds := []time.Time{
		time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 9, 1, 0, 0, time.UTC),
	}
	f.Times["ds"] = ds
	f.Values["value"] = []float64{5.0, 6.0}

	obs := Reshape(f)
	if len(obs) != 2 {
		t.Fatalf("Reshape returned %d observations, want 2", len(obs))
	}
	if !obs[0].DS.Equal(ds[0]) || !obs[1].DS.Equal(ds[1]) {
		t.Errorf("ds column not used: got %v, %v", obs[0].DS, obs[1].DS)
	}
}

func TestReshapeYColumn(t *testing.T) {
	f := metrics.NewFrame()
	f.Index = []time.Time{time.Now().UTC(), time.Now().UTC().Add(time.Minute)}
	f.Values["y"] = []float64{3.0, 4.0}

	obs := Reshape(f)
	if len(obs) != 2 {
		t.Fatalf("Reshape returned %d observations, want 2", len(obs))
	}
	if obs[0].Y != 3.0 || obs[1].Y != 4.0 {
		t.Errorf("y values = [%v %v], want [3 4]", obs[0].Y, obs[1].Y)
	}
}

func TestReshapeDropsMissingValues(t *testing.T) {
	f := metrics.NewFrame()
	start := time.Now().UTC()
	f.Index = []time.Time{start, start.Add(time.Minute), start.Add(2 * time.Minute)}
	f.Values["value"] = []float64{1.0, math.NaN(), 3.0}

	obs := Reshape(f)
	if len(obs) != 2 {
		t.Fatalf("Reshape returned %d observations, want 2", len(obs))
	}
	if obs[0].Y != 1.0 || obs[1].Y != 3.0 {
		t.Errorf("y values = [%v %v], want [1 3]", obs[0].Y, obs[1].Y)
	}
}

func TestReshapeNoValueColumn(t *testing.T) {
	f := metrics.NewFrame()
	f.Index = []time.Time{time.Now().UTC()}
	f.Labels["node"] = []string{"n1"}

	if obs := Reshape(f); len(obs) != 0 {
		t.Errorf("Reshape of frame without value column returned %d observations, want 0", len(obs))
	}
}

func TestReshapeEmptyFrame(t *testing.T) {
	if obs := Reshape(metrics.NewFrame()); len(obs) != 0 {
		t.Errorf("Reshape of empty frame returned %d observations, want 0", len(obs))
	}
}
