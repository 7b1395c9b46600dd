// Package agent orchestrates one batch run: fetch the CPU and memory
// series from Prometheus, forecast per-node trend values, and print a
// recommendation report.
package agent

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"nodecast/archive"
	"nodecast/forecast"
	"nodecast/metrics"
)

// Failure modes that map to a non-zero exit status.
var (
	// ErrNoMetrics means both backend queries returned nothing.
	ErrNoMetrics = errors.New("no metrics returned from Prometheus")
	// ErrNoNodes means no node or instance labels were found.
	ErrNoNodes = errors.New("no node or instance labels found in metrics")
)

// Config holds the agent's run parameters, resolved from environment
// variables and flags before Run is called.
type Config struct {
	PromURL         string
	LookbackMinutes int
	HorizonMinutes  int
	CPUQuery        string
	MemQuery        string

	// DisableModel forces the historical-statistics fallback for
	// every series, the same degradation used when data is sparse.
	DisableModel bool

	// Archive enables report upload when non-nil.
	Archive *archive.Config
}

// Run executes one batch run, writing the report to out. Both backend
// queries run to completion before any node is reported; a backend
// failure propagates unretried and is fatal for the run.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	runID := uuid.NewString()
	log.Printf("[Agent] Run %s: lookback=%dm horizon=%dm url=%s", runID, cfg.LookbackMinutes, cfg.HorizonMinutes, cfg.PromURL)

	client, err := metrics.NewClient(cfg.PromURL, time.Duration(cfg.LookbackMinutes)*time.Minute)
	if err != nil {
		return err
	}

	cpuFrame, err := client.FetchRange(ctx, cfg.CPUQuery)
	if err != nil {
		return err
	}
	memFrame, err := client.FetchRange(ctx, cfg.MemQuery)
	if err != nil {
		return err
	}
	log.Printf("[Agent] Run %s: fetched %d CPU rows, %d memory rows", runID, cpuFrame.Len(), memFrame.Len())

	var model forecast.Model
	if !cfg.DisableModel {
		model = forecast.NewTrendModel()
	}
	forecaster := forecast.NewForecaster(model, cfg.HorizonMinutes)

	var report bytes.Buffer
	err = Report(cpuFrame, memFrame, forecaster, io.MultiWriter(out, &report))
	if err != nil {
		return err
	}

	if cfg.Archive != nil {
		if err := uploadReport(ctx, *cfg.Archive, runID, report.Bytes()); err != nil {
			// The report already printed; archival is best effort.
			log.Printf("[Agent] Run %s: report archival failed: %v", runID, err)
		}
	}
	return nil
}

func uploadReport(ctx context.Context, cfg archive.Config, runID string, body []byte) error {
	store, err := archive.NewStore(ctx, cfg)
	if err != nil {
		return err
	}
	key := store.ReportKey(runID, time.Now())
	if err := store.Put(ctx, key, body); err != nil {
		return err
	}
	log.Printf("[Agent] Run %s: report archived as %s", runID, key)
	return nil
}
