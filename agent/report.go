package agent

import (
	"fmt"
	"io"
	"sort"

	"nodecast/forecast"
	"nodecast/metrics"
	"nodecast/recommend"
)

// reportMinPoints is the per-node floor below which a resource line is
// skipped with a message instead of forecast.
const reportMinPoints = 5

// Report writes the per-node recommendation report for the two fetched
// frames. It returns ErrNoMetrics when both frames are empty and
// ErrNoNodes when no label column yields any node identifiers; both
// are printed as diagnostics before returning.
func Report(cpuFrame, memFrame *metrics.Frame, forecaster *forecast.Forecaster, out io.Writer) error {
	if cpuFrame.Empty() && memFrame.Empty() {
		fmt.Fprintln(out, "No metrics returned from Prometheus. Check PROMETHEUS_URL and metric names.")
		return ErrNoMetrics
	}

	labelCol := labelColumn(cpuFrame, memFrame)
	nodes := nodeSet(labelCol, cpuFrame, memFrame)
	if len(nodes) == 0 {
		fmt.Fprintln(out, "No node (or instance) labels found in metrics.")
		return ErrNoNodes
	}
	sort.Strings(nodes)

	for _, node := range nodes {
		fmt.Fprintf(out, "\n--- Node: %s ---\n", node)

		if !cpuFrame.Empty() && cpuFrame.HasLabel(labelCol) {
			ts := cpuFrame.FilterLabel(labelCol, node)
			if ts.Len() >= reportMinPoints {
				max, mean := forecaster.Forecast(ts)
				rec := recommend.CPU(max, mean)
				fmt.Fprintf(out, "  CPU: forecast_max=%.2f cores, forecast_mean=%.2f -> %s\n", max, mean, rec)
			} else {
				fmt.Fprintf(out, "  CPU: not enough points (%d) for trend.\n", ts.Len())
			}
		}

		if !memFrame.Empty() && memFrame.HasLabel(labelCol) {
			ts := memFrame.FilterLabel(labelCol, node)
			if ts.Len() >= reportMinPoints {
				max, mean := forecaster.Forecast(ts)
				maxGiB := recommend.ToGiB(max)
				meanGiB := recommend.ToGiB(mean)
				rec := recommend.Memory(maxGiB, meanGiB)
				fmt.Fprintf(out, "  Memory: forecast_max=%.2f GiB, mean=%.2f GiB -> %s\n", maxGiB, meanGiB, rec)
			} else {
				fmt.Fprintf(out, "  Memory: not enough points (%d) for trend.\n", ts.Len())
			}
		}
	}
	fmt.Fprintln(out)
	return nil
}

// labelColumn picks the node identity column: "node" when the first
// non-empty frame has it, "instance" otherwise.
func labelColumn(cpuFrame, memFrame *metrics.Frame) string {
	ref := cpuFrame
	if ref.Empty() {
		ref = memFrame
	}
	if ref.HasLabel("node") {
		return "node"
	}
	return "instance"
}

// nodeSet unions the label values of both frames.
func nodeSet(labelCol string, frames ...*metrics.Frame) []string {
	seen := make(map[string]bool)
	var nodes []string
	for _, f := range frames {
		if f.Empty() || !f.HasLabel(labelCol) {
			continue
		}
		for _, v := range f.LabelValues(labelCol) {
			if seen[v] {
				continue
			}
			seen[v] = true
			nodes = append(nodes, v)
		}
	}
	return nodes
}
