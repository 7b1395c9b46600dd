package exporter

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// sumExposition scans Prometheus exposition text and sums the values
// of every sample whose name matches the CPU or memory source metric.
// Comment lines are skipped.
func sumExposition(body io.Reader, cpuMetric, memMetric string) (cpuTotal, memTotal float64, err error) {
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, cpuMetric) {
			cpuTotal += sampleValue(line)
		}
		if strings.HasPrefix(line, memMetric) {
			memTotal += sampleValue(line)
		}
	}
	return cpuTotal, memTotal, scanner.Err()
}

// sampleValue extracts the trailing value of one exposition line.
// Malformed lines contribute zero.
func sampleValue(line string) float64 {
	idx := strings.LastIndex(line, " ")
	if idx == -1 {
		return 0
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(line[idx+1:]), 64)
	return v
}
