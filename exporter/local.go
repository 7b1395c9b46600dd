package exporter

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// collectLocal samples the local host with gopsutil and publishes it
// under the hostname, so a single machine can feed the agent without
// a cluster. CPU percent is scaled by the logical core count to match
// the cores unit of the cluster metrics.
func (e *Exporter) collectLocal() error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		e.scrapeErrors.WithLabelValues("local:cpu").Inc()
		return fmt.Errorf("failed to sample CPU: %w", err)
	}
	cores, err := cpu.Counts(true)
	if err != nil || cores <= 0 {
		cores = 1
	}
	if len(percents) > 0 {
		e.cpuUsage.WithLabelValues(hostname).Set(percents[0] / 100.0 * float64(cores))
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		e.scrapeErrors.WithLabelValues("local:mem").Inc()
		return fmt.Errorf("failed to sample memory: %w", err)
	}
	e.memUsage.WithLabelValues(hostname).Set(float64(vm.Used))

	return nil
}
