package exporter

import (
	"strings"
	"testing"
)

func TestSampleValue(t *testing.T) {
	tests := []struct {
		line string
		want float64
	}{
		{`container_cpu_usage_seconds_total{id="/"} 123.45`, 123.45},
		{`container_memory_working_set_bytes{id="/"} 1073741824`, 1073741824},
		{"metric_name 0", 0},
		{"metric_name 1.5e2", 150},
		{"no_value", 0},
		{"", 0},
	}
	for _, tt := range tests {
		got := sampleValue(tt.line)
		if got != tt.want {
			t.Errorf("sampleValue(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSumExposition(t *testing.T) {
	body := strings.NewReader(`# HELP container_cpu_usage_seconds_total CPU usage
# TYPE container_cpu_usage_seconds_total counter
container_cpu_usage_seconds_total{id="/"} 1.5
container_cpu_usage_seconds_total{id="/system"} 0.2
container_memory_working_set_bytes{id="/"} 536870912
container_memory_working_set_bytes{id="/system"} 268435456
`)
	cpu, mem, err := sumExposition(body, cpuSourceMetric, memSourceMetric)
	if err != nil {
		t.Fatalf("sumExposition: %v", err)
	}
	if cpu != 1.7 {
		t.Errorf("cpu = %v, want 1.7", cpu)
	}
	if mem != 805306368 {
		t.Errorf("mem = %v, want 805306368", mem)
	}
}

func TestSumExpositionEmpty(t *testing.T) {
	cpu, mem, err := sumExposition(strings.NewReader(""), cpuSourceMetric, memSourceMetric)
	if err != nil {
		t.Fatalf("sumExposition: %v", err)
	}
	if cpu != 0 || mem != 0 {
		t.Errorf("empty body: cpu=%v mem=%v, want 0,0", cpu, mem)
	}
}
