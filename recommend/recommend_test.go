package recommend

import "testing"

func TestCPURecommendations(t *testing.T) {
	tests := []struct {
		name string
		max  float64
		mean float64
		want string
	}{
		{"high max wins regardless of mean", 0.9, 0.1, "Consider adding CPU (scale up) or moving pods away from this node."},
		{"low mean", 0.5, 0.1, "Node is underutilized; consider consolidating pods and scaling down."},
		{"healthy", 0.5, 0.5, "Utilization looks healthy; no change needed."},
		{"max exactly at threshold is not high", 0.8, 0.5, "Utilization looks healthy; no change needed."},
		{"mean exactly at threshold is not low", 0.5, 0.2, "Utilization looks healthy; no change needed."},
		{"boundary max with low mean", 0.8, 0.1, "Node is underutilized; consider consolidating pods and scaling down."},
	}
	for _, tt := range tests {
		got := CPU(tt.max, tt.mean)
		if got != tt.want {
			t.Errorf("%s: CPU(%v, %v) = %q, want %q", tt.name, tt.max, tt.mean, got, tt.want)
		}
	}
}

func TestMemoryRecommendations(t *testing.T) {
	tests := []struct {
		name string
		max  float64
		mean float64
		want string
	}{
		{"high max wins regardless of mean", 15, 1, "High memory usage; consider increasing node size or moving memory-heavy workloads."},
		{"low mean", 8, 1, "Node memory underutilized; consider bin-packing or smaller instance."},
		{"acceptable", 8, 4, "Memory utilization acceptable."},
		{"max exactly at threshold is not high", 14, 4, "Memory utilization acceptable."},
		{"mean exactly at threshold is not low", 8, 2, "Memory utilization acceptable."},
	}
	for _, tt := range tests {
		got := Memory(tt.max, tt.mean)
		if got != tt.want {
			t.Errorf("%s: Memory(%v, %v) = %q, want %q", tt.name, tt.max, tt.mean, got, tt.want)
		}
	}
}

func TestToGiB(t *testing.T) {
	if got := ToGiB(1 << 30); got != 1.0 {
		t.Errorf("ToGiB(1<<30) = %v, want 1.0", got)
	}
	if got := ToGiB(3 * (1 << 30)); got != 3.0 {
		t.Errorf("ToGiB(3<<30) = %v, want 3.0", got)
	}
	if got := ToGiB(0); got != 0 {
		t.Errorf("ToGiB(0) = %v, want 0", got)
	}
}
