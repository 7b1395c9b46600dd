// Package recommend maps forecast results to static scaling advice.
// Every recommendation is drawn from a closed set of strings selected
// by fixed-threshold comparison; nothing here is learned or persisted.
package recommend

// CPU thresholds (cores) and memory thresholds (GiB). Comparisons are
// strict, so a series sitting exactly on a threshold is not flagged.
const (
	CPUHighMax  = 0.8
	CPULowMean  = 0.2
	MemHighGiB  = 14.0
	MemLowGiB   = 2.0
	bytesPerGiB = 1 << 30
)

// CPU returns the recommendation for a node's forecast CPU usage.
func CPU(max, mean float64) string {
	if max > CPUHighMax {
		return "Consider adding CPU (scale up) or moving pods away from this node."
	}
	if mean < CPULowMean {
		return "Node is underutilized; consider consolidating pods and scaling down."
	}
	return "Utilization looks healthy; no change needed."
}

// Memory returns the recommendation for a node's forecast memory
// usage, already converted to GiB.
func Memory(maxGiB, meanGiB float64) string {
	if maxGiB > MemHighGiB {
		return "High memory usage; consider increasing node size or moving memory-heavy workloads."
	}
	if meanGiB < MemLowGiB {
		return "Node memory underutilized; consider bin-packing or smaller instance."
	}
	return "Memory utilization acceptable."
}

// ToGiB converts a byte count to GiB using binary scaling.
func ToGiB(bytes float64) float64 {
	return bytes / bytesPerGiB
}
