package pipeline

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

// memoryPerWorkerMB is the rough working-set budget of one generator task:
// parsed CSM, compiled resolver, bindings and emitted source.
const memoryPerWorkerMB = 64

// memoryPressureWarning reports a non-empty warning when the host looks too
// constrained for the configured worker count. Advisory only; the run
// proceeds either way.
func memoryPressureWarning(workers int) string {
	v, err := mem.VirtualMemory()
	if err != nil {
		// Metrics unavailable on this host; skip the check
		return ""
	}

	availableMB := float64(v.Available) / (1024 * 1024)
	neededMB := float64(workers * memoryPerWorkerMB)

	if availableMB < neededMB {
		return fmt.Sprintf("%.0fMB available, %d workers want ~%.0fMB", availableMB, workers, neededMB)
	}
	if v.UsedPercent > 90 {
		return fmt.Sprintf("system memory %.0f%% used", v.UsedPercent)
	}
	return ""
}
