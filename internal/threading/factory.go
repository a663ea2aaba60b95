package threading

import (
	"bullethell/internal/threading/core"
	"bullethell/internal/threading/monitoring"
)

// ThreadingComponents holds the worker pool and the monitor shared by the game loop
type ThreadingComponents struct {
	WorkerPool         *core.WorkerPool
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates and starts all threading components
func NewThreadingComponents() *ThreadingComponents {
	return &ThreadingComponents{
		WorkerPool:         core.CreateDefaultWorkerPool(),
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
}

// Shutdown stops the worker pool and clears the monitor
func (tc *ThreadingComponents) Shutdown() {
	if tc.WorkerPool != nil {
		tc.WorkerPool.Stop()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetDetailedPerformanceStats returns detailed performance statistics
func (tc *ThreadingComponents) GetDetailedPerformanceStats() map[string]interface{} {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.GetDetailedStats()
	}
	return nil
}
