package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Thresholds for CheckPerformanceAlerts
const (
	lowFPSThreshold       = 30.0
	bulletBacklogDefault  = 10000
	highMemoryThresholdMB = 500.0
)

// PerformanceMonitor tracks frame timing and bullet throughput
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame

	// Section timings, last measured
	schedulerTime  atomic.Uint64
	projectileTime atomic.Uint64
	drawTime       atomic.Uint64

	// Game-specific metrics
	bulletsActive      atomic.Int64
	bulletsFired       atomic.Uint64
	patternInvocations atomic.Uint64

	mutex         sync.RWMutex
	totalFrameNs  float64
	avgFrameTime  float64
	startTime     time.Time
	bulletBacklog int64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:     time.Now(),
		bulletBacklog: bulletBacklogDefault,
	}
}

// SetBulletBacklog sets how many live bullets trigger a backlog alert.
// Non-positive limits turn the alert off.
func (pm *PerformanceMonitor) SetBulletBacklog(limit int64) {
	pm.mutex.Lock()
	pm.bulletBacklog = limit
	pm.mutex.Unlock()
}

// FrameTimer measures one frame
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ns := uint64(time.Since(ft.startTime).Nanoseconds())
	ft.monitor.frameTime.Store(ns)
	count := ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	ft.monitor.totalFrameNs += float64(ns)
	ft.monitor.avgFrameTime = ft.monitor.totalFrameNs / float64(count)
	ft.monitor.mutex.Unlock()
}

// ProfiledFunction runs fn and records its duration under name
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case "scheduler":
		pm.schedulerTime.Store(uint64(duration.Nanoseconds()))
	case "projectiles":
		pm.projectileTime.Store(uint64(duration.Nanoseconds()))
	case "draw":
		pm.drawTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}

// GameMetrics is a snapshot of bullet and frame figures
type GameMetrics struct {
	BulletsActive      int64
	BulletsFired       uint64
	PatternInvocations uint64
	FramesPerSecond    float64
	MemoryUsageMB      uint64
}

// UpdateGameMetrics stores the latest bullet figures
func (pm *PerformanceMonitor) UpdateGameMetrics(active int64, fired, invocations uint64) {
	pm.bulletsActive.Store(active)
	pm.bulletsFired.Store(fired)
	pm.patternInvocations.Store(invocations)
}

func (pm *PerformanceMonitor) fps() float64 {
	frameTime := pm.frameTime.Load()
	if frameTime == 0 {
		return 0
	}
	return float64(time.Second) / float64(frameTime)
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() GameMetrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return GameMetrics{
		BulletsActive:      pm.bulletsActive.Load(),
		BulletsFired:       pm.bulletsFired.Load(),
		PatternInvocations: pm.patternInvocations.Load(),
		FramesPerSecond:    pm.fps(),
		MemoryUsageMB:      memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	avgFrame := pm.avgFrameTime
	uptime := time.Since(pm.startTime)
	pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":          uptime.Seconds(),
		"frame_count":             pm.frameCount.Load(),
		"avg_frame_time_ms":       avgFrame / 1e6,
		"last_frame_time_ms":      float64(pm.frameTime.Load()) / 1e6,
		"last_scheduler_time_ms":  float64(pm.schedulerTime.Load()) / 1e6,
		"last_projectile_time_ms": float64(pm.projectileTime.Load()) / 1e6,
		"last_draw_time_ms":       float64(pm.drawTime.Load()) / 1e6,
		"current_fps":             pm.fps(),
		"bullets_active":          pm.bulletsActive.Load(),
		"bullets_fired":           pm.bulletsFired.Load(),
		"pattern_invocations":     pm.patternInvocations.Load(),
		"memory_alloc_mb":         memStats.Alloc / 1024 / 1024,
		"gc_cycles":               memStats.NumGC,
		"goroutines":              runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	if pm.frameTime.Load() > 0 {
		if fps := pm.fps(); fps < lowFPSThreshold {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: lowFPSThreshold,
				Timestamp: now,
			})
		}
	}

	pm.mutex.RLock()
	backlog := pm.bulletBacklog
	pm.mutex.RUnlock()
	if active := pm.bulletsActive.Load(); backlog > 0 && active >= backlog {
		alerts = append(alerts, PerformanceAlert{
			Type:      "bullet_backlog",
			Message:   "Too many live bullets",
			Value:     float64(active),
			Threshold: float64(backlog),
			Timestamp: now,
		})
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	if memoryMB := float64(memStats.Alloc) / 1024 / 1024; memoryMB > highMemoryThresholdMB {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: highMemoryThresholdMB,
			Timestamp: now,
		})
	}

	return alerts
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.schedulerTime.Store(0)
	pm.projectileTime.Store(0)
	pm.drawTime.Store(0)
	pm.bulletsActive.Store(0)
	pm.bulletsFired.Store(0)
	pm.patternInvocations.Store(0)

	pm.mutex.Lock()
	pm.totalFrameNs = 0
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
