package game

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsRatio    = 0.9 // Fraction of the target TPS
	perfLowFpsDuration = 3 * time.Second
	perfLogInterval    = 3 * time.Second
)

func (gl *GameLoop) maybeLogPerfDrop() {
	if !gl.game.config.Debug.PerfLog {
		return
	}

	fps := ebiten.ActualFPS()
	threshold := perfLowFpsRatio * float64(gl.game.config.GetTPS())
	now := time.Now()
	if !gl.perfDropped(fps, threshold, now) {
		return
	}
	gl.logPerfSnapshot(fps, threshold)
}

// perfDropped tracks how long fps stayed below threshold and reports when a
// snapshot is due.
func (gl *GameLoop) perfDropped(fps, threshold float64, now time.Time) bool {
	g := gl.game
	if fps >= threshold {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return false
	}

	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return false
	}
	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return false
	}
	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return false
	}

	g.perfLastPerfLog = now
	return true
}

func (gl *GameLoop) logPerfSnapshot(fps, threshold float64) {
	tps := ebiten.ActualTPS()
	stats := gl.game.threading.GetDetailedPerformanceStats()
	lastFrameMs := getPerfFloat(stats, "last_frame_time_ms")
	lastSchedulerMs := getPerfFloat(stats, "last_scheduler_time_ms")
	lastProjectileMs := getPerfFloat(stats, "last_projectile_time_ms")
	lastDrawMs := getPerfFloat(stats, "last_draw_time_ms")
	goroutines := getPerfInt(stats, "goroutines")
	memAllocMB := getPerfUint(stats, "memory_alloc_mb")
	gcCycles := getPerfUint(stats, "gc_cycles")
	active := getPerfInt(stats, "bullets_active")
	fired := getPerfUint(stats, "bullets_fired")

	causes := make([]string, 0, 4)
	if parallel := gl.game.config.Projectiles.ParallelThreshold; parallel > 0 && active >= parallel {
		causes = append(causes, fmt.Sprintf("parallel bullet update (%d)", active))
	}
	for _, alert := range gl.game.threading.PerformanceMonitor.CheckPerformanceAlerts() {
		causes = append(causes, fmt.Sprintf("%s (%.0f > %.0f)", alert.Type, alert.Value, alert.Threshold))
	}
	if gl.game.showPerf {
		causes = append(causes, "perf overlay")
	}

	causeText := "none obvious"
	if len(causes) > 0 {
		causeText = strings.Join(causes, ", ")
	}

	fmt.Printf("[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f causes=%s\n",
		threshold, perfLowFpsDuration, fps, tps, causeText)
	fmt.Printf("[PERF] ships=%d bullets=%d fired=%d update=%.2fms draw=%.2fms frame=%.2fms scheduler=%.2fms projectiles=%.2fms draw_section=%.2fms workers=%d goroutines=%d\n",
		len(gl.game.ships),
		active,
		fired,
		float64(gl.lastUpdateDuration.Microseconds())/1000.0,
		float64(gl.lastDrawDuration.Microseconds())/1000.0,
		lastFrameMs,
		lastSchedulerMs,
		lastProjectileMs,
		lastDrawMs,
		gl.game.threading.WorkerPool.GetNumWorkers(),
		goroutines,
	)
	fmt.Printf("[PERF] mem_alloc=%dMB gc_cycles=%d\n", memAllocMB, gcCycles)

	for _, s := range gl.game.ships {
		if s.Float.Warnings() > 0 {
			log.Printf("Warning: %s: float controller logged %d warnings", s.Name, s.Float.Warnings())
		}
	}
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case uint64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	switch v := stats[key].(type) {
	case uint64:
		return v
	case uint32:
		return uint64(v)
	case int64:
		return uint64(v)
	case int:
		return uint64(v)
	}
	return 0
}
