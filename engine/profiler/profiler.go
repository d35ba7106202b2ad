package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame pacing and memory statistics for a demand-driven
// render loop. Unlike a fixed-rate loop, frames here are sparse: the profiler
// reports how many frames actually rendered per interval, how long they took,
// and what fraction of wall time the loop spent parked waiting for input.
type Profiler struct {
	frameCount     int
	idleTime       time.Duration
	busyTime       time.Duration
	maxFrameTime   time.Duration
	lastReport     time.Time
	reportInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler reporting once per second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastReport:     time.Now(),
		reportInterval: time.Second,
	}
}

// RecordFrame accumulates one rendered frame's duration.
//
// Parameters:
//   - elapsed: how long the frame took to update and render
func (p *Profiler) RecordFrame(elapsed time.Duration) {
	p.frameCount++
	p.busyTime += elapsed
	if elapsed > p.maxFrameTime {
		p.maxFrameTime = elapsed
	}
}

// RecordIdle accumulates time the loop spent parked with nothing to render.
//
// Parameters:
//   - elapsed: how long the loop was parked
func (p *Profiler) RecordIdle(elapsed time.Duration) {
	p.idleTime += elapsed
}

// Report logs accumulated statistics and resets the counters when the report
// interval has elapsed. Call once per loop iteration.
//
// Returns:
//   - bool: true if stats were logged, false otherwise
func (p *Profiler) Report() bool {
	now := time.Now()
	elapsed := now.Sub(p.lastReport)
	if elapsed < p.reportInterval {
		return false
	}

	var avgFrameMs float64
	if p.frameCount > 0 {
		avgFrameMs = p.busyTime.Seconds() * 1000 / float64(p.frameCount)
	}
	idlePct := p.idleTime.Seconds() / elapsed.Seconds() * 100

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	log.Printf("[Profiler] frames: %d | avg: %.2f ms | max: %.2f ms | idle: %.0f%% | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		p.frameCount, avgFrameMs, p.maxFrameTime.Seconds()*1000, idlePct,
		allocMB, allocRateMB, p.memStats.NumGC)

	p.frameCount = 0
	p.idleTime = 0
	p.busyTime = 0
	p.maxFrameTime = 0
	p.lastReport = now
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
