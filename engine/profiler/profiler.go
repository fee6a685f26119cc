package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Profiler tracks frame rate, memory statistics and volume program rebuilds for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	mu sync.Mutex
	// recompiles counts program rebuilds since the last log line, failures counts the rebuilds that failed.
	recompiles int
	failures   int
	// lastAssembly is the duration of the most recent rebuild.
	lastAssembly time.Duration
	// totalRebuilds counts every rebuild since creation.
	totalRebuilds int
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return NewProfilerWithInterval(time.Second)
}

// NewProfilerWithInterval creates a Profiler that logs every interval.
//
// Parameters:
//   - interval: time between log lines
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfilerWithInterval(interval time.Duration) *Profiler {
	return &Profiler{
		frameCount:     0,
		lastTime:       time.Now(),
		updateInterval: interval,
		memStats:       runtime.MemStats{},
	}
}

// RecordRebuild records one volume program rebuild. Safe to call from assembly workers.
//
// Parameters:
//   - d: time spent assembling and compiling the program
//   - err: the rebuild error, nil on success
func (p *Profiler) RecordRebuild(d time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recompiles++
	p.totalRebuilds++
	p.lastAssembly = d
	if err != nil {
		p.failures++
	}
}

// Rebuilds returns the number of rebuilds recorded since the profiler was created.
func (p *Profiler) Rebuilds() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalRebuilds
}

// LastAssembly returns the duration of the most recent rebuild.
func (p *Profiler) LastAssembly() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastAssembly
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed >= p.updateInterval {
		fps := float64(p.frameCount) / elapsed.Seconds()

		runtime.ReadMemStats(&p.memStats)
		// Alloc: Bytes of allocated heap objects (live memory)
		// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
		// Sys: Total bytes of memory obtained from the OS (actual process footprint)
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		sysMB := float64(p.memStats.Sys) / 1024 / 1024

		// Calculate allocation rate (MB/sec)
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		// Calculate GC pause stats (last pause and max recent pause)
		gcCount := p.memStats.NumGC
		var lastPauseUs, maxPauseUs uint64
		if gcCount > 0 {
			// PauseNs is a circular buffer of last 256 GC pauses
			lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

			// Find max pause since last tick
			startIdx := p.lastGCCount
			if gcCount-startIdx > 256 {
				startIdx = gcCount - 256
			}
			for i := startIdx; i < gcCount; i++ {
				pause := p.memStats.PauseNs[i%256] / 1000
				if pause > maxPauseUs {
					maxPauseUs = pause
				}
			}
		}

		p.mu.Lock()
		recompiles, failures, lastAssembly := p.recompiles, p.failures, p.lastAssembly
		p.recompiles, p.failures = 0, 0
		p.mu.Unlock()

		log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB | Rebuilds: %d (failed: %d, last: %s)",
			fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB, recompiles, failures, lastAssembly)

		p.frameCount = 0
		p.lastTime = currentTime
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
		return true
	}

	return false
}
