package renderer

import (
	"runtime"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// FrameStats describes one rendered frame
type FrameStats struct {
	Frame    int
	Duration time.Duration // Render time, excluding presentation and throttling
	Pixels   int
}

// Profiler logs frame rate, render time and heap usage at a fixed interval
type Profiler struct {
	logger         core.Logger
	updateInterval time.Duration
	lastTime       time.Time
	frameCount     int
	renderTime     time.Duration
	pixels         int
	memStats       runtime.MemStats
}

// NewProfiler creates a profiler. A non-positive interval disables it.
func NewProfiler(logger core.Logger, interval time.Duration) *Profiler {
	return &Profiler{
		logger:         logger,
		updateInterval: interval,
		lastTime:       time.Now(),
	}
}

// Tick records one frame and reports whether a stats line was logged
func (p *Profiler) Tick(stats FrameStats) bool {
	if p.updateInterval <= 0 {
		return false
	}

	p.frameCount++
	p.renderTime += stats.Duration
	p.pixels += stats.Pixels

	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	avgFrame := p.renderTime / time.Duration(p.frameCount)
	mpixels := float64(p.pixels) / 1e6 / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024

	p.logger.Printf("[Profiler] frame %d | FPS: %.2f | render: %v avg | %.2f Mpixel/s | Heap: %.2f MB | GC: %d\n",
		stats.Frame, fps, avgFrame.Round(time.Microsecond), mpixels, heapMB, p.memStats.NumGC)

	p.frameCount = 0
	p.renderTime = 0
	p.pixels = 0
	p.lastTime = now
	return true
}
