package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// State is the lifecycle stage of a Coordinator
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Config contains configuration for the render loop
type Config struct {
	Width           int           // Frame width (0 = scene's recommended width)
	Height          int           // Frame height (0 = scene's recommended height)
	Workers         int           // Number of row workers, fixed for the coordinator's lifetime
	FixedTimeStep   time.Duration // Scene time added per frame (0 = elapsed wall-clock time)
	FrameLimit      int           // Maximum frames per second (0 = uncapped)
	MaxFrames       int           // Stop after this many published frames (0 = run until stopped)
	ProfileInterval time.Duration // How often to log frame statistics (0 = never)
	ShutdownTimeout time.Duration // How long Run waits for workers to exit (0 = forever)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Workers:         4,
		FrameLimit:      0,
		ProfileInterval: 0,
		ShutdownTimeout: 2 * time.Second,
	}
}

// Coordinator drives the frame loop: advance the scene, render every row
// range in parallel, wait at the barrier, swap buffers and present.
type Coordinator struct {
	scene   *scene.Scene
	sink    Sink
	config  Config
	logger  core.Logger
	render  RowFunc
	buffers *DoubleBuffer

	state  atomic.Int32
	frames atomic.Int64

	stopOnce sync.Once
	stopChan chan struct{}

	resizeMu      sync.Mutex
	pendingResize *[2]int
}

// NewCoordinator validates the configuration and allocates the frame
// buffers. Nothing is rendered until Run.
func NewCoordinator(sc *scene.Scene, sink Sink, config Config, logger core.Logger) (*Coordinator, error) {
	if sc == nil {
		return nil, fmt.Errorf("new coordinator: %w", ErrNilScene)
	}
	if sink == nil {
		return nil, fmt.Errorf("new coordinator: %w", ErrNilSink)
	}
	if config.Workers < 1 {
		return nil, fmt.Errorf("new coordinator: %w (got %d)", ErrInvalidWorkerCount, config.Workers)
	}
	if config.Width == 0 {
		config.Width = sc.Width
	}
	if config.Height == 0 {
		config.Height = sc.Height
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	buffers, err := NewDoubleBuffer(config.Width, config.Height)
	if err != nil {
		return nil, fmt.Errorf("new coordinator: %w", err)
	}

	return &Coordinator{
		scene:    sc,
		sink:     sink,
		config:   config,
		logger:   logger,
		render:   RenderRows,
		buffers:  buffers,
		stopChan: make(chan struct{}),
	}, nil
}

// State returns the current lifecycle state
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Frames returns the number of frames handed to the sink so far
func (c *Coordinator) Frames() int {
	return int(c.frames.Load())
}

// Workers returns the fixed worker count
func (c *Coordinator) Workers() int {
	return c.config.Workers
}

// Size returns the current frame dimensions
func (c *Coordinator) Size() (width, height int) {
	return c.buffers.Size()
}

// Stop asks a running loop to finish after the current frame. It is safe to
// call from any goroutine, more than once, and before Run.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

// RequestResize changes the frame size starting with the next frame
func (c *Coordinator) RequestResize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize: %w: %dx%d", ErrInvalidDimensions, width, height)
	}
	c.resizeMu.Lock()
	c.pendingResize = &[2]int{width, height}
	c.resizeMu.Unlock()
	return nil
}

// ViewFrame calls fn with the most recently completed frame. The buffer
// cannot be swapped while fn runs, so fn should be quick.
func (c *Coordinator) ViewFrame(fn func(*FrameBuffer)) {
	c.buffers.View(fn)
}

// Run renders frames until ctx is cancelled, Stop is called, MaxFrames is
// reached, the sink reports ErrSinkClosed, or something fails. Stop requests
// are checked before each frame starts and again after its barrier; a frame
// whose barrier completes after a stop is discarded. A stop that lands
// between that second check and the swap still lets that one frame through.
// Run shuts the workers down before returning.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyStarted
	}

	pool, err := NewWorkerPool(c.config.Workers, c.render)
	if err != nil {
		c.state.Store(int32(StateStopped))
		return err
	}
	width, height := c.buffers.Size()
	if err := pool.Partition(height); err != nil {
		c.state.Store(int32(StateStopped))
		return err
	}
	pool.Start()

	c.logger.Printf("Rendering scene %q at %dx%d with %d workers\n", c.scene.Name, width, height, pool.NumWorkers())

	loopErr := c.loop(ctx, pool)

	c.state.Store(int32(StateStopping))
	stopErr := pool.Stop(c.config.ShutdownTimeout)
	c.state.Store(int32(StateStopped))

	c.logger.Printf("Render loop stopped after %d frames\n", c.Frames())

	if loopErr != nil {
		return loopErr
	}
	return stopErr
}

func (c *Coordinator) loop(ctx context.Context, pool *WorkerPool) error {
	profiler := NewProfiler(c.logger, c.config.ProfileInterval)
	lastFrame := time.Now()

	for {
		if c.stopRequested(ctx) {
			return nil
		}

		frameStart := time.Now()
		if err := c.applyResize(pool); err != nil {
			return err
		}

		dt := c.config.FixedTimeStep.Seconds()
		if c.config.FixedTimeStep == 0 {
			dt = frameStart.Sub(lastFrame).Seconds()
		}
		lastFrame = frameStart

		snap := c.scene.Advance(dt)
		width, height := c.buffers.Size()
		camera := geometry.NewCamera(snap.Camera, width, height)
		number := c.Frames() + 1

		stats, err := pool.RenderFrame(number, snap, camera, c.buffers.CurrentWrite())
		if err != nil {
			return fmt.Errorf("render frame %d: %w", number, err)
		}
		renderTime := time.Since(frameStart)

		// A stop that arrived during the frame discards it
		if c.stopRequested(ctx) {
			return nil
		}

		c.buffers.Swap()
		err = c.sink.Present(Frame{
			Number: number,
			Time:   snap.Time,
			Buffer: c.buffers.CurrentRead(),
		})
		if errors.Is(err, ErrSinkClosed) {
			c.logger.Printf("Sink closed after frame %d\n", number-1)
			return nil
		}
		if err != nil {
			return fmt.Errorf("present frame %d: %w", number, err)
		}
		c.frames.Add(1)

		profiler.Tick(FrameStats{Frame: number, Duration: renderTime, Pixels: stats.Pixels})

		if c.config.MaxFrames > 0 && number >= c.config.MaxFrames {
			return nil
		}

		c.throttle(ctx, frameStart)
	}
}

func (c *Coordinator) stopRequested(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-c.stopChan:
		return true
	default:
		return false
	}
}

// applyResize reallocates the buffers if a resize is pending
func (c *Coordinator) applyResize(pool *WorkerPool) error {
	c.resizeMu.Lock()
	pending := c.pendingResize
	c.pendingResize = nil
	c.resizeMu.Unlock()

	if pending == nil {
		return nil
	}
	width, height := pending[0], pending[1]
	if w, h := c.buffers.Size(); w == width && h == height {
		return nil
	}

	if err := c.buffers.Resize(width, height); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
	if err := pool.Partition(height); err != nil {
		return err
	}
	c.logger.Printf("Resized to %dx%d\n", width, height)
	return nil
}

// throttle sleeps out the rest of the frame when FrameLimit is set
func (c *Coordinator) throttle(ctx context.Context, frameStart time.Time) {
	if c.config.FrameLimit <= 0 {
		return
	}
	wait := time.Second/time.Duration(c.config.FrameLimit) - time.Since(frameStart)
	if wait <= 0 {
		return
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	case <-c.stopChan:
	}
}

// RenderSnapshot renders a single frame of snap with a temporary pool
func RenderSnapshot(snap *scene.Snapshot, width, height, workers int) (*FrameBuffer, error) {
	fb, err := NewFrameBuffer(width, height)
	if err != nil {
		return nil, err
	}

	pool, err := NewWorkerPool(workers, RenderRows)
	if err != nil {
		return nil, err
	}
	pool.Start()
	defer pool.Stop(0)

	camera := geometry.NewCamera(snap.Camera, width, height)
	if _, err := pool.RenderFrame(1, snap, camera, fb); err != nil {
		return nil, err
	}
	return fb, nil
}
