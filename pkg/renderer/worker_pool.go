package renderer

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// RowResult is sent by a worker after it finishes (or fails) its rows
type RowResult struct {
	Worker int
	Frame  int
	Stats  RowStats
	Error  error
}

// WorkerPool owns a fixed set of long-lived workers. Worker i always renders
// ranges[i] of the current partition. RenderFrame hands every worker one
// task and blocks until all of them have reported back.
type WorkerPool struct {
	workers  []*Worker
	results  chan RowResult
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool

	ranges []RowRange
	height int
}

// Worker renders the rows it is handed, one task at a time
type Worker struct {
	ID      int
	jobs    chan RowTask
	results chan<- RowResult
	quit    <-chan struct{}
	render  RowFunc
}

// NewWorkerPool creates a pool with numWorkers workers. The workers do not
// run until Start is called. A nil render uses RenderRows.
func NewWorkerPool(numWorkers int, render RowFunc) (*WorkerPool, error) {
	if numWorkers < 1 {
		return nil, fmt.Errorf("worker pool: %w (got %d)", ErrInvalidWorkerCount, numWorkers)
	}
	if render == nil {
		render = RenderRows
	}

	wp := &WorkerPool{
		results: make(chan RowResult, numWorkers), // Workers never block on reporting
		quit:    make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:      i,
			jobs:    make(chan RowTask, 1),
			results: wp.results,
			quit:    wp.quit,
			render:  render,
		})
	}

	return wp, nil
}

// Start launches one goroutine per worker
func (wp *WorkerPool) Start() {
	if wp.started {
		return
	}
	wp.started = true
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return len(wp.workers)
}

// Partition assigns row ranges for an image of the given height and checks
// that the assignment is exact before any worker sees it
func (wp *WorkerPool) Partition(height int) error {
	ranges, err := PartitionRows(height, len(wp.workers))
	if err != nil {
		return err
	}
	if err := VerifyPartition(ranges, height); err != nil {
		return fmt.Errorf("bad partition: %w", err)
	}
	wp.ranges = ranges
	wp.height = height
	return nil
}

// Ranges returns the current row assignment, indexed by worker ID
func (wp *WorkerPool) Ranges() []RowRange {
	return wp.ranges
}

// RenderFrame renders snap into fb and returns once every worker has
// reported. If any worker failed, the first failure is returned and the
// buffer contents must be discarded. The pool repartitions when fb's height
// differs from the last partition.
func (wp *WorkerPool) RenderFrame(frame int, snap *scene.Snapshot, camera *geometry.Camera, fb *FrameBuffer) (RowStats, error) {
	if wp.ranges == nil || wp.height != fb.Height {
		if err := wp.Partition(fb.Height); err != nil {
			return RowStats{}, err
		}
	}

	for i, worker := range wp.workers {
		task := RowTask{
			Frame:    frame,
			Snapshot: snap,
			Camera:   camera,
			Buffer:   fb,
			Rows:     wp.ranges[i],
		}
		select {
		case worker.jobs <- task:
		case <-wp.quit:
			return RowStats{}, ErrPoolStopped
		}
	}

	// Barrier: wait for every worker, even after a failure, so no one is
	// still writing into fb when we return
	var total RowStats
	var firstErr error
	for range wp.workers {
		select {
		case result := <-wp.results:
			if result.Error != nil && firstErr == nil {
				firstErr = result.Error
			}
			total.Pixels += result.Stats.Pixels
			total.Rows += result.Stats.Rows
		case <-wp.quit:
			return total, ErrPoolStopped
		}
	}

	return total, firstErr
}

// Stop closes the quit channel and waits up to timeout for every worker to
// exit. A non-positive timeout waits indefinitely. Stop is idempotent.
func (wp *WorkerPool) Stop(timeout time.Duration) error {
	wp.stopOnce.Do(func() {
		close(wp.quit)
	})

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	if timeout <= 0 {
		<-done
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w (%v)", ErrShutdownTimeout, timeout)
	}
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-w.quit:
			return
		case task := <-w.jobs:
			result := w.renderTask(task)
			select {
			case w.results <- result:
			case <-w.quit:
				return
			}
		}
	}
}

// renderTask runs the render function, turning a panic into a result error
func (w *Worker) renderTask(task RowTask) (result RowResult) {
	result = RowResult{Worker: w.ID, Frame: task.Frame}

	defer func() {
		if r := recover(); r != nil {
			result.Error = &WorkerPanicError{
				Worker: w.ID,
				Rows:   task.Rows,
				Value:  r,
				Stack:  debug.Stack(),
			}
		}
	}()

	result.Stats = w.render(task)
	return result
}
