package renderer

import (
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

func TestNewWorkerPool_InvalidWorkerCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := NewWorkerPool(n, nil); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("NewWorkerPool(%d): expected ErrInvalidWorkerCount, got %v", n, err)
		}
	}
}

func TestWorkerPool_EveryRowWrittenOnceByItsOwner(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[RowRange]int)

	// Each worker bumps every byte of its rows, so any overlap shows up as 2
	// and any gap as 0
	sentinel := func(task RowTask) RowStats {
		for i, rows := 0, task.Buffer.Rows(task.Rows); i < len(rows); i++ {
			rows[i]++
		}
		mu.Lock()
		seen[task.Rows]++
		mu.Unlock()
		return RowStats{Rows: task.Rows.Len(), Pixels: task.Rows.Len() * task.Buffer.Width}
	}

	pool, err := NewWorkerPool(6, sentinel)
	if err != nil {
		t.Fatal(err)
	}
	pool.Start()
	defer pool.Stop(time.Second)

	fb, _ := NewFrameBuffer(5, 37)
	stats, err := pool.RenderFrame(1, &scene.Snapshot{}, nil, fb)
	if err != nil {
		t.Fatal(err)
	}

	for i, b := range fb.Pix {
		if b != 1 {
			t.Fatalf("Byte %d (row %d) written %d times", i, i/fb.Stride(), b)
		}
	}
	if stats.Rows != 37 || stats.Pixels != 5*37 {
		t.Errorf("Expected 37 rows / %d pixels, got %+v", 5*37, stats)
	}

	var got []RowRange
	for r, n := range seen {
		if n != 1 {
			t.Errorf("Range %v rendered %d times", r, n)
		}
		got = append(got, r)
	}
	sort.Slice(got, func(i, j int) bool { return got[i].Start < got[j].Start })
	if !reflect.DeepEqual(got, pool.Ranges()) {
		t.Errorf("Rendered ranges %v do not match the partition %v", got, pool.Ranges())
	}
}

func TestWorkerPool_RepartitionsOnHeightChange(t *testing.T) {
	pool, _ := NewWorkerPool(3, func(task RowTask) RowStats { return RowStats{} })
	pool.Start()
	defer pool.Stop(time.Second)

	for _, height := range []int{10, 4, 25} {
		fb, _ := NewFrameBuffer(2, height)
		if _, err := pool.RenderFrame(1, &scene.Snapshot{}, nil, fb); err != nil {
			t.Fatal(err)
		}
		if err := VerifyPartition(pool.Ranges(), height); err != nil {
			t.Errorf("Height %d: %v", height, err)
		}
	}
}

func TestWorkerPool_PanicBecomesError(t *testing.T) {
	render := func(task RowTask) RowStats {
		if task.Rows.Start == 0 {
			panic("boom")
		}
		return RowStats{}
	}

	pool, _ := NewWorkerPool(4, render)
	pool.Start()

	fb, _ := NewFrameBuffer(4, 8)
	_, err := pool.RenderFrame(1, &scene.Snapshot{}, nil, fb)

	var panicErr *WorkerPanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected *WorkerPanicError, got %v", err)
	}
	if panicErr.Worker != 0 || panicErr.Rows != (RowRange{0, 2}) {
		t.Errorf("Unexpected panic report: worker %d rows %v", panicErr.Worker, panicErr.Rows)
	}
	if panicErr.Value != "boom" || len(panicErr.Stack) == 0 {
		t.Errorf("Expected panic value and stack, got %v / %d bytes", panicErr.Value, len(panicErr.Stack))
	}

	// The other workers finished and every worker is still able to exit
	if err := pool.Stop(time.Second); err != nil {
		t.Errorf("Stop after panic: %v", err)
	}
}

func TestWorkerPool_StopTimeout(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	render := func(task RowTask) RowStats {
		close(started)
		<-release
		return RowStats{}
	}

	pool, _ := NewWorkerPool(1, render)
	pool.Start()

	fb, _ := NewFrameBuffer(1, 1)
	frameDone := make(chan error, 1)
	go func() {
		_, err := pool.RenderFrame(1, &scene.Snapshot{}, nil, fb)
		frameDone <- err
	}()
	<-started

	if err := pool.Stop(20 * time.Millisecond); !errors.Is(err, ErrShutdownTimeout) {
		t.Errorf("Expected ErrShutdownTimeout while a worker is stuck, got %v", err)
	}

	close(release)
	if err := pool.Stop(time.Second); err != nil {
		t.Errorf("Expected clean stop once the worker is released, got %v", err)
	}
	<-frameDone
}

func TestWorkerPool_RenderAfterStop(t *testing.T) {
	pool, _ := NewWorkerPool(2, nil)
	pool.Start()
	if err := pool.Stop(time.Second); err != nil {
		t.Fatal(err)
	}

	fb, _ := NewFrameBuffer(2, 2)
	if _, err := pool.RenderFrame(1, &scene.Snapshot{}, nil, fb); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("Expected ErrPoolStopped, got %v", err)
	}
}

func TestRenderSnapshot_Deterministic(t *testing.T) {
	snap := scene.NewDefaultScene().SnapshotAt(1.25)

	first, err := RenderSnapshot(snap, 64, 36, 4)
	if err != nil {
		t.Fatal(err)
	}
	second, err := RenderSnapshot(snap, 64, 36, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Error("Rendering the same snapshot twice produced different pixels")
	}
}

func TestRenderSnapshot_WorkerCountInvariance(t *testing.T) {
	for _, name := range scene.Names() {
		t.Run(name, func(t *testing.T) {
			sc, err := scene.New(name)
			if err != nil {
				t.Fatal(err)
			}
			snap := sc.SnapshotAt(0.75)

			reference, err := RenderSnapshot(snap, 48, 30, 1)
			if err != nil {
				t.Fatal(err)
			}
			for _, workers := range []int{2, 3, 8} {
				fb, err := RenderSnapshot(snap, 48, 30, workers)
				if err != nil {
					t.Fatal(err)
				}
				if !fb.Equal(reference) {
					t.Errorf("%d workers produced a different image than 1 worker", workers)
				}
			}
		})
	}
}

func TestRenderSnapshot_InvalidArguments(t *testing.T) {
	snap := scene.NewSingleSphereScene().SnapshotAt(0)

	if _, err := RenderSnapshot(snap, 0, 10, 2); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := RenderSnapshot(snap, 10, 10, 0); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("Expected ErrInvalidWorkerCount, got %v", err)
	}
}
