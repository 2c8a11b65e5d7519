package renderer

import (
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// RowTask is everything one worker needs to render its rows of one frame
type RowTask struct {
	Frame    int
	Snapshot *scene.Snapshot
	Camera   *geometry.Camera
	Buffer   *FrameBuffer
	Rows     RowRange
}

// RowFunc renders the rows of a task into its buffer
type RowFunc func(task RowTask) RowStats

// RowStats counts the work done for one row range
type RowStats struct {
	Pixels int
	Rows   int
}

// RenderRows traces one primary ray per pixel of task.Rows and writes the
// result into the matching sub-slice of task.Buffer. Pixels outside the
// range are never touched.
func RenderRows(task RowTask) RowStats {
	fb := task.Buffer
	pix := fb.Rows(task.Rows)
	stride := fb.Stride()

	stats := RowStats{Rows: task.Rows.Len()}

	for j := task.Rows.Start; j < task.Rows.End; j++ {
		row := pix[(j-task.Rows.Start)*stride : (j-task.Rows.Start+1)*stride]
		for i := 0; i < fb.Width; i++ {
			ray := task.Camera.RayForPixel(float64(i), float64(j))
			c := ToRGBA(Trace(ray, task.Snapshot, 0))
			copy(row[i*BytesPerPixel:(i+1)*BytesPerPixel], c[:])
			stats.Pixels++
		}
	}

	return stats
}
