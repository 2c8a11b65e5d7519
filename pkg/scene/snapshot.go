package scene

import (
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/lights"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// Snapshot is the scene frozen at one instant. Every worker of a frame reads
// the same snapshot; nothing writes to it after SnapshotAt returns.
// Shapes[i] and Materials[i] describe object i, in scene order.
type Snapshot struct {
	Time       float64
	Shapes     []geometry.Shape
	Materials  []material.Material
	Lights     []lights.PointLight
	Background Background
	Camera     geometry.CameraConfig
}

// ObjectCount returns the number of objects in the snapshot
func (s *Snapshot) ObjectCount() int {
	return len(s.Shapes)
}
