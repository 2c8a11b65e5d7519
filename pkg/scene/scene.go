package scene

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/lights"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// Object is a shape in its base pose, its material and how it moves over time
type Object struct {
	Name     string
	Shape    geometry.Shape
	Material material.Material
	Motion   Motion // nil means static
}

// LightSource is a point light in its base pose and how it moves over time
type LightSource struct {
	Light  lights.PointLight
	Motion Motion // nil means static
}

// Background is the color returned for rays that hit nothing.
// Top and Bottom are blended by the ray's vertical direction.
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// UniformBackground returns a background of a single color
func UniformBackground(color core.Vec3) Background {
	return Background{Top: color, Bottom: color}
}

// At returns the background color seen along a unit direction
func (b Background) At(direction core.Vec3) core.Vec3 {
	if b.Top == b.Bottom {
		return b.Top
	}
	t := 0.5 * (direction.Y + 1.0)
	return b.Bottom.Lerp(b.Top, t)
}

// Scene contains all the elements needed for rendering plus the animation clock.
// The set of objects and lights is fixed once the scene starts animating;
// only poses derived from the clock change.
type Scene struct {
	Name         string
	Background   Background
	CameraConfig geometry.CameraConfig
	CameraMotion CameraMotion // nil means static
	Width        int          // Recommended image width
	Height       int          // Recommended image height

	objects []Object
	lights  []LightSource
	time    float64
	frozen  bool
}

// NewScene creates an empty scene
func NewScene(name string, camera geometry.CameraConfig, background Background, width, height int) *Scene {
	return &Scene{
		Name:         name,
		Background:   background,
		CameraConfig: camera,
		Width:        width,
		Height:       height,
	}
}

// AddObject appends an object. It panics once the scene has been frozen.
func (s *Scene) AddObject(obj Object) {
	if s.frozen {
		panic("scene: AddObject after Freeze")
	}
	s.objects = append(s.objects, obj)
}

// AddLight appends a light. It panics once the scene has been frozen.
func (s *Scene) AddLight(light LightSource) {
	if s.frozen {
		panic("scene: AddLight after Freeze")
	}
	s.lights = append(s.lights, light)
}

// Freeze ends construction. Advance freezes the scene implicitly.
func (s *Scene) Freeze() {
	s.frozen = true
}

// ObjectCount returns the number of objects in the scene
func (s *Scene) ObjectCount() int { return len(s.objects) }

// LightCount returns the number of lights in the scene
func (s *Scene) LightCount() int { return len(s.lights) }

// Time returns the accumulated animation time in seconds
func (s *Scene) Time() float64 { return s.time }

// Advance moves the clock forward by dt seconds and returns the snapshot for
// the new time. It is not safe for concurrent use; the render coordinator is
// its only caller.
func (s *Scene) Advance(dt float64) *Snapshot {
	s.frozen = true
	s.time += dt
	return s.SnapshotAt(s.time)
}

// SnapshotAt builds the immutable scene state at time t without touching the
// clock. Equal t always yields bit-identical snapshots.
func (s *Scene) SnapshotAt(t float64) *Snapshot {
	snap := &Snapshot{
		Time:       t,
		Shapes:     make([]geometry.Shape, len(s.objects)),
		Materials:  make([]material.Material, len(s.objects)),
		Lights:     make([]lights.PointLight, len(s.lights)),
		Background: s.Background,
		Camera:     s.CameraConfig,
	}

	for i, obj := range s.objects {
		snap.Shapes[i] = obj.Shape.Translate(offsetAt(obj.Motion, t))
		snap.Materials[i] = obj.Material
	}
	for i, src := range s.lights {
		snap.Lights[i] = src.Light.Translate(offsetAt(src.Motion, t))
	}
	if s.CameraMotion != nil {
		snap.Camera = s.CameraMotion.Pose(s.CameraConfig, t)
	}

	return snap
}

func offsetAt(m Motion, t float64) core.Vec3 {
	if m == nil {
		return core.Vec3{}
	}
	return m.Offset(t)
}
