package scene

import (
	"math"
	"reflect"
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/lights"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

func newTestScene() *Scene {
	s := NewScene("test", geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	}, UniformBackground(core.Vec3{}), 10, 10)

	s.AddObject(Object{
		Name:     "orbiter",
		Shape:    geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5),
		Material: material.NewDiffuse(core.NewVec3(1, 1, 1)),
		Motion:   Orbit{Radius: 2, Period: 4},
	})
	s.AddObject(Object{
		Name:     "fixed",
		Shape:    geometry.NewSphere(core.NewVec3(3, 0, 0), 1),
		Material: material.NewDiffuse(core.NewVec3(1, 0, 0)),
	})
	s.AddLight(LightSource{
		Light:  lights.NewPointLight(core.NewVec3(0, 5, 0), 1),
		Motion: Bob{Amplitude: 1, Period: 2},
	})
	return s
}

func TestScene_SnapshotAtIsDeterministic(t *testing.T) {
	s := newTestScene()
	for _, time := range []float64{0, 0.3, 1.7, 123.456} {
		a := s.SnapshotAt(time)
		b := s.SnapshotAt(time)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Snapshots at t=%f differ", time)
		}
	}
}

func TestScene_AdvanceMatchesSnapshotAt(t *testing.T) {
	advanced := newTestScene()
	reference := newTestScene()

	var snap *Snapshot
	for i := 0; i < 5; i++ {
		snap = advanced.Advance(0.25)
	}

	if advanced.Time() != 1.25 {
		t.Errorf("Expected time 1.25, got %f", advanced.Time())
	}
	if !reflect.DeepEqual(snap, reference.SnapshotAt(advanced.Time())) {
		t.Error("Advance should return the snapshot for the accumulated time")
	}
}

func TestScene_SnapshotsAreIndependent(t *testing.T) {
	s := newTestScene()
	first := s.Advance(0)
	firstCenter := first.Shapes[0].(*geometry.Sphere).Center

	s.Advance(1.0)

	if got := first.Shapes[0].(*geometry.Sphere).Center; got != firstCenter {
		t.Errorf("Advancing the scene changed an earlier snapshot: %v -> %v", firstCenter, got)
	}
}

func TestScene_Poses(t *testing.T) {
	s := newTestScene()

	// Quarter of the orbit period: the orbiter moves from +X to +Z
	snap := s.SnapshotAt(1.0)
	center := snap.Shapes[0].(*geometry.Sphere).Center
	if math.Abs(center.X) > 1e-12 || math.Abs(center.Z-2) > 1e-12 {
		t.Errorf("Expected orbiter at (0,0,2), got %v", center)
	}

	if got := snap.Shapes[1].(*geometry.Sphere).Center; got != core.NewVec3(3, 0, 0) {
		t.Errorf("Static object moved to %v", got)
	}

	// Half the bob period: the light is back at its base height
	if got := snap.Lights[0].Position; math.Abs(got.Y-5) > 1e-12 {
		t.Errorf("Expected light at height 5, got %v", got)
	}
	if got := s.SnapshotAt(0.5).Lights[0].Position; math.Abs(got.Y-6) > 1e-12 {
		t.Errorf("Expected light at the top of its swing, got %v", got)
	}

	if snap.Materials[1].Color != core.NewVec3(1, 0, 0) {
		t.Errorf("Materials should follow object order, got %v", snap.Materials[1].Color)
	}
	if snap.ObjectCount() != 2 {
		t.Errorf("Expected 2 objects, got %d", snap.ObjectCount())
	}
}

func TestScene_CountsFixedAfterAdvance(t *testing.T) {
	s := newTestScene()
	for i := 0; i < 10; i++ {
		snap := s.Advance(0.1)
		if len(snap.Shapes) != 2 || len(snap.Materials) != 2 || len(snap.Lights) != 1 {
			t.Fatalf("Frame %d: unexpected counts %d/%d/%d", i, len(snap.Shapes), len(snap.Materials), len(snap.Lights))
		}
	}
}

func TestScene_AddAfterFreezePanics(t *testing.T) {
	tests := []struct {
		name string
		add  func(s *Scene)
	}{
		{"object", func(s *Scene) { s.AddObject(Object{Shape: geometry.NewSphere(core.Vec3{}, 1)}) }},
		{"light", func(s *Scene) { s.AddLight(LightSource{Light: lights.NewPointLight(core.Vec3{}, 1)}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene()
			s.Advance(0.1)

			defer func() {
				if recover() == nil {
					t.Error("Expected a panic when adding after the scene started animating")
				}
			}()
			tt.add(s)
		})
	}
}

func TestBackground_At(t *testing.T) {
	uniform := UniformBackground(core.NewVec3(0.2, 0.3, 0.4))
	for _, dir := range []core.Vec3{{X: 0, Y: 1, Z: 0}, {X: 0.6, Y: -0.8, Z: 0}, {X: 0, Y: 0, Z: -1}} {
		if got := uniform.At(dir); got != uniform.Top {
			t.Errorf("Uniform background along %v: expected %v, got %v", dir, uniform.Top, got)
		}
	}

	gradient := Background{Top: core.NewVec3(0, 0, 1), Bottom: core.NewVec3(1, 1, 1)}
	if got := gradient.At(core.NewVec3(0, 0, -1)); got != core.NewVec3(0.5, 0.5, 1) {
		t.Errorf("Horizon: expected halfway blend, got %v", got)
	}
}

func TestDefaultScene_CameraStartsAtClassicView(t *testing.T) {
	s := NewDefaultScene()
	snap := s.SnapshotAt(0)

	expected := core.NewVec3(-2, 2, 1)
	if snap.Camera.Center.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected camera at %v, got %v", expected, snap.Camera.Center)
	}
	if snap.Camera.LookAt != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected camera looking at (0,0,-1), got %v", snap.Camera.LookAt)
	}
}
