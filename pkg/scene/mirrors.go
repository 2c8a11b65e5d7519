package scene

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/lights"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// NewMirrorsScene places the camera between two facing perfect mirrors, so
// every reflection ray bounces until the depth limit cuts it off
func NewMirrorsScene() *Scene {
	camera := geometry.CameraConfig{
		Center: core.NewVec3(0.5, 0.4, 4),
		LookAt: core.NewVec3(-0.5, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60.0,
	}

	s := NewScene("mirrors", camera, UniformBackground(core.NewVec3(0.05, 0.05, 0.08)), 320, 240)

	mirror := material.NewMirror(core.NewVec3(0.95, 0.95, 0.95))

	s.AddObject(Object{
		Name:     "left mirror",
		Shape:    geometry.NewPlane(core.NewVec3(-2, 0, 0), core.NewVec3(1, 0, 0)),
		Material: mirror,
	})
	s.AddObject(Object{
		Name:     "right mirror",
		Shape:    geometry.NewPlane(core.NewVec3(2, 0, 0), core.NewVec3(-1, 0, 0)),
		Material: mirror,
	})
	s.AddObject(Object{
		Name:     "floor",
		Shape:    geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)),
		Material: material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6)),
	})
	s.AddObject(Object{
		Name:     "ball",
		Shape:    geometry.NewSphere(core.NewVec3(0, -0.4, 0), 0.6),
		Material: material.NewGlossy(core.NewVec3(0.9, 0.3, 0.1), 0.7, 64),
		Motion:   Bob{Amplitude: 0.3, Period: 2},
	})

	s.AddLight(LightSource{
		Light: lights.NewPointLight(core.NewVec3(0, 4, 2), 1.0),
	})

	return s
}

// NewSingleSphereScene is a unit sphere at the origin lit from (0, 5, 5) and
// seen from (0, 0, 5). The material is purely diffuse so the center pixel
// has a closed-form color.
func NewSingleSphereScene() *Scene {
	camera := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
	}

	s := NewScene("single", camera, UniformBackground(core.NewVec3(0.2, 0.3, 0.4)), 100, 100)

	s.AddObject(Object{
		Name:  "sphere",
		Shape: geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0),
		Material: material.Material{
			Color:   core.NewVec3(1.0, 0.5, 0.25),
			Diffuse: 1.0,
		},
	})
	s.AddLight(LightSource{
		Light: lights.NewPointLight(core.NewVec3(0, 5, 5), 1.0),
	})

	return s
}
