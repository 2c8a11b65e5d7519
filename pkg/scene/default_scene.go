package scene

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/lights"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// NewDefaultScene creates three spheres on a huge ground sphere under a sky
// gradient: a hollow glass ball, a glossy ball and a gold one, with a small satellite orbiting the middle sphere and the camera
// slowly circling the group.
func NewDefaultScene() *Scene {
	camera := geometry.CameraConfig{
		Center: core.NewVec3(-2, 2, 1),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   20.0,
	}

	s := NewScene("default", camera, Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0), // blue sky
		Bottom: core.NewVec3(1.0, 1.0, 1.0), // white horizon
	}, 400, 225)

	// Start the orbit where the static camera sits: (-2, 2, 1) around (0, 0, -1)
	s.CameraMotion = CameraOrbit{
		Radius: 2 * math.Sqrt2,
		Height: 2,
		Period: 30,
		Phase:  -math.Pi / 4,
	}

	ground := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewGlossy(core.NewVec3(0.1, 0.2, 0.5), 0.6, 64)
	glass := material.NewGlass(1.5)
	bubble := material.NewGlass(1.0 / 1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.45)
	red := material.NewGlossy(core.NewVec3(0.7, 0.1, 0.1), 0.4, 32)

	s.AddObject(Object{
		Name:     "ground",
		Shape:    geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100),
		Material: ground,
	})
	s.AddObject(Object{
		Name:     "center",
		Shape:    geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5),
		Material: center,
		Motion:   Bob{Amplitude: 0.1, Period: 3},
	})
	s.AddObject(Object{
		Name:     "left",
		Shape:    geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5),
		Material: glass,
	})
	s.AddObject(Object{
		Name:     "bubble",
		Shape:    geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.4),
		Material: bubble,
	})
	s.AddObject(Object{
		Name:     "right",
		Shape:    geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5),
		Material: gold,
	})
	s.AddObject(Object{
		Name:     "satellite",
		Shape:    geometry.NewSphere(core.NewVec3(0, -0.35, -1.2), 0.15),
		Material: red,
		Motion:   Orbit{Radius: 0.8, Period: 5},
	})

	s.AddLight(LightSource{
		Light: lights.PointLight{
			Position:  core.NewVec3(-5, 8, 5),
			Color:     core.NewVec3(1.0, 0.98, 0.95),
			Intensity: 0.9,
		},
	})
	s.AddLight(LightSource{
		Light: lights.PointLight{
			Position:  core.NewVec3(4, 3, 1),
			Color:     core.NewVec3(0.9, 0.9, 1.0),
			Intensity: 0.6,
			Falloff:   0.02,
		},
		Motion: Orbit{Radius: 1.5, Period: 11},
	})

	return s
}
