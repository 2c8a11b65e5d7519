package scene

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/lights"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box with a mirrored back wall, a ceiling
// point light and two spheres circling the middle of the floor
func NewCornellScene() *Scene {
	camera := geometry.CameraConfig{
		Center: core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	}

	s := NewScene("cornell", camera, UniformBackground(core.NewVec3(0, 0, 0)), 300, 300)

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))

	// Standard 555x555x555 box
	boxSize := 555.0

	walls := []struct {
		name     string
		corner   core.Vec3
		u, v     core.Vec3
		material material.Material
	}{
		{"floor", core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white},
		{"ceiling", core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white},
		{"back", core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), mirror},
		{"left", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red},
		{"right", core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), green},
	}
	for _, w := range walls {
		s.AddObject(Object{
			Name:     w.name,
			Shape:    geometry.NewQuad(w.corner, w.u, w.v),
			Material: w.material,
		})
	}

	s.AddObject(Object{
		Name:     "metal ball",
		Shape:    geometry.NewSphere(core.NewVec3(278, 90, 278), 90),
		Material: material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.7),
		Motion:   Orbit{Radius: 120, Period: 8},
	})
	s.AddObject(Object{
		Name:     "blue ball",
		Shape:    geometry.NewSphere(core.NewVec3(278, 60, 278), 60),
		Material: material.NewGlossy(core.NewVec3(0.2, 0.3, 0.8), 0.5, 48),
		Motion:   Orbit{Radius: 150, Period: 8, Phase: 3.14159},
	})

	s.AddLight(LightSource{
		Light: lights.PointLight{
			Position:  core.NewVec3(278, 540, 278),
			Color:     core.NewVec3(1.0, 0.95, 0.85),
			Intensity: 1.2,
			Falloff:   0.000004,
		},
	})

	return s
}
