package lights

import "github.com/df07/go-realtime-raytracer/pkg/core"

// LightSample contains information about the light arriving at a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Attenuated radiance arriving at the point
}
