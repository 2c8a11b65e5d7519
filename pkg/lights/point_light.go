package lights

import "github.com/df07/go-realtime-raytracer/pkg/core"

// PointLight is an infinitesimal light with inverse-square style falloff
type PointLight struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64
	Falloff   float64 // Quadratic falloff factor; 0 = no attenuation
}

// NewPointLight creates a white point light without falloff
func NewPointLight(position core.Vec3, intensity float64) PointLight {
	return PointLight{
		Position:  position,
		Color:     core.NewVec3(1, 1, 1),
		Intensity: intensity,
	}
}

// Attenuation returns the intensity scale at the given distance
func (l PointLight) Attenuation(distance float64) float64 {
	if l.Falloff == 0 {
		return l.Intensity
	}
	return l.Intensity / (1 + l.Falloff*distance*distance)
}

// Sample returns the light arriving at point from this light.
// A point that coincides with the light position receives nothing.
func (l PointLight) Sample(point core.Vec3) (LightSample, bool) {
	toLight := l.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}, false
	}

	return LightSample{
		Direction: toLight.Normalize(),
		Distance:  distance,
		Emission:  l.Color.Multiply(l.Attenuation(distance)),
	}, true
}

// Translate returns a copy of the light moved by offset
func (l PointLight) Translate(offset core.Vec3) PointLight {
	l.Position = l.Position.Add(offset)
	return l
}
