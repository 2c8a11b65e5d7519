package material

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// Material describes how a surface responds to direct light and reflection.
// Values are plain data so snapshots can share them across workers.
type Material struct {
	Color        core.Vec3 // Base color
	Ambient      float64   // Fraction of the base color emitted regardless of lights
	Diffuse      float64   // Lambertian weight
	Specular     float64   // Blinn-Phong highlight weight
	Shininess    float64   // Blinn-Phong exponent; 0 disables the highlight
	Reflectivity float64   // 0 = matte, 1 = perfect mirror

	Transparency    float64 // Fraction of the surface color replaced by transmitted light
	RefractiveIndex float64 // Index of refraction of the inside relative to the outside
}

// NewDiffuse creates a matte material
func NewDiffuse(color core.Vec3) Material {
	return Material{
		Color:   color,
		Ambient: 0.1,
		Diffuse: 0.9,
	}
}

// NewGlossy creates a diffuse material with a specular highlight
func NewGlossy(color core.Vec3, specular, shininess float64) Material {
	return Material{
		Color:     color,
		Ambient:   0.1,
		Diffuse:   0.8,
		Specular:  specular,
		Shininess: shininess,
	}
}

// NewMetal creates a reflective material tinted by its color
func NewMetal(color core.Vec3, reflectivity float64) Material {
	return Material{
		Color:        color,
		Ambient:      0.05,
		Diffuse:      0.3,
		Specular:     0.8,
		Shininess:    120,
		Reflectivity: clamp01(reflectivity),
	}
}

// NewMirror creates a perfect mirror
func NewMirror(tint core.Vec3) Material {
	return Material{
		Color:        tint,
		Reflectivity: 1.0,
	}
}

// NewGlass creates a clear dielectric. An index below 1 makes a hollow
// bubble when placed inside a larger glass object.
func NewGlass(refractiveIndex float64) Material {
	return Material{
		Color:           core.NewVec3(1, 1, 1),
		Transparency:    1.0,
		RefractiveIndex: refractiveIndex,
	}
}

// IsReflective reports whether secondary reflection rays are worth tracing
func (m Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// IsTransparent reports whether refraction rays are worth tracing
func (m Material) IsTransparent() bool {
	return m.Transparency > 0 && m.RefractiveIndex > 0
}

// HasHighlight reports whether the specular term contributes
func (m Material) HasHighlight() bool {
	return m.Specular > 0 && m.Shininess > 0
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector v through a surface with unit normal n facing
// against v. ratio is the incident index over the transmitted index. ok is
// false when the angle is past critical and all light is reflected.
func Refract(v, n core.Vec3, ratio float64) (refracted core.Vec3, ok bool) {
	cosTheta := min(v.Negate().Dot(n), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if ratio*sinTheta > 1.0 {
		return core.Vec3{}, false
	}

	perp := v.Add(n.Multiply(cosTheta)).Multiply(ratio)
	parallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - perp.LengthSquared())))
	return perp.Add(parallel), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, ratio float64) float64 {
	r0 := (1 - ratio) / (1 + ratio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

func clamp01(v float64) float64 {
	return max(0.0, min(1.0, v))
}
