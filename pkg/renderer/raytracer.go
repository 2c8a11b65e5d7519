package renderer

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

const (
	// MaxDepth is the deepest recursion level that still gets local shading.
	// Primary rays start at depth 0; a hit at MaxDepth is not reflected further.
	MaxDepth = 5

	// HitEpsilon is the smallest ray parameter accepted as a hit
	HitEpsilon = 1e-4

	// SurfaceBias offsets secondary ray origins along the normal to avoid
	// self-intersection
	SurfaceBias = 1e-4
)

// Trace returns the linear color seen along ray in snap. It only reads the
// snapshot and keeps all state on the stack, so any number of goroutines may
// call it concurrently on the same snapshot.
func Trace(ray core.Ray, snap *scene.Snapshot, depth int) core.Vec3 {
	hit, index, isHit := hitWorld(snap, ray, HitEpsilon, math.Inf(1))
	if !isHit {
		return snap.Background.At(ray.Direction)
	}

	mat := snap.Materials[index]
	local := shade(snap, ray, hit, mat)

	if depth >= MaxDepth {
		return local
	}

	if mat.IsTransparent() {
		tr := mat.Transparency
		local = local.Multiply(1.0 - tr).Add(traceGlass(ray, snap, hit, mat, depth).Multiply(tr))
	}
	if !mat.IsReflective() {
		return local
	}

	reflected := core.NewRay(
		hit.Point.Add(hit.Normal.Multiply(SurfaceBias)),
		material.Reflect(ray.Direction, hit.Normal),
	)
	reflectedColor := Trace(reflected, snap, depth+1).MultiplyVec(mat.Color)

	r := mat.Reflectivity
	return local.Multiply(1.0 - r).Add(reflectedColor.Multiply(r))
}

// traceGlass follows the refracted ray and the Fresnel reflection off a
// transparent surface and blends them by Schlick's approximation. Past the
// critical angle only the reflection is traced.
func traceGlass(ray core.Ray, snap *scene.Snapshot, hit geometry.HitRecord, mat material.Material, depth int) core.Vec3 {
	ratio := mat.RefractiveIndex
	if hit.FrontFace {
		ratio = 1.0 / ratio
	}

	reflected := core.NewRay(
		hit.Point.Add(hit.Normal.Multiply(SurfaceBias)),
		material.Reflect(ray.Direction, hit.Normal),
	)
	direction, ok := material.Refract(ray.Direction, hit.Normal, ratio)
	if !ok {
		return Trace(reflected, snap, depth+1).MultiplyVec(mat.Color)
	}

	// The refracted ray starts on the far side of the surface
	refracted := core.NewRay(hit.Point.Subtract(hit.Normal.Multiply(SurfaceBias)), direction)
	cosTheta := min(ray.Direction.Negate().Dot(hit.Normal), 1.0)
	k := material.Reflectance(cosTheta, ratio)

	color := Trace(refracted, snap, depth+1).Multiply(1.0 - k).
		Add(Trace(reflected, snap, depth+1).Multiply(k))
	return color.MultiplyVec(mat.Color)
}

// hitWorld finds the nearest hit in (tMin, tMax). On equal distances the
// object that comes first in the snapshot wins.
func hitWorld(snap *scene.Snapshot, ray core.Ray, tMin, tMax float64) (geometry.HitRecord, int, bool) {
	var closest geometry.HitRecord
	closestIndex := -1
	closestSoFar := tMax

	for i, shape := range snap.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit && hit.T < closestSoFar {
			closest = hit
			closestIndex = i
			closestSoFar = hit.T
		}
	}

	return closest, closestIndex, closestIndex >= 0
}

// shadowTransmittance returns the fraction of light that reaches distance
// along ray. An opaque occluder blocks it; transparent ones tint it.
func shadowTransmittance(snap *scene.Snapshot, ray core.Ray, distance float64) core.Vec3 {
	transmit := core.NewVec3(1, 1, 1)
	for i, shape := range snap.Shapes {
		if hit, isHit := shape.Hit(ray, HitEpsilon, distance); isHit && hit.T < distance {
			mat := snap.Materials[i]
			if !mat.IsTransparent() {
				return core.Vec3{}
			}
			transmit = transmit.MultiplyVec(mat.Color.Multiply(mat.Transparency))
		}
	}
	return transmit
}

// shade computes ambient plus direct lighting from every unshadowed light
func shade(snap *scene.Snapshot, ray core.Ray, hit geometry.HitRecord, mat material.Material) core.Vec3 {
	local := mat.Color.Multiply(mat.Ambient)
	viewDir := ray.Direction.Negate()
	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(SurfaceBias))

	for _, light := range snap.Lights {
		sample, ok := light.Sample(hit.Point)
		if !ok {
			continue
		}

		cosine := hit.Normal.Dot(sample.Direction)
		if cosine <= 0 {
			continue // light is behind the surface
		}

		shadowRay := core.Ray{Origin: shadowOrigin, Direction: sample.Direction}
		transmit := shadowTransmittance(snap, shadowRay, sample.Distance)
		if transmit == (core.Vec3{}) {
			continue
		}
		emission := sample.Emission.MultiplyVec(transmit)

		if mat.Diffuse > 0 {
			local = local.Add(mat.Color.MultiplyVec(emission).Multiply(mat.Diffuse * cosine))
		}

		if mat.HasHighlight() {
			// Blinn-Phong: highlight follows the half vector between light and viewer
			halfway := sample.Direction.Add(viewDir).Normalize()
			if nDotH := hit.Normal.Dot(halfway); nDotH > 0 {
				local = local.Add(emission.Multiply(mat.Specular * math.Pow(nDotH, mat.Shininess)))
			}
		}
	}

	return local
}

// ToRGBA converts a linear color to an 8-bit RGBA pixel with gamma 2
func ToRGBA(c core.Vec3) [4]byte {
	c = c.Clamp(0.0, 1.0).GammaCorrect(2.0)
	return [4]byte{
		uint8(255.999 * c.X),
		uint8(255.999 * c.Y),
		uint8(255.999 * c.Z),
		255,
	}
}
