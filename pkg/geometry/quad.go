package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// Quad represents a rectangular surface defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	D      float64   // Plane equation constant: ax + by + cz = d
	W      core.Vec3 // Cached cross product for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      normal.Multiply(1.0 / normal.Dot(cross)),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-8 {
		return HitRecord{}, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= tMin || t > tMax {
		return HitRecord{}, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)

	// Barycentric coordinates within the parallelogram
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return HitRecord{}, false
	}

	hit := HitRecord{
		T:     t,
		Point: hitPoint,
	}
	hit.SetFaceNormal(ray, q.Normal)

	return hit, true
}

// Translate returns a copy of the quad moved by offset
func (q *Quad) Translate(offset core.Vec3) Shape {
	return NewQuad(q.Corner.Add(offset), q.U, q.V)
}
