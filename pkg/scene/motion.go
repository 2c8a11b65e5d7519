package scene

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
)

// Motion maps animation time to a translation from the base pose.
// Implementations must be pure functions of t.
type Motion interface {
	Offset(t float64) core.Vec3
}

// Static never moves
type Static struct{}

func (Static) Offset(float64) core.Vec3 { return core.Vec3{} }

// Orbit circles the base position in the XZ plane
type Orbit struct {
	Radius float64
	Period float64 // Seconds per revolution; 0 freezes the orbit at Phase
	Phase  float64 // Starting angle in radians
}

func (o Orbit) Offset(t float64) core.Vec3 {
	angle := phaseAngle(t, o.Period, o.Phase)
	return core.NewVec3(o.Radius*math.Cos(angle), 0, o.Radius*math.Sin(angle))
}

// Bob oscillates vertically around the base position
type Bob struct {
	Amplitude float64
	Period    float64
	Phase     float64
}

func (b Bob) Offset(t float64) core.Vec3 {
	return core.NewVec3(0, b.Amplitude*math.Sin(phaseAngle(t, b.Period, b.Phase)), 0)
}

// CameraMotion poses the camera at time t
type CameraMotion interface {
	Pose(base geometry.CameraConfig, t float64) geometry.CameraConfig
}

// CameraOrbit circles the camera around its LookAt point
type CameraOrbit struct {
	Radius float64 // Horizontal distance from LookAt
	Height float64 // Height above LookAt
	Period float64
	Phase  float64
}

func (o CameraOrbit) Pose(base geometry.CameraConfig, t float64) geometry.CameraConfig {
	angle := phaseAngle(t, o.Period, o.Phase)
	base.Center = base.LookAt.Add(core.NewVec3(
		o.Radius*math.Sin(angle),
		o.Height,
		o.Radius*math.Cos(angle),
	))
	return base
}

func phaseAngle(t, period, phase float64) float64 {
	if period == 0 {
		return phase
	}
	return 2*math.Pi*t/period + phase
}
