package geometry

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// CameraConfig describes the camera pose and lens
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
}

// Camera generates primary rays for an image of a fixed size.
// It holds no mutable state, so one camera can serve every worker of a frame.
type Camera struct {
	origin     core.Vec3
	upperLeft  core.Vec3
	horizontal core.Vec3
	vertical   core.Vec3
	forward    core.Vec3
	width      float64
	height     float64
}

// NewCamera derives the image plane for a width x height image
func NewCamera(config CameraConfig, width, height int) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := viewportHeight * float64(width) / float64(height)

	// Orthonormal basis; w points backwards, v points up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Negate().Multiply(viewportHeight) // rows grow downwards
	upperLeft := config.Center.
		Subtract(w).
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return &Camera{
		origin:     config.Center,
		upperLeft:  upperLeft,
		horizontal: horizontal,
		vertical:   vertical,
		forward:    w.Negate(),
		width:      float64(width),
		height:     float64(height),
	}
}

// RayForPixel returns the ray through image-plane point (x, y), measured in
// pixels from the top-left corner. Pixel (i, j) is sampled at (i, j); a
// fractional offset is the hook for sub-pixel jitter. Point (width/2,
// height/2) lies exactly on the optical axis.
func (c *Camera) RayForPixel(x, y float64) core.Ray {
	s := x / c.width
	t := y / c.height

	direction := c.upperLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.forward
}
