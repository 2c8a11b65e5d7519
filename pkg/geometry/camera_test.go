package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	}
}

func TestCamera_CenterRayIsOpticalAxis(t *testing.T) {
	camera := NewCamera(testCameraConfig(), 100, 100)

	ray := camera.RayForPixel(50, 50)
	if ray.Origin != core.NewVec3(0, 0, 5) {
		t.Errorf("Expected origin at camera center, got %v", ray.Origin)
	}
	if ray.Direction != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected center ray along -Z exactly, got %v", ray.Direction)
	}
	if camera.Forward() != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected forward -Z, got %v", camera.Forward())
	}
}

func TestCamera_ImageOrientation(t *testing.T) {
	camera := NewCamera(testCameraConfig(), 100, 100)

	topLeft := camera.RayForPixel(0, 0).Direction
	bottomRight := camera.RayForPixel(100, 100).Direction

	if topLeft.X >= 0 || topLeft.Y <= 0 {
		t.Errorf("Expected pixel (0,0) to point up-left, got %v", topLeft)
	}
	if bottomRight.X <= 0 || bottomRight.Y >= 0 {
		t.Errorf("Expected far corner to point down-right, got %v", bottomRight)
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	camera := NewCamera(testCameraConfig(), 200, 100)

	// Top edge center should sit exactly half the vertical FOV above the axis
	top := camera.RayForPixel(100, 0).Direction
	angle := math.Acos(top.Dot(core.NewVec3(0, 0, -1))) * 180 / math.Pi
	if math.Abs(angle-22.5) > 1e-9 {
		t.Errorf("Expected 22.5 degree half-angle, got %f", angle)
	}

	// Aspect ratio 2:1 widens the horizontal extent
	right := camera.RayForPixel(200, 50).Direction
	expected := 2 * math.Tan(22.5*math.Pi/180)
	if math.Abs(right.X/-right.Z-expected) > 1e-9 {
		t.Errorf("Expected horizontal half-extent %f, got %f", expected, right.X/-right.Z)
	}
}

func TestCamera_RaysAreNormalized(t *testing.T) {
	camera := NewCamera(testCameraConfig(), 64, 48)
	for _, p := range [][2]float64{{0, 0}, {10.25, 3.5}, {63, 47}} {
		d := camera.RayForPixel(p[0], p[1]).Direction
		if math.Abs(d.Length()-1) > 1e-12 {
			t.Errorf("Ray for %v not normalized: length %f", p, d.Length())
		}
	}
}
