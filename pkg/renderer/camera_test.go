package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// fixedSampler always returns the same value
type fixedSampler float64

func (f fixedSampler) Get1D() float64 { return float64(f) }
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(float64(f), float64(f), float64(f))
}

func near(a, b core.Vec3) bool {
	return a.Subtract(b).Length() < 1e-9
}

func unitCamera() *Camera {
	return NewCamera(CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   1,
		Aperture:      0,
		FocusDistance: 1,
		Time0:         0,
		Time1:         1,
	})
}

func TestCamera_PinholeRays(t *testing.T) {
	camera := unitCamera()

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-1, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(1, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-1, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, fixedSampler(0.5))
			if !near(ray.Direction, tt.expected) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
			if !ray.Origin.Equals(core.NewVec3(0, 0, 0)) {
				t.Errorf("Expected origin at look-from, got %v", ray.Origin)
			}
		})
	}
}

func TestCamera_ShutterTime(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0), LookAt: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		VFov: 40, AspectRatio: 2, FocusDistance: 10, Time0: 2, Time1: 4,
	})

	ray := camera.GetRay(0.5, 0.5, fixedSampler(0.25))
	if ray.Time != 2.5 {
		t.Errorf("Expected time 2.5, got %v", ray.Time)
	}

	sampler := core.NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if ray.Time < 2 || ray.Time >= 4 {
			t.Fatalf("Expected time in [2, 4), got %v", ray.Time)
		}
	}
}

func TestCamera_LensSampling(t *testing.T) {
	lookFrom := core.NewVec3(13, 2, 3)
	lookAt := core.NewVec3(0, 0, 0)
	focus := lookFrom.Subtract(lookAt).Length()
	camera := NewCamera(CameraConfig{
		LookFrom: lookFrom, LookAt: lookAt, Up: core.NewVec3(0, 1, 0),
		VFov: 20, AspectRatio: 1.5, Aperture: 0.5, FocusDistance: focus,
	})

	w := lookFrom.Subtract(lookAt).Normalize()
	sampler := core.NewSeededSampler(42)
	moved := false
	for i := 0; i < 500; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		offset := ray.Origin.Subtract(lookFrom)

		if offset.Length() >= 0.25+1e-12 {
			t.Fatalf("Expected lens offset within radius 0.25, got %v", offset.Length())
		}
		if math.Abs(offset.Dot(w)) > 1e-9 {
			t.Fatalf("Expected lens offset in the lens plane, got %v", offset)
		}
		if offset.Length() > 0 {
			moved = true
		}

		// Every lens sample through the screen center converges on the focus point
		tFocus := (focus - offset.Dot(w.Negate())) / ray.Direction.Normalize().Dot(w.Negate())
		hit := ray.Origin.Add(ray.Direction.Normalize().Multiply(tFocus))
		if hit.Subtract(lookAt).Length() > 1e-6 {
			t.Fatalf("Expected center ray to pass through focus point, got %v", hit)
		}
	}
	if !moved {
		t.Error("Expected some rays to start off-center with a non-zero aperture")
	}
}
