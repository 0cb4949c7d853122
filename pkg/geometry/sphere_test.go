package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestSphere_Hit_Exact(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 0)

	hit, isHit := sphere.Hit(ray, 0, math.Inf(1), nil)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.T != 4 {
		t.Errorf("Expected t=4, got t=%v", hit.T)
	}
	if !hit.Point.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected hit point (0,0,1), got %v", hit.Point)
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Material != testMaterial {
		t.Error("Expected the sphere's material on the hit record")
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"parallel offset", core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0), 0)},
		{"tangent", core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1), 0)},
		{"pointing away", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, isHit := sphere.Hit(tt.ray, 0.001, 1000.0, nil); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestSphere_Hit_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 0)

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0, nil)
	if !isHit {
		t.Fatal("Expected exit hit from inside the sphere")
	}
	if math.Abs(hit.T-1) > 1e-12 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	// Normals stay outward regardless of which side was hit
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected outward normal (0,0,1), got %v", hit.Normal)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1), 0)

	if hit, isHit := sphere.Hit(ray, 0.001, 0.5, nil); isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}
	if hit, isHit := sphere.Hit(ray, 3.5, 1000.0, nil); isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}
	// Between the roots the far one is reported
	hit, isHit := sphere.Hit(ray, 1.5, 1000.0, nil)
	if !isHit || math.Abs(hit.T-3) > 1e-12 {
		t.Errorf("Expected far root t=3, got %v (hit=%v)", hit, isHit)
	}
}

func TestSphere_UV(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, testMaterial)

	tests := []struct {
		name     string
		origin   core.Vec3
		dir      core.Vec3
		expected [2]float64
	}{
		{"north pole", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), [2]float64{0.5, 1}},
		{"south pole", core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), [2]float64{0.5, 0}},
		{"+x equator", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), [2]float64{0.5, 0.5}},
		{"+z equator", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), [2]float64{0.25, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.dir, 0), 0.001, 100, nil)
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.U-tt.expected[0]) > 1e-9 || math.Abs(hit.V-tt.expected[1]) > 1e-9 {
				t.Errorf("Expected uv %v, got (%f, %f)", tt.expected, hit.U, hit.V)
			}
		})
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, testMaterial)
	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected sphere to have a bounding box")
	}
	expected := core.NewAABB(core.NewVec3(0.5, 1.5, 2.5), core.NewVec3(1.5, 2.5, 3.5))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, testMaterial)

	if c := sphere.Center(0.5); !c.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected center (0,1,0) at t=0.5, got %v", c)
	}

	// A horizontal ray at y=2 only hits the sphere late in the shutter
	origin := core.NewVec3(-5, 2, 0)
	dir := core.NewVec3(1, 0, 0)
	if _, isHit := sphere.Hit(core.NewRay(origin, dir, 0), 0.001, 100, nil); isHit {
		t.Error("Expected miss at time 0")
	}
	hit, isHit := sphere.Hit(core.NewRay(origin, dir, 1), 0.001, 100, nil)
	if !isHit {
		t.Fatal("Expected hit at time 1")
	}
	if !vecNear(hit.Normal, core.NewVec3(-1, 0, 0), 1e-12) {
		t.Errorf("Expected normal (-1,0,0), got %v", hit.Normal)
	}

	box, _ := sphere.BoundingBox(0, 1)
	expected := core.NewAABB(core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(0.5, 2.5, 0.5))
	if box != expected {
		t.Errorf("Expected swept box %v, got %v", expected, box)
	}
}
