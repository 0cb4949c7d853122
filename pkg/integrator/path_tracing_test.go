package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// scriptedWorld reports a hit on every query, cycling through the given
// materials, and counts the queries. The normal always faces the ray.
type scriptedWorld struct {
	materials []material.Material
	calls     int
}

func (w *scriptedWorld) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	m := w.materials[min(w.calls, len(w.materials)-1)]
	w.calls++
	return &material.HitRecord{
		T:        1,
		Point:    ray.At(1),
		Normal:   ray.Direction.Normalize().Negate(),
		Material: m,
	}, true
}

func (w *scriptedWorld) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

func vecNear(a, b core.Vec3) bool {
	const tolerance = 1e-12
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance && math.Abs(a.Z-b.Z) < tolerance
}

func TestColorWorld_Background(t *testing.T) {
	empty := geometry.NewHitableList()
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name       string
		direction  core.Vec3
		background bool
		expected   core.Vec3
	}{
		{"zenith", core.NewVec3(0, 1, 0), true, core.NewVec3(0.5, 0.7, 1.0)},
		{"nadir", core.NewVec3(0, -1, 0), true, core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(3, 0, 0), true, core.NewVec3(0.75, 0.85, 1.0)},
		{"zenith without background", core.NewVec3(0, 1, 0), false, core.Vec3{}},
		{"horizon without background", core.NewVec3(1, 0, 0), false, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction, 0)
			got := ColorWorld(ray, empty, 0, tt.background, sampler)
			if !vecNear(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	zenith := ColorWorld(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0), 0), empty, 0, true, sampler)
	if !zenith.Equals(core.NewVec3(0.5, 0.7, 1.0)) {
		t.Errorf("Expected the exact zenith color, got %v", zenith)
	}
}

func TestColorWorld_DepthTermination(t *testing.T) {
	// A perfect mirror that is hit on every query would recurse forever
	world := &scriptedWorld{materials: []material.Material{material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)}}
	sampler := core.NewSeededSampler(1)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)

	got := ColorWorld(ray, world, MaxDepth, true, sampler)
	if world.calls != 1 {
		t.Errorf("Expected no recursion at MaxDepth, got %d queries", world.calls)
	}
	if !got.Equals(core.Vec3{}) {
		t.Errorf("Expected only the (black) emitted light, got %v", got)
	}

	world.calls = 0
	ColorWorld(ray, world, 0, true, sampler)
	if world.calls != MaxDepth+1 {
		t.Errorf("Expected %d queries from depth 0, got %d", MaxDepth+1, world.calls)
	}
}

func TestColorWorld_EmittedAtMaxDepth(t *testing.T) {
	// A light reached at the depth limit still contributes its emission
	light := material.NewDiffuseLight(core.NewVec3(4, 3, 2))
	world := &scriptedWorld{materials: []material.Material{light}}

	got := ColorWorld(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0), 0), world, MaxDepth, false, core.NewSeededSampler(1))
	if !got.Equals(core.NewVec3(4, 3, 2)) {
		t.Errorf("Expected emission (4,3,2), got %v", got)
	}
}

func TestColorWorld_Accumulation(t *testing.T) {
	// Mirror, then light: emitted(0) + albedo * emission
	world := &scriptedWorld{materials: []material.Material{
		material.NewMetal(core.NewVec3(0.5, 0.25, 1), 0),
		material.NewDiffuseLight(core.NewVec3(4, 4, 4)),
	}}

	got := ColorWorld(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0), world, 0, true, core.NewSeededSampler(1))
	if !got.Equals(core.NewVec3(2, 1, 4)) {
		t.Errorf("Expected (2,1,4), got %v", got)
	}
	if world.calls != 2 {
		t.Errorf("Expected 2 queries, got %d", world.calls)
	}
}

func TestColorWorld_AbsorbedRayReturnsEmitted(t *testing.T) {
	// A grazing hit on a fuzzy metal is sometimes absorbed, which must end the path
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewMetal(core.NewVec3(1, 1, 1), 1))
	world := geometry.NewHitableList(sphere)
	sampler := core.NewSeededSampler(5)

	for i := 0; i < 200; i++ {
		ray := core.NewRay(core.NewVec3(0.49, 0, 0), core.NewVec3(0, 0, -1), 0)
		c := ColorWorld(ray, world, 0, false, sampler)
		if !c.Equals(core.Vec3{}) {
			t.Fatalf("Expected black without background or lights, got %v", c)
		}
	}
}

func TestPathTracingIntegrator_LitScene(t *testing.T) {
	// A diffuse floor under an open sky returns a non-black, bounded color
	floor := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	world := geometry.NewHitableList(floor)
	integrator := NewPathTracingIntegrator(true)
	sampler := core.NewSeededSampler(42)

	var sum core.Vec3
	const samples = 500
	for i := 0; i < samples; i++ {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, -1), 0)
		sum = sum.Add(integrator.RayColor(ray, world, sampler))
	}
	avg := sum.Divide(samples)
	if avg.X <= 0 || avg.X >= 1 || avg.Z <= 0 || avg.Z >= 1 {
		t.Errorf("Expected a color strictly between black and the sky, got %v", avg)
	}

	// Same scene lit only by emitters is black
	dark := NewPathTracingIntegrator(false)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, -1), 0)
	if c := dark.RayColor(ray, world, sampler); !c.Equals(core.Vec3{}) {
		t.Errorf("Expected black without background, got %v", c)
	}
}
