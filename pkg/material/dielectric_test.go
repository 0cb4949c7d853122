package material

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestDielectric_AttenuationIsAlwaysWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)
	white := core.NewVec3(1, 1, 1)
	normal := core.NewVec3(0, 1, 0)

	directions := []core.Vec3{
		core.NewVec3(1, -1, 0),    // entering at 45°
		core.NewVec3(0, -1, 0),    // entering head-on
		core.NewVec3(1, 0.2, 0),   // exiting at grazing angle (total internal reflection)
		core.NewVec3(0.1, 1, 0),   // exiting near the normal
		core.NewVec3(5, -0.01, 3), // entering at grazing angle
	}

	reflections, refractions := 0, 0
	for _, d := range directions {
		ray := core.NewRay(core.NewVec3(0, 0, 0).Subtract(d), d, 0)
		hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}

		for i := 0; i < 200; i++ {
			result, scattered := glass.Scatter(ray, hit, sampler)
			if !scattered {
				t.Fatal("Dielectric should always scatter")
			}
			if !result.Attenuation.Equals(white) {
				t.Fatalf("Expected attenuation %v, got %v", white, result.Attenuation)
			}
			if result.Scattered.Direction.Dot(normal)*d.Dot(normal) < 0 {
				reflections++
			} else {
				refractions++
			}
		}
	}

	if reflections == 0 || refractions == 0 {
		t.Errorf("Expected both branches, got %d reflections and %d refractions", reflections, refractions)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Exiting the glass at a grazing angle: sin(theta)·1.5 > 1
	d := core.NewVec3(1, 0.2, 0)
	ray := core.NewRay(core.NewVec3(-1, -0.2, 0), d, 0)
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	// A sample of 0.999 would choose refraction if refraction were possible
	result, _ := glass.Scatter(ray, hit, fixedSampler(0.999))
	expected := reflect(d, hit.Normal)
	if !result.Scattered.Direction.Equals(expected) {
		t.Errorf("Expected reflection %v, got %v", expected, result.Scattered.Direction)
	}
}

func TestDielectric_SnellRefraction(t *testing.T) {
	glass := NewDielectric(1.5)

	// Enter at 45°; sample 0.999 is above the Schlick probability so the ray refracts
	d := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), d, 0)
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	result, _ := glass.Scatter(ray, hit, fixedSampler(0.999))
	out := result.Scattered.Direction.Normalize()

	sinIn := math.Sqrt(0.5)
	sinOut := math.Abs(out.X)
	if math.Abs(sinIn/sinOut-1.5) > 1e-9 {
		t.Errorf("Snell's law violated: sinIn/sinOut = %f", sinIn/sinOut)
	}
	if out.Y >= 0 {
		t.Errorf("Refracted ray should continue into the medium, got %v", out)
	}
}

func TestSchlick(t *testing.T) {
	r0 := math.Pow((1-1.5)/(1+1.5), 2)
	if got := Schlick(1.0, 1.5); math.Abs(got-r0) > 1e-12 {
		t.Errorf("Expected R0=%f at normal incidence, got %f", r0, got)
	}
	if got := Schlick(0.0, 1.5); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Expected full reflectance at grazing incidence, got %f", got)
	}
}
