package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Material describes how light scatters at a surface or inside a medium.
// The set of materials is closed: Lambertian, Metal, Dielectric,
// DiffuseLight and Isotropic.
type Material interface {
	// Scatter returns the attenuation and outgoing ray for an incoming ray,
	// or false when the ray is absorbed.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns the light emitted at the surface point
	Emitted(u, v float64, p core.Vec3) core.Vec3

	isMaterial()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Attenuation core.Vec3 // Color attenuation
	Scattered   core.Ray  // The scattered ray
}

// HitRecord contains information about a ray-object intersection.
// Records are built fresh for every query; transforms derive a new record
// from their child's instead of mutating it.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	U, V     float64   // Surface parametrization
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit normal, outward from the primitive's solid
	Material Material  // Material of the hit object
}

// black is the emission of every non-emissive material
var black = core.Vec3{}
