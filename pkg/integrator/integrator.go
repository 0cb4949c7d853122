package integrator

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from world.
	// The sampler is owned by the calling goroutine.
	RayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler) core.Vec3
}
