package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Hitable is anything a ray can intersect: primitives, decorators,
// aggregates and participating media.
//
// Implementations are immutable once built and are shared by every render
// goroutine. The sampler belongs to the calling goroutine; only volumetric
// geometry draws from it.
type Hitable interface {
	// Hit returns the nearest intersection with t in (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox returns a box containing the object for every instant in
	// [t0, t1], or false when the object has no finite extent.
	BoundingBox(t0, t1 float64) (core.AABB, bool)
}
