package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal.
// It has no bounding box, so it cannot be placed inside a BVH; keep it in a
// HitableList next to the hierarchy instead.
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Unit normal
	Material material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: material,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	point := ray.At(t)
	return &material.HitRecord{
		T:        t,
		U:        point.X - math.Floor(point.X),
		V:        point.Z - math.Floor(point.Z),
		Point:    point,
		Normal:   p.Normal,
		Material: p.Material,
	}, true
}

// BoundingBox reports that a plane has no finite extent
func (p *Plane) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}
