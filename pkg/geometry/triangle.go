package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices.
// Its normal follows the counter-clockwise winding of V0, V1, V2.
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached normal vector
	box        core.AABB         // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material material.Material) *Triangle {
	normal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return newTriangle(v0, v1, v2, normal, material)
}

// NewTriangleWithNormal creates a new triangle with a caller supplied normal
func NewTriangleWithNormal(v0, v1, v2, normal core.Vec3, material material.Material) *Triangle {
	return newTriangle(v0, v1, v2, normal.Normalize(), material)
}

func newTriangle(v0, v1, v2, normal core.Vec3, material material.Material) *Triangle {
	box := core.NewAABBFromPoints(v0, v1, v2)
	// Pad flat axes the same way rectangles do
	for axis := 0; axis < 3; axis++ {
		if box.Max.Axis(axis)-box.Min.Axis(axis) < rectThickness {
			box.Min = box.Min.WithAxis(axis, box.Min.Axis(axis)-rectThickness)
			box.Max = box.Max.WithAxis(axis, box.Max.Axis(axis)+rectThickness)
		}
	}

	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   normal,
		box:      box,
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// U and V of the hit record are the barycentric weights of V1 and V2.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return nil, false
	}

	return &material.HitRecord{
		T:        tHit,
		U:        u,
		V:        v,
		Point:    ray.At(tHit),
		Normal:   t.normal,
		Material: t.Material,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return t.box, true
}

// Normal returns the triangle's normal vector
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
