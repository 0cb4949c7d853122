package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Translate moves its child by Offset
type Translate struct {
	Object Hitable
	Offset core.Vec3
}

// NewTranslate wraps object so that it appears shifted by offset
func NewTranslate(object Hitable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space and the hit point back out
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	moved := core.NewRay(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	hit, ok := t.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	out := *hit
	out.Point = hit.Point.Add(t.Offset)
	return &out, true
}

// BoundingBox shifts the child's box
func (t *Translate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	return core.NewAABB(box.Min.Add(t.Offset), box.Max.Add(t.Offset)), true
}

// RotateY rotates its child about the Y axis
type RotateY struct {
	Object   Hitable
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object rotated by angle degrees about +Y.
// The bounding box is computed once over [0,1] from the eight rotated
// corners of the child's box.
func NewRotateY(object Hitable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	childBox, ok := object.BoundingBox(0, 1)
	if !ok {
		return r
	}

	corners := childBox.Corners()
	rotated := make([]core.Vec3, 0, len(corners))
	for _, c := range corners {
		rotated = append(rotated, r.toWorld(c))
	}
	r.box = core.NewAABBFromPoints(rotated...)
	r.hasBox = true
	return r
}

// toObject rotates by -angle
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates by +angle
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space and the hit point and normal back out
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRay(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	hit, ok := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	out := *hit
	out.Point = r.toWorld(hit.Point)
	out.Normal = r.toWorld(hit.Normal)
	return &out, true
}

// BoundingBox returns the box precomputed at construction
func (r *RotateY) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}

// FlipNormals reverses the normal reported by its child
type FlipNormals struct {
	Object Hitable
}

// NewFlipNormals wraps object with its normals reversed
func NewFlipNormals(object Hitable) *FlipNormals {
	return &FlipNormals{Object: object}
}

// Hit forwards to the child and negates the normal
func (f *FlipNormals) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	out := *hit
	out.Normal = hit.Normal.Negate()
	return &out, true
}

// BoundingBox is the child's box
func (f *FlipNormals) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return f.Object.BoundingBox(t0, t1)
}
