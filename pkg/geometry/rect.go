package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// rectThickness pads the flat axis of a rectangle's bounding box so the
// slab test never sees a zero-width slab.
const rectThickness = 1e-4

// axisRect is a rectangle lying in the plane axis[k] = K, spanning
// [U0,U1] on axis u and [V0,V1] on axis v. Its normal is +k.
type axisRect struct {
	U0, U1, V0, V1, K float64
	Material          material.Material
	u, v, k           int
}

// XYRect is a rectangle in the plane z = K with normal +Z
type XYRect struct{ axisRect }

// XZRect is a rectangle in the plane y = K with normal +Y
type XZRect struct{ axisRect }

// YZRect is a rectangle in the plane x = K with normal +X
type YZRect struct{ axisRect }

// NewXYRect creates a rectangle spanning [x0,x1]×[y0,y1] at z = k
func NewXYRect(x0, x1, y0, y1, k float64, material material.Material) *XYRect {
	return &XYRect{axisRect{U0: x0, U1: x1, V0: y0, V1: y1, K: k, Material: material, u: 0, v: 1, k: 2}}
}

// NewXZRect creates a rectangle spanning [x0,x1]×[z0,z1] at y = k
func NewXZRect(x0, x1, z0, z1, k float64, material material.Material) *XZRect {
	return &XZRect{axisRect{U0: x0, U1: x1, V0: z0, V1: z1, K: k, Material: material, u: 0, v: 2, k: 1}}
}

// NewYZRect creates a rectangle spanning [y0,y1]×[z0,z1] at x = k
func NewYZRect(y0, y1, z0, z1, k float64, material material.Material) *YZRect {
	return &YZRect{axisRect{U0: y0, U1: y1, V0: z0, V1: z1, K: k, Material: material, u: 1, v: 2, k: 0}}
}

// Hit intersects the rectangle's plane and checks the in-plane bounds
func (r *axisRect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	t := (r.K - ray.Origin.Axis(r.k)) / ray.Direction.Axis(r.k)
	// A ray lying in the plane gives 0/0
	if math.IsNaN(t) || t < tMin || t > tMax {
		return nil, false
	}

	a := ray.Origin.Axis(r.u) + t*ray.Direction.Axis(r.u)
	b := ray.Origin.Axis(r.v) + t*ray.Direction.Axis(r.v)
	if a < r.U0 || a > r.U1 || b < r.V0 || b > r.V1 {
		return nil, false
	}

	return &material.HitRecord{
		T:        t,
		U:        (a - r.U0) / (r.U1 - r.U0),
		V:        (b - r.V0) / (r.V1 - r.V0),
		Point:    ray.At(t),
		Normal:   core.Vec3{}.WithAxis(r.k, 1),
		Material: r.Material,
	}, true
}

// BoundingBox returns the rectangle padded along its normal axis
func (r *axisRect) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	min := core.Vec3{}.WithAxis(r.u, r.U0).WithAxis(r.v, r.V0).WithAxis(r.k, r.K-rectThickness)
	max := core.Vec3{}.WithAxis(r.u, r.U1).WithAxis(r.v, r.V1).WithAxis(r.k, r.K+rectThickness)
	return core.NewAABB(min, max), true
}
