package core

import "fmt"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return AABB{Min: min, Max: max}
}

// Bound returns Min for index 0 and Max for index 1
func (aabb AABB) Bound(i int) Vec3 {
	switch i {
	case 0:
		return aabb.Min
	case 1:
		return aabb.Max
	}
	panic(fmt.Sprintf("aabb bound index out of range: %d", i))
}

// Hit tests if a ray intersects this AABB within (tMin, tMax).
//
// The ray's cached sign selects the near and far plane on each axis, so no
// per-axis swap is needed. Zero direction components produce infinite
// slab distances; a NaN distance fails every comparison and the box misses.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	t0 := (aabb.Bound(ray.Sign[0]).X - ray.Origin.X) * ray.InvDirection.X
	t1 := (aabb.Bound(1-ray.Sign[0]).X - ray.Origin.X) * ray.InvDirection.X

	ty0 := (aabb.Bound(ray.Sign[1]).Y - ray.Origin.Y) * ray.InvDirection.Y
	ty1 := (aabb.Bound(1-ray.Sign[1]).Y - ray.Origin.Y) * ray.InvDirection.Y
	if t0 > ty1 || ty0 > t1 {
		return false
	}
	if ty0 > t0 {
		t0 = ty0
	}
	if ty1 < t1 {
		t1 = ty1
	}

	tz0 := (aabb.Bound(ray.Sign[2]).Z - ray.Origin.Z) * ray.InvDirection.Z
	tz1 := (aabb.Bound(1-ray.Sign[2]).Z - ray.Origin.Z) * ray.InvDirection.Z
	if t0 > tz1 || tz0 > t1 {
		return false
	}
	if tz0 > t0 {
		t0 = tz0
	}
	if tz1 < t1 {
		t1 = tz1
	}

	return t0 < tMax && t1 > tMin
}

// HitReference is the straightforward slab test that swaps the near and far
// distances per axis. It is slower than Hit and kept for cross-checking it.
func (aabb AABB) HitReference(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		t0 := (aabb.Min.Axis(axis) - ray.Origin.Axis(axis)) * invD
		t1 := (aabb.Max.Axis(axis) - ray.Origin.Axis(axis)) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}
	return true
}

// SurroundingBox returns the smallest AABB containing both boxes
func SurroundingBox(a, b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return SurroundingBox(aabb, other)
}

// Contains reports whether the point lies inside or on the box
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Corners returns the eight corners of the box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	n := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corners[n] = Vec3{
					X: aabb.Bound(i).X,
					Y: aabb.Bound(j).Y,
					Z: aabb.Bound(k).Z,
				}
				n++
			}
		}
	}
	return corners
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

