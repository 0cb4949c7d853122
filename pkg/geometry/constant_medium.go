package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// boundaryExitOffset skips the entry surface when looking for the exit
const boundaryExitOffset = 1e-4

// ConstantMedium is a volume of uniform density inside a closed boundary,
// such as smoke or fog. Rays scatter at a random depth inside it.
type ConstantMedium struct {
	Boundary      Hitable
	Density       float64
	PhaseFunction material.Material
}

// NewConstantMedium fills boundary with a medium of the given density and albedo
func NewConstantMedium(boundary Hitable, density float64, albedo material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewIsotropic(albedo),
	}
}

// Hit finds where the ray enters and leaves the boundary, then samples a free
// path length -ln(U)/density. If the path ends inside the clipped segment the
// ray scatters there. The returned normal is a placeholder.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, -math.MaxFloat64, math.MaxFloat64, sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+boundaryExitOffset, math.MaxFloat64, sampler)
	if !ok {
		return nil, false
	}

	t1 := max(entry.T, tMin)
	t2 := min(exit.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	t1 = max(t1, 0)

	rayLength := ray.Direction.Length()
	distanceInside := (t2 - t1) * rayLength
	// 1-U keeps the argument in (0, 1]
	hitDistance := -(1 / m.Density) * math.Log(1-sampler.Get1D())
	if hitDistance >= distanceInside {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   core.NewVec3(1, 0, 0),
		Material: m.PhaseFunction,
	}, true
}

// BoundingBox is the boundary's box
func (m *ConstantMedium) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(t0, t1)
}
