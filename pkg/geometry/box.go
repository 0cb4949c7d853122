package geometry

import (
	"fmt"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Cuboid is an axis-aligned box made of six rectangles. Faces on the min
// sides are flipped so every normal points out of the box.
type Cuboid struct {
	Min, Max core.Vec3
	walls    *BVHNode
}

// NewCuboid creates a box spanning pMin to pMax with one material on every face.
// The walls are organised into their own small hierarchy.
func NewCuboid(pMin, pMax core.Vec3, mat material.Material, sampler core.Sampler) *Cuboid {
	walls := []Hitable{
		NewXYRect(pMin.X, pMax.X, pMin.Y, pMax.Y, pMax.Z, mat),
		NewFlipNormals(NewXYRect(pMin.X, pMax.X, pMin.Y, pMax.Y, pMin.Z, mat)),
		NewXZRect(pMin.X, pMax.X, pMin.Z, pMax.Z, pMax.Y, mat),
		NewFlipNormals(NewXZRect(pMin.X, pMax.X, pMin.Z, pMax.Z, pMin.Y, mat)),
		NewYZRect(pMin.Y, pMax.Y, pMin.Z, pMax.Z, pMax.X, mat),
		NewFlipNormals(NewYZRect(pMin.Y, pMax.Y, pMin.Z, pMax.Z, pMin.X, mat)),
	}

	node, err := NewBVHNode(walls, 0, 1, sampler)
	if err != nil {
		// Rectangles always have boxes
		panic(fmt.Sprintf("cuboid walls: %v", err))
	}

	return &Cuboid{Min: pMin, Max: pMax, walls: node}
}

// Hit tests the walls
func (c *Cuboid) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return c.walls.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox is exactly the two corners
func (c *Cuboid) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.NewAABB(c.Min, c.Max), true
}
