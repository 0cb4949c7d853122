package geometry

import (
	"fmt"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// TriangleMesh is an indexed triangle list with its own hierarchy
type TriangleMesh struct {
	triangles []Hitable
	bvh       *BVHNode
}

// NewTriangleMesh creates a mesh from vertices and face indices.
// Every three indices in faces form one triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, sampler core.Sampler) (*TriangleMesh, error) {
	if len(faces) == 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("mesh: face index count %d is not a positive multiple of 3", len(faces))
	}

	triangles := make([]Hitable, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("mesh: face %d references vertex %d of %d", i/3, idx, len(vertices))
			}
		}
		triangles = append(triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat))
	}

	bvh, err := NewBVHNode(triangles, 0, 1, sampler)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}

	return &TriangleMesh{triangles: triangles, bvh: bvh}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return m.bvh.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (m *TriangleMesh) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return m.bvh.Box, true
}

// TriangleCount returns the number of triangles in this mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}
