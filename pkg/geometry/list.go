package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// HitableList tests every object in turn and keeps the nearest hit.
// It is the brute-force counterpart of BVHNode.
type HitableList struct {
	Objects []Hitable
}

// NewHitableList creates a list over the given objects
func NewHitableList(objects ...Hitable) *HitableList {
	return &HitableList{Objects: objects}
}

// Add appends an object to the list
func (l *HitableList) Add(object Hitable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HitableList) Len() int {
	return len(l.Objects)
}

// Hit returns the nearest hit over all objects, shrinking tMax as hits are found
func (l *HitableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax
	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}
	return closest, closest != nil
}

// BoundingBox is the union of every child's box. An empty list, or a list
// with any unbounded child, has no box.
func (l *HitableList) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	box, ok := l.Objects[0].BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	for _, object := range l.Objects[1:] {
		childBox, ok := object.BoundingBox(t0, t1)
		if !ok {
			return core.AABB{}, false
		}
		box = core.SurroundingBox(box, childBox)
	}
	return box, true
}
