package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

func TestHitableList_Nearest(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(1, 0, 0)))
	far := NewSphere(core.NewVec3(0, 0, -5), 1, material.NewLambertian(core.NewVec3(0, 1, 0)))

	// Order should not matter
	for _, list := range []*HitableList{NewHitableList(near, far), NewHitableList(far, near)} {
		hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 0), 0.001, math.Inf(1), nil)
		if !isHit {
			t.Fatal("Expected hit")
		}
		if hit.Material != near.Material || hit.T != 4 {
			t.Errorf("Expected the near sphere at t=4, got t=%f", hit.T)
		}
	}
}

func TestHitableList_Empty(t *testing.T) {
	list := NewHitableList()
	if _, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1), nil); isHit {
		t.Error("Expected empty list to miss")
	}
	if _, ok := list.BoundingBox(0, 1); ok {
		t.Error("Expected empty list to have no box")
	}
}

func TestHitableList_BoundingBox(t *testing.T) {
	list := NewHitableList(
		NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial),
		NewSphere(core.NewVec3(5, 0, 0), 2, testMaterial),
	)
	box, ok := list.BoundingBox(0, 1)
	expected := core.NewAABB(core.NewVec3(-1, -2, -2), core.NewVec3(7, 2, 2))
	if !ok || box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	list.Add(NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial))
	if _, ok := list.BoundingBox(0, 1); ok {
		t.Error("Expected list with an unbounded member to have no box")
	}
	if list.Len() != 3 {
		t.Errorf("Expected 3 objects, got %d", list.Len())
	}
}
