package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

var (
	// ErrEmptyList is returned when a BVH is requested over no objects
	ErrEmptyList = errors.New("bvh: empty object list")

	// ErrMissingBoundingBox is returned when an object cannot be bounded.
	// Every BVH leaf must report a box; this indicates a scene assembly bug.
	ErrMissingBoundingBox = errors.New("bvh: object has no bounding box")
)

// BVHNode is a binary node of a bounding volume hierarchy.
// Children are either further nodes or the objects themselves; a node built
// over a single object references it on both sides.
type BVHNode struct {
	Left  Hitable
	Right Hitable
	Box   core.AABB

	singleton bool
}

// NewBVHNode builds a hierarchy over objects valid for the shutter interval [t0, t1].
// Each level sorts its objects along a random axis by box minimum and splits
// at the middle. The input slice is not modified.
func NewBVHNode(objects []Hitable, t0, t1 float64, sampler core.Sampler) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyList
	}

	// Work on a copy; sorting reorders in place
	list := make([]Hitable, len(objects))
	copy(list, objects)

	return buildBVH(list, t0, t1, sampler)
}

func buildBVH(list []Hitable, t0, t1 float64, sampler core.Sampler) (*BVHNode, error) {
	node := &BVHNode{}

	switch len(list) {
	case 1:
		node.Left, node.Right = list[0], list[0]
		node.singleton = true
	case 2:
		node.Left, node.Right = list[0], list[1]
	default:
		if err := sortByAxis(list, randomAxis(sampler), t0, t1); err != nil {
			return nil, err
		}

		mid := len(list) / 2
		left, err := buildBVH(list[:mid], t0, t1, sampler)
		if err != nil {
			return nil, err
		}
		right, err := buildBVH(list[mid:], t0, t1, sampler)
		if err != nil {
			return nil, err
		}
		node.Left, node.Right = left, right
	}

	leftBox, ok := node.Left.BoundingBox(t0, t1)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrMissingBoundingBox, node.Left)
	}
	rightBox, ok := node.Right.BoundingBox(t0, t1)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrMissingBoundingBox, node.Right)
	}
	node.Box = core.SurroundingBox(leftBox, rightBox)

	return node, nil
}

func randomAxis(sampler core.Sampler) int {
	return min(int(3*sampler.Get1D()), 2)
}

// sortByAxis stably orders list by the minimum of each box along axis.
// Equal minima keep their input order.
func sortByAxis(list []Hitable, axis int, t0, t1 float64) error {
	type keyed struct {
		object Hitable
		key    float64
	}

	entries := make([]keyed, len(list))
	for i, object := range list {
		box, ok := object.BoundingBox(t0, t1)
		if !ok {
			return fmt.Errorf("%w: %T", ErrMissingBoundingBox, object)
		}
		entries[i] = keyed{object: object, key: box.Min.Axis(axis)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})
	for i, entry := range entries {
		list[i] = entry.object
	}
	return nil
}

// Hit prunes on the node's box, then queries both children and keeps the
// nearer hit. Equal distances resolve to the left child.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler)

	switch {
	case hitLeft && hitRight:
		if rightHit.T < leftHit.T {
			return rightHit, true
		}
		return leftHit, true
	case hitLeft:
		return leftHit, true
	case hitRight:
		return rightHit, true
	}
	return nil, false
}

// BoundingBox returns the box computed at construction
func (n *BVHNode) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats describes the shape of a hierarchy
type BVHStats struct {
	Nodes    int     // interior nodes
	Leaves   int     // object references, counting singletons once
	MaxDepth int     // deepest node, root at depth 1
	AvgDepth float64 // mean leaf depth
}

// Stats walks the hierarchy. Nested hierarchies, such as a cuboid's walls,
// count as leaves of this one.
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	var depthSum int
	n.collectStats(1, &stats, &depthSum)
	if stats.Leaves > 0 {
		stats.AvgDepth = float64(depthSum) / float64(stats.Leaves)
	}
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats, depthSum *int) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []Hitable{n.Left, n.Right}
	if n.singleton {
		children = children[:1]
	}
	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats, depthSum)
			continue
		}
		stats.Leaves++
		*depthSum += depth + 1
	}
}
