package core

// Ray is a half-line with a time sample for motion blur.
// InvDirection and Sign are derived from Direction at construction and
// used by the AABB slab test; build rays with NewRay and do not mutate them.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	Sign         [3]int // 1 where InvDirection is negative on that axis
	Time         float64
}

// NewRay creates a new ray and caches its inverse direction and octant sign
func NewRay(origin, direction Vec3, time float64) Ray {
	inv := Vec3{1.0 / direction.X, 1.0 / direction.Y, 1.0 / direction.Z}
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: inv,
		Sign:         [3]int{signBit(inv.X), signBit(inv.Y), signBit(inv.Z)},
		Time:         time,
	}
}

func signBit(x float64) int {
	if x < 0 {
		return 1
	}
	return 0
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
