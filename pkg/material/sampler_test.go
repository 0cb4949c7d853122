package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// countingSampler wraps a sampler and counts how many values were drawn
type countingSampler struct {
	inner core.Sampler
	draws int
}

func newCountingSampler(seed int64) *countingSampler {
	return &countingSampler{inner: core.NewSeededSampler(seed)}
}

func (c *countingSampler) Get1D() float64 {
	c.draws++
	return c.inner.Get1D()
}

func (c *countingSampler) Get3D() core.Vec3 {
	c.draws += 3
	return c.inner.Get3D()
}

// fixedSampler always returns the same value
type fixedSampler float64

func (f fixedSampler) Get1D() float64 { return float64(f) }

func (f fixedSampler) Get3D() core.Vec3 { return core.NewVec3(float64(f), float64(f), float64(f)) }
