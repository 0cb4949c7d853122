package material

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

const perlinPointCount = 256

// Perlin is a gradient-noise generator with random unit gradients and
// independent permutation tables per axis
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds the gradient and permutation tables from the sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = sampler.Get3D().Multiply(2).Subtract(core.NewVec3(1, 1, 1)).Normalize()
	}
	generatePerm(&p.permX, sampler)
	generatePerm(&p.permY, sampler)
	generatePerm(&p.permZ, sampler)
	return p
}

func generatePerm(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		target := int(sampler.Get1D() * float64(i+1))
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns the absolute smoothed gradient noise at p, in [0, 1]
func (pn *Perlin) Noise(p core.Vec3) float64 {
	fx, fy, fz := math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z)
	u, v, w := p.X-fx, p.Y-fy, p.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = pn.gradients[pn.permX[(i+di)&255]^pn.permY[(j+dj)&255]^pn.permZ[(k+dk)&255]]
			}
		}
	}
	return math.Abs(perlinInterpolate(&c, u, v, w))
}

// Turbulence sums depth octaves of noise with halving weight and doubling frequency
func (pn *Perlin) Turbulence(p core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * pn.Noise(p)
		weight *= 0.5
		p = p.Multiply(2)
	}
	return math.Abs(accum)
}

func perlinInterpolate(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	// Hermite smoothing
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture with its own noise tables
func NewNoiseTexture(sampler core.Sampler, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: NewPerlin(sampler), Scale: scale}
}

// Value returns a gray level of 0.5·(1 + sin(scale·z + 5·turbulence(scale·p)))
func (n *NoiseTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	gray := 0.5 * (1 + math.Sin(n.Scale*p.Z+5*n.Noise.Turbulence(p.Multiply(n.Scale), 7)))
	return core.NewVec3(gray, gray, gray)
}
