package integrator

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
)

const (
	// MaxDepth bounds the number of scattering events followed per sample
	MaxDepth = 60

	// TMin is the lower bound of every intersection query; it keeps secondary
	// rays from hitting the surface they leave.
	TMin = 0.001
)

var (
	white   = core.NewVec3(1, 1, 1)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator follows one scattered ray per bounce until it is
// absorbed, escapes, or reaches MaxDepth.
type PathTracingIntegrator struct {
	// Background enables the sky gradient for escaping rays. Without it the
	// scene is lit only by emissive geometry.
	Background bool
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background bool) *PathTracingIntegrator {
	return &PathTracingIntegrator{Background: background}
}

// RayColor traces a camera ray from depth 0
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler) core.Vec3 {
	return ColorWorld(ray, world, 0, pt.Background, sampler)
}

// ColorWorld returns emitted + attenuation·ColorWorld(scattered) at the
// nearest hit. At MaxDepth the recursion stops and only the emitted light
// is returned.
func ColorWorld(ray core.Ray, world geometry.Hitable, depth int, background bool, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, TMin, math.MaxFloat64, sampler)
	if !isHit {
		if background {
			return BackgroundColor(ray)
		}
		return core.Vec3{}
	}

	emitted := hit.Material.Emitted(hit.U, hit.V, hit.Point)
	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter || depth >= MaxDepth {
		return emitted
	}

	incoming := ColorWorld(scatter.Scattered, world, depth+1, background, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// BackgroundColor blends white at the horizon into sky blue at the zenith
func BackgroundColor(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return white.Lerp(skyBlue, t)
}
