package material

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter always scatters with white attenuation. Total internal reflection
// reflects; otherwise reflection is chosen with the Schlick probability.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	attenuation := core.NewVec3(1.0, 1.0, 1.0)
	direction := rayIn.Direction
	reflected := reflect(direction, hit.Normal)

	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	dirDotNormal := direction.Dot(hit.Normal)
	if dirDotNormal > 0 {
		// Leaving the medium.
		// NOTE: the refractive index scales this cosine, unlike the entering branch.
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dirDotNormal / direction.Length()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dirDotNormal / direction.Length()
	}

	refracted, canRefract := refract(direction, outwardNormal, niOverNt)
	if canRefract && sampler.Get1D() >= Schlick(cosine, d.RefractiveIndex) {
		return ScatterResult{
			Attenuation: attenuation,
			Scattered:   core.NewRay(hit.Point, refracted, rayIn.Time),
		}, true
	}

	return ScatterResult{
		Attenuation: attenuation,
		Scattered:   core.NewRay(hit.Point, reflected, rayIn.Time),
	}, true
}

func (d *Dielectric) Emitted(u, v float64, p core.Vec3) core.Vec3 { return black }

func (d *Dielectric) isMaterial() {}

// refract bends v through a surface with normal n using Snell's law.
// It returns false on total internal reflection.
func refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Schlick approximates the Fresnel reflectance for the given cosine and refractive index
func Schlick(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
