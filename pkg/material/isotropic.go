package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Isotropic is the phase function of a constant-density participating medium
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates a new isotropic phase function
func NewIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a direction uniformly from the unit sphere, ignoring the incoming direction and normal
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Attenuation: i.Albedo.Value(hit.U, hit.V, hit.Point),
		Scattered:   core.NewRay(hit.Point, core.RandomInUnitSphere(sampler), rayIn.Time),
	}, true
}

func (i *Isotropic) Emitted(u, v float64, p core.Vec3) core.Vec3 { return black }

func (i *Isotropic) isMaterial() {}
