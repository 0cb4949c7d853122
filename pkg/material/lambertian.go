package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter sends the ray toward a random point in the unit sphere tangent to the hit point
func (l *Lambertian) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(sampler))
	return ScatterResult{
		Attenuation: l.Albedo.Value(hit.U, hit.V, hit.Point),
		Scattered:   core.NewRay(hit.Point, target.Subtract(hit.Point), rayIn.Time),
	}, true
}

func (l *Lambertian) Emitted(u, v float64, p core.Vec3) core.Vec3 { return black }

func (l *Lambertian) isMaterial() {}
