package scene

import (
	"fmt"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/loaders"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// outdoorCamera looks at the origin from above the ground sphere
func outdoorCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1,
		Aperture:      0,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	}
}

// cornellCamera looks into the open side of the 555-unit box
func cornellCamera() renderer.CameraConfig {
	config := outdoorCamera()
	config.LookFrom = core.NewVec3(278, 278, -800)
	config.LookAt = core.NewVec3(278, 278, 0)
	return config
}

func finalCamera() renderer.CameraConfig {
	config := outdoorCamera()
	config.LookFrom = core.NewVec3(478, 278, -600)
	config.LookAt = core.NewVec3(278, 278, 0)
	return config
}

func checker() material.Texture {
	return material.NewCheckerTexture(
		material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)),
	)
}

// NewRandomScene creates the field of small random spheres around three large ones
func NewRandomScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	random := opts.Sampler.Get1D

	objects := []geometry.Hitable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker())),
	}

	for a := -10; a < 10; a++ {
		for b := -10; b < 10; b++ {
			chooseMaterial := random()
			center := core.NewVec3(float64(a)+0.9*random(), 0.2, float64(b)+0.9*random())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				center1 := center.Add(core.NewVec3(0, 0.5*random(), 0))
				albedo := core.NewVec3(random()*random(), random()*random(), random()*random())
				objects = append(objects, geometry.NewMovingSphere(center, center1, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				albedo := core.NewVec3(0.5*(1+random()), 0.5*(1+random()), 0.5*(1+random()))
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*random())))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	return newScene("random", "Random small spheres around glass, matte and metal spheres", outdoorCamera(), true, objects, opts)
}

// NewTwoSpheresScene creates two large checkered spheres
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	mat := material.NewTexturedLambertian(checker())
	objects := []geometry.Hitable{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, mat),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, mat),
	}
	return newScene("two-spheres", "Two checkered spheres touching at the origin", outdoorCamera(), true, objects, opts)
}

// NewTwoPerlinScene creates a marble sphere on a marble ground
func NewTwoPerlinScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	mat := material.NewTexturedLambertian(material.NewNoiseTexture(opts.Sampler, 5))
	objects := []geometry.Hitable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, mat),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, mat),
	}
	return newScene("two-perlin", "Perlin noise marble sphere on a marble ground", outdoorCamera(), true, objects, opts)
}

// NewEarthScene creates a single image-textured sphere
func NewEarthScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	texture, err := loaders.LoadImageTexture(opts.EarthImage)
	if err != nil {
		return nil, fmt.Errorf("earth texture: %w", err)
	}
	objects := []geometry.Hitable{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)),
	}
	return newScene("earth", "Image-textured globe", outdoorCamera(), true, objects, opts)
}

// NewSimpleLightScene lights marble spheres with an emissive sphere and rectangle
func NewSimpleLightScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	mat := material.NewTexturedLambertian(material.NewNoiseTexture(opts.Sampler, 4))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	objects := []geometry.Hitable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, mat),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, mat),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		geometry.NewXYRect(3, 5, 1, 3, -2, light),
	}
	return newScene("simple-light", "Marble spheres lit by a light sphere and a light panel", outdoorCamera(), false, objects, opts)
}

// cornellWalls returns the five walls of the box plus a ceiling light spanning
// [x0, x1] × [z0, z1] at y=554. Walls facing inward are flipped.
func cornellWalls(x0, x1, z0, z1 float64) ([]geometry.Hitable, material.Material) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	return []geometry.Hitable{
		geometry.NewFlipNormals(geometry.NewYZRect(0, 555, 0, 555, 555, green)),
		geometry.NewYZRect(0, 555, 0, 555, 0, red),
		geometry.NewXZRect(x0, x1, z0, z1, 554, light),
		geometry.NewFlipNormals(geometry.NewXZRect(0, 555, 0, 555, 555, white)),
		geometry.NewXZRect(0, 555, 0, 555, 0, white),
		geometry.NewFlipNormals(geometry.NewXYRect(0, 555, 0, 555, 555, white)),
	}, white
}

// cornellBoxes returns the short rotated cube and the tall rotated box
func cornellBoxes(white material.Material, sampler core.Sampler) (geometry.Hitable, geometry.Hitable) {
	short := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewCuboid(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white, sampler), -18),
		core.NewVec3(130, 0, 65),
	)
	tall := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewCuboid(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white, sampler), 15),
		core.NewVec3(265, 0, 295),
	)
	return short, tall
}

// NewCornellScene creates the empty Cornell box
func NewCornellScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	objects, _ := cornellWalls(213, 343, 227, 332)
	return newScene("cornell", "Empty Cornell box", cornellCamera(), false, objects, opts)
}

// NewCornellCuboidsScene creates the Cornell box with two rotated boxes
func NewCornellCuboidsScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	objects, white := cornellWalls(213, 343, 227, 332)
	short, tall := cornellBoxes(white, opts.Sampler)
	objects = append(objects, short, tall)
	return newScene("cornell-cuboids", "Cornell box with two rotated boxes", cornellCamera(), false, objects, opts)
}

// NewCornellSmokeScene replaces the Cornell boxes with white and black smoke
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	objects, white := cornellWalls(113, 443, 127, 432)
	short, tall := cornellBoxes(white, opts.Sampler)
	objects = append(objects,
		geometry.NewConstantMedium(short, 0.01, material.NewSolidColor(core.NewVec3(1, 1, 1))),
		geometry.NewConstantMedium(tall, 0.01, material.NewSolidColor(core.NewVec3(0, 0, 0))),
	)
	return newScene("cornell-smoke", "Cornell box with two blocks of smoke", cornellCamera(), false, objects, opts)
}

// NewFinalScene combines every primitive, material and texture
func NewFinalScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	random := opts.Sampler.Get1D

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	ground := material.NewLambertian(core.NewVec3(0.43, 0.83, 0.53))

	const boxesPerSide = 20
	boxes := make([]geometry.Hitable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0, z0 := -1000+float64(i)*w, -1000+float64(j)*w
			y1 := 100 * (random() + 0.01)
			boxes = append(boxes, geometry.NewCuboid(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground, opts.Sampler))
		}
	}
	groundBVH, err := geometry.NewBVHNode(boxes, 0, 1, opts.Sampler)
	if err != nil {
		return nil, fmt.Errorf("final ground: %w", err)
	}

	texture, err := loaders.LoadImageTexture(opts.EarthImage)
	if err != nil {
		return nil, fmt.Errorf("earth texture: %w", err)
	}

	center := core.NewVec3(400, 400, 200)
	fogBoundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	hazeBoundary := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))

	objects := []geometry.Hitable{
		groundBVH,
		geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))),
		geometry.NewMovingSphere(center, center.Add(core.NewVec3(30, 0, 0)), 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 10)),
		fogBoundary,
		geometry.NewConstantMedium(fogBoundary, 0.2, material.NewSolidColor(core.NewVec3(0.2, 0.4, 0.9))),
		geometry.NewConstantMedium(hazeBoundary, 0.0001, material.NewSolidColor(core.NewVec3(1, 1, 1))),
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(texture)),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(opts.Sampler, 0.1))),
	}

	const clusterSize = 1000
	cluster := make([]geometry.Hitable, 0, clusterSize)
	for i := 0; i < clusterSize; i++ {
		cluster = append(cluster, geometry.NewSphere(core.NewVec3(165*random(), 165*random(), 165*random()), 10, white))
	}
	clusterBVH, err := geometry.NewBVHNode(cluster, 0, 1, opts.Sampler)
	if err != nil {
		return nil, fmt.Errorf("final sphere cluster: %w", err)
	}
	objects = append(objects, geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	return newScene("final", "Every feature at once: boxes, fog, glass, metal, noise, texture and motion blur", finalCamera(), false, objects, opts)
}
