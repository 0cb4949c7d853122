package scene

import (
	"fmt"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// DefaultEarthImage is the texture file used by the earth spheres
const DefaultEarthImage = "earth.png"

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Camera      renderer.CameraConfig // AspectRatio is set per render by CameraFor
	World       geometry.Hitable      // BVH over the top-level objects, listed with any planes
	Background  bool                  // Sky gradient for escaping rays; black otherwise
	Objects     int                   // Number of top-level objects
	BVH         geometry.BVHStats
}

// Options controls scene construction
type Options struct {
	Sampler    core.Sampler // Randomness for scene layout, noise textures and BVH axes
	EarthImage string       // Image file for textured earth spheres
	Logger     core.Logger
}

// DefaultOptions returns options with a sampler seeded from seed
func DefaultOptions(seed int64) Options {
	return Options{
		Sampler:    core.NewSeededSampler(seed),
		EarthImage: DefaultEarthImage,
		Logger:     core.NopLogger{},
	}
}

func (o Options) withDefaults() Options {
	if o.Sampler == nil {
		o.Sampler = core.NewSeededSampler(42)
	}
	if o.EarthImage == "" {
		o.EarthImage = DefaultEarthImage
	}
	if o.Logger == nil {
		o.Logger = core.NopLogger{}
	}
	return o
}

// newScene builds the BVH over objects for the camera's shutter interval.
// Unbounded objects such as planes stay outside the hierarchy and are
// tested alongside it.
func newScene(name, description string, camera renderer.CameraConfig, background bool, objects []geometry.Hitable, opts Options) (*Scene, error) {
	var bounded, unbounded []geometry.Hitable
	for _, object := range objects {
		if _, ok := object.BoundingBox(0, 1); ok {
			bounded = append(bounded, object)
		} else {
			unbounded = append(unbounded, object)
		}
	}

	var world geometry.Hitable
	var stats geometry.BVHStats
	if len(bounded) > 0 || len(unbounded) == 0 {
		root, err := geometry.NewBVHNode(bounded, camera.Time0, camera.Time1, opts.Sampler)
		if err != nil {
			return nil, fmt.Errorf("building scene %q: %w", name, err)
		}
		world = root
		stats = root.Stats()
	}
	if len(unbounded) > 0 {
		list := geometry.NewHitableList(unbounded...)
		if world != nil {
			list.Add(world)
		}
		world = list
	}

	opts.Logger.Debugf("scene %s: %d objects (%d unbounded), %d BVH nodes, %d leaves, max depth %d",
		name, len(objects), len(unbounded), stats.Nodes, stats.Leaves, stats.MaxDepth)

	return &Scene{
		Name:        name,
		Description: description,
		Camera:      camera,
		World:       world,
		Background:  background,
		Objects:     len(objects),
		BVH:         stats,
	}, nil
}

// CameraFor returns the scene camera with the aspect ratio of a width×height image
func (s *Scene) CameraFor(width, height int) renderer.CameraConfig {
	config := s.Camera
	config.AspectRatio = float64(width) / float64(height)
	return config
}

// Raytracer wires the scene into a path-tracing renderer
func (s *Scene) Raytracer(config renderer.Config, logger core.Logger) *renderer.Raytracer {
	camera := renderer.NewCamera(s.CameraFor(config.Width, config.Height))
	return renderer.NewRaytracer(camera, s.World, integrator.NewPathTracingIntegrator(s.Background), config, logger)
}
