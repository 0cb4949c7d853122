package renderer

import (
	"context"
	"image"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera     *Camera
	world      geometry.Hitable
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer for the given camera, world and integrator
func NewTileRenderer(camera *Camera, world geometry.Hitable, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
	}
}

// RenderTileBounds takes samplesPerPixel samples for every pixel within bounds,
// accumulating into fb. The context is checked before each pixel; on
// cancellation the partial stats and ctx.Err() are returned.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, fb *Framebuffer, sampler core.Sampler, samplesPerPixel int) (RenderStats, error) {
	stats := RenderStats{SamplesPerPixel: samplesPerPixel, Tiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Screen t grows upwards while image rows grow downwards
		j := fb.Height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			tr.samplePixel(x, j, fb.At(x, y), fb.Width, fb.Height, sampler, samplesPerPixel)
			stats.TotalPixels++
			stats.TotalSamples += samplesPerPixel
		}
	}

	return stats, nil
}

// samplePixel averages jittered camera rays through pixel column i, screen row j
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, width, height int, sampler core.Sampler, samples int) {
	for n := 0; n < samples; n++ {
		s := (float64(i) + sampler.Get1D()) / float64(width)
		t := (float64(j) + sampler.Get1D()) / float64(height)
		ray := tr.camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}
}
