package renderer

import (
	"context"
	"time"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
)

// Config contains image and scheduling configuration for a render
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	TileSize        int   // Edge length of square tiles
	NumWorkers      int   // Parallel workers; 0 means runtime.NumCPU()
	Seed            int64 // Worker i samples with Seed+i
}

// DefaultConfig returns the settings of the classic 500×500, 200 spp render
func DefaultConfig() Config {
	return Config{
		Width:           500,
		Height:          500,
		SamplesPerPixel: 200,
		TileSize:        DefaultTileSize,
		NumWorkers:      0,
		Seed:            42,
	}
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Raytracer renders a world through a camera into a framebuffer
type Raytracer struct {
	camera     *Camera
	world      geometry.Hitable
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(camera *Camera, world geometry.Hitable, integratorInst integrator.Integrator, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render splits the image into tiles and renders them on a worker pool.
// Every pixel receives exactly SamplesPerPixel samples unless ctx is
// cancelled, in which case the partial framebuffer is discarded and
// ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)

	pool := NewWorkerPool(
		NewTileRenderer(rt.camera, rt.world, rt.integrator),
		rt.config.NumWorkers,
		rt.config.Seed,
		len(tiles),
	)
	pool.Start(ctx)

	rt.logger.Infof("rendering %dx%d at %d spp: %d tiles on %d workers",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	for _, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:            tile,
			SamplesPerPixel: rt.config.SamplesPerPixel,
			Framebuffer:     fb,
		})
	}

	stats := RenderStats{
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Workers:         pool.GetNumWorkers(),
	}
	var renderErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.TotalPixels += result.Stats.TotalPixels
		stats.TotalSamples += result.Stats.TotalSamples
		stats.Tiles++
		rt.logger.Debugf("tile %d done by worker %d (%d/%d)", result.TileID, result.WorkerID, stats.Tiles, len(tiles))
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if renderErr != nil {
		rt.logger.Warningf("render stopped after %d/%d tiles: %v", stats.Tiles, len(tiles), renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Noticef("rendered %d samples in %v (%.0f samples/s)",
		stats.TotalSamples, stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond())
	return fb, stats, nil
}
