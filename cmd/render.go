package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// renderJob is a fully validated render request built from command flags
type renderJob struct {
	sceneName  string // built-in scene, used when sceneFile is empty
	sceneFile  string
	earthImage string
	background string // auto, on or off
	format     renderer.Format
	out        string // "-" writes to stdout
	config     renderer.Config
}

func newRenderJob(ctx *cli.Context) (*renderJob, error) {
	job := &renderJob{
		sceneName:  ctx.String("scene"),
		sceneFile:  ctx.Args().First(),
		earthImage: ctx.String("earth"),
		background: ctx.String("background"),
		out:        ctx.String("out"),
		config: renderer.Config{
			Width:           ctx.Int("width"),
			Height:          ctx.Int("height"),
			SamplesPerPixel: ctx.Int("spp"),
			TileSize:        ctx.Int("tile-size"),
			NumWorkers:      ctx.Int("workers"),
			Seed:            ctx.Int64("seed"),
		},
	}

	if ctx.NArg() > 1 {
		return nil, errors.New("expected at most one scene file argument")
	}
	if job.config.Width <= 0 || job.config.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", job.config.Width, job.config.Height)
	}
	if job.config.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("spp must be positive, got %d", job.config.SamplesPerPixel)
	}
	if job.config.TileSize <= 0 {
		return nil, fmt.Errorf("tile-size must be positive, got %d", job.config.TileSize)
	}
	if job.config.NumWorkers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", job.config.NumWorkers)
	}
	if _, err := backgroundOverride(job.background); err != nil {
		return nil, err
	}

	format, err := outputFormat(ctx.String("format"), job.out)
	if err != nil {
		return nil, err
	}
	job.format = format
	return job, nil
}

// outputFormat returns the requested format, or infers it from the output
// file extension when none was given
func outputFormat(name, out string) (renderer.Format, error) {
	if name != "" {
		return renderer.ParseFormat(name)
	}
	if strings.EqualFold(filepath.Ext(out), ".png") {
		return renderer.FormatPNG, nil
	}
	return renderer.FormatPPM, nil
}

// backgroundOverride parses the background flag. A nil result keeps the scene default.
func backgroundOverride(mode string) (*bool, error) {
	on, off := true, false
	switch mode {
	case "", "auto":
		return nil, nil
	case "on":
		return &on, nil
	case "off":
		return &off, nil
	}
	return nil, fmt.Errorf("invalid background %q (want auto, on or off)", mode)
}

func (job *renderJob) loadScene() (*scene.Scene, error) {
	opts := scene.Options{
		Sampler:    core.NewSeededSampler(job.config.Seed),
		EarthImage: job.earthImage,
		Logger:     logger,
	}

	var sc *scene.Scene
	var err error
	if job.sceneFile != "" {
		sc, err = scene.FromFile(job.sceneFile, opts)
	} else {
		sc, err = scene.Build(job.sceneName, opts)
	}
	if err != nil {
		return nil, err
	}

	override, err := backgroundOverride(job.background)
	if err != nil {
		return nil, err
	}
	if override != nil {
		sc.Background = *override
	}
	return sc, nil
}

// run renders the scene and writes the image
func (job *renderJob) run(ctx context.Context, stdout io.Writer) error {
	sc, err := job.loadScene()
	if err != nil {
		return err
	}

	logger.Noticef("rendering %q at %dx%d with %d spp", sc.Name, job.config.Width, job.config.Height, job.config.SamplesPerPixel)
	fb, stats, err := sc.Raytracer(job.config, logger).Render(ctx)
	if err != nil {
		return err
	}

	if err := job.write(fb, stdout); err != nil {
		return err
	}
	displayRenderStats(sc, stats)
	return nil
}

func (job *renderJob) write(fb *renderer.Framebuffer, stdout io.Writer) error {
	if job.out == "-" {
		return renderer.Write(stdout, fb, job.format)
	}

	if dir := filepath.Dir(job.out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(job.out)
	if err != nil {
		return err
	}
	if err := renderer.Write(f, fb, job.format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Noticef("wrote %s image to %s", job.format, job.out)
	return nil
}

// RenderScene renders a built-in scene or a scene file to an image.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	job, err := newRenderJob(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return job.run(runCtx, ctx.App.Writer)
}
