package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-raytracer/cmd"
	"github.com/df07/go-bvh-raytracer/internal/log"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
	"github.com/df07/go-bvh-raytracer/web/server"
)

func renderFlags() []cli.Flag {
	defaults := renderer.DefaultConfig()
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "final",
			Usage: "built-in scene to render when no scene file is given",
		},
		cli.IntFlag{
			Name:  "width",
			Value: defaults.Width,
			Usage: "image width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: defaults.Height,
			Usage: "image height",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: defaults.SamplesPerPixel,
			Usage: "samples per pixel",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: defaults.NumWorkers,
			Usage: "number of render workers (0 uses every CPU)",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: defaults.TileSize,
			Usage: "edge length of the square tiles handed to workers",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: defaults.Seed,
			Usage: "seed for scene layout and worker samplers",
		},
		cli.StringFlag{
			Name:  "format, f",
			Usage: "output format, ppm or png (default: from the --out extension, else ppm)",
		},
		cli.StringFlag{
			Name:  "out, o",
			Value: "-",
			Usage: "image file to write, - for stdout",
		},
		cli.StringFlag{
			Name:  "background",
			Value: "auto",
			Usage: "sky for rays that escape the scene: auto, on or off",
		},
		cli.StringFlag{
			Name:  "earth",
			Value: scene.DefaultEarthImage,
			Usage: "texture image for the earth scenes",
		},
	}
}

func newApp() *cli.App {
	webDefaults := server.DefaultConfig()

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes with a Monte-Carlo path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PPM or PNG image",
			Description: `
Render a built-in scene (see the scenes command) or a YAML scene file.
The image is written as plain PPM to stdout unless --out names a file.`,
			ArgsUsage: "[scene_file.yaml]",
			Flags:     renderFlags(),
			Action:    cmd.RenderScene,
		},
		{
			Name:      "watch",
			Usage:     "re-render a scene file whenever it changes",
			ArgsUsage: "scene_file.yaml",
			Flags:     renderFlags(),
			Action:    cmd.WatchScene,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: webDefaults.ScenesDir,
					Usage: "directory of YAML scene files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the render API over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: webDefaults.Port,
					Usage: "port to listen on",
				},
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: webDefaults.ScenesDir,
					Usage: "directory of YAML scene files",
				},
				cli.StringFlag{
					Name:  "earth",
					Value: webDefaults.EarthImage,
					Usage: "texture image for the earth scenes",
				},
				cli.IntFlag{
					Name:  "max-renders",
					Value: webDefaults.MaxConcurrentRenders,
					Usage: "renders allowed to run at once",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("raytracer").Error(err)
		os.Exit(1)
	}
}
