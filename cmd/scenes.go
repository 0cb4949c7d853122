package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// ListScenes prints the built-in scenes and the scene files found in --scenes-dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	response, err := scene.ListAllScenes(ctx.String("scenes-dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Group", "Description"})
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			id := info.ID
			if info.Type == "file" {
				id = info.FilePath
			}
			table.Append([]string{id, group.Name, info.Description})
		}
	}
	table.Render()
	return nil
}
