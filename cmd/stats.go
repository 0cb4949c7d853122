package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

func renderStatsTable(sc *scene.Scene, stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Objects", "BVH nodes", "BVH depth", "Tiles", "Workers", "Samples", "Samples/sec"})
	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%d", sc.Objects),
		fmt.Sprintf("%d", sc.BVH.Nodes),
		fmt.Sprintf("%d (avg %.1f)", sc.BVH.MaxDepth, sc.BVH.AvgDepth),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "TOTAL", stats.Duration.String()})

	table.Render()
	return buf.String()
}

func displayRenderStats(sc *scene.Scene, stats renderer.RenderStats) {
	logger.Noticef("render statistics\n%s", renderStatsTable(sc, stats))
}
