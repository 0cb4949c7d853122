package renderer

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples requested per pixel
	Tiles           int           // Number of tiles rendered
	Workers         int           // Number of workers used
	Duration        time.Duration // Wall time of the render
}

// SamplesPerSecond returns the sample throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}

// Framebuffer holds per-pixel accumulators in image order: row 0 is the top row.
// Tiles write disjoint regions, so no locking is needed while rendering.
type Framebuffer struct {
	Width, Height int
	Pixels        [][]PixelStats
}

// NewFramebuffer allocates an empty framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	pixels := make([][]PixelStats, height)
	for y := range pixels {
		pixels[y] = make([]PixelStats, width)
	}
	return &Framebuffer{Width: width, Height: height, Pixels: pixels}
}

// At returns the accumulator for the pixel at column x, row y
func (fb *Framebuffer) At(x, y int) *PixelStats {
	return &fb.Pixels[y][x]
}

// ToByte maps a linear channel value to 8 bits: gamma 2 (square root),
// scaled by 255.99, capped at 255. Negative and NaN values map to 0.
func ToByte(value float64) uint8 {
	if !(value > 0) {
		return 0
	}
	return uint8(math.Min(255, 255.99*math.Sqrt(value)))
}

// ToRGBA converts an averaged linear color to an opaque 8-bit color
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{R: ToByte(c.X), G: ToByte(c.Y), B: ToByte(c.Z), A: 255}
}

// Image converts the accumulated samples to an RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, ToRGBA(fb.Pixels[y][x].GetColor()))
		}
	}
	return img
}

// CalculateAverageLuminance returns the mean luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
