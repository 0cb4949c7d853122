package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the nearest texel. V=0 is the bottom row of the image.
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	x := int(u * float64(t.Width))
	y := int((1.0-v)*float64(t.Height) - 0.001)

	// Clamp to image bounds
	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))

	return t.Pixels[y*t.Width+x]
}
