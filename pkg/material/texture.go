package material

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials.
// Implementations must be pure: they are shared by every render goroutine.
type Texture interface {
	// Value returns the color at surface coordinates (u, v) and world point p.
	// UV is used for image textures, the point for procedural textures.
	Value(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3D sine lattice
type CheckerTexture struct {
	Even Texture
	Odd  Texture
}

// NewCheckerTexture creates a procedural checker pattern
func NewCheckerTexture(even, odd Texture) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd}
}

// Value selects Odd where sin(10x)·sin(10y)·sin(10z) is negative
func (c *CheckerTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	sines := math.Sin(10*p.X) * math.Sin(10*p.Y) * math.Sin(10*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}
