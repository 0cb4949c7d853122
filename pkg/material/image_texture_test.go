package material

import (
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// TestImageTextureValue tests basic texture sampling
func TestImageTextureValue(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	pixels := []core.Vec3{
		white, black, // Row 0 (top in image coords)
		black, white, // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"bottom-left", 0.1, 0.1, black},
		{"bottom-right", 0.9, 0.1, white},
		{"top-left", 0.1, 0.9, white},
		{"top-right", 0.9, 0.9, black},
		{"u=1 clamps to last column", 1.0, 0.9, black},
		{"v=1 clamps to first row", 0.1, 1.0, white},
		{"v=0 clamps to last row", 0.1, 0.0, black},
		{"negative u clamps", -0.5, 0.1, black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := texture.Value(tt.u, tt.v, core.Vec3{})
			if !result.Equals(tt.expected) {
				t.Errorf("UV(%.1f,%.1f): expected %v, got %v", tt.u, tt.v, tt.expected, result)
			}
		})
	}
}
