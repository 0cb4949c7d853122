package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// testImage is a 2x2 image: white, red on top; green, blue below
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func assertTestImage(t *testing.T, data *ImageData) {
	t.Helper()
	require.Equal(t, 2, data.Width)
	require.Equal(t, 2, data.Height)
	require.Len(t, data.Pixels, 4)

	expected := []core.Vec3{
		core.NewVec3(1, 1, 1), // top-left white
		core.NewVec3(1, 0, 0), // top-right red
		core.NewVec3(0, 1, 0), // bottom-left green
		core.NewVec3(0, 0, 1), // bottom-right blue
	}
	for i, e := range expected {
		assert.InDelta(t, e.X, data.Pixels[i].X, 0.01, "pixel %d red", i)
		assert.InDelta(t, e.Y, data.Pixels[i].Y, 0.01, "pixel %d green", i)
		assert.InDelta(t, e.Z, data.Pixels[i].Z, 0.01, "pixel %d blue", i)
	}
}

func TestLoadImage_PNG(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(testFile)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage()))
	require.NoError(t, f.Close())

	data, err := LoadImage(testFile)
	require.NoError(t, err)
	assert.Equal(t, "png", data.Format)
	assertTestImage(t, data)
}

func TestDecodeImage_Formats(t *testing.T) {
	tests := []struct {
		format string
		encode func(buf *bytes.Buffer, img image.Image) error
	}{
		{"png", func(buf *bytes.Buffer, img image.Image) error { return png.Encode(buf, img) }},
		{"bmp", func(buf *bytes.Buffer, img image.Image) error { return bmp.Encode(buf, img) }},
		{"tiff", func(buf *bytes.Buffer, img image.Image) error { return tiff.Encode(buf, img, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf, testImage()))

			data, err := DecodeImage(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.format, data.Format)
			assertTestImage(t, data)
		})
	}
}

func TestImageData_TextureOrientation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	data, err := DecodeImage(&buf)
	require.NoError(t, err)

	texture := data.Texture()
	// v=1 is the top of the image
	assert.InDelta(t, 1.0, texture.Value(0.1, 0.9, core.Vec3{}).Y, 0.01, "top-left is white")
	assert.InDelta(t, 1.0, texture.Value(0.9, 0.1, core.Vec3{}).Z, 0.01, "bottom-right is blue")
	assert.InDelta(t, 0.0, texture.Value(0.9, 0.1, core.Vec3{}).X, 0.01, "bottom-right has no red")
}

func TestLoadImage_Errors(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadImage(garbage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "garbage.png")
}
