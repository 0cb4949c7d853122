package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

const mirrorSceneYAML = `name: mirror
camera: {look_from: [0, 1, 6], look_at: [0, 1, 0]}
background: true
materials:
  chrome: {type: metal, color: [0.8, 0.8, 0.8], fuzz: 0.1}
objects:
  - {type: sphere, center: [0, 1, 0], radius: 1, material: chrome}
  - {type: xz_rect, x0: -5, x1: 5, z0: -5, z1: 5, k: 0, material: {type: lambertian, color: [0.5, 0.5, 0.5]}}
`

func runApp(t *testing.T, args ...string) (string, error) {
	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stdout
	err := app.Run(append([]string{"raytracer"}, args...))
	return stdout.String(), err
}

func TestRender_Stdout(t *testing.T) {
	out, err := runApp(t, "render", "--scene", "two-spheres", "--width", "4", "--height", "3", "--spp", "1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "P3\n4\n3\n255\n"))
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4+4*3)
}

func TestRender_FileFormats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		args   []string
		file   string
		prefix string
	}{
		{"ppm by default", nil, "out/image.ppm", "P3\n"},
		{"png from extension", nil, "image.png", "\x89PNG"},
		{"explicit format wins", []string{"--format", "ppm"}, "forced.png", "P3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			args := append([]string{"render", "--scene", "two-perlin", "--width", "5", "--height", "5", "--spp", "1", "--workers", "2", "--tile-size", "2", "--out", path}, tt.args...)
			_, err := runApp(t, args...)
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte(tt.prefix)))
		})
	}
}

func TestRender_SceneFile(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "mirror.yaml")
	require.NoError(t, os.WriteFile(sceneFile, []byte(mirrorSceneYAML), 0o644))

	out, err := runApp(t, "render", "--width", "6", "--height", "4", "--spp", "2", "--background", "off", sceneFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "P3\n6\n4\n255\n"))

	// Nothing emits light once the sky is off
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[4:] {
		assert.Equal(t, "0 0 0", line)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"unknown scene", []string{"--scene", "teapot"}, "unknown scene"},
		{"missing scene file", []string{"does-not-exist.yaml"}, "does-not-exist.yaml"},
		{"bad format", []string{"--format", "gif"}, "gif"},
		{"bad background", []string{"--background", "sometimes"}, "sometimes"},
		{"zero spp", []string{"--spp", "0"}, "spp"},
		{"zero width", []string{"--width", "0"}, "image size"},
		{"negative workers", []string{"--workers", "-1"}, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, append([]string{"render"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := runApp(t, "render", "--scene", "teapot")
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
}

func TestWatch_RequiresSceneFileAndOutput(t *testing.T) {
	_, err := runApp(t, "watch")
	assert.ErrorContains(t, err, "missing scene file")

	_, err = runApp(t, "watch", "scene.yaml")
	assert.ErrorContains(t, err, "--out")
}

func TestScenes_ListsBuiltinsAndFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mirror.yaml"), []byte(mirrorSceneYAML), 0o644))

	out, err := runApp(t, "scenes", "--scenes-dir", dir)
	require.NoError(t, err)

	for _, name := range scene.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, filepath.Join(dir, "mirror.yaml"))
	assert.Contains(t, out, scene.BuiltinGroup)
}
