package renderer

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestToByte(t *testing.T) {
	tests := []struct {
		value    float64
		expected uint8
	}{
		{0, 0},
		{-1, 0},
		{math.NaN(), 0},
		{0.25, 127},
		{1, 255},
		{4, 255},
		{math.Inf(1), 255},
	}

	for _, tt := range tests {
		if got := ToByte(tt.value); got != tt.expected {
			t.Errorf("ToByte(%v): Expected %d, got %d", tt.value, tt.expected, got)
		}
	}
}

func TestPixelStats_Average(t *testing.T) {
	var ps PixelStats
	if got := ps.GetColor(); !got.Equals(core.Vec3{}) {
		t.Errorf("Expected black with no samples, got %v", got)
	}
	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	if got := ps.GetColor(); !got.Equals(core.NewVec3(0.5, 0.5, 0)) {
		t.Errorf("Expected (0.5, 0.5, 0), got %v", got)
	}
}

func testFramebuffer() *Framebuffer {
	fb := NewFramebuffer(2, 2)
	fb.At(0, 0).AddSample(core.NewVec3(1, 1, 1))
	fb.At(1, 0).AddSample(core.NewVec3(0.25, 0, 2))
	fb.At(0, 1).AddSample(core.NewVec3(-1, math.NaN(), 0))
	// (1, 1) left without samples
	return fb
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testFramebuffer()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := "P3\n2\n2\n255\n" +
		"255 255 255\n" +
		"127 0 255\n" +
		"0 0 0\n" +
		"0 0 0\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestWritePNG_MatchesPPMMapping(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testFramebuffer()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Expected valid png, got %v", err)
	}
	r, g, b, a := img.At(1, 0).RGBA()
	if r>>8 != 127 || g>>8 != 0 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("Expected (127, 0, 255, 255), got (%d, %d, %d, %d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"ppm", "png"} {
		if f, err := ParseFormat(name); err != nil || string(f) != name {
			t.Errorf("Expected %q to parse, got %q, %v", name, f, err)
		}
	}
	if _, err := ParseFormat("jpg"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if FormatPNG.ContentType() != "image/png" {
		t.Errorf("Expected image/png, got %s", FormatPNG.ContentType())
	}
}
