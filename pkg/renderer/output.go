package renderer

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
)

// WritePPM writes the framebuffer as a plain-text P3 image, top row first
func WritePPM(w io.Writer, fb *Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d\n%d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := ToRGBA(fb.Pixels[y][x].GetColor())
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("writing ppm pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing ppm: %w", err)
	}
	return nil
}

// WritePNG encodes the framebuffer as a PNG using the same tone mapping as WritePPM
func WritePNG(w io.Writer, fb *Framebuffer) error {
	if err := png.Encode(w, fb.Image()); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Format names an output encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat validates an output format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatPPM, FormatPNG:
		return Format(name), nil
	}
	return "", fmt.Errorf("unknown output format %q (want ppm or png)", name)
}

// Write encodes the framebuffer in the given format
func Write(w io.Writer, fb *Framebuffer, format Format) error {
	switch format {
	case FormatPNG:
		return WritePNG(w, fb)
	case FormatPPM:
		return WritePPM(w, fb)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}
