package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// defaultSeed matches the CLI's default so both surfaces lay out random scenes alike
const defaultSeed = 42

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string          // Built-in name or "file:<name>"
	Width           int             // Image width
	Height          int             // Image height
	SamplesPerPixel int             // Samples per pixel
	Seed            int64           // Seed for scene layout and workers
	Format          renderer.Format // ppm or png
}

// parseRenderRequest parses request parameters
func parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	query := c.QueryParams()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 10, 1, 10000); err != nil {
		return nil, err
	}
	seed, err := parseSeed(query)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	format := query.Get("format")
	if format == "" {
		format = string(renderer.FormatPNG)
	}
	if req.Format, err = renderer.ParseFormat(format); err != nil {
		return nil, err
	}
	return req, nil
}

// handleRender renders a scene to completion and returns the encoded image.
// Disconnecting cancels the render.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	select {
	case s.renders <- struct{}{}:
		defer func() { <-s.renders }()
	case <-ctx.Done():
		return jsonError(c, http.StatusServiceUnavailable, ctx.Err())
	}

	id := int(s.renderN.Add(1))
	logger := NewWebLogger(fmt.Sprintf("render-%d", id), s.logger)

	sc, err := s.loadScene(req.Scene, scene.Options{
		Sampler:    core.NewSeededSampler(req.Seed),
		EarthImage: s.config.EarthImage,
		Logger:     logger,
	})
	if err != nil {
		return sceneError(c, err)
	}

	config := renderer.Config{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
		TileSize:        renderer.DefaultTileSize,
		Seed:            req.Seed,
	}
	fb, stats, err := sc.Raytracer(config, logger).Render(ctx)
	if err != nil {
		return jsonError(c, http.StatusServiceUnavailable, err)
	}

	var buf bytes.Buffer
	if err := renderer.Write(&buf, fb, req.Format); err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", strconv.Itoa(id))
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	if messages, err := json.Marshal(logger.Messages()); err == nil {
		header.Set("X-Render-Log", string(messages))
	}
	return c.Blob(http.StatusOK, req.Format.ContentType(), buf.Bytes())
}

// parseSeed reads the scene layout seed shared by render and inspect
func parseSeed(query url.Values) (int, error) {
	return parseIntParam(query, "seed", defaultSeed, 0, 1<<31-1)
}
