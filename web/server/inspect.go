package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	rgba := renderer.ToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// extractMaterialInfo describes a material, evaluating textures at the hit
func extractMaterialInfo(hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := hit.Material.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Value(hit.U, hit.V, hit.Point)
		properties["albedo"] = toArray(albedo)
		properties["color"] = hexColor(albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emitted(hit.U, hit.V, hit.Point)
		properties["emission"] = toArray(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		albedo := m.Albedo.Value(hit.U, hit.V, hit.Point)
		properties["albedo"] = toArray(albedo)
		properties["color"] = hexColor(albedo)
		return "isotropic", properties
	}
	return "unknown", properties
}

// handleInspect casts a ray through the center of pixel (x, y), row 0 at the
// top, and describes the first surface it hits
func (s *Server) handleInspect(c echo.Context) error {
	query := c.QueryParams()
	sceneID := query.Get("scene")
	if sceneID == "" {
		sceneID = "cornell"
	}

	width, err := parseIntParam(query, "width", 200, 1, 2000)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	height, err := parseIntParam(query, "height", 200, 1, 2000)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	x, err := parseIntParam(query, "x", width/2, 0, width-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	y, err := parseIntParam(query, "y", height/2, 0, height-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	seed, err := parseSeed(query)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	// Layout comes from the render seed; the lens and time draws get their own stream
	sc, err := s.loadScene(sceneID, scene.Options{Sampler: core.NewSeededSampler(int64(seed)), EarthImage: s.config.EarthImage})
	if err != nil {
		return sceneError(c, err)
	}
	sampler := core.NewSeededSampler(int64(seed) + 1)

	camera := renderer.NewCamera(sc.CameraFor(width, height))
	ray := camera.GetRay(
		(float64(x)+0.5)/float64(width),
		(float64(height-1-y)+0.5)/float64(height),
		sampler,
	)

	hit, ok := sc.World.Hit(ray, integrator.TMin, math.MaxFloat64, sampler)
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, properties := extractMaterialInfo(hit)
	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        toArray(hit.Point),
		Normal:       toArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		Properties:   properties,
	})
}
