package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bvh-raytracer/internal/log"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// Config contains the server settings
type Config struct {
	Port                 int    // Port to listen on
	ScenesDir            string // Directory of YAML scene files
	EarthImage           string // Texture for the earth spheres
	MaxConcurrentRenders int    // Renders running at once; further requests wait
}

// DefaultConfig returns the settings used by the serve command
func DefaultConfig() Config {
	return Config{
		Port:                 8080,
		ScenesDir:            "scenes",
		EarthImage:           scene.DefaultEarthImage,
		MaxConcurrentRenders: 1,
	}
}

// Server handles web requests for the raytracer
type Server struct {
	config  Config
	echo    *echo.Echo
	logger  log.Logger
	renders chan struct{}
	renderN atomic.Int64
}

// NewServer creates a new web server and registers its routes
func NewServer(config Config) *Server {
	if config.MaxConcurrentRenders <= 0 {
		config.MaxConcurrentRenders = 1
	}

	s := &Server{
		config:  config,
		echo:    echo.New(),
		logger:  log.New("web"),
		renders: make(chan struct{}, config.MaxConcurrentRenders),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(corsMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files, grouped
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, response)
}

// loadScene resolves a built-in name or a "file:<name>" scene from the scenes directory
func (s *Server) loadScene(id string, opts scene.Options) (*scene.Scene, error) {
	if name, ok := strings.CutPrefix(id, "file:"); ok {
		files, err := scene.ListSceneFiles(s.config.ScenesDir)
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == id || info.Name == name {
				return scene.FromFile(info.FilePath, opts)
			}
		}
		return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id)
	}
	return scene.Build(id, opts)
}

// sceneError maps scene loading failures to HTTP statuses
func sceneError(c echo.Context, err error) error {
	if errors.Is(err, scene.ErrUnknownScene) {
		return jsonError(c, http.StatusNotFound, err)
	}
	return jsonError(c, http.StatusInternalServerError, err)
}

func jsonError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
