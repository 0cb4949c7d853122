package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-raytracer/web/server"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the web server until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	config := server.DefaultConfig()
	config.Port = ctx.Int("port")
	config.ScenesDir = ctx.String("scenes-dir")
	config.EarthImage = ctx.String("earth")
	config.MaxConcurrentRenders = ctx.Int("max-renders")

	srv := server.NewServer(config)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-runCtx.Done():
	}

	logger.Notice("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
