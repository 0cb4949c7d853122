package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-raytracer/internal/watcher"
)

const watchDebounce = 200 * time.Millisecond

// rerenderer runs one render at a time. Each trigger cancels the render in
// flight and queues a fresh one.
type rerenderer struct {
	parent context.Context
	render func(context.Context) error

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	running sync.Mutex
	wg      sync.WaitGroup
}

func newRerenderer(parent context.Context, render func(context.Context) error) *rerenderer {
	return &rerenderer{parent: parent, render: render}
}

// trigger is a no-op once stop has been called
func (r *rerenderer) trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(r.parent)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.running.Lock()
		defer r.running.Unlock()

		// Superseded while waiting for the previous render to stop
		if ctx.Err() != nil {
			return
		}

		err := r.render(ctx)
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("render cancelled")
		case err != nil:
			logger.Warningf("render failed: %v", err)
		}
	}()
}

// stop cancels any render in flight and waits for all of them to return
func (r *rerenderer) stop() {
	r.mu.Lock()
	r.stopped = true
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// WatchScene renders a scene file and renders it again whenever it changes,
// until interrupted.
func WatchScene(ctx *cli.Context) error {
	setupLogging(ctx)

	job, err := newRenderJob(ctx)
	if err != nil {
		return err
	}
	if job.sceneFile == "" {
		return errors.New("missing scene file argument")
	}
	if job.out == "-" {
		return errors.New("watch needs an --out file")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(watchDebounce, func(err error) {
		logger.Warningf("watcher: %v", err)
	})
	if err != nil {
		return err
	}

	r := newRerenderer(runCtx, func(renderCtx context.Context) error {
		return job.run(renderCtx, ctx.App.Writer)
	})
	// The watcher must stop firing before the last render is awaited
	defer func() {
		fw.Close()
		r.stop()
	}()

	err = fw.Watch(job.sceneFile, func(path string) {
		logger.Noticef("%s changed, re-rendering", path)
		r.trigger()
	})
	if err != nil {
		return err
	}

	logger.Noticef("watching %s, press Ctrl+C to stop", job.sceneFile)
	r.trigger()
	fw.Run(runCtx)
	return nil
}
