package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"game-loop/internal/backend/headless"
	"game-loop/internal/backend/raylib"
	"game-loop/internal/backend/terminal"
	"game-loop/internal/config"
	"game-loop/internal/debug"
	"game-loop/internal/driver"
	"game-loop/internal/input"
	"game-loop/internal/logger"

	"github.com/rs/zerolog"
)

// backend is what every provider in internal/backend offers.
type backend interface {
	driver.Backend
	debug.Canvas
	Close()
}

func run(o *options) error {
	cfg, warnings, err := loadConfig(o)
	if err != nil {
		return err
	}

	var console io.Writer = os.Stderr
	if cfg.Backend == config.BackendTerminal {
		console = nil // the screen owns the tty
	}
	log, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File, Console: console})
	if err != nil {
		return fmt.Errorf("open logger: %w", err)
	}
	defer log.Close()
	for _, w := range warnings {
		log.Warn().Err(w).Msg("using defaults")
	}

	b, err := openBackend(cfg, o.frames, log)
	if err != nil {
		log.WithLevel(zerolog.FatalLevel).Err(err).Str("backend", cfg.Backend).Msg("open backend")
		return err
	}
	defer b.Close()
	log.Info().
		Str("backend", cfg.Backend).
		Str("title", cfg.Window.Title).
		Int("width", cfg.Window.Width).
		Int("height", cfg.Window.Height).
		Msg("window opened")

	overlay := debug.New(b)
	overlay.SetShowFPS(cfg.ShowFPS)
	overlay.SetShowMemAlloc(cfg.ShowMemAlloc)

	var loop driver.Backend = b
	layer := func(c *config.Config) error { return applyOverrides(o, c) }
	if w, err := config.Watch(o.configPath, layer); err != nil {
		log.Warn().Err(err).Str("path", o.configPath).Msg("config hot reload disabled")
	} else {
		defer w.Close()
		loop = &reloading{backend: b, watcher: w, overlay: overlay, log: log.With().Str("component", "config").Logger()}
	}

	d := driver.New(loop,
		driver.WithTargetFPS(cfg.TargetFPS),
		driver.WithToggleKey(cfg.ToggleKey()),
		driver.WithFullscreen(cfg.Fullscreen),
		driver.WithLogger(log.Logger),
		driver.WithOverlay(overlay),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := d.Run(ctx); err != nil {
		log.WithLevel(zerolog.FatalLevel).Err(err).Msg("frame loop failed")
		return err
	}
	return nil
}

func openBackend(cfg config.Config, frames int, log *logger.Logger) (backend, error) {
	switch cfg.Backend {
	case config.BackendTerminal:
		t, err := terminal.Open(cfg.Window.Title)
		if err != nil {
			return nil, err
		}
		t.SetLogSource(log.Lines)
		return t, nil
	case config.BackendHeadless:
		return headless.Open(int32(cfg.Window.Width), frames), nil
	default:
		return raylib.Open(cfg.Window.Title, int32(cfg.Window.Width), int32(cfg.Window.Height))
	}
}

// reloading applies config file edits to the overlay once per frame, before input is polled.
type reloading struct {
	backend
	watcher *config.Watcher
	overlay *debug.Overlay
	log     zerolog.Logger
}

func (r *reloading) PollEvents() []input.Event {
	cfg, changed, err := r.watcher.Poll()
	if err != nil {
		r.log.Warn().Err(err).Msg("config reload")
	}
	if changed {
		r.overlay.SetShowFPS(cfg.ShowFPS)
		r.overlay.SetShowMemAlloc(cfg.ShowMemAlloc)
		r.log.Info().Bool("show_fps", cfg.ShowFPS).Bool("show_mem_alloc", cfg.ShowMemAlloc).Msg("config reloaded")
	}
	return r.backend.PollEvents()
}
