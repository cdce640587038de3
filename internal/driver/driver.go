// Package driver runs the frame loop: update timing counters, process input, render.
package driver

import (
	"context"
	"fmt"

	"game-loop/internal/input"

	"github.com/rs/zerolog"
)

const (
	// DefaultTargetFPS sets the frame budget to 1000/60 ms (16 ms with integer division).
	DefaultTargetFPS = 60
	// sampleInterval is the FPS sample window in ticks (ms).
	sampleInterval = 1000
)

// Window applies the window mode. It is called every frame with the desired mode, so
// implementations must treat an unchanged mode as a no-op.
type Window interface {
	SetFullscreen(on bool) error
}

// Canvas is cleared and presented once per frame.
type Canvas interface {
	Clear()
	Present()
}

// Timer supplies millisecond ticks since start and a blocking sleep.
type Timer interface {
	Ticks() uint32
	Delay(ms uint32)
}

// Backend bundles everything the driver needs from a windowing/graphics provider.
type Backend interface {
	Window
	Canvas
	input.Source
	Timer
}

// Overlay draws on top of the cleared canvas before it is presented.
type Overlay interface {
	Draw(fps uint32)
}

// Driver owns the run/quit flag, the fullscreen flag and the frame-timing counters.
// It is not safe for concurrent use; the loop is single-threaded.
type Driver struct {
	backend     Backend
	overlay     Overlay
	log         zerolog.Logger
	toggleKey   input.Key
	frameBudget uint32

	running        bool
	fullscreen     bool
	frameCount     uint32
	lastFrameTick  uint32
	lastSampleTick uint32
	fps            uint32
}

// Option configures a Driver.
type Option func(*Driver)

// WithTargetFPS sets the frame budget to 1000/fps ms. Values below 1 are ignored.
func WithTargetFPS(fps int) Option {
	return func(d *Driver) {
		if fps >= 1 {
			d.frameBudget = uint32(1000 / fps)
		}
	}
}

// WithToggleKey sets the key that flips fullscreen. Default is 9.
func WithToggleKey(k input.Key) Option {
	return func(d *Driver) { d.toggleKey = k }
}

// WithFullscreen sets the initial window mode.
func WithFullscreen(on bool) Option {
	return func(d *Driver) { d.fullscreen = on }
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Driver) { d.log = l.With().Str("component", "driver").Logger() }
}

// WithOverlay adds an overlay drawn between clear and present.
func WithOverlay(o Overlay) Option {
	return func(d *Driver) { d.overlay = o }
}

// New returns a running Driver with all counters zero.
func New(b Backend, opts ...Option) *Driver {
	d := &Driver{
		backend:     b,
		log:         zerolog.Nop(),
		toggleKey:   input.Key9,
		frameBudget: 1000 / DefaultTargetFPS,
		running:     true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Running reports whether the loop should keep going.
func (d *Driver) Running() bool { return d.running }

// Fullscreen reports the desired window mode.
func (d *Driver) Fullscreen() bool { return d.fullscreen }

// FPS returns the frame count of the last completed sample window.
func (d *Driver) FPS() uint32 { return d.fps }

// FrameCount returns the frames rendered since the last sample.
func (d *Driver) FrameCount() uint32 { return d.frameCount }

// Stop clears the running flag; the current iteration still finishes.
func (d *Driver) Stop() {
	d.running = false
}

// Update records the frame boundary and, once at least a full sample window has passed,
// publishes frame_count as fps and resets the count.
func (d *Driver) Update() {
	d.lastFrameTick = d.backend.Ticks()
	if d.lastFrameTick-d.lastSampleTick < sampleInterval {
		return
	}
	d.lastSampleTick = d.lastFrameTick
	d.fps = d.frameCount
	d.frameCount = 0
	d.log.Debug().Uint32("fps", d.fps).Uint32("tick", d.lastFrameTick).Msg("fps sample")
}

// ProcessInput drains every pending event. Quit and Escape stop the loop; the toggle key
// flips fullscreen once per key-down.
func (d *Driver) ProcessInput() {
	for _, ev := range d.backend.PollEvents() {
		switch ev.Kind {
		case input.Quit:
			d.log.Info().Uint32("tick", d.backend.Ticks()).Msg("quit requested")
			d.running = false
		case input.KeyDown:
			switch ev.Key {
			case input.KeyEscape:
				d.running = false
			case d.toggleKey:
				d.fullscreen = !d.fullscreen
				d.log.Debug().Bool("fullscreen", d.fullscreen).Msg("fullscreen toggled")
			}
		}
	}
}

// Render applies the window mode, counts the frame, sleeps off whatever is left of the frame
// budget and then clears and presents the canvas.
func (d *Driver) Render() error {
	if err := d.backend.SetFullscreen(d.fullscreen); err != nil {
		return fmt.Errorf("set fullscreen %t: %w", d.fullscreen, err)
	}

	d.frameCount++
	elapsed := d.backend.Ticks() - d.lastFrameTick
	if elapsed < d.frameBudget {
		d.backend.Delay(d.frameBudget - elapsed)
	}

	d.backend.Clear()
	if d.overlay != nil {
		d.overlay.Draw(d.fps)
	}
	d.backend.Present()
	return nil
}

// Run loops update → process input → render until the running flag clears or ctx is done.
// A render error ends the loop and is returned.
func (d *Driver) Run(ctx context.Context) error {
	d.log.Info().Uint32("frame_budget_ms", d.frameBudget).Str("toggle_key", d.toggleKey.String()).Msg("loop started")
	for d.running {
		if ctx.Err() != nil {
			d.log.Info().Msg("loop cancelled")
			d.Stop()
			break
		}
		d.Update()
		d.ProcessInput()
		if err := d.Render(); err != nil {
			d.running = false
			return fmt.Errorf("render frame: %w", err)
		}
	}
	d.log.Info().Uint32("fps", d.fps).Msg("loop stopped")
	return nil
}
