package driver

import (
	"context"
	"errors"
	"testing"

	"game-loop/internal/input"
)

// fakeBackend is a simulated provider: Delay advances the tick counter, queued events are
// returned on the next poll, and quitAfter (when > 0) queues Quit once that many frames
// have been presented.
type fakeBackend struct {
	ticks       uint32
	delays      []uint32
	queue       []input.Event
	fullscreens []bool
	fsErr       error
	clears      int
	presents    int
	quitAfter   int
}

func (f *fakeBackend) Ticks() uint32 { return f.ticks }

func (f *fakeBackend) Delay(ms uint32) {
	f.delays = append(f.delays, ms)
	f.ticks += ms
}

func (f *fakeBackend) PollEvents() []input.Event {
	if f.quitAfter > 0 && f.presents >= f.quitAfter {
		f.queue = append(f.queue, input.QuitEvent())
	}
	evs := f.queue
	f.queue = nil
	return evs
}

func (f *fakeBackend) SetFullscreen(on bool) error {
	f.fullscreens = append(f.fullscreens, on)
	return f.fsErr
}

func (f *fakeBackend) Clear() { f.clears++ }
func (f *fakeBackend) Present() { f.presents++ }

type fpsRecorder struct{ seen []uint32 }

func (r *fpsRecorder) Draw(fps uint32) { r.seen = append(r.seen, fps) }

func TestNewDefaults(t *testing.T) {
	d := New(&fakeBackend{})
	if !d.Running() {
		t.Error("new driver should be running")
	}
	if d.Fullscreen() || d.FPS() != 0 || d.FrameCount() != 0 {
		t.Errorf("unexpected initial state: fullscreen=%v fps=%d frames=%d", d.Fullscreen(), d.FPS(), d.FrameCount())
	}
	if d.frameBudget != 16 {
		t.Errorf("frameBudget = %d, want 16", d.frameBudget)
	}
}

func TestUpdateSamplesAfterOneSecond(t *testing.T) {
	b := &fakeBackend{}
	d := New(b)
	d.frameCount = 42

	b.ticks = 999
	d.Update()
	if d.FPS() != 0 || d.FrameCount() != 42 {
		t.Fatalf("sampled too early: fps=%d frames=%d", d.FPS(), d.FrameCount())
	}
	if d.lastFrameTick != 999 {
		t.Errorf("lastFrameTick = %d, want 999", d.lastFrameTick)
	}

	b.ticks = 1000
	d.Update()
	if d.FPS() != 42 {
		t.Errorf("fps = %d, want 42", d.FPS())
	}
	if d.FrameCount() != 0 {
		t.Errorf("frameCount = %d, want 0", d.FrameCount())
	}
	if d.lastSampleTick != 1000 {
		t.Errorf("lastSampleTick = %d, want 1000", d.lastSampleTick)
	}
}

func TestUpdateKeepsFPSWithinWindow(t *testing.T) {
	b := &fakeBackend{ticks: 1000}
	d := New(b)
	d.frameCount = 30
	d.Update()

	d.frameCount = 7
	b.ticks = 1999
	d.Update()
	if d.FPS() != 30 || d.FrameCount() != 7 {
		t.Errorf("fps=%d frames=%d, want 30 and 7", d.FPS(), d.FrameCount())
	}
}

func TestUpdateHandlesTickWraparound(t *testing.T) {
	b := &fakeBackend{}
	d := New(b)
	d.lastSampleTick = ^uint32(0) - 500
	d.frameCount = 12

	b.ticks = 499 // 1000 ms after lastSampleTick, modulo 2^32
	d.Update()
	if d.FPS() != 12 {
		t.Errorf("fps = %d, want 12", d.FPS())
	}
}

func TestSixtyRendersThenSample(t *testing.T) {
	b := &fakeBackend{ticks: 0}
	d := New(b)
	d.Update()
	for i := 0; i < 60; i++ {
		b.ticks = 100 + uint32(i)*10
		d.lastFrameTick = 0
		if err := d.Render(); err != nil {
			t.Fatal(err)
		}
	}
	if d.FrameCount() != 60 {
		t.Fatalf("frameCount = %d, want 60", d.FrameCount())
	}
	b.ticks = 1000
	d.Update()
	if d.FPS() != 60 || d.FrameCount() != 0 {
		t.Errorf("fps=%d frames=%d, want 60 and 0", d.FPS(), d.FrameCount())
	}
}

func TestProcessInputQuit(t *testing.T) {
	b := &fakeBackend{queue: []input.Event{input.KeyDownEvent(input.Key1), input.QuitEvent(), {Kind: input.Other}}}
	d := New(b)
	d.ProcessInput()
	if d.Running() {
		t.Error("quit should stop the driver")
	}
}

func TestProcessInputEscape(t *testing.T) {
	b := &fakeBackend{queue: []input.Event{input.KeyDownEvent(input.KeyEscape)}}
	d := New(b)
	d.ProcessInput()
	if d.Running() {
		t.Error("escape should stop the driver")
	}
}

func TestProcessInputToggleOncePerPress(t *testing.T) {
	b := &fakeBackend{queue: []input.Event{input.KeyDownEvent(input.Key9)}}
	d := New(b)
	d.ProcessInput()
	if !d.Fullscreen() {
		t.Fatal("first press should enable fullscreen")
	}
	d.ProcessInput()
	if !d.Fullscreen() {
		t.Fatal("poll without events must not toggle")
	}

	b.queue = []input.Event{input.KeyDownEvent(input.Key9), input.KeyDownEvent(input.Key9), input.KeyDownEvent(input.Key9)}
	d.ProcessInput()
	if d.Fullscreen() {
		t.Error("three presses from fullscreen should end windowed")
	}
	if !d.Running() {
		t.Error("toggle must not stop the driver")
	}
}

func TestProcessInputDrainsWholeQueue(t *testing.T) {
	b := &fakeBackend{queue: []input.Event{input.KeyDownEvent(input.Key9), input.KeyDownEvent(input.KeyEscape)}}
	d := New(b)
	d.ProcessInput()
	if !d.Fullscreen() || d.Running() {
		t.Errorf("fullscreen=%v running=%v, want true and false", d.Fullscreen(), d.Running())
	}
}

func TestCustomToggleKey(t *testing.T) {
	b := &fakeBackend{queue: []input.Event{input.KeyDownEvent(input.Key9), input.KeyDownEvent(input.KeyF11)}}
	d := New(b, WithToggleKey(input.KeyF11))
	d.ProcessInput()
	if !d.Fullscreen() {
		t.Error("F11 should toggle once and 9 should be ignored")
	}
}

func TestRenderDelaysRemainingBudget(t *testing.T) {
	b := &fakeBackend{ticks: 100}
	d := New(b)
	d.lastFrameTick = 95
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if len(b.delays) != 1 || b.delays[0] != 11 {
		t.Fatalf("delays = %v, want [11]", b.delays)
	}
	if b.clears != 1 || b.presents != 1 {
		t.Errorf("clears=%d presents=%d, want 1 and 1", b.clears, b.presents)
	}

	b.delays = nil
	d.lastFrameTick = b.ticks - 16
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if len(b.delays) != 0 {
		t.Errorf("no delay expected at full budget, got %v", b.delays)
	}
}

func TestRenderTargetFPS(t *testing.T) {
	b := &fakeBackend{}
	d := New(b, WithTargetFPS(30))
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if len(b.delays) != 1 || b.delays[0] != 33 {
		t.Errorf("delays = %v, want [33]", b.delays)
	}
}

func TestRenderAppliesFullscreenEveryFrame(t *testing.T) {
	b := &fakeBackend{}
	d := New(b, WithFullscreen(true))
	_ = d.Render()
	_ = d.Render()
	if len(b.fullscreens) != 2 || !b.fullscreens[0] || !b.fullscreens[1] {
		t.Errorf("fullscreens = %v", b.fullscreens)
	}
}

func TestRenderFullscreenError(t *testing.T) {
	errNoMode := errors.New("no display mode")
	b := &fakeBackend{fsErr: errNoMode}
	d := New(b)
	err := d.Render()
	if !errors.Is(err, errNoMode) {
		t.Fatalf("Render error = %v, want %v", err, errNoMode)
	}
	if d.FrameCount() != 0 || b.presents != 0 {
		t.Error("a failed frame must not be counted or presented")
	}
}

func TestRenderDrawsOverlay(t *testing.T) {
	rec := &fpsRecorder{}
	b := &fakeBackend{}
	d := New(b, WithOverlay(rec))
	d.fps = 58
	_ = d.Render()
	if len(rec.seen) != 1 || rec.seen[0] != 58 {
		t.Errorf("overlay saw %v, want [58]", rec.seen)
	}
}

func TestRunPacesAndSamples(t *testing.T) {
	// Every iteration sleeps the full 16 ms budget, so the first sample lands at tick 1008
	// after 63 frames. Quit is queued once 63 frames are presented, and the quitting
	// iteration still renders one more frame.
	b := &fakeBackend{quitAfter: 63}
	d := New(b)
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.Running() {
		t.Error("driver should have stopped")
	}
	if b.presents != 64 {
		t.Errorf("presents = %d, want 64", b.presents)
	}
	if d.FPS() != 63 {
		t.Errorf("fps = %d, want 63", d.FPS())
	}
	if d.FrameCount() != 1 {
		t.Errorf("frameCount = %d, want 1", d.FrameCount())
	}
}

func TestRunReturnsRenderError(t *testing.T) {
	b := &fakeBackend{fsErr: errors.New("boom")}
	d := New(b)
	if err := d.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if d.Running() {
		t.Error("driver should stop after a render error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := &fakeBackend{}
	d := New(b)
	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if b.presents != 0 || d.Running() {
		t.Errorf("presents=%d running=%v, want 0 and false", b.presents, d.Running())
	}
}

func TestStopEndsRunBeforeFirstFrame(t *testing.T) {
	b := &fakeBackend{}
	d := New(b)
	d.Stop()
	if d.Running() {
		t.Fatal("Stop should clear the running flag")
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b.presents != 0 {
		t.Errorf("presents = %d, want 0", b.presents)
	}
}
