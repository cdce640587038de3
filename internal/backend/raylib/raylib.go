// Package raylib provides a native window, canvas, key queue and timer through raylib.
package raylib

import (
	"errors"
	"fmt"

	"game-loop/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrWindowNotReady is returned by Open when raylib could not create the window or GL context.
var ErrWindowNotReady = errors.New("raylib: window not ready")

var keyMap = map[int32]input.Key{
	rl.KeyEscape:  input.KeyEscape,
	rl.KeyEnter:   input.KeyEnter,
	rl.KeyKpEnter: input.KeyEnter,
	rl.KeySpace:   input.KeySpace,
	rl.KeyZero:    input.Key0,
	rl.KeyOne:     input.Key1,
	rl.KeyTwo:     input.Key2,
	rl.KeyThree:   input.Key3,
	rl.KeyFour:    input.Key4,
	rl.KeyFive:    input.Key5,
	rl.KeySix:     input.Key6,
	rl.KeySeven:   input.Key7,
	rl.KeyEight:   input.Key8,
	rl.KeyNine:    input.Key9,
	rl.KeyF11:     input.KeyF11,
}

// Backend is an open raylib window. Only one may exist per process.
type Backend struct {
	fullscreen bool
	events     []input.Event
}

// Open creates a centered window of the given size. Close must be called when done.
func Open(title string, width, height int32) (*Backend, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(width, height, title)
	if !rl.IsWindowReady() {
		return nil, ErrWindowNotReady
	}
	rl.SetExitKey(rl.KeyNull) // ESC is reported as a key; the driver decides to quit
	return &Backend{}, nil
}

// Close destroys the window and GL context.
func (b *Backend) Close() {
	rl.CloseWindow()
}

// SetFullscreen toggles the window mode when it differs from the current one.
func (b *Backend) SetFullscreen(on bool) error {
	if on == b.fullscreen {
		return nil
	}
	rl.ToggleFullscreen()
	if rl.IsWindowFullscreen() != on {
		return fmt.Errorf("raylib: window did not switch to fullscreen=%t", on)
	}
	b.fullscreen = on
	return nil
}

// PollEvents reports a close request and every key queued since the last frame.
// The returned slice is reused on the next call.
func (b *Backend) PollEvents() []input.Event {
	b.events = b.events[:0]
	if rl.WindowShouldClose() {
		b.events = append(b.events, input.QuitEvent())
	}
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		b.events = append(b.events, translateKey(k))
	}
	return b.events
}

func translateKey(k int32) input.Event {
	if key, ok := keyMap[k]; ok {
		return input.KeyDownEvent(key)
	}
	return input.Event{Kind: input.Other}
}

// Ticks returns milliseconds since the window was opened.
func (b *Backend) Ticks() uint32 {
	return uint32(rl.GetTime() * 1000)
}

// Delay blocks for ms milliseconds.
func (b *Backend) Delay(ms uint32) {
	rl.WaitTime(float64(ms) / 1000)
}

// Clear starts the frame and fills it with black. Input is polled by raylib at EndDrawing.
func (b *Backend) Clear() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
}

// Present ends the frame and swaps buffers.
func (b *Backend) Present() {
	rl.EndDrawing()
}

// DrawText draws with the default font in green. Only valid between Clear and Present.
func (b *Backend) DrawText(text string, x, y, size int32) {
	rl.DrawText(text, x, y, size, rl.Green)
}

// TextWidth measures text in the default font at size.
func (b *Backend) TextWidth(text string, size int32) int32 {
	return rl.MeasureText(text, size)
}

// Width returns the current screen width in pixels.
func (b *Backend) Width() int32 {
	return int32(rl.GetScreenWidth())
}
