// Package headless runs the loop without a display, e.g. for smoke runs in CI.
package headless

import (
	"unicode/utf8"

	"game-loop/internal/clock"
	"game-loop/internal/input"
)

const glyphWidth = 10

// Backend discards all drawing and asks to quit once its frame limit is reached.
type Backend struct {
	*clock.Clock
	width      int32
	frames     int
	presents   int
	fullscreen bool
}

// Open returns a backend that renders frames frames and then reports Quit.
// frames <= 0 runs until the loop is stopped some other way.
func Open(width int32, frames int) *Backend {
	return &Backend{Clock: clock.New(), width: width, frames: frames}
}

// PollEvents reports Quit during the iteration that will present the last frame.
func (b *Backend) PollEvents() []input.Event {
	if b.frames > 0 && b.presents+1 >= b.frames {
		return []input.Event{input.QuitEvent()}
	}
	return nil
}

func (b *Backend) SetFullscreen(on bool) error {
	b.fullscreen = on
	return nil
}

func (b *Backend) Clear() {}

func (b *Backend) Present() { b.presents++ }

func (b *Backend) DrawText(text string, x, y, size int32) {}

func (b *Backend) TextWidth(text string, size int32) int32 {
	return int32(utf8.RuneCountInString(text)) * glyphWidth
}

func (b *Backend) Width() int32 { return b.width }

// Presents returns the number of frames presented so far.
func (b *Backend) Presents() int { return b.presents }

// Fullscreen returns the last mode the driver asked for.
func (b *Backend) Fullscreen() bool { return b.fullscreen }

func (b *Backend) Close() {}
