package debug

import (
	"fmt"
	"runtime"
	"strconv"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// memInterval: only refresh the Mem text every N frames to reduce allocations.
	memInterval = 30
)

// Canvas is the text surface the overlay draws on. Backends implement it.
type Canvas interface {
	DrawText(text string, x, y, size int32)
	TextWidth(text string, size int32) int32
	Width() int32
}

// Overlay draws runtime debugging text (FPS, heap alloc) at the top-right of the canvas.
// Everything is off by default.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	canvas       Canvas
	frameCount   uint32
	lastFPS      uint32
	fpsText      string
	memText      string
	memStats     runtime.MemStats
}

// New returns an overlay drawing on canvas with all lines hidden.
func New(canvas Canvas) *Overlay {
	return &Overlay{canvas: canvas}
}

// SetShowFPS sets whether the FPS line is drawn.
func (o *Overlay) SetShowFPS(show bool) {
	o.ShowFPS = show
}

// SetShowMemAlloc sets whether the heap allocation line is drawn (under FPS).
func (o *Overlay) SetShowMemAlloc(show bool) {
	o.ShowMemAlloc = show
}

// Draw renders the enabled lines. Call between canvas clear and present.
// The FPS text is rebuilt only when fps changes.
func (o *Overlay) Draw(fps uint32) {
	o.frameCount++
	y := int32(padding)

	if o.ShowFPS {
		if o.fpsText == "" || fps != o.lastFPS {
			o.fpsText = "FPS: " + strconv.FormatUint(uint64(fps), 10)
			o.lastFPS = fps
		}
		o.drawRight(o.fpsText, y)
		y += lineHeight
	}

	if o.ShowMemAlloc {
		if o.memText == "" || o.frameCount%memInterval == 0 {
			runtime.ReadMemStats(&o.memStats)
			o.memText = fmt.Sprintf("Mem: %.2f MiB", float64(o.memStats.Alloc)/(1024*1024))
		}
		o.drawRight(o.memText, y)
	}
}

func (o *Overlay) drawRight(text string, y int32) {
	x := o.canvas.Width() - o.canvas.TextWidth(text, fontSize) - padding
	if x < 0 {
		x = 0
	}
	o.canvas.DrawText(text, x, y, fontSize)
}
