// Package terminal uses the terminal as the window: tcell provides the screen and key events,
// and the wall clock provides ticks.
package terminal

import (
	"game-loop/internal/clock"
	"game-loop/internal/input"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	// Overlay coordinates are in pixels; one cell is cellW x cellH of them.
	cellW = 10
	cellH = 24
	// Number of log lines shown at the bottom of the screen.
	maxLogLines = 3
)

var (
	frameStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	logStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Backend draws into a tcell screen. In windowed mode the screen gets a titled border; in
// fullscreen mode the border is dropped, since a terminal cannot resize itself.
type Backend struct {
	*clock.Clock
	screen     tcell.Screen
	title      string
	fullscreen bool
	events     []input.Event
	logLines   func() []string
}

// Open takes over the controlling terminal. Close must be called to restore it.
func Open(title string) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newBackend(screen, title)
}

func newBackend(screen tcell.Screen, title string) (*Backend, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return &Backend{Clock: clock.New(), screen: screen, title: title}, nil
}

// SetLogSource sets where the recent log lines shown at the bottom come from.
func (b *Backend) SetLogSource(lines func() []string) {
	b.logLines = lines
}

// Close restores the terminal.
func (b *Backend) Close() {
	b.screen.Fini()
}

// SetFullscreen only switches the border on or off, so it never fails.
func (b *Backend) SetFullscreen(on bool) error {
	b.fullscreen = on
	return nil
}

// PollEvents drains the screen's event queue without blocking. Ctrl-C is reported as Quit.
// The returned slice is reused on the next call.
func (b *Backend) PollEvents() []input.Event {
	b.events = b.events[:0]
	for b.screen.HasPendingEvent() {
		switch ev := b.screen.PollEvent().(type) {
		case nil:
			return b.events
		case *tcell.EventKey:
			b.events = append(b.events, translateKey(ev))
		case *tcell.EventResize:
			b.screen.Sync()
			b.events = append(b.events, input.Event{Kind: input.Other})
		default:
			b.events = append(b.events, input.Event{Kind: input.Other})
		}
	}
	return b.events
}

func translateKey(ev *tcell.EventKey) input.Event {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return input.QuitEvent()
	case tcell.KeyEscape:
		return input.KeyDownEvent(input.KeyEscape)
	case tcell.KeyEnter:
		return input.KeyDownEvent(input.KeyEnter)
	case tcell.KeyF11:
		return input.KeyDownEvent(input.KeyF11)
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return input.KeyDownEvent(input.KeySpace)
		}
		if k, ok := input.DigitKey(ev.Rune()); ok {
			return input.KeyDownEvent(k)
		}
	}
	return input.Event{Kind: input.Other}
}

// Clear blanks the screen and, when windowed, draws the titled border.
func (b *Backend) Clear() {
	b.screen.Clear()
	if b.fullscreen {
		return
	}
	w, h := b.screen.Size()
	if w < 2 || h < 2 {
		return
	}
	for x := 1; x < w-1; x++ {
		b.screen.SetContent(x, 0, tcell.RuneHLine, nil, frameStyle)
		b.screen.SetContent(x, h-1, tcell.RuneHLine, nil, frameStyle)
	}
	for y := 1; y < h-1; y++ {
		b.screen.SetContent(0, y, tcell.RuneVLine, nil, frameStyle)
		b.screen.SetContent(w-1, y, tcell.RuneVLine, nil, frameStyle)
	}
	b.screen.SetContent(0, 0, tcell.RuneULCorner, nil, frameStyle)
	b.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, frameStyle)
	b.screen.SetContent(0, h-1, tcell.RuneLLCorner, nil, frameStyle)
	b.screen.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, frameStyle)
	b.put(2, 0, " "+b.title+" ", titleStyle, w-2)
}

// Present draws the recent log lines and flushes the screen.
func (b *Backend) Present() {
	if b.logLines != nil {
		b.drawLog()
	}
	b.screen.Show()
}

func (b *Backend) drawLog() {
	lines := b.logLines()
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}
	w, h := b.screen.Size()
	inset := 1
	if b.fullscreen {
		inset = 0
	}
	y := h - inset - len(lines)
	for _, line := range lines {
		if y >= inset {
			b.put(inset, y, line, logStyle, w-inset)
		}
		y++
	}
}

// DrawText maps pixel coordinates onto cells. Rows start under the top border.
func (b *Backend) DrawText(text string, x, y, size int32) {
	w, _ := b.screen.Size()
	b.put(int(x/cellW), 1+int(y/cellH), text, textStyle, w-1)
}

// TextWidth returns the display width of text in overlay pixels.
func (b *Backend) TextWidth(text string, size int32) int32 {
	return int32(runewidth.StringWidth(text)) * cellW
}

// Width returns the screen width in overlay pixels.
func (b *Backend) Width() int32 {
	w, _ := b.screen.Size()
	return int32(w) * cellW
}

// put writes s starting at column x, clipped before column limit.
func (b *Backend) put(x, y int, s string, style tcell.Style, limit int) {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if x+rw > limit {
			return
		}
		b.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
}
