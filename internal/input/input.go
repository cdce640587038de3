package input

import (
	"fmt"
	"strings"
)

// Kind says what happened. Backends report anything they do not model as Other.
type Kind uint8

const (
	Other Kind = iota
	Quit
	KeyDown
)

// Key is a backend-neutral key code. Backends translate their native codes into these values.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF11
)

var keyNames = map[Key]string{
	KeyEscape: "escape",
	KeyEnter:  "enter",
	KeySpace:  "space",
	Key0:      "0",
	Key1:      "1",
	Key2:      "2",
	Key3:      "3",
	Key4:      "4",
	Key5:      "5",
	Key6:      "6",
	Key7:      "7",
	Key8:      "8",
	Key9:      "9",
	KeyF11:    "f11",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey maps a config key name ("9", "escape", "F11") to a Key. Matching ignores case.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "esc" {
		return KeyEscape, nil
	}
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key name: %q", name)
}

// DigitKey returns the key for a rune '0'..'9'.
func DigitKey(r rune) (Key, bool) {
	if r < '0' || r > '9' {
		return KeyUnknown, false
	}
	return Key0 + Key(r-'0'), true
}

// Event is one polled input event. Key is only meaningful for KeyDown.
type Event struct {
	Kind Kind
	Key  Key
}

// QuitEvent and KeyDownEvent are shorthands used by backends and tests.
func QuitEvent() Event { return Event{Kind: Quit} }

func KeyDownEvent(k Key) Event { return Event{Kind: KeyDown, Key: k} }

// Source drains pending events without blocking. An empty slice means nothing is queued.
type Source interface {
	PollEvents() []Event
}
