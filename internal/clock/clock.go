// Package clock is the wall-clock timer used by backends that have no timer of their own.
package clock

import "time"

// Clock counts milliseconds since it was created.
type Clock struct {
	start time.Time
	sleep func(time.Duration)
}

// New returns a Clock starting at tick 0.
func New() *Clock {
	return &Clock{start: time.Now(), sleep: time.Sleep}
}

// Ticks returns milliseconds since New, truncated to 32 bits like a hardware tick counter.
func (c *Clock) Ticks() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// Delay blocks for ms milliseconds.
func (c *Clock) Delay(ms uint32) {
	if ms == 0 {
		return
	}
	c.sleep(time.Duration(ms) * time.Millisecond)
}
