package clock

import (
	"testing"
	"time"
)

func TestTicksAdvance(t *testing.T) {
	c := New()
	c.start = time.Now().Add(-1500 * time.Millisecond)
	if got := c.Ticks(); got < 1500 || got > 2500 {
		t.Errorf("Ticks() = %d, want about 1500", got)
	}
}

func TestDelay(t *testing.T) {
	c := New()
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	c.Delay(0)
	c.Delay(16)
	if len(slept) != 1 || slept[0] != 16*time.Millisecond {
		t.Errorf("slept = %v, want [16ms]", slept)
	}
}
