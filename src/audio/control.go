package audio

import (
	"context"
	"log"
	"sort"
	"time"
)

// DefaultPollInterval is how often the control loop samples its input.
const DefaultPollInterval = 5 * time.Millisecond

// FrequencySetter is implemented by *Oscillator.
type FrequencySetter interface {
	SetFrequency(freq float64)
}

// ----- Control Loop ----- //

// ControlLoop retunes a single voice from polled input. When several notes are
// held they are applied in sorted order and the last one wins.
type ControlLoop struct {
	Input    Input
	Target   FrequencySetter
	Octave   int
	Interval time.Duration
	// Fallback is applied for identifiers that are not notes. 0 leaves the
	// target unchanged.
	Fallback float64

	prev map[string]struct{}
}

// Run polls until ctx is cancelled.
func (c *ControlLoop) Run(ctx context.Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			log.Println("ControlLoop interrupted")
			break loop
		case <-t.C:
			c.Poll()
		}
	}
	log.Println("ControlLoop ended.")
	return nil
}

// Poll reads the input once and applies it.
func (c *ControlLoop) Poll() {
	active := c.Input.Active()
	sort.Strings(active)
	pressed := make(map[string]struct{}, len(active))
	for _, key := range active {
		pressed[key] = struct{}{}
		_, held := c.prev[key]
		switch key {
		case KeyOctaveDown:
			if !held {
				c.shiftOctave(-1)
			}
			continue
		case KeyOctaveUp:
			if !held {
				c.shiftOctave(1)
			}
			continue
		}
		freq, ok := NoteFrequency(key, c.Octave)
		if !ok {
			if c.Fallback == 0 {
				continue
			}
			freq = c.Fallback
		}
		c.Target.SetFrequency(freq)
	}
	c.prev = pressed
}

func (c *ControlLoop) shiftOctave(delta int) {
	octave := c.Octave + delta
	if octave < 0 || octave >= numOctaves {
		return
	}
	c.Octave = octave
	log.Printf("octave: %d\n", octave)
}
