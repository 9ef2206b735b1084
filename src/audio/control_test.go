package audio

import (
	"context"
	"testing"
	"time"
)

type recordingTarget struct {
	freqs []float64
}

func (r *recordingTarget) SetFrequency(freq float64) {
	r.freqs = append(r.freqs, freq)
}

func (r *recordingTarget) last() float64 {
	if len(r.freqs) == 0 {
		return 0
	}
	return r.freqs[len(r.freqs)-1]
}

type switchInput struct {
	keys []string
}

func (s *switchInput) Active() []string {
	return append([]string(nil), s.keys...)
}

func TestPollSingleNote(t *testing.T) {
	target := &recordingTarget{}
	c := &ControlLoop{Input: FixedInput{"A"}, Target: target, Octave: 4}
	c.Poll()
	expectEqual(t, len(target.freqs), 1)
	expectNearlyEqual(t, target.last(), 440)
}

func TestPollLastWins(t *testing.T) {
	target := &recordingTarget{}
	c := &ControlLoop{Input: FixedInput{"E", "C", "A"}, Target: target, Octave: 4}
	c.Poll()
	// applied in sorted order: A, C, E
	expectEqual(t, len(target.freqs), 3)
	expectNearlyEqual(t, target.freqs[0], 440)
	expectNearlyEqual(t, target.freqs[1], 261.625565)
	expectNearlyEqual(t, target.last(), 329.627557)
}

func TestPollNothingActive(t *testing.T) {
	target := &recordingTarget{}
	c := &ControlLoop{Input: FixedInput{}, Target: target, Octave: 4}
	c.Poll()
	expectEqual(t, len(target.freqs), 0)
}

func TestPollUnrecognized(t *testing.T) {
	target := &recordingTarget{}
	c := &ControlLoop{Input: FixedInput{"space", "H", "C9"}, Target: target, Octave: 4}
	c.Poll()
	expectEqual(t, len(target.freqs), 0)

	c.Fallback = 440
	c.Poll()
	expectEqual(t, len(target.freqs), 3)
	for _, f := range target.freqs {
		expectEqual(t, f, 440.0)
	}
}

func TestPollAbsoluteOctave(t *testing.T) {
	target := &recordingTarget{}
	c := &ControlLoop{Input: FixedInput{"A2"}, Target: target, Octave: 6}
	c.Poll()
	expectNearlyEqual(t, target.last(), 110)
}

func TestOctaveShift(t *testing.T) {
	target := &recordingTarget{}
	in := &switchInput{}
	c := &ControlLoop{Input: in, Target: target, Octave: 4}

	in.keys = []string{KeyOctaveUp}
	c.Poll()
	expectEqual(t, c.Octave, 5)
	// holding the key does not repeat
	c.Poll()
	expectEqual(t, c.Octave, 5)
	in.keys = nil
	c.Poll()
	// notes sort before the octave keys and use the octave in effect
	in.keys = []string{KeyOctaveUp, "A"}
	c.Poll()
	expectEqual(t, c.Octave, 6)
	expectNearlyEqual(t, target.last(), 880)
	in.keys = []string{"A"}
	c.Poll()
	expectNearlyEqual(t, target.last(), 1760)

	in.keys = []string{KeyOctaveDown}
	c.Poll()
	expectEqual(t, c.Octave, 5)
	expectEqual(t, len(target.freqs), 2)
}

func TestOctaveShiftClamped(t *testing.T) {
	in := &switchInput{}
	c := &ControlLoop{Input: in, Target: &recordingTarget{}, Octave: 0}
	in.keys = []string{KeyOctaveDown}
	c.Poll()
	expectEqual(t, c.Octave, 0)

	c.Octave = numOctaves - 1
	in.keys = []string{KeyOctaveUp}
	c.prev = nil
	c.Poll()
	expectEqual(t, c.Octave, numOctaves-1)
}

func TestRunDrivesOscillator(t *testing.T) {
	osc := newTestOsc(t, 44100, 0, 1, 0, -1)
	c := &ControlLoop{Input: FixedInput{"A"}, Target: osc, Octave: 4, Interval: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()
	deadline := time.Now().Add(5 * time.Second)
	for osc.Frequency() == 0 && time.Now().Before(deadline) {
		osc.Sample()
	}
	cancel()
	expectNoError(t, <-done)
	expectNearlyEqual(t, osc.Frequency(), 440)
}
