package audio

import (
	"errors"
	"fmt"
	"math"
)

// DefaultTableSize is the number of samples per period used when none is specified.
const DefaultTableSize = 64

// ErrInvalidTableSize is returned when a table would hold fewer than two samples.
var ErrInvalidTableSize = errors.New("wave table needs at least 2 samples")

// WaveTable holds one period of a waveform. It is read-only once built.
type WaveTable struct {
	values []float64
}

func newWaveTable(samples int, phaseToValue func(phase float64) float64) (*WaveTable, error) {
	if samples < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTableSize, samples)
	}
	wt := &WaveTable{
		values: make([]float64, samples),
	}
	for i := 0; i < samples; i++ {
		phase := 2.0 * math.Pi * float64(i) / float64(samples)
		wt.values[i] = phaseToValue(phase)
	}
	return wt, nil
}

// Len ...
func (wt *WaveTable) Len() int {
	return len(wt.values)
}

// At returns the i-th sample.
func (wt *WaveTable) At(i int) float64 {
	return wt.values[i]
}

// Values returns a copy of the samples.
func (wt *WaveTable) Values() []float64 {
	values := make([]float64, len(wt.values))
	copy(values, wt.values)
	return values
}

// Sine ...
func Sine(samples int) (*WaveTable, error) {
	return newWaveTable(samples, math.Sin)
}

// Square is +1 for the first half of the period and -1 for the second.
func Square(samples int) (*WaveTable, error) {
	return newWaveTable(samples, func(phase float64) float64 {
		if phase < math.Pi {
			return 1
		}
		return -1
	})
}

// Sawtooth ramps from -1 up to just below +1.
func Sawtooth(samples int) (*WaveTable, error) {
	return newWaveTable(samples, func(phase float64) float64 {
		return 2*(phase/(2.0*math.Pi)) - 1
	})
}

// Triangle starts at +1, falls to -1 at half period and rises back.
func Triangle(samples int) (*WaveTable, error) {
	return newWaveTable(samples, func(phase float64) float64 {
		return 4*math.Abs(phase/(2.0*math.Pi)-0.5) - 1
	})
}

// ----- Shape ----- //

// Shape selects one of the table builders.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSquare
	ShapeTriangle
	ShapeSawtooth
)

var shapeNames = []string{"sine", "square", "triangle", "sawtooth"}

// ParseShape ...
func ParseShape(s string) (Shape, error) {
	for i, name := range shapeNames {
		if name == s {
			return Shape(i), nil
		}
	}
	if s == "saw" {
		return ShapeSawtooth, nil
	}
	return 0, fmt.Errorf("unknown wave shape %q", s)
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Build generates a table of the shape with the given number of samples.
func (s Shape) Build(samples int) (*WaveTable, error) {
	switch s {
	case ShapeSine:
		return Sine(samples)
	case ShapeSquare:
		return Square(samples)
	case ShapeTriangle:
		return Triangle(samples)
	case ShapeSawtooth:
		return Sawtooth(samples)
	}
	return nil, fmt.Errorf("unknown wave shape %v", s)
}
