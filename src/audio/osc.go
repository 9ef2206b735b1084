package audio

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// ErrInvalidSampleRate is returned when an oscillator is built with a non-positive sample rate.
var ErrInvalidSampleRate = errors.New("sample rate must be positive")

// ----- OSC ----- //

// Oscillator reads a wave table with a fractional phase accumulator.
//
// Sample must be called from a single goroutine (the one driving playback).
// SetFrequency may be called from any goroutine at any time; the increment is
// stored atomically so a reader sees either the old or the new value.
type Oscillator struct {
	sampleRate int
	table      *WaveTable
	idx        float64       // owned by the sampling goroutine, in [0, len(table))
	idxInc     atomic.Uint64 // float64 bits
}

// NewOscillator returns a silent oscillator positioned at the start of the table.
func NewOscillator(sampleRate int, table *WaveTable) (*Oscillator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, sampleRate)
	}
	if table == nil || table.Len() < 2 {
		return nil, ErrInvalidTableSize
	}
	return &Oscillator{
		sampleRate: sampleRate,
		table:      table,
	}, nil
}

// SampleRate ...
func (o *Oscillator) SampleRate() int {
	return o.sampleRate
}

// SetFrequency takes effect from the next sample. Negative values play the
// table backwards and 0 holds the current position. Values whose increment is
// not finite are ignored.
func (o *Oscillator) SetFrequency(freq float64) {
	inc := freq * float64(len(o.table.values)) / float64(o.sampleRate)
	if math.IsNaN(inc) || math.IsInf(inc, 0) {
		return
	}
	o.idxInc.Store(math.Float64bits(inc))
}

// Frequency returns the frequency derived from the current increment.
func (o *Oscillator) Frequency() float64 {
	return o.increment() * float64(o.sampleRate) / float64(len(o.table.values))
}

func (o *Oscillator) increment() float64 {
	return math.Float64frombits(o.idxInc.Load())
}

// Sample returns the value at the current position and advances it.
func (o *Oscillator) Sample() float64 {
	value := o.lerp()
	o.idx = positiveMod(o.idx+o.increment(), float64(len(o.table.values)))
	return value
}

func (o *Oscillator) lerp() float64 {
	values := o.table.values
	index := int(o.idx)
	nextIndex := index + 1
	if nextIndex >= len(values) {
		nextIndex = 0
	}
	mod := o.idx - float64(index)
	return values[index]*(1-mod) + values[nextIndex]*mod
}

// positiveMod reduces a into [0, b) for b > 0.
func positiveMod(a float64, b float64) float64 {
	a = math.Mod(a, b)
	if a < 0 {
		a += b
	}
	// a tiny negative value plus b rounds to b; NaN fails both comparisons
	if !(a >= 0 && a < b) {
		a = 0
	}
	return a
}
