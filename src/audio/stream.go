package audio

import (
	"context"
	"io"
	"log"
	"math"
	"time"

	"github.com/faiface/beep"
)

const (
	channelNum      = 1
	bitDepthInBytes = 2
)

// SampleStream exposes an oscillator as an endless mono sequence of samples.
// Each pull is exactly one oscillator tick; pacing is left to the sink.
type SampleStream struct {
	osc *Oscillator
}

// NewSampleStream ...
func NewSampleStream(osc *Oscillator) *SampleStream {
	return &SampleStream{osc: osc}
}

// Next pulls one sample.
func (s *SampleStream) Next() float64 {
	return s.osc.Sample()
}

// Channels ...
func (s *SampleStream) Channels() int {
	return channelNum
}

// SampleRate ...
func (s *SampleStream) SampleRate() int {
	return s.osc.SampleRate()
}

// Duration always reports false: the stream has no end of its own.
func (s *SampleStream) Duration() (time.Duration, bool) {
	return 0, false
}

// ----- PCM ----- //

// PCM16 returns a reader producing little-endian signed 16 bit samples.
// It returns io.EOF once ctx is done.
func (s *SampleStream) PCM16(ctx context.Context) io.Reader {
	return &pcm16Reader{ctx: ctx, stream: s}
}

type pcm16Reader struct {
	ctx    context.Context
	stream *SampleStream
}

func (r *pcm16Reader) Read(buf []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	sampleLength := len(buf) / bitDepthInBytes
	for i := 0; i < sampleLength; i++ {
		writeSample(buf[bitDepthInBytes*i:], r.stream.Next())
	}
	return sampleLength * bitDepthInBytes, nil
}

func writeSample(buf []byte, value float64) {
	if value > 1 {
		value = 1
	} else if value < -1 {
		value = -1
	}
	b := int16(value * math.MaxInt16)
	buf[0] = byte(b)
	buf[1] = byte(b >> 8)
}

// ReadFloat32 fills buf with samples. It never fails.
func (s *SampleStream) ReadFloat32(buf []float32) (int, error) {
	for i := range buf {
		buf[i] = float32(s.Next())
	}
	return len(buf), nil
}

// Streamer adapts the stream to beep, duplicating the mono signal on both channels.
func (s *SampleStream) Streamer() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := s.Next()
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}
