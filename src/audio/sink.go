package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/hajimehoshi/oto"
	"github.com/jfreymuth/pulse"
)

const samplesPerCycle = 2048
const bufferSizeInBytes = samplesPerCycle * bitDepthInBytes * channelNum // should be >= 4096

// Sink plays a stream until ctx is cancelled. The device is acquired when the
// sink is created and released by Close.
type Sink interface {
	Play(ctx context.Context, stream *SampleStream) error
	Close() error
}

// NewSink opens the backend with the given name.
func NewSink(backend string, sampleRate int, out string, duration time.Duration) (Sink, error) {
	switch backend {
	case "oto":
		return NewOtoSink(sampleRate)
	case "pulse":
		return NewPulseSink(sampleRate)
	case "beep":
		return NewBeepSink(sampleRate)
	case "wav":
		return NewWavSink(out, duration)
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

func checkSampleRate(want int, stream *SampleStream) error {
	if stream.SampleRate() != want {
		return fmt.Errorf("stream sample rate %d does not match device rate %d", stream.SampleRate(), want)
	}
	return nil
}

// ----- oto ----- //

// OtoSink ...
type OtoSink struct {
	sampleRate int
	otoContext *oto.Context
}

// NewOtoSink opens the default output device.
func NewOtoSink(sampleRate int) (*OtoSink, error) {
	otoContext, err := oto.NewContext(sampleRate, channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	return &OtoSink{
		sampleRate: sampleRate,
		otoContext: otoContext,
	}, nil
}

// Play ...
func (s *OtoSink) Play(ctx context.Context, stream *SampleStream) error {
	if err := checkSampleRate(s.sampleRate, stream); err != nil {
		return err
	}
	p := s.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()

	// block until cancel() called
	if _, err := io.CopyBuffer(p, stream.PCM16(ctx), make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	log.Println("Play() ended.")
	return nil
}

// Close ...
func (s *OtoSink) Close() error {
	log.Println("Closing audio device...")
	return s.otoContext.Close()
}

// ----- pulse ----- //

// PulseSink plays through a PulseAudio server.
type PulseSink struct {
	sampleRate int
	client     *pulse.Client
}

// NewPulseSink connects to the default server.
func NewPulseSink(sampleRate int) (*PulseSink, error) {
	client, err := pulse.NewClient(pulse.ClientApplicationName("wavetable-osc"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pulse server: %w", err)
	}
	return &PulseSink{
		sampleRate: sampleRate,
		client:     client,
	}, nil
}

// Play ...
func (s *PulseSink) Play(ctx context.Context, stream *SampleStream) error {
	if err := checkSampleRate(s.sampleRate, stream); err != nil {
		return err
	}
	p, err := s.client.NewPlayback(
		pulse.Float32Reader(stream.ReadFloat32),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(s.sampleRate),
	)
	if err != nil {
		return err
	}
	defer p.Close()
	p.Start()
	err = waitPlayback(ctx, pulsePollInterval, p.Closed, p.Error)
	if !p.Closed() {
		p.Stop()
	}
	log.Println("Play() ended.")
	return err
}

const pulsePollInterval = 100 * time.Millisecond

// waitPlayback blocks until ctx is done or the server closes the stream.
func waitPlayback(ctx context.Context, interval time.Duration, closed func() bool, streamErr func() error) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return streamErr()
		case <-t.C:
			if closed() {
				if err := streamErr(); err != nil {
					return fmt.Errorf("playback stream closed: %w", err)
				}
				return errors.New("playback stream closed by server")
			}
		}
	}
}

// Close ...
func (s *PulseSink) Close() error {
	log.Println("Closing pulse client...")
	s.client.Close()
	return nil
}

// ----- beep ----- //

// BeepSink plays through the beep speaker.
type BeepSink struct {
	sampleRate beep.SampleRate
}

// NewBeepSink initializes the speaker with a 100ms buffer.
func NewBeepSink(sampleRate int) (*BeepSink, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &BeepSink{sampleRate: sr}, nil
}

// Play ...
func (s *BeepSink) Play(ctx context.Context, stream *SampleStream) error {
	if err := checkSampleRate(int(s.sampleRate), stream); err != nil {
		return err
	}
	speaker.Play(stream.Streamer())
	<-ctx.Done()
	speaker.Clear()
	log.Println("Play() ended.")
	return nil
}

// Close ...
func (s *BeepSink) Close() error {
	log.Println("Closing speaker...")
	speaker.Close()
	return nil
}

// ----- wav ----- //

// WavSink renders a fixed length of the stream into a 16 bit mono WAV file.
type WavSink struct {
	path     string
	duration time.Duration
}

// NewWavSink ...
func NewWavSink(path string, duration time.Duration) (*WavSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is not passed")
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %v", duration)
	}
	return &WavSink{path: path, duration: duration}, nil
}

// Play returns once the file is written or ctx is cancelled.
func (s *WavSink) Play(ctx context.Context, stream *SampleStream) error {
	file, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("error while closing %s: %v", s.path, err)
		}
	}()
	format := beep.Format{
		SampleRate:  beep.SampleRate(stream.SampleRate()),
		NumChannels: stream.Channels(),
		Precision:   bitDepthInBytes,
	}
	src := stream.Streamer()
	interruptible := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		select {
		case <-ctx.Done():
			return 0, false
		default:
		}
		return src.Stream(samples)
	})
	if err := wav.Encode(file, beep.Take(format.SampleRate.N(s.duration), interruptible), format); err != nil {
		return err
	}
	log.Printf("wrote %v to %s\n", s.duration, s.path)
	return nil
}

// Close ...
func (s *WavSink) Close() error {
	return nil
}
