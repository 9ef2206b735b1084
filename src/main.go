package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jinjor/wavetable-osc/src/audio"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"
)

var (
	backend    = flag.String("backend", "oto", "playback backend: oto, pulse, beep or wav")
	inputName  = flag.String("input", "keyboard", "input source: keyboard, midi, ipc or none")
	shapeName  = flag.String("shape", "sine", "wave shape: sine, square, triangle or sawtooth")
	tableSize  = flag.Int("table-size", audio.DefaultTableSize, "samples per period")
	sampleRate = flag.Int("sample-rate", 44100, "output sample rate")
	octave     = flag.Int("octave", audio.DefaultOctave, "initial octave for keyboard notes")
	poll       = flag.Duration("poll", audio.DefaultPollInterval, "input polling interval")
	freq       = flag.Float64("freq", 400, "initial frequency in Hz")
	out        = flag.String("out", "out.wav", "output file for the wav backend")
	duration   = flag.Duration("duration", 5*time.Second, "length rendered by the wav backend")
	sock       = flag.String("sock", audio.DefaultSockFileName, "socket path for the ipc input")
	midiPort   = flag.String("midi-port", "", "MIDI IN port index or name, first port if empty")
	fallback   = flag.Float64("fallback", 0, "frequency for unrecognized input, 0 ignores it")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	// SDL calls made by the keyboard input are dispatched to this thread.
	sdl.Main(func() {
		if err := run(); err != nil {
			log.Fatalf("error: %v\n", err)
		}
		log.Println("main() ended.")
	})
}

func run() error {
	shape, err := audio.ParseShape(*shapeName)
	if err != nil {
		return err
	}
	table, err := shape.Build(*tableSize)
	if err != nil {
		return err
	}
	osc, err := audio.NewOscillator(*sampleRate, table)
	if err != nil {
		return err
	}
	osc.SetFrequency(*freq)
	stream := audio.NewSampleStream(osc)

	sink, err := audio.NewSink(*backend, *sampleRate, *out, *duration)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Printf("error while closing sink: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		select {
		case sig := <-signalCh:
			log.Printf("Caught signal %s: shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	input, closer, err := openInput(gctx, g)
	if err != nil {
		return err
	}
	if input != nil {
		loop := newControlLoop(input, osc)
		g.Go(func() error {
			return loop.Run(gctx)
		})
	}
	g.Go(func() error {
		// the wav sink finishes on its own; stop everything else with it
		defer cancel()
		return sink.Play(gctx, stream)
	})
	err = g.Wait()
	cancel()
	if closer != nil {
		if err := closer.Close(); err != nil {
			log.Printf("error while closing input: %v", err)
		}
	}
	return err
}

func newControlLoop(input audio.Input, target audio.FrequencySetter) *audio.ControlLoop {
	return &audio.ControlLoop{
		Input:    input,
		Target:   target,
		Octave:   *octave,
		Interval: *poll,
		Fallback: *fallback,
	}
}

func openInput(ctx context.Context, g *errgroup.Group) (audio.Input, io.Closer, error) {
	switch *inputName {
	case "none":
		return nil, nil, nil
	case "keyboard":
		in, err := audio.OpenKeyboardInput()
		if err != nil {
			return nil, nil, err
		}
		return in, in, nil
	case "midi":
		in := audio.ListenToMidiIn(ctx, *midiPort)
		return in, in, nil
	case "ipc":
		in, err := audio.ListenIPC(ctx, *sock)
		if err != nil {
			return nil, nil, err
		}
		g.Go(func() error {
			return in.Serve(ctx)
		})
		return in, in, nil
	}
	return nil, nil, fmt.Errorf("unknown input %q", *inputName)
}
