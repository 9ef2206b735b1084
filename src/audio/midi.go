package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/rtmididrv"
)

// MidiInput tracks the notes held on a MIDI IN port.
type MidiInput struct {
	keys *activeKeys
	done chan struct{}
}

// ListenToMidiIn starts listening in the background until ctx is done. port
// selects the MIDI IN by index or by part of its name; "" takes the first one.
// A missing driver or port is logged and leaves the input permanently silent.
func ListenToMidiIn(ctx context.Context, port string) *MidiInput {
	m := &MidiInput{
		keys: newActiveKeys(),
		done: make(chan struct{}),
	}
	go func() {
		defer close(m.done)
		if err := m.listen(ctx, port); err != nil {
			log.Printf("MIDI IN unavailable: %v\n", err)
		}
	}()
	return m
}

func (m *MidiInput) listen(ctx context.Context, port string) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("failed to initialize MIDI driver: %w", err)
	}
	defer closeLogged("MIDI driver", drv.Close)

	in, err := openMidiIn(drv, port)
	if err != nil {
		return err
	}
	defer closeLogged(in.String(), in.Close)

	if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
		m.handleMessage(data)
	}); err != nil {
		return fmt.Errorf("failed to set listener: %w", err)
	}
	defer closeLogged("MIDI listener", in.StopListening)
	log.Printf("listening %s...\n", in)
	<-ctx.Done()
	return nil
}

func openMidiIn(drv *rtmididrv.Driver, port string) (midi.In, error) {
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("failed to get MIDI IN: %w", err)
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	i, err := findPort(names, port)
	if err != nil {
		return nil, err
	}
	if err := ins[i].Open(); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", names[i], err)
	}
	return ins[i], nil
}

// findPort resolves port against the available names.
func findPort(names []string, port string) (int, error) {
	if len(names) == 0 {
		return 0, errors.New("MIDI IN not found")
	}
	if port == "" {
		return 0, nil
	}
	if i, err := strconv.Atoi(port); err == nil {
		if i < 0 || i >= len(names) {
			return 0, fmt.Errorf("MIDI IN %d out of range %v", i, names)
		}
		return i, nil
	}
	for i, name := range names {
		if strings.Contains(name, port) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("MIDI IN %q not in %v", port, names)
}

func closeLogged(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Printf("failed to close %s: %v\n", name, err)
	}
}

func (m *MidiInput) handleMessage(data []byte) {
	if len(data) < 3 {
		return
	}
	note := MidiNoteName(int(data[1] & 0x7f))
	if data[0]>>4 == 8 || data[0]>>4 == 9 && data[2] == 0 {
		m.keys.release(note)
	} else if data[0]>>4 == 9 && data[2] > 0 {
		m.keys.press(note)
	}
}

// Active ...
func (m *MidiInput) Active() []string {
	return m.keys.Active()
}

// Close waits for the device to be released. ctx must already be cancelled.
func (m *MidiInput) Close() error {
	<-m.done
	return nil
}
