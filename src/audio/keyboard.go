package audio

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

type keyBinding struct {
	scancode int
	key      string
}

// Two rows of a computer keyboard laid out like one octave of a piano.
var keyboardLayout = []keyBinding{
	{int(sdl.SCANCODE_A), "C"},
	{int(sdl.SCANCODE_W), "C#"},
	{int(sdl.SCANCODE_S), "D"},
	{int(sdl.SCANCODE_E), "D#"},
	{int(sdl.SCANCODE_D), "E"},
	{int(sdl.SCANCODE_F), "F"},
	{int(sdl.SCANCODE_T), "F#"},
	{int(sdl.SCANCODE_G), "G"},
	{int(sdl.SCANCODE_Y), "G#"},
	{int(sdl.SCANCODE_H), "A"},
	{int(sdl.SCANCODE_U), "A#"},
	{int(sdl.SCANCODE_J), "B"},
	{int(sdl.SCANCODE_Z), KeyOctaveDown},
	{int(sdl.SCANCODE_X), KeyOctaveUp},
}

// KeyboardInput polls the keyboard state of a small SDL window. SDL calls are
// made through sdl.Do, so the program must run inside sdl.Main.
type KeyboardInput struct {
	window *sdl.Window
}

// OpenKeyboardInput ...
func OpenKeyboardInput() (*KeyboardInput, error) {
	var window *sdl.Window
	var err error
	sdl.Do(func() {
		if err = sdl.Init(sdl.INIT_VIDEO); err != nil {
			return
		}
		window, err = sdl.CreateWindow("wavetable-osc", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, 320, 80, sdl.WINDOW_SHOWN)
		if err != nil {
			sdl.Quit()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard window: %w", err)
	}
	return &KeyboardInput{window: window}, nil
}

// Active ...
func (k *KeyboardInput) Active() []string {
	var active []string
	sdl.Do(func() {
		sdl.PumpEvents()
		state := sdl.GetKeyboardState()
		active = pressedKeys(state)
	})
	return active
}

func pressedKeys(state []uint8) []string {
	var active []string
	for _, b := range keyboardLayout {
		if b.scancode < len(state) && state[b.scancode] != 0 {
			active = append(active, b.key)
		}
	}
	return active
}

// Close ...
func (k *KeyboardInput) Close() error {
	var err error
	sdl.Do(func() {
		err = k.window.Destroy()
		sdl.Quit()
	})
	return err
}
