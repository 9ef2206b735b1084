package audio

import (
	"strconv"
	"strings"
)

//go:generate go run ../gentables/main.go -- notes.gen.go

// DefaultOctave is the octave that bare note names resolve to initially.
const DefaultOctave = 4

// NoteNames lists the twelve semitones of an octave, starting at C.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = map[string]string{
	"Db": "C#",
	"Eb": "D#",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
}

func semitoneOf(name string) (int, bool) {
	if sharp, ok := flatNames[name]; ok {
		name = sharp
	}
	for i, n := range NoteNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// NoteFrequency resolves an input identifier to Hz.
//
// A bare name ("A", "C#", "Bb") is looked up in the given octave; a name with
// an octave suffix ("A4", "Eb2") uses its own octave. Anything else, including
// octaves outside the table, is reported as not found.
func NoteFrequency(id string, octave int) (float64, bool) {
	name := strings.TrimRightFunc(id, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if name != id {
		o, err := strconv.Atoi(id[len(name):])
		if err != nil {
			return 0, false
		}
		octave = o
	}
	semitone, ok := semitoneOf(name)
	if !ok || octave < 0 || octave >= numOctaves {
		return 0, false
	}
	return noteFreqs[octave][semitone], true
}

// MidiNoteName converts a MIDI note number to an identifier such as "A4".
func MidiNoteName(note int) string {
	return NoteNames[note%12] + strconv.Itoa(note/12-1)
}
