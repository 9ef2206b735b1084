package audio

import (
	"sort"
	"sync"
)

// Input identifiers that shift the selected octave instead of playing a note.
const (
	KeyOctaveDown = "octave_down"
	KeyOctaveUp   = "octave_up"
)

// Input reports the identifiers that are held down at the moment of the call.
type Input interface {
	Active() []string
}

// ----- Active Keys ----- //

// activeKeys is a set of held identifiers shared between a device callback
// and the control loop.
type activeKeys struct {
	sync.Mutex
	dict map[string]struct{}
}

func newActiveKeys() *activeKeys {
	return &activeKeys{dict: make(map[string]struct{})}
}

func (a *activeKeys) press(key string) {
	a.Lock()
	a.dict[key] = struct{}{}
	a.Unlock()
}

func (a *activeKeys) release(key string) {
	a.Lock()
	delete(a.dict, key)
	a.Unlock()
}

func (a *activeKeys) releaseAll() {
	a.Lock()
	for key := range a.dict {
		delete(a.dict, key)
	}
	a.Unlock()
}

// Active returns a sorted snapshot.
func (a *activeKeys) Active() []string {
	a.Lock()
	keys := make([]string, 0, len(a.dict))
	for key := range a.dict {
		keys = append(keys, key)
	}
	a.Unlock()
	sort.Strings(keys)
	return keys
}

// FixedInput always reports the same identifiers.
type FixedInput []string

// Active ...
func (f FixedInput) Active() []string {
	return append([]string(nil), f...)
}
