package audio

import (
	"context"
	"net"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

func expectKeys(t *testing.T, actual []string, expected ...string) {
	t.Helper()
	if len(actual) == 0 && len(expected) == 0 {
		return
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func TestActiveKeys(t *testing.T) {
	a := newActiveKeys()
	a.press("E")
	a.press("C")
	a.press("C")
	expectKeys(t, a.Active(), "C", "E")
	a.release("C")
	a.release("G")
	expectKeys(t, a.Active(), "E")
	a.press("A")
	a.releaseAll()
	expectKeys(t, a.Active())
}

func TestFixedInputReturnsCopy(t *testing.T) {
	in := FixedInput{"A", "B"}
	keys := in.Active()
	keys[0] = "C"
	expectKeys(t, in.Active(), "A", "B")
}

func TestMidiMessages(t *testing.T) {
	m := &MidiInput{keys: newActiveKeys()}
	m.handleMessage([]byte{0x90, 69, 100})
	m.handleMessage([]byte{0x91, 60, 10})
	expectKeys(t, m.Active(), "A4", "C4")
	// note-on with zero velocity releases
	m.handleMessage([]byte{0x90, 69, 0})
	expectKeys(t, m.Active(), "C4")
	m.handleMessage([]byte{0x80, 60, 64})
	expectKeys(t, m.Active())
	// control change and short messages are ignored
	m.handleMessage([]byte{0xb0, 1, 127})
	m.handleMessage([]byte{0x90, 60})
	expectKeys(t, m.Active())
}

func TestPressedKeys(t *testing.T) {
	state := make([]uint8, 512)
	expectKeys(t, pressedKeys(state))
	state[sdl.SCANCODE_H] = 1
	state[sdl.SCANCODE_X] = 1
	state[sdl.SCANCODE_Q] = 1
	expectKeys(t, pressedKeys(state), "A", KeyOctaveUp)
	expectKeys(t, pressedKeys(state[:1]))
}

func TestParseCommand(t *testing.T) {
	command, err := parseCommand("press  C%23 ")
	expectNoError(t, err)
	expectKeys(t, command, "press", "C#")
	_, err = parseCommand("press %zz")
	if err == nil {
		t.Error("expected error for invalid escape")
	}
}

func TestIPCUpdate(t *testing.T) {
	in := &IPCInput{keys: newActiveKeys()}
	expectNoError(t, in.update([]string{"press", "A"}))
	expectNoError(t, in.update([]string{"press", "C#"}))
	expectKeys(t, in.Active(), "A", "C#")
	expectNoError(t, in.update([]string{"release", "A"}))
	expectKeys(t, in.Active(), "C#")
	expectNoError(t, in.update([]string{"release_all"}))
	expectKeys(t, in.Active())
	expectNoError(t, in.update(nil))
	if err := in.update([]string{"press"}); err == nil {
		t.Error("expected error for missing key")
	}
	if err := in.update([]string{"play", "A"}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestIPCReceiveCommands(t *testing.T) {
	in := &IPCInput{keys: newActiveKeys()}
	r := strings.NewReader("press A\nbogus\npress E\nrelease A\n")
	expectNoError(t, in.receiveCommands(context.Background(), r))
	expectKeys(t, in.Active(), "E")
}

func waitForKeys(t *testing.T, in Input, expected ...string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if reflect.DeepEqual(in.Active(), expected) || len(expected) == 0 && len(in.Active()) == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected %v, but got: %v", expected, in.Active())
}

func TestIPCServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	path := filepath.Join(t.TempDir(), "test.sock")
	in, err := ListenIPC(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() {
		done <- in.Serve(ctx)
	}()

	conn, err := net.Dial("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = conn.Write([]byte("press A\npress C\n"))
	expectNoError(t, err)
	waitForKeys(t, in, "A", "C")
	// disconnecting releases everything
	expectNoError(t, conn.Close())
	waitForKeys(t, in)

	conn, err = net.Dial("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	_, err = conn.Write([]byte("press G\n"))
	expectNoError(t, err)
	waitForKeys(t, in, "G")

	cancel()
	select {
	case err := <-done:
		expectNoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return")
	}
	expectNoError(t, in.Close())
}

func TestFindPort(t *testing.T) {
	names := []string{"Midi Through:0", "USB Keystation:0"}
	cases := []struct {
		port string
		want int
	}{
		{"", 0},
		{"1", 1},
		{"Keystation", 1},
		{"Through", 0},
	}
	for _, c := range cases {
		i, err := findPort(names, c.port)
		expectNoError(t, err)
		expectEqual(t, i, c.want)
	}
	for _, port := range []string{"2", "-1", "Launchpad"} {
		if _, err := findPort(names, port); err == nil {
			t.Errorf("%q should not resolve", port)
		}
	}
	if _, err := findPort(nil, ""); err == nil {
		t.Error("expected error without ports")
	}
}
