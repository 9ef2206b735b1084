package audio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
)

// DefaultSockFileName ...
const DefaultSockFileName = "/tmp/wavetable-osc.sock"

// IPCInput holds the keys pressed by a client over a unix socket.
//
// Each line is a space separated command whose tokens are query-escaped:
//
//	press <key>
//	release <key>
//	release_all
type IPCInput struct {
	keys     *activeKeys
	path     string
	listener net.Listener
}

// ListenIPC ...
func ListenIPC(ctx context.Context, path string) (*IPCInput, error) {
	os.Remove(path)
	listener, err := new(net.ListenConfig).Listen(ctx, "unix", path)
	if err != nil {
		return nil, err
	}
	log.Printf("start listening %s...\n", path)
	return &IPCInput{
		keys:     newActiveKeys(),
		path:     path,
		listener: listener,
	}, nil
}

// Active ...
func (in *IPCInput) Active() []string {
	return in.keys.Active()
}

// Serve accepts one client at a time until ctx is cancelled. Keys are released
// when a client disconnects.
func (in *IPCInput) Serve(ctx context.Context) error {
	stopListening := context.AfterFunc(ctx, func() {
		in.listener.Close()
	})
	defer stopListening()
	for {
		conn, err := in.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				log.Println("Serve() ended.")
				return nil
			default:
			}
			return err
		}
		stop := context.AfterFunc(ctx, func() {
			conn.Close()
		})
		err = in.receiveCommands(ctx, conn)
		if stop() {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("error while closing connection: %v", cerr)
			}
		}
		in.keys.releaseAll()
		if err != nil {
			return err
		}
	}
}

func (in *IPCInput) receiveCommands(ctx context.Context, conn io.Reader) error {
	reader := bufio.NewReader(conn)
	var line []byte
loop:
	for {
		select {
		case <-ctx.Done():
			log.Println("Connection interrupted")
			break loop
		default:
		}
		next, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			break loop
		}
		if err != nil {
			if ctx.Err() != nil {
				break loop
			}
			return err
		}
		line = append(line, next...)
		if isPrefix {
			continue
		}
		command, err := parseCommand(string(line))
		line = line[:0]
		if err != nil {
			log.Printf("invalid command: %v\n", err)
			continue
		}
		if err := in.update(command); err != nil {
			log.Printf("error: %v\n", err)
		}
	}
	log.Println("receiveCommands() ended.")
	return nil
}

func parseCommand(line string) ([]string, error) {
	lineStr := strings.Fields(line)
	for i, item := range lineStr {
		escaped, err := url.QueryUnescape(item)
		if err != nil {
			return nil, err
		}
		lineStr[i] = escaped
	}
	return lineStr, nil
}

func (in *IPCInput) update(command []string) error {
	if len(command) == 0 {
		return nil
	}
	switch command[0] {
	case "press", "release":
		if len(command) != 2 {
			return fmt.Errorf("invalid command %v", command)
		}
		if command[0] == "press" {
			in.keys.press(command[1])
		} else {
			in.keys.release(command[1])
		}
	case "release_all":
		in.keys.releaseAll()
	default:
		return fmt.Errorf("unknown command %v", command[0])
	}
	return nil
}

// Close ...
func (in *IPCInput) Close() error {
	log.Println("Closing IPC...")
	err := in.listener.Close()
	os.Remove(in.path)
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
