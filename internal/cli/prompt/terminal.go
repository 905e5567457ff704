package prompt

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal reads keystrokes from a console. When the file is a terminal
// it is switched to raw mode for each key and restored afterwards, so the
// console behaves normally between prompts.
type Terminal struct {
	fd  int
	tty bool
	src *ByteSource
}

// NewTerminal wraps in, usually os.Stdin.
func NewTerminal(in *os.File) *Terminal {
	fd := int(in.Fd())
	return &Terminal{
		fd:  fd,
		tty: term.IsTerminal(fd),
		src: NewByteSource(in),
	}
}

// IsTerminal reports whether input is an interactive console.
func (t *Terminal) IsTerminal() bool {
	return t.tty
}

// Next implements KeySource.
func (t *Terminal) Next() (Key, error) {
	if !t.tty {
		return t.src.Next()
	}

	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return Key{}, fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(t.fd, state)

	return t.src.Next()
}
