package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Mode selects how typed characters are echoed.
type Mode int

const (
	// Plain echoes each character.
	Plain Mode = iota
	// Masked echoes MaskRune instead, for secrets.
	Masked
)

// MaskRune is echoed for each character typed in Masked mode.
const MaskRune = '*'

var (
	// ErrCancelled is returned when the user pressed Escape. It is an
	// outcome, not a failure.
	ErrCancelled = errors.New("input cancelled")

	// ErrInterrupted is returned for Ctrl-C read in raw mode.
	ErrInterrupted = errors.New("interrupted")
)

// Echo strings. Raw mode disables output post-processing, so lines end
// with an explicit carriage return.
const (
	echoNewline   = "\r\n"
	echoErase     = "\b \b"
	echoCancelled = " [Cancelled]" + echoNewline
)

// Reader turns keystrokes into lines and answers.
type Reader struct {
	src KeySource
	out io.Writer
}

// NewReader creates a Reader that pulls keys from src and echoes to out.
// A nil out disables echo.
func NewReader(src KeySource, out io.Writer) *Reader {
	if out == nil {
		out = io.Discard
	}
	return &Reader{src: src, out: out}
}

// ReadLine reads one line.
//
// Enter returns the buffer, which may be empty. Escape discards it and
// returns ErrCancelled. Ctrl-C returns ErrInterrupted. At end of input a
// non-empty buffer is returned as a final line, otherwise io.EOF.
func (r *Reader) ReadLine(mode Mode) (string, error) {
	var buf []rune

	for {
		k, err := r.src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				r.echo(echoNewline)
				return string(buf), nil
			}
			return "", err
		}

		switch k.Code {
		case KeyEnter:
			r.echo(echoNewline)
			return string(buf), nil

		case KeyEscape:
			r.echo(echoCancelled)
			return "", ErrCancelled

		case KeyInterrupt:
			r.echo("^C" + echoNewline)
			return "", ErrInterrupted

		case KeyBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				r.echo(echoErase)
			}

		case KeyRune:
			if unicode.IsControl(k.Rune) {
				continue
			}
			buf = append(buf, k.Rune)
			if mode == Masked {
				r.echo(string(MaskRune))
			} else {
				r.echo(string(k.Rune))
			}
		}
	}
}

// Prompt prints label and reads a line.
func (r *Reader) Prompt(label string, mode Mode) (string, error) {
	r.echo(label)
	return r.ReadLine(mode)
}

// ReadKey reads a single keystroke without echo.
func (r *Reader) ReadKey() (Key, error) {
	return r.src.Next()
}

// Confirm asks a yes/no question answered by a single key. Only y or Y
// confirms; Enter, Escape and any other key refuse. An error is returned
// only when input ended or was interrupted.
func (r *Reader) Confirm(question string) (bool, error) {
	r.echo(fmt.Sprintf("%s (y/n): ", strings.TrimSpace(question)))

	k, err := r.src.Next()
	if err != nil {
		r.echo(echoNewline)
		return false, err
	}

	switch {
	case k.Code == KeyInterrupt:
		r.echo("^C" + echoNewline)
		return false, ErrInterrupted
	case k.Code == KeyRune && (k.Rune == 'y' || k.Rune == 'Y'):
		r.echo(string(k.Rune) + echoNewline)
		return true, nil
	case k.Code == KeyRune && !unicode.IsControl(k.Rune):
		r.echo(string(k.Rune) + echoNewline)
		return false, nil
	default:
		r.echo(echoNewline)
		return false, nil
	}
}

func (r *Reader) echo(s string) {
	io.WriteString(r.out, s)
}
