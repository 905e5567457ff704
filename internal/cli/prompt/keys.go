package prompt

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// KeyCode identifies the kind of keystroke.
type KeyCode int

const (
	// KeyRune is a printable character, carried in Key.Rune.
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	// KeyInterrupt is Ctrl-C read while the terminal is in raw mode.
	KeyInterrupt
)

// Key is one keystroke.
type Key struct {
	Code KeyCode
	Rune rune
}

// KeySource yields keystrokes one at a time. Next blocks until a key is
// available and returns io.EOF when input ends.
type KeySource interface {
	Next() (Key, error)
}

// Control bytes recognized by ByteSource.
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	escape    = 0x1b
	del       = 0x7f
)

// ByteSource decodes keystrokes from a byte stream.
//
// "\r", "\n" and "\r\n" are each a single Enter. A lone Escape byte is
// KeyEscape; a CSI or SS3 sequence that arrives in the same read (arrow
// and function keys) is consumed and ignored. Ctrl-D ends input.
type ByteSource struct {
	r       *bufio.Reader
	afterCR bool
}

// NewByteSource creates a ByteSource reading from r.
func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: bufio.NewReader(r)}
}

// Next implements KeySource.
func (s *ByteSource) Next() (Key, error) {
	for {
		ch, size, err := s.r.ReadRune()
		if err != nil {
			return Key{}, err
		}

		afterCR := s.afterCR
		s.afterCR = false

		switch {
		case ch == '\n' && afterCR:
			continue
		case ch == '\r':
			s.afterCR = true
			return Key{Code: KeyEnter}, nil
		case ch == '\n':
			return Key{Code: KeyEnter}, nil
		case ch == escape:
			if s.skipSequence() {
				continue
			}
			return Key{Code: KeyEscape}, nil
		case ch == del || ch == backspace:
			return Key{Code: KeyBackspace}, nil
		case ch == ctrlC:
			return Key{Code: KeyInterrupt}, nil
		case ch == ctrlD:
			return Key{}, io.EOF
		case ch == utf8.RuneError && size == 1:
			continue
		default:
			return Key{Code: KeyRune, Rune: ch}, nil
		}
	}
}

// skipSequence consumes an escape sequence that is already buffered after
// an Escape byte. It reports whether one was consumed.
func (s *ByteSource) skipSequence() bool {
	if s.r.Buffered() == 0 {
		return false
	}

	next, err := s.r.Peek(1)
	if err != nil || (next[0] != '[' && next[0] != 'O') {
		return false
	}
	s.r.ReadByte()

	// Parameter and intermediate bytes run until a final byte in 0x40-0x7e.
	for s.r.Buffered() > 0 {
		b, err := s.r.ReadByte()
		if err != nil || (b >= 0x40 && b <= 0x7e) {
			break
		}
	}
	return true
}
