package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// scripted replays a fixed key sequence, then io.EOF.
type scripted struct {
	keys []Key
	read int
}

func (s *scripted) Next() (Key, error) {
	if s.read >= len(s.keys) {
		return Key{}, io.EOF
	}
	k := s.keys[s.read]
	s.read++
	return k, nil
}

func runes(s string) []Key {
	var keys []Key
	for _, r := range s {
		keys = append(keys, Key{Code: KeyRune, Rune: r})
	}
	return keys
}

func TestReader_ReadLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mode    Mode
		want    string
		wantErr error
		echo    string
	}{
		{"plain", "score\n", Plain, "score", nil, "score\r\n"},
		{"empty line is valid", "\n", Plain, "", nil, "\r\n"},
		{"masked", "pw\n", Masked, "pw", nil, "**\r\n"},
		{"backspace", "abc\x7f\x7fd\n", Plain, "ad", nil, "abc\b \b\b \bd\r\n"},
		{"backspace on empty is no-op", "\x7f\x7fa\n", Plain, "a", nil, "a\r\n"},
		{"escape discards buffer", "abc\x1b", Plain, "", ErrCancelled, "abc [Cancelled]\r\n"},
		{"escape on empty", "\x1b", Plain, "", ErrCancelled, " [Cancelled]\r\n"},
		{"ctrl-c", "ab\x03", Plain, "", ErrInterrupted, "ab^C\r\n"},
		{"eof on empty", "", Plain, "", io.EOF, ""},
		{"eof returns partial line", "tail", Plain, "tail", nil, "tail\r\n"},
		{"tab ignored", "a\tb\n", Plain, "ab", nil, "ab\r\n"},
		{"spaces kept", " a b \n", Plain, " a b ", nil, " a b \r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := NewReader(NewByteSource(strings.NewReader(tt.input)), &out)

			got, err := r.ReadLine(tt.mode)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadLine() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ReadLine() = %q, want %q", got, tt.want)
			}
			if out.String() != tt.echo {
				t.Errorf("echo = %q, want %q", out.String(), tt.echo)
			}
		})
	}
}

func TestReader_CancelStopsReading(t *testing.T) {
	src := &scripted{keys: append(append(runes("ab"), Key{Code: KeyEscape}), runes("cd")...)}
	r := NewReader(src, nil)

	if _, err := r.ReadLine(Plain); !errors.Is(err, ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}
	if src.read != 3 {
		t.Errorf("keys consumed = %d, want 3", src.read)
	}

	got, err := r.ReadLine(Plain)
	if err != nil || got != "cd" {
		t.Errorf("next ReadLine() = %q, %v; cancel must not leak into the next line", got, err)
	}
}

func TestReader_MaskedNeverEchoesSecret(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(NewByteSource(strings.NewReader("hunter2\n")), &out)

	got, err := r.ReadLine(Masked)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hunter2" {
		t.Errorf("ReadLine() = %q", got)
	}
	if strings.Contains(out.String(), "hunter") {
		t.Errorf("echo %q leaks the secret", out.String())
	}
}

func TestReader_Prompt(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(NewByteSource(strings.NewReader("k\n")), &out)

	got, err := r.Prompt("Key: ", Plain)
	if err != nil || got != "k" {
		t.Fatalf("Prompt() = %q, %v", got, err)
	}
	if out.String() != "Key: k\r\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestReader_Confirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr error
	}{
		{"lower y", "y", true, nil},
		{"upper Y", "Y", true, nil},
		{"n", "n", false, nil},
		{"other letter", "x", false, nil},
		{"enter", "\n", false, nil},
		{"escape", "\x1b", false, nil},
		{"yes word only reads y", "yes", true, nil},
		{"ctrl-c", "\x03", false, ErrInterrupted},
		{"eof", "", false, io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := NewReader(NewByteSource(strings.NewReader(tt.input)), &out)

			got, err := r.Confirm("Delete this record?")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Confirm() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Delete this record? (y/n): ") {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestReader_ReadKey(t *testing.T) {
	r := NewReader(NewByteSource(strings.NewReader("\x1b")), nil)

	k, err := r.ReadKey()
	if err != nil {
		t.Fatal(err)
	}
	if k.Code != KeyEscape {
		t.Errorf("ReadKey() = %+v, want Escape", k)
	}
}
