package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/yndnr/kvcli/internal/cli/prompt"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
)

type recorder struct {
	calls []string
}

func (rec *recorder) item(key, label string, err error) Item {
	return Item{
		Key:   key,
		Label: label,
		Run: func(ctx context.Context) error {
			rec.calls = append(rec.calls, label)
			logger.L(ctx).Info("ran")
			return err
		},
	}
}

func newTestREPL(input string, items []Item) (*REPL, *bytes.Buffer) {
	out := &bytes.Buffer{}
	reader := prompt.NewReader(prompt.NewByteSource(strings.NewReader(input)), out)
	return New("kvcli", items, reader, out), out
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit item", "7\n"},
		{"exit by label", "exit\n"},
		{"EOF", ""},
		{"ctrl-c", "\x03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			r, _ := newTestREPL(tt.input, []Item{
				rec.item("1", "Upload", nil),
				{Key: "7", Label: "Exit", Exit: true},
			})

			if err := r.Run(context.Background()); err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
			if len(rec.calls) != 0 {
				t.Errorf("calls = %v, want none", rec.calls)
			}
		})
	}
}

func TestREPL_Run_Dispatch(t *testing.T) {
	rec := &recorder{}
	r, out := newTestREPL("1\n\x1b\n\n2\n9\nup\n7\n", []Item{
		rec.item("1", "Upload", nil),
		rec.item("2", "List", errors.New("boom")),
		{Key: "7", Label: "Exit", Exit: true},
	})

	var logs bytes.Buffer
	log, err := logger.New(logger.Config{Level: "info", Output: &logs})
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Run(logger.WithLogger(context.Background(), log)); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if got := strings.Join(rec.calls, ","); got != "Upload,List,Upload" {
		t.Errorf("calls = %s", got)
	}
	for _, name := range []string{"upload", "list"} {
		if !strings.Contains(logs.String(), "command="+name) {
			t.Errorf("log lines not tagged with %s:\n%s", name, logs.String())
		}
	}

	output := out.String()
	if !strings.Contains(output, "Error: boom") {
		t.Error("command failure should be reported")
	}
	if strings.Count(output, "Invalid selection.") != 1 {
		t.Errorf("output = %q, want one invalid selection", output)
	}
	if !strings.Contains(output, "1. Upload") || !strings.Contains(output, "== kvcli ==") {
		t.Errorf("menu not printed:\n%s", output)
	}
}

func TestREPL_Run_CancelledCommandReturnsToMenu(t *testing.T) {
	rec := &recorder{}
	r, out := newTestREPL("1\n7\n", []Item{
		rec.item("1", "Upload", prompt.ErrCancelled),
		{Key: "7", Label: "Exit", Exit: true},
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if strings.Contains(out.String(), "Error:") {
		t.Error("cancellation is not an error")
	}
}

func TestREPL_Run_InputEndsInsideCommand(t *testing.T) {
	rec := &recorder{}
	r, _ := newTestREPL("1\n1\n", []Item{
		rec.item("1", "Upload", io.EOF),
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("calls = %d, loop should end when input ends", len(rec.calls))
	}
}

func TestREPL_Run_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := newTestREPL("1\n", nil)
	if err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
