package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/kvcli/internal/cli/prompt"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
)

// SelectPrompt is shown after the menu.
const SelectPrompt = "Select an option: "

// Item is one menu entry.
type Item struct {
	Key   string
	Label string
	// Name identifies the command in logs.
	Name string
	// Run executes the command. Nil with Exit set ends the loop.
	Run  func(ctx context.Context) error
	Exit bool
}

// REPL represents the menu loop.
type REPL struct {
	title     string
	items     []Item
	reader    *prompt.Reader
	output    io.Writer
	completer *Completer
}

// New creates a new REPL.
func New(title string, items []Item, reader *prompt.Reader, output io.Writer) *REPL {
	return &REPL{
		title:     title,
		items:     items,
		reader:    reader,
		output:    output,
		completer: NewCompleter(items),
	}
}

// Run shows the menu until the user exits or input ends.
func (r *REPL) Run(ctx context.Context) error {
	r.printMenu()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.reader.Prompt(SelectPrompt, prompt.Plain)
		switch {
		case errors.Is(err, prompt.ErrCancelled):
			continue
		case errors.Is(err, io.EOF), errors.Is(err, prompt.ErrInterrupted):
			return nil
		case err != nil:
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		item, ok := r.completer.Resolve(line)
		if !ok {
			fmt.Fprintln(r.output, "Invalid selection.")
			continue
		}
		if item.Exit {
			fmt.Fprintln(r.output, "Goodbye.")
			return nil
		}

		done, err := r.execute(ctx, item)
		if done {
			return err
		}
		fmt.Fprintln(r.output)
		r.printMenu()
	}
}

// execute runs one command. It reports done when input ended inside
// the command, which ends the loop like it does at the menu.
func (r *REPL) execute(ctx context.Context, item Item) (bool, error) {
	if item.Run == nil {
		return false, nil
	}

	name := item.Name
	if name == "" {
		name = strings.ToLower(item.Label)
	}
	ctx = logger.WithCommand(ctx, name)

	err := item.Run(ctx)
	switch {
	case err == nil, errors.Is(err, prompt.ErrCancelled):
		return false, nil
	case errors.Is(err, io.EOF), errors.Is(err, prompt.ErrInterrupted):
		return true, nil
	case errors.Is(err, context.Canceled):
		return true, err
	default:
		logger.L(ctx).Debug("command failed", "error", err)
		fmt.Fprintf(r.output, "Error: %v\n", err)
		return false, nil
	}
}

func (r *REPL) printMenu() {
	if r.title != "" {
		fmt.Fprintf(r.output, "== %s ==\n", r.title)
	}
	for _, it := range r.items {
		fmt.Fprintf(r.output, "%s. %s\n", it.Key, it.Label)
	}
}
