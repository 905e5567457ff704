package command

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvcli/internal/cli/auth"
	"github.com/yndnr/kvcli/internal/cli/config"
	"github.com/yndnr/kvcli/internal/cli/connection"
	"github.com/yndnr/kvcli/internal/cli/prompt"
	"github.com/yndnr/kvcli/internal/core/domain"
)

// Env is what every interactive command works with.
type Env struct {
	Session *connection.Session
	Reader  *prompt.Reader
	Auth    *auth.Manager
	Out     io.Writer
	Config  *config.CLIConfig
}

// NewEnv wires an Env around an open session.
func NewEnv(session *connection.Session, src prompt.KeySource, out io.Writer, cfg *config.CLIConfig, opts auth.Options) *Env {
	reader := prompt.NewReader(src, out)
	return &Env{
		Session: session,
		Reader:  reader,
		Auth:    auth.NewManager(session, reader, out, opts),
		Out:     out,
		Config:  cfg,
	}
}

// keySource picks the key source for the app's input.
func keySource(c *cli.Context) prompt.KeySource {
	in := c.App.Reader
	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(*os.File); ok {
		return prompt.NewTerminal(f)
	}
	return prompt.NewByteSource(in)
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

// readKey prompts until the input is a valid key.
func (e *Env) readKey(label string) (string, error) {
	for {
		raw, err := e.Reader.Prompt(label, prompt.Plain)
		if err != nil {
			return "", err
		}

		key, err := domain.NormalizeKey(raw, e.Config.Records.MaxKeyLength)
		if err != nil {
			e.printf("Invalid key: %s.\n", describe(err))
			continue
		}
		return key, nil
	}
}

// inputEnded turns a prompt error into the command's result. Cancel
// ends the command normally; anything else is passed up.
func (e *Env) inputEnded(err error, what string) error {
	if errors.Is(err, prompt.ErrCancelled) {
		e.printf("%s cancelled.\n", what)
		return nil
	}
	return err
}

// describe renders err for the user without error codes.
func describe(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		if de.Details != "" {
			return de.Details
		}
		return de.Message
	}
	return err.Error()
}

// rejectedForAuth reports whether err is a 401 or 403 from the service.
func rejectedForAuth(err error) bool {
	status := connection.StatusOf(err)
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
