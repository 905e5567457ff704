package command

import (
	"context"
	"errors"

	"github.com/yndnr/kvcli/internal/cli/prompt"
	"github.com/yndnr/kvcli/internal/core/domain"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
)

// Upload prompts for a key and an integer value and creates the record.
//
// An invalid key re-prompts for the key, an invalid value for the value.
// A rejected upload starts over at the key prompt. Escape at either
// prompt abandons the whole entry before anything is sent.
func Upload(ctx context.Context, env *Env) error {
	for {
		key, err := env.readKey("Key (Esc to cancel): ")
		if err != nil {
			return env.inputEnded(err, "Upload")
		}

		value, err := env.readValue()
		if err != nil {
			return env.inputEnded(err, "Upload")
		}

		rec := domain.Record{Key: key, Value: value}
		err = env.Session.CreateRecord(ctx, rec)
		switch {
		case err == nil:
			env.printf("Uploaded %s.\n", rec)
			return nil
		case errors.Is(err, domain.ErrKeyInUse):
			env.printf("Key %q is already in use. Choose another key.\n", key)
		case rejectedForAuth(err):
			env.printf("Upload rejected: %v. Log in as admin first.\n", err)
		default:
			logger.L(ctx).Warn("upload failed", "key", key, "error", err)
			env.printf("Upload failed: %v\n", err)
		}
	}
}

// readValue prompts until the input parses as an integer.
func (e *Env) readValue() (int, error) {
	for {
		raw, err := e.Reader.Prompt("Value (Esc to cancel): ", prompt.Plain)
		if err != nil {
			return 0, err
		}

		v, err := domain.ParseValue(raw)
		if err != nil {
			e.printf("Value must be an integer.\n")
			continue
		}
		return v, nil
	}
}
