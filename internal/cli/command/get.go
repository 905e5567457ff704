package command

import (
	"context"
	"errors"

	"github.com/yndnr/kvcli/internal/core/domain"
)

// Get prompts for a key and shows the record stored under it.
func Get(ctx context.Context, env *Env) error {
	key, err := env.readKey("Key (Esc to cancel): ")
	if err != nil {
		return env.inputEnded(err, "Lookup")
	}

	rec, err := env.Session.GetRecord(ctx, key)
	switch {
	case err == nil:
		env.printf("%s\n", rec)
	case errors.Is(err, domain.ErrRecordNotFound):
		env.printf("Key %q not found.\n", key)
	default:
		env.printf("Lookup failed: %v\n", err)
	}
	return nil
}
