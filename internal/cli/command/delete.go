package command

import (
	"context"
	"errors"

	"github.com/yndnr/kvcli/internal/core/domain"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
)

// Delete looks a record up by key, shows it and deletes it once the
// user confirms with y. A missing key or a failed lookup asks for
// another key; Escape at the key prompt returns to the menu.
func Delete(ctx context.Context, env *Env) error {
	for {
		key, err := env.readKey("Key to delete (Esc to cancel): ")
		if err != nil {
			return env.inputEnded(err, "Delete")
		}

		rec, err := env.Session.GetRecord(ctx, key)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrRecordNotFound):
			env.printf("Key %q not found.\n", key)
			continue
		default:
			env.printf("Lookup failed: %v\n", err)
			continue
		}

		env.printf("Found %s\n", rec)
		ok, err := env.Reader.Confirm("Delete this record?")
		if err != nil {
			return err
		}
		if !ok {
			env.printf("Deletion cancelled.\n")
			return nil
		}

		err = env.Session.DeleteRecord(ctx, rec.Key)
		switch {
		case err == nil:
			env.printf("Deleted %s.\n", rec)
		case rejectedForAuth(err):
			env.printf("Delete rejected: %v. Log in as admin first.\n", err)
		default:
			logger.L(ctx).Warn("delete failed", "key", rec.Key, "error", err)
			env.printf("Delete failed: %v\n", err)
		}
		return nil
	}
}
