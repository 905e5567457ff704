package command

import (
	"context"
	"errors"

	"github.com/yndnr/kvcli/internal/cli/output"
	"github.com/yndnr/kvcli/internal/core/domain"
)

// List prints every record, numbered from 1 in the order received.
// An empty store is a normal result.
func List(ctx context.Context, env *Env) error {
	records, err := env.Session.ListRecords(ctx)
	switch {
	case errors.Is(err, domain.ErrStoreEmpty):
		records = nil
	case err != nil:
		env.printf("List failed: %v\n", err)
		return nil
	}

	if len(records) == 0 {
		env.printf("The store is empty.\n")
		return nil
	}

	output.WriteNumbered(env.Out, records)
	env.printf("%d record(s).\n", len(records))
	return nil
}
