package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvcli/internal/cli/output"
	"github.com/yndnr/kvcli/internal/core/domain"
)

// ListCommand returns the one-shot list subcommand.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all records",
		Flags:   []cli.Flag{outputFlag()},
		Action:  runList,
	}
}

// GetCommand returns the one-shot get subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one record",
		ArgsUsage: "KEY",
		Flags:     []cli.Flag{outputFlag()},
		Action:    runGet,
	}
}

func runList(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}
	if err := requireDiagnostics(c, rt); err != nil {
		return err
	}

	records, err := rt.session.ListRecords(rt.ctx)
	switch {
	case errors.Is(err, domain.ErrStoreEmpty):
		records = []domain.Record{}
	case err != nil:
		return fmt.Errorf("list records: %w", err)
	}

	format, err := formatFor(c, rt)
	if err != nil {
		return err
	}

	if format == output.FormatTable && len(records) == 0 {
		fmt.Fprintln(writer(c), "The store is empty.")
		return nil
	}
	return output.Write(writer(c), format, output.Records(records))
}

func runGet(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	if c.NArg() != 1 {
		return cli.Exit("usage: kvcli get KEY", 2)
	}

	format, err := formatFor(c, rt)
	if err != nil {
		return err
	}

	key, err := domain.NormalizeKey(c.Args().First(), rt.cfg.Records.MaxKeyLength)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid key: %s", describe(err)), 2)
	}

	if err := requireDiagnostics(c, rt); err != nil {
		return err
	}

	rec, err := rt.session.GetRecord(rt.ctx, key)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return cli.Exit(fmt.Sprintf("key %q not found", key), 1)
	case err != nil:
		return fmt.Errorf("get record: %w", err)
	}

	return output.Write(writer(c), format, output.Record(rec))
}

// outputFlag lets one-shot commands take -o after the command name.
func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format: table, json, yaml",
	}
}

// formatFor returns the command's -o when given, else the configured format.
func formatFor(c *cli.Context, rt *runtime) (output.Format, error) {
	if !c.IsSet("output") {
		return rt.format, nil
	}
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return "", cli.Exit(err.Error(), 2)
	}
	return format, nil
}
