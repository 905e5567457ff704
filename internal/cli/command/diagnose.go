package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvcli/internal/cli/diagnose"
)

// DiagnoseCommand returns the diagnose subcommand.
func DiagnoseCommand() *cli.Command {
	return &cli.Command{
		Name:    "diagnose",
		Aliases: []string{"diag"},
		Usage:   "Run the startup checks against the service and exit",
		Action:  runDiagnose,
	}
}

func runDiagnose(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	report := diagnose.Run(rt.ctx, rt.session, diagnoseOptions(rt))
	report.Print(writer(c))

	if !report.OK {
		return cli.Exit("diagnostics failed", 1)
	}
	return nil
}

// requireDiagnostics gates the one-shot record commands like the
// interactive session: nothing is read from the store until every check
// passed. The report goes to stderr, and only on failure, so stdout keeps
// just the command's output.
func requireDiagnostics(c *cli.Context, rt *runtime) error {
	report := diagnose.Run(rt.ctx, rt.session, diagnoseOptions(rt))
	if report.OK {
		return nil
	}
	report.Print(errWriter(c))
	return cli.Exit("startup diagnostics failed", 1)
}

func diagnoseOptions(rt *runtime) diagnose.Options {
	return diagnose.Options{
		HealthPath: rt.cfg.HealthPath,
		CheckMeta:  rt.cfg.Diagnostics.CheckMeta,
	}
}
