package command

import (
	"context"
	"errors"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvcli/internal/cli/auth"
	"github.com/yndnr/kvcli/internal/cli/diagnose"
	"github.com/yndnr/kvcli/internal/cli/prompt"
	"github.com/yndnr/kvcli/internal/cli/repl"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
)

// runInteractive is the default action: diagnostics, optional admin
// login, then the menu until the user exits.
func runInteractive(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}

	env := NewEnv(rt.session, keySource(c), writer(c), rt.cfg, auth.Options{
		RetryInterval: rt.cfg.Auth.RetryInterval,
		Metrics:       rt.metrics,
	})
	return Interactive(rt.ctx, env)
}

// Interactive runs a full session on env. It fails only when the
// startup diagnostics fail.
func Interactive(ctx context.Context, env *Env) error {
	env.printf("Connecting to %s\n", env.Session.BaseURL())

	report := diagnose.Run(ctx, env.Session, diagnose.Options{
		HealthPath: env.Config.HealthPath,
		CheckMeta:  env.Config.Diagnostics.CheckMeta,
	})
	report.Print(env.Out)

	if !report.OK {
		if env.Config.Diagnostics.WaitOnFail {
			if _, err := env.Reader.Prompt("Press Enter to exit.", prompt.Plain); err != nil {
				logger.L(ctx).Debug("exit prompt ended", "error", err)
			}
		}
		return cli.Exit("startup diagnostics failed", 1)
	}

	env.printf("\n")
	if err := Login(ctx, env); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, prompt.ErrInterrupted) {
			return nil
		}
		return err
	}
	env.printf("\n")

	return repl.New("kvcli", menuItems(env), env.Reader, env.Out).Run(ctx)
}

func menuItems(env *Env) []repl.Item {
	bind := func(fn func(context.Context, *Env) error) func(context.Context) error {
		return func(ctx context.Context) error { return fn(ctx, env) }
	}

	return []repl.Item{
		{Key: "1", Label: "Upload", Name: "upload", Run: bind(Upload)},
		{Key: "2", Label: "Delete", Name: "delete", Run: bind(Delete)},
		{Key: "3", Label: "List", Name: "list", Run: bind(List)},
		{Key: "4", Label: "Get", Name: "get", Run: bind(Get)},
		{Key: "5", Label: "Admin login", Name: "login", Run: bind(Login)},
		{Key: "6", Label: "Admin status", Name: "admin-status", Run: bind(AdminStatus)},
		{Key: "7", Label: "Exit", Exit: true},
	}
}
