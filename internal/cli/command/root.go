package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvcli/internal/cli/config"
	"github.com/yndnr/kvcli/internal/cli/connection"
	"github.com/yndnr/kvcli/internal/cli/output"
	"github.com/yndnr/kvcli/internal/infra/buildinfo"
	"github.com/yndnr/kvcli/internal/infra/tlsroots"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
	"github.com/yndnr/kvcli/internal/telemetry/metric"
)

const runtimeKey = "runtime"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "kvcli",
		Usage:   "Interactive client for the key/value record service",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			DiagnoseCommand(),
			ListCommand(),
			GetCommand(),
			ConfigCommand(),
		},
		Before: setup,
		After:  teardown,
		Action: runInteractive,
		// main reports errors and picks the exit code.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Record service base URL (default http://localhost:5000)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.kvcli/cli.yaml)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout (e.g. 5s)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format for one-shot commands: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log at info level and print request statistics on exit",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server     string
	ConfigPath string
	Output     string
	Verbose    bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:     c.String("server"),
		ConfigPath: c.String("config"),
		Output:     c.String("output"),
		Verbose:    c.Bool("verbose"),
	}
}

// flagOverrides maps explicitly set flags to config keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := map[string]any{}
	if c.IsSet("server") {
		overrides["server"] = c.String("server")
	}
	if c.IsSet("timeout") {
		overrides["http.timeout"] = c.Duration("timeout").String()
	}
	if c.IsSet("output") {
		overrides["output"] = c.String("output")
	}
	switch {
	case c.IsSet("log-level"):
		overrides["log.level"] = c.String("log-level")
	case c.Bool("verbose"):
		overrides["log.level"] = "info"
	}
	return overrides
}

// runtime is what setup builds once per run.
type runtime struct {
	cfg     *config.CLIConfig
	session *connection.Session
	metrics *metric.Registry
	format  output.Format
	ctx     context.Context
	verbose bool
}

// setup loads the configuration and opens the session.
func setup(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	cfg, err := config.Load(flags.ConfigPath, flagOverrides(c))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	tlsConfig, err := tlsroots.ClientConfig(cfg.HTTP.CAFile)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	metrics := metric.NewRegistry()
	client := connection.NewHTTPClient(cfg.Server, connection.Options{
		Timeout:           cfg.HTTP.Timeout,
		TunnelHeader:      cfg.HTTP.TunnelHeader,
		TunnelHeaderValue: cfg.HTTP.TunnelHeaderValue,
		TLSConfig:         tlsConfig,
		Metrics:           metrics,
	})

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	c.App.Metadata[runtimeKey] = &runtime{
		cfg:     cfg,
		session: connection.NewSession(client),
		metrics: metrics,
		format:  format,
		ctx:     logger.WithLogger(ctx, log),
		verbose: flags.Verbose,
	}

	log.Debug("configuration loaded", "server", client.BaseURL(), "timeout", cfg.HTTP.Timeout)
	return nil
}

// teardown releases the session and prints request statistics when verbose.
func teardown(c *cli.Context) error {
	rt := getRuntime(c)
	if rt == nil {
		return nil
	}
	defer rt.session.Close()

	if rt.verbose {
		return rt.metrics.WriteSummary(errWriter(c))
	}
	return nil
}

// getRuntime retrieves what setup built.
func getRuntime(c *cli.Context) *runtime {
	if rt, ok := c.App.Metadata[runtimeKey].(*runtime); ok {
		return rt
	}
	return nil
}

// mustRuntime is getRuntime for actions, which only run after setup.
func mustRuntime(c *cli.Context) (*runtime, error) {
	rt := getRuntime(c)
	if rt == nil {
		return nil, cli.Exit("not initialized", 2)
	}
	return rt, nil
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
