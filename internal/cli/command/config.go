package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvcli/internal/cli/config"
	"github.com/yndnr/kvcli/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Flags:  []cli.Flag{outputFlag()},
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Show the default config file path",
				Action: configPath,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt, err := mustRuntime(c)
	if err != nil {
		return err
	}
	format, err := formatFor(c, rt)
	if err != nil {
		return err
	}
	return output.Write(writer(c), format, output.Settings(rt.cfg.Flatten()))
}

func configPath(c *cli.Context) error {
	path := ParseGlobalFlags(c).ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fmt.Fprintln(writer(c), path)
	return nil
}
