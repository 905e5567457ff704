// Package command defines the kvcli application using urfave/cli/v2.
//
//   - root.go: application, global flags, runtime setup and teardown
//   - interactive.go: the default action (diagnostics, login, menu)
//   - env.go: what interactive commands share
//   - upload.go, delete.go, list.go, get.go, admin.go: menu commands
//   - diagnose.go, records.go, config.go: one-shot subcommands
//
// Interactive commands report failures to the user and return to the
// menu. Only failed startup diagnostics end the run with an error.
package command
