// Package config provides CLI configuration for kvcli.
//
//   - spec.go: CLIConfig struct and defaults (~/.kvcli/cli.yaml)
//   - loader.go: loading through confloader and validation
//
// The base endpoint address, request timeout, tunnel header and record
// limits all live here so that the commands never hard-code them.
package config
