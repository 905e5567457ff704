// Package config defines the CLI configuration structure.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/kvcli/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".kvcli", "cli.yaml")
}

// Load merges defaults, the config file, KVCLI_* environment variables and
// overrides (flags), in that order, and validates the result.
//
// An empty path means the default path, which may be absent. An explicit
// path must exist.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	fileOpt := confloader.WithConfigFile(path)
	if path == "" {
		fileOpt = confloader.WithOptionalConfigFile(DefaultConfigPath())
	}

	loader := confloader.NewLoader(
		confloader.WithDefaults(defaultMap()),
		fileOpt,
		confloader.WithOverrides(overrides),
	)

	cfg := &CLIConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLIConfig) normalize() {
	c.Server = strings.TrimRight(strings.TrimSpace(c.Server), "/")
	if c.HealthPath != "" && !strings.HasPrefix(c.HealthPath, "/") {
		c.HealthPath = "/" + c.HealthPath
	}
	c.Output = strings.ToLower(c.Output)
}

// Validate checks the configuration for values the client cannot run with.
func (c *CLIConfig) Validate() error {
	var violations []string

	if c.Server == "" {
		violations = append(violations, "server is required")
	}
	if c.HealthPath == "" {
		violations = append(violations, "health_path is required")
	}
	if c.HTTP.Timeout <= 0 {
		violations = append(violations, "http.timeout must be positive")
	}
	if c.Records.MaxKeyLength <= 0 {
		violations = append(violations, "records.max_key_length must be positive")
	}
	if c.Auth.RetryInterval < 0 {
		violations = append(violations, "auth.retry_interval cannot be negative")
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		violations = append(violations, fmt.Sprintf("output %q is not one of table, json, yaml", c.Output))
	}

	if len(violations) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(violations, "; "))
	}
	return nil
}
