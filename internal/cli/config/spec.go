// Package config defines the CLI configuration structure.
package config

import (
	"time"

	"github.com/yndnr/kvcli/internal/core/domain"
)

// CLIConfig is the configuration for kvcli.
type CLIConfig struct {
	// Base URL of the record service.
	Server string `koanf:"server"`

	// HealthPath is probed by the reachability check (/health or /api/health).
	HealthPath string `koanf:"health_path"`

	// Output is the one-shot command format: table, json, yaml.
	Output string `koanf:"output"`

	HTTP        HTTPConfig        `koanf:"http"`
	Records     RecordsConfig     `koanf:"records"`
	Auth        AuthConfig        `koanf:"auth"`
	Diagnostics DiagnosticsConfig `koanf:"diagnostics"`
	Log         LogConfig         `koanf:"log"`
}

// HTTPConfig controls outbound requests.
type HTTPConfig struct {
	// Timeout is the ceiling applied to every request.
	Timeout time.Duration `koanf:"timeout"`

	// TunnelHeader suppresses the interstitial warning page of the tunnel
	// in front of the service. Empty disables it.
	TunnelHeader      string `koanf:"tunnel_header"`
	TunnelHeaderValue string `koanf:"tunnel_header_value"`

	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string `koanf:"ca_file"`
}

// RecordsConfig holds client-side record validation limits.
type RecordsConfig struct {
	MaxKeyLength int `koanf:"max_key_length"`
}

// AuthConfig controls the admin login prompt.
type AuthConfig struct {
	// RetryInterval paces consecutive login attempts.
	RetryInterval time.Duration `koanf:"retry_interval"`
}

// DiagnosticsConfig controls the startup check sequence.
type DiagnosticsConfig struct {
	CheckMeta  bool `koanf:"check_meta"`
	WaitOnFail bool `koanf:"wait_on_fail"`
}

// LogConfig mirrors logger.Config.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:     "http://localhost:5000",
		HealthPath: "/health",
		Output:     "table",
		HTTP: HTTPConfig{
			Timeout:           10 * time.Second,
			TunnelHeader:      "ngrok-skip-browser-warning",
			TunnelHeaderValue: "true",
		},
		Records: RecordsConfig{
			MaxKeyLength: domain.DefaultMaxKeyLength,
		},
		Auth: AuthConfig{
			RetryInterval: time.Second,
		},
		Diagnostics: DiagnosticsConfig{
			CheckMeta: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// defaultMap flattens Default into the dotted keys confloader expects.
func defaultMap() map[string]any {
	return Default().Flatten()
}

// Flatten returns the configuration keyed by dotted path. Durations are
// rendered as strings ("10s").
func (c *CLIConfig) Flatten() map[string]any {
	return map[string]any{
		"server":                   c.Server,
		"health_path":              c.HealthPath,
		"output":                   c.Output,
		"http.timeout":             c.HTTP.Timeout.String(),
		"http.tunnel_header":       c.HTTP.TunnelHeader,
		"http.tunnel_header_value": c.HTTP.TunnelHeaderValue,
		"http.ca_file":             c.HTTP.CAFile,
		"records.max_key_length":   c.Records.MaxKeyLength,
		"auth.retry_interval":      c.Auth.RetryInterval.String(),
		"diagnostics.check_meta":   c.Diagnostics.CheckMeta,
		"diagnostics.wait_on_fail": c.Diagnostics.WaitOnFail,
		"log.level":                c.Log.Level,
		"log.format":               c.Log.Format,
	}
}
