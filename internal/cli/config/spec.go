package config

import (
	"path/filepath"
	"time"
)

// Run modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// CLIConfig is the configuration for shopctl.
type CLIConfig struct {
	API      APIConfig `koanf:"api" yaml:"api"`
	Mode     string    `koanf:"mode" yaml:"mode" validate:"oneof=development production"`
	Log      LogConfig `koanf:"log" yaml:"log"`
	StateDir string    `koanf:"state_dir" yaml:"state_dir" validate:"required"`
	Output   string    `koanf:"output" yaml:"output" validate:"oneof=table wide json yaml"`
}

// APIConfig locates the storefront backend.
type APIConfig struct {
	URL     string        `koanf:"url" yaml:"url" validate:"required"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout" validate:"gt=0"`
	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty" validate:"omitempty,file"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `koanf:"format" yaml:"format" validate:"oneof=text json"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		API: APIConfig{
			URL:     "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Mode: ModeProduction,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		StateDir: DefaultStateDir(),
		Output:   "table",
	}
}

// Development reports whether request diagnostics should be emitted.
func (c *CLIConfig) Development() bool {
	return c.Mode == ModeDevelopment
}

// EffectiveLogLevel is the configured level, lowered to debug in
// development mode so request diagnostics are visible.
func (c *CLIConfig) EffectiveLogLevel() string {
	if c.Development() {
		return "debug"
	}
	return c.Log.Level
}

// SessionDir is where the persistent session token lives.
func (c *CLIConfig) SessionDir() string {
	return filepath.Join(c.StateDir, "session")
}

// HistoryPath is the interactive shell history file.
func (c *CLIConfig) HistoryPath() string {
	return filepath.Join(c.StateDir, "history")
}
