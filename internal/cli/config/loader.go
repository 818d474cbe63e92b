package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/shopfront-go/internal/infra/confloader"
)

// DefaultStateDir returns ~/.shopfront, or .shopfront when the home
// directory is unknown.
func DefaultStateDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shopfront"
	}
	return filepath.Join(homeDir, ".shopfront")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultStateDir(), "cli.yaml")
}

// Load merges defaults, the file at path (optional; empty means
// DefaultConfigPath) and SHOP_* environment variables, then validates.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	def := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path, true),
		confloader.WithEnvSections("api", "log"),
		confloader.WithDefaults(map[string]any{
			"api.url":     def.API.URL,
			"api.timeout": def.API.Timeout.String(),
			"mode":        def.Mode,
			"log.level":   def.Log.Level,
			"log.format":  def.Log.Format,
			"state_dir":   def.StateDir,
			"output":      def.Output,
		}),
	)

	cfg := &CLIConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLIConfig) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. Call it again after applying flags.
func (c *CLIConfig) Validate() error {
	c.normalize()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %q (%s)", fe.Namespace(), fmt.Sprint(fe.Value()), fe.ActualTag()))
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(msgs, "; "))
}

// Save writes cfg as YAML to path (empty means DefaultConfigPath) with
// owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
