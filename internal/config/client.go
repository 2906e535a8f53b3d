package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Export strategies for the viewer.
const (
	ExportServer = "server" // ask the backend for the file
	ExportLocal  = "local"  // render the file in-process
)

// ClientConfig is the quotectl configuration file.
type ClientConfig struct {
	BaseURL        string `yaml:"base_url"`
	ExportStrategy string `yaml:"export_strategy"`
	OutputDir      string `yaml:"output_dir"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	PDFFontPath    string `yaml:"pdf_font_path"`
}

// Dir returns ~/.config/quotedesk
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "quotedesk")
	}
	return filepath.Join(homeDir, ".config", "quotedesk")
}

// DefaultClientConfigPath returns ~/.config/quotedesk/config.yaml
func DefaultClientConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultClientConfig returns the settings used when no file exists.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:        "http://localhost:8080",
		ExportStrategy: ExportServer,
		OutputDir:      ".",
		Language:       "ar",
		TimeoutSeconds: 30,
	}
}

// LoadClient loads config from path, or returns defaults if the file doesn't exist.
func LoadClient(path string) (*ClientConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultClientConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultClientConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot act on.
func (c *ClientConfig) Validate() error {
	switch c.ExportStrategy {
	case ExportServer, ExportLocal:
	default:
		return fmt.Errorf("export_strategy must be %q or %q, got %q", ExportServer, ExportLocal, c.ExportStrategy)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Timeout is the per-request deadline.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save writes the config to the given path
func (c *ClientConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
