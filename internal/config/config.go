// Package config loads memchat settings from a YAML file with
// environment-variable overrides. The file is optional; defaults cover a
// bare environment with only an API key exported.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the main application configuration.
type Config struct {
	// Active provider: openai, anthropic, ollama (default: openai).
	Provider string `yaml:"provider"`
	// Model identifier sent to the backend.
	Model string `yaml:"model"`
	// Memory directory holding the sandboxed text files.
	MemoryDir string `yaml:"memory_dir"`

	OpenAI    ProviderSettings `yaml:"openai"`
	Anthropic ProviderSettings `yaml:"anthropic"`
	Ollama    ProviderSettings `yaml:"ollama"`
}

// ProviderSettings holds per-provider connection settings.
type ProviderSettings struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider:  "openai",
		Model:     "gpt-4o-mini",
		MemoryDir: "memory",
	}
}

// Load reads the config file (when present) and applies environment
// overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func configPath() string {
	if p := os.Getenv("MEMCHAT_CONFIG"); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "memchat", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "memchat", "config.yaml")
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("MEMCHAT_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("MEMCHAT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MEMCHAT_MEMORY_DIR"); v != "" {
		cfg.MemoryDir = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Ollama.BaseURL = v
	}
}

// SettingsFor returns the connection settings of the named provider.
func (c *Config) SettingsFor(providerName string) ProviderSettings {
	switch providerName {
	case "anthropic":
		return c.Anthropic
	case "ollama":
		return c.Ollama
	default:
		return c.OpenAI
	}
}
