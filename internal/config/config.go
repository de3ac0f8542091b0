package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persisted per-user configuration. It is loaded once per
// invocation and treated as read-only by the translation pipeline.
type Config struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	// Endpoint overrides the provider's default completion endpoint.
	// Normally empty; used for proxies and in tests.
	Endpoint string `json:"endpoint,omitempty"`
}

// ModelChoice describes one selectable model in the setup wizard.
type ModelChoice struct {
	ID          string
	Name        string
	Description string
}

// GradientModels lists the DigitalOcean Gradient models, lightest to heaviest.
var GradientModels = []ModelChoice{
	{"llama3-8b-instruct", "Llama 3 8B", "fastest, lightweight"},
	{"mistral-nemo-instruct-2407", "Mistral Nemo", "fast, efficient"},
	{"alibaba-qwen3-32b", "Qwen 3 32B", "good balance"},
	{"llama3.3-70b-instruct", "Llama 3.3 70B", "powerful, open-source"},
	{"deepseek-r1-distill-llama-70b", "DeepSeek R1 70B", "reasoning focused"},
	{"anthropic-claude-3.5-haiku", "Claude 3.5 Haiku", "fast, premium"},
	{"openai-gpt-4o-mini", "GPT-4o Mini", "fast, premium"},
	{"anthropic-claude-3.7-sonnet", "Claude 3.7 Sonnet", "powerful, premium"},
	{"openai-gpt-4o", "GPT-4o", "powerful, premium"},
	{"anthropic-claude-opus-4.6", "Claude Opus 4.6", "top-tier"},
	{"openai-gpt-5-mini", "GPT-5 Mini", "latest gen"},
	{"openai-gpt-5", "GPT-5", "top-tier"},
}

// GroqModels lists the Groq-hosted models, lightest to heaviest.
var GroqModels = []ModelChoice{
	{"llama-3.1-8b-instant", "Llama 3.1 8B", "fastest, lightweight"},
	{"gemma2-9b-it", "Gemma 2 9B", "fast, efficient"},
	{"qwen/qwen3-32b", "Qwen 3 32B", "good balance"},
	{"llama-3.3-70b-versatile", "Llama 3.3 70B", "powerful, open-source"},
	{"deepseek-r1-distill-llama-70b", "DeepSeek R1 70B", "reasoning focused"},
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFileName), nil
}

// ModelsFor returns the selectable model catalog for a provider.
func ModelsFor(provider string) []ModelChoice {
	if provider == ProviderGroq {
		return GroqModels
	}
	return GradientModels
}

// DefaultModelFor returns the default model for a provider.
func DefaultModelFor(provider string) string {
	if provider == ProviderGroq {
		return DefaultGroqModel
	}
	return DefaultGradientModel
}

// DefaultEndpointFor returns the chat-completion endpoint for a provider.
func DefaultEndpointFor(provider string) string {
	if provider == ProviderGroq {
		return GroqAPIEndpoint
	}
	return GradientAPIEndpoint
}

// Load reads the configuration from disk. A missing file is reported as
// os.ErrNotExist so callers can trigger first-run setup.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config file %s is corrupted: %w", path, err)
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderGradient
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModelFor(cfg.Provider)
	}
	return &cfg, nil
}

// Validate reports whether the config is usable for a completion request.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGroq, ProviderGradient:
	default:
		return fmt.Errorf("unknown provider %q (expected %q or %q)", c.Provider, ProviderGroq, ProviderGradient)
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key is empty; run 'vox --setup'")
	}
	if c.Model == "" {
		return fmt.Errorf("model is empty; run 'vox --setup'")
	}
	return nil
}

// EndpointURL returns the effective completion endpoint.
func (c *Config) EndpointURL() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return DefaultEndpointFor(c.Provider)
}

// Save writes the configuration with owner-only permissions.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), ConfigDirPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, ConfigFilePermissions); err != nil {
		return err
	}
	// WriteFile does not tighten the mode on a pre-existing file.
	return os.Chmod(path, ConfigFilePermissions)
}

// Reset deletes the stored configuration. Returns true if a file was removed.
func Reset() (bool, error) {
	path, err := GetConfigPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}
