package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file location relative to the working directory
const DefaultConfigPath = ".promptlift/config.yaml"

// Config represents the CLI configuration
type Config struct {
	Gateway      GatewayConfig      `yaml:"gateway" mapstructure:"gateway"`
	Optimization OptimizationConfig `yaml:"optimization" mapstructure:"optimization"`
	Prompt       PromptConfig       `yaml:"prompt" mapstructure:"prompt"`
	Ledger       LedgerConfig       `yaml:"ledger" mapstructure:"ledger"`
	Pricing      PricingConfig      `yaml:"pricing" mapstructure:"pricing"`
}

// GatewayConfig contains gateway connection settings
type GatewayConfig struct {
	URL     string `yaml:"url" mapstructure:"url"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"`
}

// OptimizationConfig contains prompt optimization settings
type OptimizationConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Level   string `yaml:"level" mapstructure:"level"`

	// TargetReduction is the percentage reduction the system-prompt
	// compressor aims for before escalating to a harsher level
	TargetReduction float64 `yaml:"target_reduction" mapstructure:"target_reduction"`

	// Passes overrides the level preset when non-nil
	Passes *PassesConfig `yaml:"passes,omitempty" mapstructure:"passes"`
}

// PassesConfig selects individual optimization passes
type PassesConfig struct {
	CollapseWhitespace    bool `yaml:"collapse_whitespace" mapstructure:"collapse_whitespace"`
	RemoveFillerPhrases   bool `yaml:"remove_filler_phrases" mapstructure:"remove_filler_phrases"`
	AbbreviateConnectives bool `yaml:"abbreviate_connectives" mapstructure:"abbreviate_connectives"`
	RestructureSentences  bool `yaml:"restructure_sentences" mapstructure:"restructure_sentences"`
	DropQualifiers        bool `yaml:"drop_qualifiers" mapstructure:"drop_qualifiers"`
}

// PromptConfig contains system-prompt assembly defaults
type PromptConfig struct {
	DefaultModel string `yaml:"default_model" mapstructure:"default_model"`
	Domain       string `yaml:"domain" mapstructure:"domain"`
	Complexity   string `yaml:"complexity" mapstructure:"complexity"`
	OutputFormat string `yaml:"output_format" mapstructure:"output_format"`
	MaxTokens    int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// LedgerConfig contains usage-ledger storage settings
type LedgerConfig struct {
	// Type selects the storage backend (memory, sqlite, postgres, redis)
	Type string `yaml:"type" mapstructure:"type"`

	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty" mapstructure:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres,omitempty" mapstructure:"postgres"`
	Redis    RedisConfig    `yaml:"redis,omitempty" mapstructure:"redis"`
}

// SQLiteConfig contains SQLite-specific settings
type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PostgresConfig contains Postgres-specific settings
type PostgresConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database string `yaml:"database" mapstructure:"database"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	SSLMode  string `yaml:"ssl_mode" mapstructure:"ssl_mode"`
}

// RedisConfig contains Redis-specific settings
type RedisConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database int    `yaml:"database" mapstructure:"database"`
	Username string `yaml:"username,omitempty" mapstructure:"username"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
}

// DefaultConfig returns a fully-specified default configuration
func DefaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			URL:     "http://localhost:8080",
			APIKey:  "",
			Timeout: 30,
		},
		Optimization: OptimizationConfig{
			Enabled:         true,
			Level:           "medium",
			TargetReduction: 20,
		},
		Prompt: PromptConfig{
			DefaultModel: "",
			Domain:       "General",
			Complexity:   "intermediate",
			OutputFormat: "paragraph",
			MaxTokens:    1024,
		},
		Ledger: LedgerConfig{
			Type: "sqlite",
			SQLite: SQLiteConfig{
				Path: ".promptlift/usage.db",
			},
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
			Redis: RedisConfig{
				Host: "localhost",
				Port: 6379,
			},
		},
		Pricing: GetDefaultPricingConfig(),
	}
}

// LoadConfig loads configuration from file, falling back to defaults
// when the file does not exist
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func getDefaultConfigPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultConfigPath
	}
	return filepath.Join(wd, DefaultConfigPath)
}
