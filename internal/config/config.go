// Package config holds all ImpactSim configuration: YAML file with
// defaults, environment overrides, and the credential-source capability
// injected into the engine.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all ImpactSim configuration.
type Config struct {
	Name      string `yaml:"name"`
	Workspace string `yaml:"workspace"`

	LLM     LLMConfig     `yaml:"llm"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the Gemini client.
type LLMConfig struct {
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	Temperature     float64 `yaml:"temperature"`
	Timeout         string  `yaml:"timeout"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:      "impactsim",
		Workspace: ".",
		LLM: LLMConfig{
			Model:       "gemini-2.5-flash",
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
			Temperature: 0.2,
			Timeout:     "120s",
		},
		Server: ServerConfig{
			Addr:     ":8090",
			BasePath: "/v0",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist. A .env file in the working directory is
// loaded first so env overrides can come from it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional; absence is not an error

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key, ok := lookupFirst(credentialVars); ok {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("IMPACTSIM_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if url := os.Getenv("IMPACTSIM_BASE_URL"); url != "" {
		c.LLM.BaseURL = url
	}
	if addr := os.Getenv("IMPACTSIM_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if ws := os.Getenv("IMPACTSIM_WORKSPACE"); ws != "" {
		c.Workspace = ws
	}
}

// GetLLMTimeout returns the LLM timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// Validate validates the configuration. A missing credential is reported
// here so surfaces can explain why a run will fail before attempting one.
func (c *Config) Validate() error {
	if _, ok := c.Credentials().Resolve(); !ok {
		return fmt.Errorf("no API credential configured (set GEMINI_API_KEY or llm.api_key)")
	}
	return nil
}
