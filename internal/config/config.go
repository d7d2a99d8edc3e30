package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"bagelbot/internal/engine"
)

// Config represents the application configuration
type Config struct {
	OpenAIKey   string `yaml:"openai_key"`
	Model       string `yaml:"model"`
	DatabaseURL string `yaml:"database_url"`

	LLMTimeout time.Duration `yaml:"llm_timeout"`

	Store engine.StoreInfo `yaml:"store"`

	Neighborhoods map[string]string `yaml:"neighborhoods"`
}

// Load reads configuration from a yaml file, applies defaults, and lets the
// environment override the API key.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Model:       "gpt-4o-mini",
		DatabaseURL: "bagelbot.db",
		LLMTimeout:  8 * time.Second,
		Store: engine.StoreInfo{
			Name:    "Bagel Bros",
			Hours:   "6am to 3pm, seven days a week",
			Address: "214 Essex Street",
		},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAIKey = key
	}
	return cfg, nil
}
