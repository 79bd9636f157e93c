package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xxxsen/common/logger"

	"github.com/xxxsen/oaichat/internal/search"
)

type Config struct {
	Port        int              `json:"port"`
	LogConfig   logger.LogConfig `json:"log_config"`
	CORSOrigins []string         `json:"cors_origins"`
	Chat        ChatConfig       `json:"chat"`
}

type ChatConfig struct {
	SystemPrompt    string           `json:"system_prompt"`
	CourtesyPhrases []string         `json:"courtesy_phrases"`
	Search          search.Config    `json:"search"`
	Completion      CompletionConfig `json:"completion"`
}

type CompletionConfig struct {
	Provider   string `json:"provider"`
	Endpoint   string `json:"endpoint"`
	Key        string `json:"key"`
	Deployment string `json:"deployment"`
	APIVersion string `json:"api_version"`
	Model      string `json:"model"`
	MaxTokens  int    `json:"max_tokens"`

	// Data, when set, replaces the fields above as provider arguments.
	Data map[string]interface{} `json:"data"`
}

// ProviderArgs is what the ai provider factory decodes.
func (c CompletionConfig) ProviderArgs() interface{} {
	if c.Data != nil {
		return c.Data
	}
	return c
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Port == 0 {
		return fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Chat.Search.Top < 0 {
		return fmt.Errorf("chat.search.top must not be negative")
	}
	if cfg.Chat.Search.Top == 0 {
		cfg.Chat.Search.Top = search.DefaultTop
	}
	if cfg.Chat.Search.APIVersion == "" {
		cfg.Chat.Search.APIVersion = search.DefaultAPIVersion
	}
	if len(cfg.Chat.Search.ContentFields) == 0 {
		cfg.Chat.Search.ContentFields = search.DefaultContentFields
	}
	cfg.Chat.Completion.Provider = strings.ToLower(strings.TrimSpace(cfg.Chat.Completion.Provider))
	if cfg.Chat.Completion.Provider == "" {
		cfg.Chat.Completion.Provider = "azure"
	}
	if cfg.Chat.Completion.MaxTokens < 0 {
		return fmt.Errorf("chat.completion.max_tokens must not be negative")
	}
	return nil
}
