package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/oaichat/internal/ai"
	"github.com/xxxsen/oaichat/internal/config"
	"github.com/xxxsen/oaichat/internal/intent"
	"github.com/xxxsen/oaichat/internal/search"
	"github.com/xxxsen/oaichat/internal/service"
)

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
	return cfg, nil
}

func newChatService(cfg *config.Config) (*service.ChatService, error) {
	classifier, err := intent.NewClassifier(cfg.Chat.CourtesyPhrases)
	if err != nil {
		return nil, fmt.Errorf("init intent classifier: %w", err)
	}
	provider, err := ai.NewProvider(cfg.Chat.Completion.Provider, cfg.Chat.Completion.ProviderArgs())
	if err != nil {
		return nil, fmt.Errorf("init ai provider: %w", err)
	}
	searcher := search.NewClient(cfg.Chat.Search, &http.Client{})
	chat := service.NewChatService(classifier, searcher, provider, cfg.Chat.SystemPrompt, cfg.Chat.Completion.MaxTokens)
	logutil.GetLogger(context.Background()).Info("chat service ready",
		zap.Bool("search_enabled", chat.SearchEnabled()),
		zap.Bool("completion_enabled", chat.CompletionEnabled()),
		zap.String("provider", chat.ProviderName()),
	)
	return chat, nil
}
