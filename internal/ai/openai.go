package ai

import (
	"context"
	"net/http"
	"strings"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type openAIConfig struct {
	Key     string `json:"key"`
	BaseURL string `json:"endpoint"`
	Model   string `json:"model"`
}

type openAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Ready() bool {
	return p.apiKey != "" && p.model != ""
}

func (p *openAIProvider) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if !p.Ready() {
		return "", ErrUnavailable
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/chat/completions"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.apiKey)
	return postChat(ctx, p.client, endpoint, header, chatRequest{
		Model:     p.model,
		Messages:  toChatMessages(req.Messages),
		MaxTokens: maxTokens(req),
	})
}

func createOpenAIFactory(args interface{}) (IProvider, error) {
	cfg := &openAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &openAIProvider{
		apiKey:  strings.TrimSpace(cfg.Key),
		baseURL: baseURL,
		model:   strings.TrimSpace(cfg.Model),
		client:  http.DefaultClient,
	}, nil
}

func init() {
	Register("openai", createOpenAIFactory)
}
