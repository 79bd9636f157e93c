package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const defaultAzureAPIVersion = "2024-02-15-preview"

type azureConfig struct {
	Endpoint   string `json:"endpoint"`
	Key        string `json:"key"`
	Deployment string `json:"deployment"`
	APIVersion string `json:"api_version"`
}

type azureProvider struct {
	endpoint   string
	key        string
	deployment string
	apiVersion string
	client     *http.Client
}

func (p *azureProvider) Name() string {
	return "azure"
}

func (p *azureProvider) Ready() bool {
	return p.endpoint != "" && p.key != "" && p.deployment != ""
}

func (p *azureProvider) url() string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(p.endpoint, "/"), p.deployment, p.apiVersion)
}

func (p *azureProvider) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if !p.Ready() {
		return "", ErrUnavailable
	}
	header := http.Header{}
	header.Set("api-key", p.key)
	return postChat(ctx, p.client, p.url(), header, chatRequest{
		Messages:  toChatMessages(req.Messages),
		MaxTokens: maxTokens(req),
	})
}

func createAzureFactory(args interface{}) (IProvider, error) {
	cfg := &azureConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = defaultAzureAPIVersion
	}
	return &azureProvider{
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		key:        strings.TrimSpace(cfg.Key),
		deployment: strings.TrimSpace(cfg.Deployment),
		apiVersion: apiVersion,
		client:     http.DefaultClient,
	}, nil
}

func init() {
	Register("azure", createAzureFactory)
}
