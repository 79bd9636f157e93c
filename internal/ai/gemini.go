package ai

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

type geminiConfig struct {
	Key      string `json:"key"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"`
}

type geminiProvider struct {
	apiKey  string
	model   string
	baseURL string
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Ready() bool {
	return p.apiKey != "" && p.model != ""
}

func (p *geminiProvider) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if !p.Ready() {
		return "", ErrUnavailable
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return "", &CompletionError{Body: err.Error()}
	}
	contents, config := geminiContents(req)
	resp, err := client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", &CompletionError{Body: err.Error()}
	}
	return resp.Text(), nil
}

// geminiContents maps the chat messages onto genai: the system message
// becomes the system instruction, skipped when blank.
func geminiContents(req *CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens(req)),
	}
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			if strings.TrimSpace(m.Content) != "" {
				config.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
			}
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	return contents, config
}

func createGeminiFactory(args interface{}) (IProvider, error) {
	cfg := &geminiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	return &geminiProvider{
		apiKey:  strings.TrimSpace(cfg.Key),
		model:   strings.TrimSpace(cfg.Model),
		baseURL: strings.TrimSpace(cfg.Endpoint),
	}, nil
}

func init() {
	Register("gemini", createGeminiFactory)
}
