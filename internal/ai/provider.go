package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"

	DefaultMaxTokens = 512

	// NoResponse stands in for a completion that carried no usable content.
	NoResponse = "(No response)"
)

var ErrUnavailable = errors.New("ai provider not configured")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages  []Message
	MaxTokens int
}

type IProvider interface {
	Name() string
	// Complete returns ErrUnavailable without any network call when the
	// provider lacks credentials. An empty string means the response had no
	// content in the expected shape.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}

type readier interface {
	Ready() bool
}

// Ready reports whether p has the credentials it needs. Providers that do
// not say are assumed ready.
func Ready(p IProvider) bool {
	if p == nil {
		return false
	}
	if r, ok := p.(readier); ok {
		return r.Ready()
	}
	return true
}

type CompletionError struct {
	StatusCode int
	Body       string
}

func (e *CompletionError) Error() string {
	return e.Body
}

type ProviderFactory func(args interface{}) (IProvider, error)

var registry = map[string]ProviderFactory{}

func Register(name string, factory ProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func NewProvider(name string, args interface{}) (IProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("completion.provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode ai provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode ai provider config: %w", err)
	}
	return nil
}

func maxTokens(req *CompletionRequest) int {
	if req.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return req.MaxTokens
}
