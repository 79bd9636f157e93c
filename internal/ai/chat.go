package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model,omitempty"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// postChat sends an OpenAI-shaped chat completion and extracts the first
// choice. Shared by the azure and openai providers; they differ only in url
// and auth header.
func postChat(ctx context.Context, client *http.Client, url string, header http.Header, body chatRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", &CompletionError{Body: err.Error()}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return "", &CompletionError{Body: err.Error()}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CompletionError{StatusCode: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &CompletionError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", nil
	}
	if len(out.Choices) == 0 || out.Choices[0].Message == nil {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}

func toChatMessages(msgs []Message) []chatMessage {
	out := make([]chatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, chatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
