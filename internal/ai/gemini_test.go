package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiContents_SystemInstruction(t *testing.T) {
	contents, config := geminiContents(&CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "hello"},
		},
	})
	require.Len(t, contents, 1)
	require.Equal(t, "hello", contents[0].Parts[0].Text)
	require.Equal(t, genai.RoleUser, contents[0].Role)
	require.NotNil(t, config.SystemInstruction)
	require.Equal(t, "be brief", config.SystemInstruction.Parts[0].Text)
	require.Equal(t, int32(DefaultMaxTokens), config.MaxOutputTokens)
}

func TestGeminiContents_BlankSystemSkipped(t *testing.T) {
	contents, config := geminiContents(&CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "  "},
			{Role: RoleUser, Content: "hello"},
		},
		MaxTokens: 64,
	})
	require.Len(t, contents, 1)
	require.Nil(t, config.SystemInstruction)
	require.Equal(t, int32(64), config.MaxOutputTokens)
}

func newTestGemini(t *testing.T, url string) IProvider {
	p, err := NewProvider("gemini", map[string]interface{}{
		"endpoint": url,
		"key":      "gk",
		"model":    "gemini-2.0-flash",
	})
	require.NoError(t, err)
	return p
}

func TestGeminiComplete(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"pong"}]}}]}`))
	}))
	defer srv.Close()

	out, err := newTestGemini(t, srv.URL).Complete(context.Background(), &CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "ping"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "pong", out)
	require.True(t, strings.HasSuffix(gotPath, "models/gemini-2.0-flash:generateContent"), gotPath)
	require.Equal(t, "gk", gotKey)

	contents, ok := gotBody["contents"].([]interface{})
	require.True(t, ok)
	require.Len(t, contents, 1)
	raw, err := json.Marshal(gotBody["systemInstruction"])
	require.NoError(t, err)
	require.Contains(t, string(raw), "be brief")
	raw, err = json.Marshal(contents[0])
	require.NoError(t, err)
	require.Contains(t, string(raw), "ping")
	require.NotContains(t, string(raw), "be brief")
}

func TestGeminiComplete_NoSystemInstructionWhenBlank(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	_, err := newTestGemini(t, srv.URL).Complete(context.Background(), &CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: ""},
			{Role: RoleUser, Content: "ping"},
		},
	})
	require.NoError(t, err)
	require.NotContains(t, gotBody, "systemInstruction")
}

func TestGeminiComplete_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend down","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	_, err := newTestGemini(t, srv.URL).Complete(context.Background(), &CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "ping"}},
	})
	var compErr *CompletionError
	require.True(t, errors.As(err, &compErr))
	require.Contains(t, err.Error(), "backend down")
}
