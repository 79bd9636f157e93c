package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultAPIVersion = "2023-07-01-Preview"
	DefaultTop        = 5
)

var DefaultContentFields = []string{"content", "text", "body"}

type Config struct {
	Endpoint      string   `json:"endpoint"`
	Key           string   `json:"key"`
	Index         string   `json:"index"`
	Top           int      `json:"top"`
	APIVersion    string   `json:"api_version"`
	ContentFields []string `json:"content_fields"`
}

// Ready reports whether endpoint, key and index are all set.
func (c Config) Ready() bool {
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.Key) != "" &&
		strings.TrimSpace(c.Index) != ""
}

type SearchError struct {
	StatusCode int
	Body       string
}

func (e *SearchError) Error() string {
	if e.StatusCode == 0 {
		return e.Body
	}
	return fmt.Sprintf("search request failed: %d: %s", e.StatusCode, e.Body)
}

type searchRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top"`
}

type searchResponse struct {
	Value []json.RawMessage `json:"value"`
}

type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.Top <= 0 {
		cfg.Top = DefaultTop
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if len(cfg.ContentFields) == 0 {
		cfg.ContentFields = DefaultContentFields
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{cfg: cfg, client: client}
}

func (c *Client) Ready() bool {
	return c != nil && c.cfg.Ready()
}

func (c *Client) ContentFields() []string {
	return c.cfg.ContentFields
}

// URL is the docs/search endpoint of the configured index.
func (c *Client) URL() string {
	return fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Index, c.cfg.APIVersion)
}

func (c *Client) Search(ctx context.Context, query string) ([]Document, error) {
	data, err := json.Marshal(searchRequest{Search: query, Top: c.cfg.Top})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(data))
	if err != nil {
		return nil, &SearchError{Body: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.Key)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &SearchError{Body: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, &SearchError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &SearchError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("decode search response: %v", err)}
	}
	docs := make([]Document, 0, len(out.Value))
	for _, raw := range out.Value {
		doc, err := NewDocument(raw)
		if err != nil {
			return nil, &SearchError{StatusCode: resp.StatusCode, Body: err.Error()}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
