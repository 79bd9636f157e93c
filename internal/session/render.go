package session

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/xxxsen/oaichat/internal/model"
)

const errorPrefix = "Error:"

type RenderedMessage struct {
	model.ChatMessage
	HTML string `json:"html,omitempty"`
}

type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
	}
}

// IsError reports whether text is a surfaced exchange failure.
func IsError(text string) bool {
	return strings.HasPrefix(text, errorPrefix)
}

// Render turns msg into display HTML. Error text and plain messages are
// escaped; markdown that fails to convert falls back to escaped text.
func (r *Renderer) Render(msg model.ChatMessage) RenderedMessage {
	out := RenderedMessage{ChatMessage: msg}
	if msg.Card != nil {
		return out
	}
	if IsError(msg.Text) {
		out.Markdown = false
	}
	if !out.Markdown {
		out.HTML = plainHTML(msg.Text)
		return out
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(msg.Text), &buf); err != nil {
		out.HTML = plainHTML(msg.Text)
		return out
	}
	out.HTML = buf.String()
	return out
}

func plainHTML(text string) string {
	return "<pre>" + html.EscapeString(text) + "</pre>"
}
