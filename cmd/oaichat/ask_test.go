package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/oaichat/internal/model"
)

func TestPrintReply_PlainForErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReply(&buf, model.ChatMessage{Text: "Error: boom", Markdown: false}, false))
	require.Equal(t, "Error: boom\n", buf.String())
}

func TestPrintReply_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReply(&buf, model.ChatMessage{Text: "**bold**", Markdown: true}, true))
	require.Equal(t, "**bold**\n", buf.String())
}

func TestPrintReply_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReply(&buf, model.ChatMessage{Text: "# Title\n\nbody text", Markdown: true}, false))
	require.Contains(t, buf.String(), "Title")
	require.Contains(t, buf.String(), "body text")
}

func TestLoadConfig_RequiresPath(t *testing.T) {
	_, err := loadConfig("")
	require.EqualError(t, err, "--config is required")
}
