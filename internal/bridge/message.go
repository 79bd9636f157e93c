package bridge

import "github.com/xxxsen/oaichat/internal/session"

const (
	CommandSendQuery    = "sendQuery"
	CommandAttachFile   = "attachFile"
	CommandShowHelp     = "showHelp"
	CommandClearHistory = "clearHistory"

	CommandResponse       = "response"
	CommandFileAttached   = "fileAttached"
	CommandAdaptiveCard   = "adaptiveCard"
	CommandHistoryCleared = "historyCleared"
)

// Inbound is any message the display view posts.
type Inbound struct {
	Command     string `json:"command"`
	Query       string `json:"query,omitempty"`
	FileContent string `json:"fileContent,omitempty"`
	FileName    string `json:"fileName,omitempty"`
}

// Outbound is any message sent to the display view. Seq is set on
// response frames: the n-th accepted sendQuery of the connection gets seq n.
type Outbound struct {
	Command  string                 `json:"command"`
	Seq      uint64                 `json:"seq,omitempty"`
	Text     string                 `json:"text,omitempty"`
	Markdown bool                   `json:"markdown"`
	HTML     string                 `json:"html,omitempty"`
	Card     map[string]interface{} `json:"card,omitempty"`
}

func responseMessage(seq uint64, msg session.RenderedMessage) Outbound {
	return Outbound{
		Command:  CommandResponse,
		Seq:      seq,
		Text:     msg.Text,
		Markdown: msg.Markdown,
		HTML:     msg.HTML,
	}
}
