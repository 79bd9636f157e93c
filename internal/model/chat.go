package model

type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

type Query struct {
	Text        string `json:"query"`
	FileContent string `json:"file_content"`
}

// ChatMessage is one history entry. Exactly one of Text or Card is the
// payload; Markdown is a rendering hint for Text.
type ChatMessage struct {
	Role     Role                   `json:"role"`
	Text     string                 `json:"text,omitempty"`
	Markdown bool                   `json:"markdown"`
	Card     map[string]interface{} `json:"card,omitempty"`
}

type Reply struct {
	Intent  string      `json:"intent"`
	Message ChatMessage `json:"message"`
	States  []string    `json:"states"`
}
