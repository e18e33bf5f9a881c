package domain

import "time"

// ChatRole identifies the author of a transcript entry.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system" // local notices, e.g. a failed relay
)

// ChatMessage is one entry of the in-memory transcript.
type ChatMessage struct {
	ID     string    `json:"id"`
	Role   ChatRole  `json:"role"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

// ChatRequest is the payload relayed to the assistant webhook.
type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Timestamp string `json:"timestamp"`
}
