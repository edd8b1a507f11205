package domain

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one bubble of the chat widget. Never persisted.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
