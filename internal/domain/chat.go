package domain

// Chat roles accepted by the narrative generator.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a role tagged text turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a free-form question asked against a profile.
type ChatRequest struct {
	Message string         `json:"message"`
	History []ChatMessage  `json:"history"`
	Profile *ClinicProfile `json:"profile"`
}
