package models

// Conversation roles, matching the wire protocol of the completion endpoint.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role      string
	Content   string
	Timestamp string
}
