package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of the assistant conversation. Messages are never
// modified after they are appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error,omitempty"`
}

// Greeting opens every conversation.
const Greeting = "Hello! I'm your Enablement Assistant. I can help you draft communications, " +
	"clarify the project schedule, or explain governance details. How can I assist you today?"

// PilotInvitePrompt asks the assistant for the Phase 3 invitation email.
const PilotInvitePrompt = "Create the Email Invitation Template for 'Phase 3: Pilot Program' participants. " +
	"Frame the pilot as an exclusive opportunity to shape the bank's AI strategy. " +
	"Include subject and body placeholders."

// NewMessage stamps a message with a fresh ID and the current time.
func NewMessage(role Role, text string, isError bool) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
		IsError:   isError,
	}
}
