package models

import (
	"strings"
	"time"
)

// Roles a chat message can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one utterance within a chat session. Messages are persisted
// once and never mutated afterwards. The auto-increment ID doubles as an
// insertion-order tiebreaker when two messages share a timestamp.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID string    `json:"session_id" gorm:"index;type:varchar(100);not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null"`
}

// TableName keeps the storage table name aligned with the conversational
// memory it holds.
func (ChatMessage) TableName() string {
	return "chat_memory"
}

// NewChatMessage builds a ChatMessage with no ID, enforcing that the session
// ID and message text are non-empty and the role is a known one.
func NewChatMessage(sessionID, role, message string, timestamp time.Time) (*ChatMessage, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, NewValidationError("session_id cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		return nil, NewValidationError("message cannot be empty")
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, NewValidationError("role must be 'user' or 'assistant'")
	}
	return &ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Message:   message,
		Timestamp: timestamp,
	}, nil
}

// IsFromUser reports whether the message was sent by the end user.
func (m *ChatMessage) IsFromUser() bool {
	return m.Role == RoleUser
}

// IsFromAssistant reports whether the message was emitted by the assistant.
func (m *ChatMessage) IsFromAssistant() bool {
	return m.Role == RoleAssistant
}

// DefaultContextSize is the number of recent messages included in a prompt
// when no other bound is configured.
const DefaultContextSize = 6

// ChatContext is the bounded, chronologically ordered slice of recent
// conversation used to prime the AI provider. It is built fresh per turn and
// never persisted.
type ChatContext struct {
	Messages    []ChatMessage
	MaxMessages int
}

// NewChatContext builds a context window over messages (oldest first). A
// non-positive maxMessages falls back to DefaultContextSize.
func NewChatContext(messages []ChatMessage, maxMessages int) ChatContext {
	if maxMessages <= 0 {
		maxMessages = DefaultContextSize
	}
	return ChatContext{Messages: messages, MaxMessages: maxMessages}
}

// Recent returns at most the last MaxMessages messages, preserving their
// chronological order.
func (c ChatContext) Recent() []ChatMessage {
	if len(c.Messages) <= c.MaxMessages {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-c.MaxMessages:]
}

// FormatForPrompt renders the recent window as one "User: ..." or
// "Assistant: ..." line per message, newline separated, oldest first. An
// empty window renders as an empty string.
func (c ChatContext) FormatForPrompt() string {
	recent := c.Recent()
	lines := make([]string, 0, len(recent))
	for _, m := range recent {
		prefix := "User"
		if m.IsFromAssistant() {
			prefix = "Assistant"
		}
		lines = append(lines, prefix+": "+m.Message)
	}
	return strings.Join(lines, "\n")
}
