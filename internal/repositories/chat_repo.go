package repositories

import (
	"tienda/internal/models"
)

// ChatRepository defines the interface for conversation history access.
//
// GetSessionHistory returns messages ascending by timestamp; a positive limit
// keeps only the most recent messages, still in chronological order.
// GetRecentMessages returns at most count messages, the most recent ones,
// reordered oldest first. DeleteSessionHistory reports how many messages were
// removed; removing an empty session is not an error.
type ChatRepository interface {
	SaveMessage(message *models.ChatMessage) (*models.ChatMessage, error)
	GetSessionHistory(sessionID string, limit int) ([]models.ChatMessage, error)
	DeleteSessionHistory(sessionID string) (int64, error)
	GetRecentMessages(sessionID string, count int) ([]models.ChatMessage, error)
}
