package repositories

import (
	"fmt"

	"tienda/internal/models"

	"gorm.io/gorm"
)

// GORMChatRepository is a GORM implementation of ChatRepository.
type GORMChatRepository struct {
	db *gorm.DB
}

// NewGORMChatRepository creates a new instance of GORMChatRepository.
func NewGORMChatRepository(db *gorm.DB) *GORMChatRepository {
	return &GORMChatRepository{
		db: db,
	}
}

// SaveMessage persists a chat message, letting the database assign its
// auto-increment ID, and returns the stored message.
func (r *GORMChatRepository) SaveMessage(message *models.ChatMessage) (*models.ChatMessage, error) {
	if err := r.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}
	return message, nil
}

// GetSessionHistory retrieves a session's messages ascending by timestamp,
// with the insertion ID breaking timestamp ties. A positive limit keeps only
// the most recent messages.
func (r *GORMChatRepository) GetSessionHistory(sessionID string, limit int) ([]models.ChatMessage, error) {
	if limit > 0 {
		return r.recentAscending(sessionID, limit)
	}
	var messages []models.ChatMessage
	err := r.db.Where("session_id = ?", sessionID).
		Order("timestamp asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get session history for %s: %w", sessionID, err)
	}
	return messages, nil
}

// DeleteSessionHistory removes every message of a session and returns the
// number of rows deleted.
func (r *GORMChatRepository) DeleteSessionHistory(sessionID string) (int64, error) {
	res := r.db.Where("session_id = ?", sessionID).Delete(&models.ChatMessage{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete session history for %s: %w", sessionID, res.Error)
	}
	return res.RowsAffected, nil
}

// GetRecentMessages retrieves at most count messages of a session, the most
// recent ones, reordered oldest first.
func (r *GORMChatRepository) GetRecentMessages(sessionID string, count int) ([]models.ChatMessage, error) {
	return r.recentAscending(sessionID, count)
}

// recentAscending fetches the newest count messages in reverse-chronological
// order and flips them back to chronological.
func (r *GORMChatRepository) recentAscending(sessionID string, count int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Where("session_id = ?", sessionID).
		Order("timestamp desc, id desc").
		Limit(count).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent messages for %s: %w", sessionID, err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
