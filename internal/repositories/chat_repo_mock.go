package repositories

import (
	"sort"
	"sync"

	"tienda/internal/models"
)

// MockChatRepository is an in-memory implementation of ChatRepository.
type MockChatRepository struct {
	messages map[string][]models.ChatMessage // keyed by session ID
	nextID   uint
	mu       sync.RWMutex
}

// NewMockChatRepository creates a new instance of MockChatRepository.
func NewMockChatRepository() *MockChatRepository {
	return &MockChatRepository{
		messages: make(map[string][]models.ChatMessage),
	}
}

// SaveMessage appends a message to its session, assigning the next insertion
// ID when needed.
func (r *MockChatRepository) SaveMessage(message *models.ChatMessage) (*models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == 0 {
		r.nextID++
		message.ID = r.nextID
	}
	r.messages[message.SessionID] = append(r.messages[message.SessionID], *message)
	return message, nil
}

// GetSessionHistory returns a session's messages ascending by timestamp. A
// positive limit keeps only the most recent ones.
func (r *MockChatRepository) GetSessionHistory(sessionID string, limit int) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.sortedCopy(sessionID)
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history, nil
}

// DeleteSessionHistory removes every message of a session, returning the
// count removed.
func (r *MockChatRepository) DeleteSessionHistory(sessionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.messages[sessionID]))
	delete(r.messages, sessionID)
	return deleted, nil
}

// GetRecentMessages returns at most count of the newest messages of a
// session, oldest first.
func (r *MockChatRepository) GetRecentMessages(sessionID string, count int) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.sortedCopy(sessionID)
	if count > 0 && len(history) > count {
		history = history[len(history)-count:]
	}
	return history, nil
}

// sortedCopy returns the session's messages sorted chronologically. Callers
// must hold the lock.
func (r *MockChatRepository) sortedCopy(sessionID string) []models.ChatMessage {
	stored := r.messages[sessionID]
	history := make([]models.ChatMessage, len(stored))
	copy(history, stored)
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Timestamp.Equal(history[j].Timestamp) {
			return history[i].ID < history[j].ID
		}
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	return history
}
