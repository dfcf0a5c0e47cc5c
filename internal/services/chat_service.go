package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tienda/internal/models"
	"tienda/internal/repositories"
)

// AIService is the capability interface for the text-generation provider.
// Any implementation (Gemini, a local model, a test stub) receives the user
// message, the catalog snapshot, and the recent-context window, and returns
// the assistant's reply.
type AIService interface {
	GenerateResponse(ctx context.Context, userMessage string, products []models.Product, chatContext models.ChatContext) (string, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ChatResponse is the transport shape returned for one completed chat turn.
type ChatResponse struct {
	SessionID        string    `json:"session_id"`
	UserMessage      string    `json:"user_message"`
	AssistantMessage string    `json:"assistant_message"`
	Timestamp        time.Time `json:"timestamp"`
}

// ChatHistoryEntry is the read-only projection of one stored message.
type ChatHistoryEntry struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatService orchestrates one conversational turn: it assembles the context
// window and catalog snapshot, invokes the AI provider, and records both
// sides of the exchange.
type ChatService struct {
	productRepo repositories.ProductRepository
	chatRepo    repositories.ChatRepository
	aiService   AIService
	publisher   EventPublisher // optional, may be nil
	contextSize int
	now         func() time.Time
}

// NewChatService creates a new ChatService. publisher may be nil; a
// non-positive contextSize falls back to the default window size.
func NewChatService(
	productRepo repositories.ProductRepository,
	chatRepo repositories.ChatRepository,
	aiService AIService,
	publisher EventPublisher,
	contextSize int,
) *ChatService {
	if contextSize <= 0 {
		contextSize = models.DefaultContextSize
	}
	return &ChatService{
		productRepo: productRepo,
		chatRepo:    chatRepo,
		aiService:   aiService,
		publisher:   publisher,
		contextSize: contextSize,
		now:         time.Now,
	}
}

// ProcessMessage runs one chat turn for a session. Any failure along the way
// surfaces as a single ChatServiceError wrapping the cause. A failure after
// the user message was saved leaves it in history without a reply; no
// rollback is attempted.
func (s *ChatService) ProcessMessage(ctx context.Context, sessionID, message string) (*ChatResponse, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, models.NewChatServiceError(err)
	}

	history, err := s.chatRepo.GetRecentMessages(sessionID, s.contextSize)
	if err != nil {
		return nil, models.NewChatServiceError(err)
	}
	chatContext := models.NewChatContext(history, s.contextSize)

	reply, err := s.aiService.GenerateResponse(ctx, message, products, chatContext)
	if err != nil {
		return nil, models.NewChatServiceError(err)
	}

	userMessage, err := models.NewChatMessage(sessionID, models.RoleUser, message, s.now())
	if err != nil {
		return nil, models.NewChatServiceError(err)
	}
	if _, err := s.chatRepo.SaveMessage(userMessage); err != nil {
		return nil, models.NewChatServiceError(err)
	}

	assistantMessage, err := models.NewChatMessage(sessionID, models.RoleAssistant, reply, s.now())
	if err != nil {
		return nil, models.NewChatServiceError(err)
	}
	if _, err := s.chatRepo.SaveMessage(assistantMessage); err != nil {
		return nil, models.NewChatServiceError(err)
	}

	s.publishTurnCompleted(sessionID, assistantMessage.Timestamp)

	return &ChatResponse{
		SessionID:        sessionID,
		UserMessage:      message,
		AssistantMessage: reply,
		Timestamp:        assistantMessage.Timestamp,
	}, nil
}

// publishTurnCompleted emits a chat.turn.completed event when a publisher is
// configured. Publish failures are logged and never fail the turn.
func (s *ChatService) publishTurnCompleted(sessionID string, timestamp time.Time) {
	if s.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"session_id": sessionID,
		"timestamp":  timestamp,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal chat turn event: %v", err)
		return
	}
	if err := s.publisher.Publish("chat", "chat.turn.completed", body); err != nil {
		log.Printf("Warning: Failed to publish chat turn event for session %s: %v", sessionID, err)
	}
}

// GetSessionHistory retrieves a session's messages as read-only history
// entries, oldest first. A positive limit keeps only the most recent ones.
func (s *ChatService) GetSessionHistory(sessionID string, limit int) ([]ChatHistoryEntry, error) {
	messages, err := s.chatRepo.GetSessionHistory(sessionID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]ChatHistoryEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, ChatHistoryEntry{
			ID:        m.ID,
			Role:      m.Role,
			Message:   m.Message,
			Timestamp: m.Timestamp,
		})
	}
	return entries, nil
}

// ClearSessionHistory deletes every message of a session and returns the
// count removed. Clearing a session with no messages returns 0.
func (s *ChatService) ClearSessionHistory(sessionID string) (int64, error) {
	return s.chatRepo.DeleteSessionHistory(sessionID)
}
