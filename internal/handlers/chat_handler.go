package handlers

import (
	"errors"
	"fmt"
	"log"

	"tienda/internal/models"
	"tienda/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ChatRequest represents the request body for one chat turn.
type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// ChatHandler handles HTTP requests for the conversational assistant.
type ChatHandler struct {
	service  *services.ChatService
	validate *validator.Validate
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the chat routes with the Fiber app.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	chatRoutes := router.Group("/chat")
	chatRoutes.Post("/", h.HandleChat)
	chatRoutes.Get("/history/:session_id", h.HandleGetHistory)
	chatRoutes.Delete("/history/:session_id", h.HandleClearHistory)
}

// HandleChat processes one chat turn and returns the assistant's reply.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing chat request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	response, err := h.service.ProcessMessage(c.Context(), req.SessionID, req.Message)
	if err != nil {
		log.Printf("Error processing chat message for session %s: %v", req.SessionID, err)
		var chatErr *models.ChatServiceError
		if errors.As(err, &chatErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": chatErr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process chat message",
			"error":   err.Error(),
		})
	}
	return c.JSON(response)
}

// HandleGetHistory returns a session's chat history, oldest first. An
// optional limit query parameter keeps only the most recent messages.
func (h *ChatHandler) HandleGetHistory(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	limit := c.QueryInt("limit")

	history, err := h.service.GetSessionHistory(sessionID, limit)
	if err != nil {
		log.Printf("Error getting chat history for session %s: %v", sessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve chat history",
			"error":   err.Error(),
		})
	}
	return c.JSON(history)
}

// HandleClearHistory deletes a session's chat history.
func (h *ChatHandler) HandleClearHistory(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	deleted, err := h.service.ClearSessionHistory(sessionID)
	if err != nil {
		log.Printf("Error clearing chat history for session %s: %v", sessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear chat history",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"session_id":       sessionID,
		"deleted_messages": deleted,
	})
}

// validationMessages flattens validator errors into a field-to-message map.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}
