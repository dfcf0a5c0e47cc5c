package models

import "fmt"

// ValidationError indicates that an entity invariant was violated before
// anything reached storage.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError indicates that a referenced product does not exist.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	if e.ProductID != "" {
		return fmt.Sprintf("product with ID %s not found", e.ProductID)
	}
	return "product not found"
}

// NewNotFoundError creates a NotFoundError carrying the missing product's ID.
func NewNotFoundError(productID string) *NotFoundError {
	return &NotFoundError{ProductID: productID}
}

// ChatServiceError is the single failure surface of a chat turn. Any store or
// AI provider failure during the turn is collapsed into this error; the
// original cause's message is preserved for diagnostics.
type ChatServiceError struct {
	Message string
	Cause   error
}

func (e *ChatServiceError) Error() string {
	return fmt.Sprintf("chat service error: %s", e.Message)
}

func (e *ChatServiceError) Unwrap() error {
	return e.Cause
}

// NewChatServiceError wraps a failure that occurred during a chat turn.
func NewChatServiceError(cause error) *ChatServiceError {
	return &ChatServiceError{Message: cause.Error(), Cause: cause}
}
