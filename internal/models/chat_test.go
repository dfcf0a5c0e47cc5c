package models_test

import (
	"fmt"
	"testing"
	"time"

	"tienda/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewChatMessage_Valid(t *testing.T) {
	now := time.Now()
	m, err := models.NewChatMessage("abc", models.RoleUser, "Hola", now)

	assert.NoError(t, err)
	assert.Empty(t, m.ID)
	assert.Equal(t, "abc", m.SessionID)
	assert.Equal(t, now, m.Timestamp)
	assert.True(t, m.IsFromUser())
	assert.False(t, m.IsFromAssistant())
}

func TestNewChatMessage_Invariants(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		sessionID string
		role      string
		message   string
	}{
		{"empty session", "", models.RoleUser, "Hola"},
		{"blank session", "  ", models.RoleUser, "Hola"},
		{"empty message", "abc", models.RoleUser, ""},
		{"blank message", "abc", models.RoleAssistant, "   "},
		{"unknown role", "abc", "system", "Hola"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := models.NewChatMessage(tt.sessionID, tt.role, tt.message, now)
			assert.Nil(t, m)
			var validationErr *models.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func buildMessages(t *testing.T, count int) []models.ChatMessage {
	t.Helper()
	base := time.Now()
	messages := make([]models.ChatMessage, 0, count)
	for i := 0; i < count; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		m, err := models.NewChatMessage("abc", role, fmt.Sprintf("message %d", i), base.Add(time.Duration(i)*time.Second))
		assert.NoError(t, err)
		messages = append(messages, *m)
	}
	return messages
}

func TestChatContext_Recent(t *testing.T) {
	messages := buildMessages(t, 10)
	ctx := models.NewChatContext(messages, 6)

	recent := ctx.Recent()
	assert.Len(t, recent, 6)
	// Recent is the suffix of the sequence, order preserved
	assert.Equal(t, "message 4", recent[0].Message)
	assert.Equal(t, "message 9", recent[5].Message)
}

func TestChatContext_RecentShorterThanBound(t *testing.T) {
	messages := buildMessages(t, 3)
	ctx := models.NewChatContext(messages, 6)

	assert.Len(t, ctx.Recent(), 3)
}

func TestChatContext_DefaultBound(t *testing.T) {
	ctx := models.NewChatContext(buildMessages(t, 10), 0)
	assert.Len(t, ctx.Recent(), models.DefaultContextSize)
}

func TestChatContext_FormatForPrompt(t *testing.T) {
	messages := buildMessages(t, 4)
	ctx := models.NewChatContext(messages, 6)

	expected := "User: message 0\nAssistant: message 1\nUser: message 2\nAssistant: message 3"
	assert.Equal(t, expected, ctx.FormatForPrompt())
}

func TestChatContext_FormatForPromptEmpty(t *testing.T) {
	ctx := models.NewChatContext(nil, 6)
	assert.Equal(t, "", ctx.FormatForPrompt())
}
