package repositories_test

import (
	"testing"
	"time"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupChatDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:chatrepo?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.ChatMessage{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func mustSave(t *testing.T, repo repositories.ChatRepository, sessionID, role, text string, ts time.Time) *models.ChatMessage {
	t.Helper()

	msg, err := models.NewChatMessage(sessionID, role, text, ts)
	assert.NoError(t, err)
	saved, err := repo.SaveMessage(msg)
	assert.NoError(t, err)
	return saved
}

func TestGORMChatRepository_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	repo := repositories.NewGORMChatRepository(setupChatDB(t))

	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	user := mustSave(t, repo, "tie-session", models.RoleUser, "Busco zapatillas", ts)
	assistant := mustSave(t, repo, "tie-session", models.RoleAssistant, "Claro, tenemos varias", ts)
	assert.Less(t, user.ID, assistant.ID)

	history, err := repo.GetSessionHistory("tie-session", 0)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)

	recent, err := repo.GetRecentMessages("tie-session", 1)
	assert.NoError(t, err)
	assert.Len(t, recent, 1)
	assert.Equal(t, models.RoleAssistant, recent[0].Role)
}

func TestGORMChatRepository_HistoryLimitKeepsMostRecent(t *testing.T) {
	repo := repositories.NewGORMChatRepository(setupChatDB(t))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mustSave(t, repo, "limit-session", models.RoleUser, "hola", base)
	mustSave(t, repo, "limit-session", models.RoleAssistant, "buenas", base.Add(time.Second))
	mustSave(t, repo, "limit-session", models.RoleUser, "busco botas", base.Add(2*time.Second))

	history, err := repo.GetSessionHistory("limit-session", 2)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, "buenas", history[0].Message)
	assert.Equal(t, "busco botas", history[1].Message)

	deleted, err := repo.DeleteSessionHistory("limit-session")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestMockChatRepository_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	repo := repositories.NewMockChatRepository()

	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mustSave(t, repo, "tie-session", models.RoleUser, "Busco zapatillas", ts)
	mustSave(t, repo, "tie-session", models.RoleAssistant, "Claro, tenemos varias", ts)

	history, err := repo.GetSessionHistory("tie-session", 0)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
}
