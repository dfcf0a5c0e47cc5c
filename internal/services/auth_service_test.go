package services_test

import (
	"fmt"
	"testing"

	"tienda/internal/models"
	"tienda/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret")

	user := &models.User{Username: "staff", Email: "staff@example.com", Password: "password123"}

	mockRepo.On("GetByUsername", "staff").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "staff@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		// Password is stored hashed, never in clear
		return u.Password != "password123" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	err := service.RegisterUser(user)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret")

	existing := &models.User{ID: "1", Username: "staff"}
	mockRepo.On("GetByUsername", "staff").Return(existing, nil).Once()

	err := service.RegisterUser(&models.User{Username: "staff", Email: "other@example.com", Password: "password123"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginAndValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: "user-1", Username: "staff", Password: string(hashed)}

	mockRepo.On("GetByUsername", "staff").Return(user, nil).Twice()

	token, err := service.LoginUser("staff", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "staff", claims["username"])
	assert.Equal(t, "user-1", claims["user_id"])

	// Wrong password is rejected without detail
	_, err = service.LoginUser("staff", "wrong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret")

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}
