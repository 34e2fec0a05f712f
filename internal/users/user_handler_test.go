package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	custom_error "storefront/pkg/errors"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository to mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, hashedPassword []byte) error {
	args := m.Called(req, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id int, changes *models.UserChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func setupRouter(repo UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewHandler(repo)
	handler.RegisterRoutes(router.Group(""))

	return router
}

func TestRegisterUserHashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	router := setupRouter(repo)

	repo.On("PersistUser", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(models.CreateUserRequest{Username: "asha", Password: "secret123", Role: "admin"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	call := repo.Calls[0]
	hashed := call.Arguments.Get(1).([]byte)
	assert.NotEqual(t, "secret123", string(hashed))
	assert.NotEmpty(t, hashed)
}

func TestRegisterUserRejectsShortPassword(t *testing.T) {
	repo := new(MockUserRepository)
	router := setupRouter(repo)

	body, _ := json.Marshal(models.CreateUserRequest{Username: "asha", Password: "abc"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "PersistUser", mock.Anything, mock.Anything)
}

func TestRegisterUserDuplicateUsernameConflicts(t *testing.T) {
	repo := new(MockUserRepository)
	router := setupRouter(repo)

	repo.On("PersistUser", mock.Anything, mock.Anything).Return(custom_error.WrapDBError("username", "23505"))

	body, _ := json.Marshal(models.CreateUserRequest{Username: "asha", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetUserNotFound(t *testing.T) {
	repo := new(MockUserRepository)
	router := setupRouter(repo)

	repo.On("GetUser", 42).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserWithoutChangesReturnsCurrent(t *testing.T) {
	repo := new(MockUserRepository)
	router := setupRouter(repo)

	repo.On("GetUser", 5).Return(&models.User{ID: 5, Username: "asha", Role: "user"}, nil)

	body, _ := json.Marshal(models.UpdateUserRequest{})
	req := httptest.NewRequest(http.MethodPatch, "/users/5", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}
