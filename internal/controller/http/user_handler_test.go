package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yamdb/internal/entity"
	"yamdb/internal/usecase"
	"yamdb/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) List(search string, limit, offset int) ([]*entity.User, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Create(input usecase.UserInput) (*entity.User, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Update(username string, input usecase.UserUpdate) (*entity.User, error) {
	args := m.Called(username, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Delete(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockUserUseCase) UpdateSelf(requester *entity.User, input usecase.UserUpdate) (*entity.User, error) {
	args := m.Called(requester, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

func TestListUsers_Admin(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users", asUser(adminUser(), handler.ListUsers))

	mockUseCase.On("List", "", 20, 0).Return([]*entity.User{
		{Username: "alice", Email: "alice@yamdb.fake", Role: entity.RoleUser},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestListUsers_NonAdmin(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users", asUser(plainUser(), handler.ListUsers))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestListUsers_Moderator(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	moderator := &entity.User{ID: "mod-1", Username: "mod", Role: entity.RoleModerator}
	router := setupTestRouter()
	router.GET("/users", asUser(moderator, handler.ListUsers))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateUser_Admin(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/users", asUser(adminUser(), handler.CreateUser))

	input := usecase.UserInput{Username: "carol", Email: "carol@yamdb.fake", Role: "moderator"}
	mockUseCase.On("Create", input).Return(&entity.User{
		Username: "carol", Email: "carol@yamdb.fake", Role: entity.RoleModerator,
	}, nil)

	body := `{"username":"carol","email":"carol@yamdb.fake","role":"moderator"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "moderator", response["role"])

	mockUseCase.AssertExpectations(t)
}

func TestGetUser_Admin(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users/:username", asUser(adminUser(), handler.GetUser))

	mockUseCase.On("GetByUsername", "alice").Return(&entity.User{
		Username: "alice", Email: "alice@yamdb.fake", Role: entity.RoleUser,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/alice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/users/:username", asUser(adminUser(), handler.DeleteUser))

	mockUseCase.On("Delete", "ghost").Return(entity.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/users/ghost", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestMe_Authenticated(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	me := plainUser()
	router := setupTestRouter()
	router.GET("/users/me", asUser(me, handler.Me))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "reader", response["username"])
}

func TestMe_Anonymous(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users/me", handler.Me)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMe_RoleKept(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	me := plainUser()
	router := setupTestRouter()
	router.PATCH("/users/me", asUser(me, handler.UpdateMe))

	role := "admin"
	bio := "New bio"
	input := usecase.UserUpdate{Bio: &bio, Role: &role}
	// The stored role survives an attempted escalation.
	mockUseCase.On("UpdateSelf", me, input).Return(&entity.User{
		Username: me.Username, Bio: bio, Role: entity.RoleUser,
	}, nil)

	body := `{"bio":"New bio","role":"admin"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/users/me", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "user", response["role"])

	mockUseCase.AssertExpectations(t)
}
